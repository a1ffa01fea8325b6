package rts

import "fmt"

// Button is the control nibble carried in the high half of frame byte 1.
type Button byte

const (
	Stop Button = 0x1
	Up   Button = 0x2
	Down Button = 0x4
	// Prog puts a receiver in learning mode when its own remote is holding
	// the program button.
	Prog Button = 0x8
)

var commands = map[byte]Button{
	'u': Up,
	's': Stop,
	'd': Down,
	'p': Prog,
}

// ParseCommand maps a single command character onto its button.
func ParseCommand(c byte) (Button, bool) {
	b, ok := commands[c]
	return b, ok
}

// Command returns the command character for b, or 0 for unknown buttons.
func (b Button) Command() byte {
	for c, v := range commands {
		if v == b {
			return c
		}
	}
	return 0
}

func (b Button) String() string {
	switch b {
	case Up:
		return "UP"
	case Stop:
		return "STOP"
	case Down:
		return "DOWN"
	case Prog:
		return "PROG"
	}
	return fmt.Sprintf("Button(%#x)", byte(b))
}
