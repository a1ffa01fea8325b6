package rts

import (
	"time"

	"periph.io/x/periph/conn/gpio"
)

// Protocol timings.
const (
	Symbol = 640 * time.Microsecond

	WakeUpHigh  = 9415 * time.Microsecond
	WakeUpLow   = 89565 * time.Microsecond
	SoftSyncLen = 4550 * time.Microsecond
	// InterFrameGap is the silence after every frame.
	InterFrameGap = 30415 * time.Microsecond

	// FirstSyncs is the number of hardware sync pulses of the first frame
	// in a burst; every repeat carries RepeatSyncs.
	FirstSyncs  = 2
	RepeatSyncs = 7

	// Repeats is the number of long sync frames following the first one.
	Repeats = 2
)

// Pulse holds the data line at Level for Duration.
type Pulse struct {
	Level    gpio.Level
	Duration time.Duration
}

// Waveform lays out the line levels for one frame. first selects the wake
// up pulse and the short hardware sync.
func Waveform(f Frame, first bool) []Pulse {
	syncs := RepeatSyncs
	if first {
		syncs = FirstSyncs
	}
	p := make([]Pulse, 0, 4+2*syncs+2+2*FrameLen*8+1)

	if first {
		p = append(p,
			Pulse{gpio.High, WakeUpHigh},
			Pulse{gpio.Low, WakeUpLow})
	}

	for i := 0; i < syncs; i++ {
		p = append(p,
			Pulse{gpio.High, 4 * Symbol},
			Pulse{gpio.Low, 4 * Symbol})
	}

	p = append(p,
		Pulse{gpio.High, SoftSyncLen},
		Pulse{gpio.Low, Symbol})

	// Manchester, MSB first: a rising edge mid-symbol is a 1.
	for i := 0; i < FrameLen*8; i++ {
		if f.Bit(i) {
			p = append(p, Pulse{gpio.Low, Symbol}, Pulse{gpio.High, Symbol})
		} else {
			p = append(p, Pulse{gpio.High, Symbol}, Pulse{gpio.Low, Symbol})
		}
	}

	return append(p, Pulse{gpio.Low, InterFrameGap})
}

// Duration sums the pulse lengths.
func Duration(p []Pulse) time.Duration {
	var d time.Duration
	for _, v := range p {
		d += v.Duration
	}
	return d
}
