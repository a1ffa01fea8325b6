package rts

import (
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func nibbleFold(f Frame) byte {
	var c byte
	for _, b := range f {
		c ^= (b >> 4) ^ (b & 0x0f)
	}
	return c
}

func TestEncodeGoldenVector(t *testing.T) {
	Convey("Living room remote, UP, rolling code 1", t, func() {
		So(Raw(0x184623, Up, 1), ShouldResemble, Frame{0xa7, 0x20, 0x00, 0x01, 0x18, 0x46, 0x23})
		So(Checksummed(0x184623, Up, 1), ShouldResemble, Frame{0xa7, 0x24, 0x00, 0x01, 0x18, 0x46, 0x23})

		frame, next := Encode(0x184623, Up, 1)
		So(frame, ShouldResemble, Frame{0xa7, 0x83, 0x83, 0x82, 0x9a, 0xdc, 0xff})
		So(frame.String(), ShouldEqual, "A78383829ADCFF")
		So(next, ShouldEqual, 2)
	})
}

func TestEncodeProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	buttons := []Button{Up, Stop, Down, Prog}

	Convey("For arbitrary commands", t, func() {
		for i := 0; i < 2000; i++ {
			address := rng.Uint32() & 0xffffff
			button := buttons[rng.Intn(len(buttons))]
			code := rng.Uint32()

			frame, next := Encode(address, button, code)
			clear := Deobfuscate(frame)

			So(nibbleFold(clear), ShouldEqual, 0)
			So(Checksum(clear), ShouldEqual, 0)
			So(frame[0], ShouldEqual, Key)

			stripped := clear
			stripped[1] &= 0xf0
			So(stripped, ShouldResemble, Raw(address, button, code))

			again, againNext := Encode(address, button, code)
			So(again, ShouldResemble, frame)
			So(againNext, ShouldEqual, next)
			So(next, ShouldEqual, code+1)
		}
	})
}

func TestObfuscation(t *testing.T) {
	Convey("Deobfuscate inverts obfuscate", t, func() {
		f := Frame{0xa7, 0x24, 0x00, 0x01, 0x18, 0x46, 0x23}
		So(Deobfuscate(obfuscate(f)), ShouldResemble, f)
		So(obfuscate(Deobfuscate(f)), ShouldResemble, f)
	})
}

func TestRollingCodeWidth(t *testing.T) {
	Convey("Only the low 16 bits go on air", t, func() {
		f := Raw(0x000001, Down, 0x00123456)
		So(f[2], ShouldEqual, 0x34)
		So(f[3], ShouldEqual, 0x56)
	})

	Convey("The next code wraps at the integer width", t, func() {
		_, next := Encode(0x000001, Down, 0xffffffff)
		So(next, ShouldEqual, 0)
	})

	Convey("The address uses 24 bits", t, func() {
		f := Raw(0xabcdef, Stop, 0)
		So(f[4:], ShouldResemble, []byte{0xab, 0xcd, 0xef})
	})
}

func TestBit(t *testing.T) {
	Convey("Bits are numbered MSB first", t, func() {
		f := Frame{0x80, 0x01}
		So(f.Bit(0), ShouldBeTrue)
		So(f.Bit(1), ShouldBeFalse)
		So(f.Bit(15), ShouldBeTrue)
		So(f.Bit(55), ShouldBeFalse)
	})
}

func TestParseCommand(t *testing.T) {
	Convey("Command characters", t, func() {
		for c, want := range map[byte]Button{'u': Up, 's': Stop, 'd': Down, 'p': Prog} {
			b, ok := ParseCommand(c)
			So(ok, ShouldBeTrue)
			So(b, ShouldEqual, want)
			So(b.Command(), ShouldEqual, c)
		}
	})

	Convey("Unknown characters", t, func() {
		for _, c := range []byte{'x', 'U', 0, ' '} {
			_, ok := ParseCommand(c)
			So(ok, ShouldBeFalse)
		}
	})

	Convey("Names", t, func() {
		So(Up.String(), ShouldEqual, "UP")
		So(Prog.String(), ShouldEqual, "PROG")
		So(Button(0x3).String(), ShouldEqual, "Button(0x3)")
	})
}
