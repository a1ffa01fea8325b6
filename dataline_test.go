package somfy

import (
	"errors"
	"testing"

	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
	"periph.io/x/periph/conn/gpio/gpiotest"

	. "github.com/smartystreets/goconvey/convey"
)

type stuckPin struct {
	gpiotest.Pin
}

func (p *stuckPin) Out(l gpio.Level) error {
	return errors.New("gpio: pin is an input only")
}

func TestOpenDataLine(t *testing.T) {
	healthy := &gpiotest.Pin{N: "SOMFY_TX", Num: 9001, L: gpio.High}
	stuck := &stuckPin{Pin: gpiotest.Pin{N: "SOMFY_STUCK", Num: 9002}}
	if err := gpioreg.Register(healthy); err != nil {
		t.Fatal(err)
	}
	if err := gpioreg.Register(stuck); err != nil {
		t.Fatal(err)
	}

	Convey("The line is driven low", t, func() {
		line, err := OpenDataLine("SOMFY_TX")
		So(err, ShouldBeNil)
		So(line.Read(), ShouldEqual, gpio.Low)
	})

	Convey("Unknown pins are an error", t, func() {
		_, err := OpenDataLine("SOMFY_MISSING")
		So(err, ShouldNotBeNil)
	})

	Convey("A pin that cannot be driven is an error", t, func() {
		_, err := OpenDataLine("SOMFY_STUCK")
		So(err, ShouldNotBeNil)
	})
}
