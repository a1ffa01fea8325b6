package somfy

import (
	"fmt"

	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
)

// OpenDataLine finds the pin wired to the radio's DIO2 and drives it low.
// periph's host drivers must already be loaded.
func OpenDataLine(name string) (gpio.PinIO, error) {
	line := gpioreg.ByName(name)
	if line == nil {
		return nil, fmt.Errorf("no such gpio: %s", name)
	}
	if err := line.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("failed to drive %s low: %w", line, err)
	}
	return line, nil
}
