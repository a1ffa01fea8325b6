package rts

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
	"time"

	"go.uber.org/zap"
	"periph.io/x/periph/conn/gpio"
)

// Radio is the RF front end keyed by the data line. Its carrier and
// modulation are configured once before any transmission.
type Radio interface {
	EnterTransmitMode() error
	EnterStandbyMode() error
}

// Line is the data input of the radio in continuous OOK mode.
// Any periph gpio.PinOut satisfies it.
type Line interface {
	Out(l gpio.Level) error
}

// Transmitter owns the radio and its data line. A frame is never
// interleaved with another one.
type Transmitter struct {
	radio  Radio
	line   Line
	clock  Clock
	logger *zap.Logger
	lock   sync.Mutex
}

func NewTransmitter(radio Radio, line Line, logger *zap.Logger) *Transmitter {
	return NewTransmitterWithClock(radio, line, spinClock{}, logger)
}

func NewTransmitterWithClock(radio Radio, line Line, clock Clock, logger *zap.Logger) *Transmitter {
	return &Transmitter{
		radio:  radio,
		line:   line,
		clock:  clock,
		logger: logger,
	}
}

// Transmit sends a single frame. first marks the start of a burst.
func (t *Transmitter) Transmit(f Frame, first bool) error {
	t.lock.Lock()
	defer t.lock.Unlock()
	defer pauseGC()()
	return t.transmit(f, first)
}

// SendBurst sends f once with the short sync and Repeats more times with
// the long sync. Receivers need the whole burst to act reliably.
//
// The radio is keyed per frame. A fault stops the burst at the failing
// frame, but frames already sent stay sent: an error from a repeat means a
// partial burst went out.
func (t *Transmitter) SendBurst(f Frame) error {
	t.lock.Lock()
	defer t.lock.Unlock()
	defer pauseGC()()

	start := t.clock.Now()
	if err := t.transmit(f, true); err != nil {
		return err
	}
	for i := 0; i < Repeats; i++ {
		if err := t.transmit(f, false); err != nil {
			return fmt.Errorf("repeat %d: %w", i+1, err)
		}
	}
	t.logger.Debug("Burst sent",
		zap.Stringer("frame", f),
		zap.Duration("elapsed", t.clock.Now().Sub(start)))
	return nil
}

func (t *Transmitter) transmit(f Frame, first bool) error {
	pulses := Waveform(f, first)

	// Keep the edges on one thread for the whole frame.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := t.line.Out(gpio.Low); err != nil {
		return fmt.Errorf("failed to reset data line: %w", err)
	}
	if err := t.radio.EnterTransmitMode(); err != nil {
		t.idle()
		return fmt.Errorf("failed to enter transmit mode: %w", err)
	}

	slip, err := t.play(pulses)
	if err != nil {
		t.idle()
		return err
	}

	if err := t.radio.EnterStandbyMode(); err != nil {
		t.idle()
		return fmt.Errorf("failed to enter standby mode: %w", err)
	}
	if ce := t.logger.Check(zap.DebugLevel, "Frame sent"); ce != nil {
		ce.Write(
			zap.Bool("first", first),
			zap.Int("pulses", len(pulses)),
			zap.Duration("max_slip", slip))
	}
	return nil
}

// play drives the line through pulses against absolute deadlines so that
// per-edge latency does not accumulate. It reports the worst lateness seen
// when an edge was set.
func (t *Transmitter) play(pulses []Pulse) (time.Duration, error) {
	var slip time.Duration
	deadline := t.clock.Now()
	for i, p := range pulses {
		if late := t.clock.Now().Sub(deadline); late > slip {
			slip = late
		}
		if err := t.line.Out(p.Level); err != nil {
			return slip, fmt.Errorf("failed to set data line at pulse %d: %w", i, err)
		}
		deadline = deadline.Add(p.Duration)
		t.clock.SpinUntil(deadline)
	}
	return slip, nil
}

// idle forces the line low and the radio to standby after a fault.
func (t *Transmitter) idle() {
	if err := t.line.Out(gpio.Low); err != nil {
		t.logger.Error("Failed to idle data line", zap.Error(err))
	}
	if err := t.radio.EnterStandbyMode(); err != nil {
		t.logger.Error("Failed to put radio in standby", zap.Error(err))
	}
}

// pauseGC stops the collector until the returned func is called, so no
// collection lands in the middle of a frame.
func pauseGC() func() {
	old := debug.SetGCPercent(-1)
	return func() {
		debug.SetGCPercent(old)
	}
}
