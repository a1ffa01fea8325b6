// Package remote turns single character commands into RTS bursts for the
// configured remotes.
package remote

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hatstand/somfy/counter"
	"github.com/hatstand/somfy/rts"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var (
	ErrInvalidCommand         = errors.New("invalid command")
	ErrUnknownDevice          = errors.New("unknown device")
	ErrCounterPersist         = errors.New("rolling code storage failed")
	ErrTransmitterUnavailable = errors.New("transmitter unavailable")
)

// PairCommand is the command character for PROG.
const PairCommand = 'p'

type Status int

const (
	Rejected Status = iota
	Accepted
	Failed
)

func (s Status) String() string {
	switch s {
	case Rejected:
		return "rejected"
	case Accepted:
		return "accepted"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Outcome describes what happened to one command. Device, Button and
// Command are set once the command has been parsed and its remote found;
// RollingCode and Frame once a code has been consumed.
type Outcome struct {
	Status      Status
	Device      *Device
	Button      rts.Button
	Command     byte
	RollingCode uint32
	Frame       rts.Frame
}

// Ack is published once per accepted command.
type Ack struct {
	Identity uint32
	Command  byte
}

func (a Ack) String() string {
	return fmt.Sprintf("id: 0x%x, cmd: %c", a.Identity, a.Command)
}

// Sender puts a frame on air as a complete burst.
type Sender interface {
	SendBurst(f rts.Frame) error
}

type Acknowledger interface {
	Acknowledge(a Ack) error
}

// AcknowledgerFunc adapts a function to an Acknowledger.
type AcknowledgerFunc func(a Ack) error

func (f AcknowledgerFunc) Acknowledge(a Ack) error {
	return f(a)
}

// Dispatcher handles one command at a time; concurrent callers queue on
// its lock so bursts never interleave.
type Dispatcher struct {
	registry *Registry
	store    counter.Store
	sender   Sender
	ack      Acknowledger
	logger   *zap.Logger
	metrics  *metrics
	lock     sync.Mutex
}

// NewDispatcher wires the dispatcher. ack may be nil. Metrics are
// registered with reg unless it is nil.
func NewDispatcher(registry *Registry, store counter.Store, sender Sender, ack Acknowledger, logger *zap.Logger, reg prometheus.Registerer) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		store:    store,
		sender:   sender,
		ack:      ack,
		logger:   logger,
		metrics:  newMetrics(reg),
	}
}

// Handle runs the command in payload for the remote listening on topic.
// Rejected commands have no side effects. A rolling code is stored as used
// before its frame goes on air, so a failed burst skips a code rather than
// ever reusing one.
func (d *Dispatcher) Handle(topic string, payload []byte) (Outcome, error) {
	d.lock.Lock()
	defer d.lock.Unlock()

	o, err := d.handle(topic, payload)
	d.metrics.commands.WithLabelValues(o.Status.String()).Inc()

	logger := d.logger.With(zap.String("topic", topic), zap.ByteString("payload", payload))
	switch o.Status {
	case Accepted:
		logger.Info("Command sent",
			zap.Stringer("device", o.Device),
			zap.Stringer("button", o.Button),
			zap.Uint32("rolling_code", o.RollingCode))
	case Rejected:
		logger.Warn("Command rejected", zap.Error(err))
	case Failed:
		logger.Error("Command failed", zap.Error(err))
	}
	return o, err
}

func (d *Dispatcher) handle(topic string, payload []byte) (Outcome, error) {
	o := Outcome{Status: Rejected}
	if len(payload) != 1 {
		return o, fmt.Errorf("%w: %d byte payload", ErrInvalidCommand, len(payload))
	}
	button, ok := rts.ParseCommand(payload[0])
	if !ok {
		return o, fmt.Errorf("%w: %q", ErrInvalidCommand, payload[0])
	}
	dev, ok := d.registry.Lookup(topic)
	if !ok {
		return o, fmt.Errorf("%w: no remote on topic %s", ErrUnknownDevice, topic)
	}

	o.Status = Failed
	o.Device = dev
	o.Button = button
	o.Command = payload[0]

	code, err := d.store.Get(dev.StorageKey, dev.DefaultCounter)
	if err != nil {
		return o, fmt.Errorf("%w: reading %s: %v", ErrCounterPersist, dev, err)
	}
	frame, next := rts.Encode(dev.Identity, button, code)
	o.RollingCode = code
	o.Frame = frame

	if ce := d.logger.Check(zap.DebugLevel, "Frame built"); ce != nil {
		ce.Write(
			zap.Stringer("device", dev),
			zap.Stringer("raw", rts.Raw(dev.Identity, button, code)),
			zap.Stringer("checksummed", rts.Checksummed(dev.Identity, button, code)),
			zap.Stringer("obfuscated", frame),
			zap.Uint32("rolling_code", code))
	}

	if err := d.store.Set(dev.StorageKey, next); err != nil {
		return o, fmt.Errorf("%w: writing %s: %v", ErrCounterPersist, dev, err)
	}
	d.metrics.rollingCode.WithLabelValues(fmt.Sprintf("%06x", dev.Identity)).Set(float64(next))

	start := time.Now()
	if err := d.sender.SendBurst(frame); err != nil {
		return o, fmt.Errorf("%w: %v", ErrTransmitterUnavailable, err)
	}
	d.metrics.burstTime.Observe(time.Since(start).Seconds())
	d.metrics.bursts.Inc()

	o.Status = Accepted
	if d.ack != nil {
		a := Ack{Identity: dev.Identity, Command: o.Command}
		if err := d.ack.Acknowledge(a); err != nil {
			d.logger.Warn("Failed to acknowledge command", zap.Stringer("ack", a), zap.Error(err))
		}
	}
	return o, nil
}

// PairAll sends PROG for every remote in turn. A failure does not stop the
// remaining remotes.
func (d *Dispatcher) PairAll() error {
	var errs error
	for _, dev := range d.registry.Devices() {
		if _, err := d.Handle(dev.Topic, []byte{PairCommand}); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

// HandleAdmin runs a command from the admin topic. Only pairing is
// supported; rolling code resets happen at start-up.
func (d *Dispatcher) HandleAdmin(payload []byte) error {
	if len(payload) != 1 || payload[0] != PairCommand {
		return fmt.Errorf("%w: admin payload %q", ErrInvalidCommand, payload)
	}
	d.logger.Info("Pairing every remote")
	return d.PairAll()
}
