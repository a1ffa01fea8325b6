package somfy

import (
	"go.uber.org/zap"
	"periph.io/x/periph/conn/gpio"
)

// StubRadio stands in for the RFM69 on machines without one.
type StubRadio struct {
	Logger *zap.Logger
}

func (s *StubRadio) EnterTransmitMode() error {
	s.Logger.Debug("Stub radio entering transmit mode")
	return nil
}

func (s *StubRadio) EnterStandbyMode() error {
	s.Logger.Debug("Stub radio entering standby mode")
	return nil
}

// StubLine counts the edges it is asked to drive.
type StubLine struct {
	Edges int
	Level gpio.Level
}

func (s *StubLine) Out(l gpio.Level) error {
	s.Edges++
	s.Level = l
	return nil
}
