package remote

import (
	"fmt"

	"github.com/hatstand/somfy/counter"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// State is the externally visible state of one remote.
type State struct {
	Label       string `json:"label"`
	Identity    string `json:"identity"`
	Topic       string `json:"topic"`
	RollingCode uint32 `json:"rolling_code"`
}

// ResetCounters puts every remote back on its configured default rolling
// code. Receivers paired with the old codes will ignore the remotes until
// they are paired again.
func ResetCounters(registry *Registry, store counter.Store, logger *zap.Logger) error {
	var errs error
	for _, dev := range registry.Devices() {
		if err := store.Reset(dev.StorageKey, dev.DefaultCounter); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("resetting %s: %w", dev, err))
			continue
		}
		logger.Warn("Rolling code reset", zap.Stringer("device", dev), zap.Uint32("rolling_code", dev.DefaultCounter))
	}
	return errs
}

// Snapshot reads the next rolling code of every remote.
func Snapshot(registry *Registry, store counter.Store) ([]State, error) {
	var states []State
	for _, dev := range registry.Devices() {
		code, err := store.Get(dev.StorageKey, dev.DefaultCounter)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", dev, err)
		}
		states = append(states, State{
			Label:       dev.Label,
			Identity:    fmt.Sprintf("0x%06x", dev.Identity),
			Topic:       dev.Topic,
			RollingCode: code,
		})
	}
	return states, nil
}

// LogRemotes lists the configured remotes with their current rolling codes.
func LogRemotes(registry *Registry, store counter.Store, logger *zap.Logger) error {
	states, err := Snapshot(registry, store)
	if err != nil {
		return err
	}
	for _, s := range states {
		logger.Info("Remote",
			zap.String("label", s.Label),
			zap.String("identity", s.Identity),
			zap.String("topic", s.Topic),
			zap.Uint32("rolling_code", s.RollingCode))
	}
	return nil
}
