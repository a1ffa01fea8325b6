// Package counter persists the rolling code of every emulated remote.
package counter

import "errors"

var ErrClosed = errors.New("counter store closed")

// Store holds one rolling code per storage key.
//
// Set must not return until the value is durable: a receiver that has seen
// a code never accepts it again, so losing a write means reusing a code
// after the next restart.
type Store interface {
	// Get returns the stored code for key, or def if none was ever stored.
	Get(key string, def uint32) (uint32, error)
	Set(key string, code uint32) error
	// Reset stores def for key.
	Reset(key string, def uint32) error
}
