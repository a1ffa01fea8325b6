package rts

import "time"

// Clock provides the time base for pulse edges.
type Clock interface {
	Now() time.Time
	// SpinUntil returns at t, without yielding the thread for the last
	// part of the wait.
	SpinUntil(t time.Time)
}

const (
	// Waits longer than sleepAbove sleep until spinMargin before the
	// deadline and spin from there. Sleeps can overrun by more than a
	// symbol, so the margin is generous.
	sleepAbove = 5 * time.Millisecond
	spinMargin = 2 * time.Millisecond
)

// spinClock busy-waits on the monotonic clock. Only the long wake up and
// inter-frame silences sleep, and even those finish spinning.
type spinClock struct{}

func (spinClock) Now() time.Time {
	return time.Now()
}

func (spinClock) SpinUntil(t time.Time) {
	if d := time.Until(t); d > sleepAbove {
		time.Sleep(d - spinMargin)
	}
	for time.Now().Before(t) {
	}
}
