package rts

import (
	"sort"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func lateness(c Clock, wait time.Duration, n int) []time.Duration {
	late := make([]time.Duration, n)
	for i := range late {
		deadline := c.Now().Add(wait)
		c.SpinUntil(deadline)
		late[i] = time.Since(deadline)
	}
	sort.Slice(late, func(i, j int) bool { return late[i] < late[j] })
	return late
}

func TestSpinClock(t *testing.T) {
	Convey("Symbol length waits end on time", t, func() {
		late := lateness(spinClock{}, Symbol, 500)
		So(late[0], ShouldBeGreaterThanOrEqualTo, time.Duration(0))
		// Median and 95th percentile within a few percent of a symbol.
		So(late[len(late)/2], ShouldBeLessThan, 20*time.Microsecond)
		So(late[len(late)*95/100], ShouldBeLessThan, 50*time.Microsecond)
	})

	Convey("Long waits sleep and still end on time", t, func() {
		late := lateness(spinClock{}, 3*sleepAbove, 5)
		So(late[0], ShouldBeGreaterThanOrEqualTo, time.Duration(0))
		So(late[len(late)/2], ShouldBeLessThan, 50*time.Microsecond)
	})

	Convey("Past deadlines return at once", t, func() {
		start := time.Now()
		spinClock{}.SpinUntil(start.Add(-time.Second))
		So(time.Since(start), ShouldBeLessThan, time.Millisecond)
	})
}
