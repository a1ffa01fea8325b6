package somfy

import (
	"fmt"

	"go.uber.org/multierr"
	"golang.org/x/sys/unix"
)

// Highest niceness; needs CAP_SYS_NICE.
const realtimeNice = -20

// LockRealtime keeps the process resident and raises its priority so pulse
// edges are not delayed by paging or other processes. Both steps need
// privileges; failures are returned but the process can carry on.
func LockRealtime() error {
	var errs error
	if err := unix.Mlockall(unix.MCL_CURRENT | unix.MCL_FUTURE); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("mlockall: %w", err))
	}
	if err := unix.Setpriority(unix.PRIO_PROCESS, 0, realtimeNice); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("setpriority: %w", err))
	}
	return errs
}
