//go:build !linux

package somfy

// LockRealtime is a no-op off Linux.
func LockRealtime() error {
	return nil
}
