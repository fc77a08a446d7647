//go:build !windows

package paths

import "syscall"

// clearUmask zeroes the process umask and returns a function that
// restores the previous value. Needed so 0777 directory creation is
// not narrowed by the caller's umask.
func clearUmask() func() {
	old := syscall.Umask(0)
	return func() { syscall.Umask(old) }
}
