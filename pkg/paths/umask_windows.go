//go:build windows

package paths

// clearUmask is a no-op on Windows, which has no umask.
func clearUmask() func() {
	return func() {}
}
