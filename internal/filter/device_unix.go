//go:build unix

package filter

import (
	"golang.org/x/sys/unix"
)

// DeviceOf returns the id of the device holding path, following symlinks.
func DeviceOf(path string) (uint64, bool) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return 0, false
	}
	return uint64(st.Dev), true
}
