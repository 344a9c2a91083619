//go:build darwin

package fileio

import (
	"os"

	"golang.org/x/sys/unix"
)

// datasync flushes file data to disk.
//
// On macOS, F_FULLFSYNC pushes data past the drive cache; filesystems that
// reject it fall back to fsync.
func datasync(f *os.File) error {
	if _, err := unix.FcntlInt(f.Fd(), unix.F_FULLFSYNC, 0); err == nil {
		return nil
	}
	return unix.Fsync(int(f.Fd()))
}
