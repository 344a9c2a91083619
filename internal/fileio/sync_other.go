//go:build !linux && !freebsd && !darwin && !windows

package fileio

import "os"

// datasync flushes file data to disk.
func datasync(f *os.File) error {
	return f.Sync()
}
