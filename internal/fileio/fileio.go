// Package fileio writes export files atomically and durably.
//
// Output is produced into a temporary file next to the destination, flushed
// to stable storage with the platform's data-sync primitive, and renamed over
// the destination. A failed export never leaves a truncated file behind.
package fileio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const (
	// tempPattern names the temporary file created next to the destination.
	tempPattern = ".brepkit-*.tmp"

	// bufferSize is the write buffer used for generated text formats.
	bufferSize = 64 * 1024
)

// WriteFile creates (or replaces) path with the bytes produced by write.
func WriteFile(path string, write func(w io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return fmt.Errorf("fileio: create temp in %s: %w", dir, err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()

	bw := bufio.NewWriterSize(f, bufferSize)
	if err = write(bw); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return fmt.Errorf("fileio: write %s: %w", path, err)
	}
	if err = datasync(f); err != nil {
		return fmt.Errorf("fileio: sync %s: %w", path, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("fileio: close %s: %w", path, err)
	}
	if err = os.Chmod(tmp, 0o644); err != nil {
		return fmt.Errorf("fileio: chmod %s: %w", path, err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("fileio: rename to %s: %w", path, err)
	}
	return nil
}
