// Package atomicfile writes container output so that a crash or fault
// mid-write never leaves a half-written archive at the destination
// path: the write lands in a UUID-suffixed sibling file and is renamed
// into place only once it fully succeeds.
package atomicfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Write calls writeTo with a freshly created temporary file sitting
// next to destination, then renames it over destination on success. On
// any error the temporary file is removed and destination is left
// untouched.
func Write(destination string, writeTo func(io.Writer) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return fmt.Errorf("atomicfile: create destination directory: %w", err)
	}

	tmpPath := destination + "." + uuid.NewString() + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("atomicfile: create temp file: %w", err)
	}

	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmpPath)
		}
	}()

	if err = writeTo(f); err != nil {
		return fmt.Errorf("atomicfile: write: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("atomicfile: close temp file: %w", err)
	}
	if err = os.Rename(tmpPath, destination); err != nil {
		return fmt.Errorf("atomicfile: rename into place: %w", err)
	}

	return nil
}
