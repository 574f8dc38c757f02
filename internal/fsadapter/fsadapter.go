// Package fsadapter is the thin filesystem collaborator the codec and
// pipeline packages build on: recursive enumeration, relative
// generic-slash paths, mkdir-p, and whole-buffer file I/O. It mirrors
// gesa::filesystem::FileContext/DirectoryContext from the reference
// implementation.
package fsadapter

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Descriptor carries everything the pipeline needs about one
// enumerated file: its absolute path for reading, its root-relative
// generic-slash path for the archive, and a few informational fields
// that have no bearing on the codec but are cheap to record.
type Descriptor struct {
	AbsolutePath string
	RelativePath string
	Size         int64
	ModTime      time.Time
	IsSymlink    bool
}

// EnumerateFiles walks root recursively and returns a Descriptor for
// every regular file found. Symlinks are neither recorded nor
// followed: a symlink to a directory or file is skipped rather than
// traversed or read, avoiding link cycles the original implementation
// never guarded against either. Descriptors from this function
// therefore always have IsSymlink false.
func EnumerateFiles(root string) ([]Descriptor, error) {
	var descriptors []Descriptor

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("fsadapter: walk %s: %w", path, err)
		}

		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("fsadapter: stat %s: %w", path, err)
		}

		relative, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("fsadapter: relative path for %s: %w", path, err)
		}

		descriptors = append(descriptors, Descriptor{
			AbsolutePath: path,
			RelativePath: filepath.ToSlash(relative),
			Size:         info.Size(),
			ModTime:      info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fsadapter: enumerate %s: %w", root, err)
	}

	return descriptors, nil
}

// EnsureDir creates path and any missing parents.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("fsadapter: mkdir -p %s: %w", path, err)
	}
	return nil
}

// ReadFile reads the whole file at path into memory.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fsadapter: read %s: %w", path, err)
	}
	return data, nil
}

// OpenFile opens path for streaming reads, e.g. container header
// parsing. The caller is responsible for closing it.
func OpenFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fsadapter: open %s: %w", path, err)
	}
	return f, nil
}

// JoinDestination joins a destination root with an archive's
// root-relative, forward-slash path. An entry whose path would escape
// root via ".." segments is clamped back under root instead of being
// allowed to write outside it.
func JoinDestination(root, relativePath string) string {
	cleaned := filepath.Clean("/" + filepath.FromSlash(relativePath))
	return filepath.Join(root, cleaned)
}

// WriteFile writes data to path, creating missing parent directories
// first.
func WriteFile(path string, data []byte) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("fsadapter: write %s: %w", path, err)
	}
	return nil
}
