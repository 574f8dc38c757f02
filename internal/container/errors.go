// Package container reads and writes the on-disk formats for the four
// archive kinds this codec pair produces: single-file and multi-file
// layouts for both Huffman (GHUF/GHAR) and LZW (GLZW/GLZA), each with a
// 4-byte magic and a single version byte as its compatibility
// contract.
package container

import (
	"errors"
	"fmt"
)

// FormatVersion is the only version this package writes or accepts.
const FormatVersion = 1

// ErrBadMagic is returned when a container's first four bytes don't
// match the magic expected for the kind being read.
var ErrBadMagic = errors.New("container: bad magic")

// ErrUnsupportedVersion is returned when the version byte isn't
// FormatVersion.
var ErrUnsupportedVersion = errors.New("container: unsupported version")

// ErrShortRead / ErrShortWrite are returned when a framed field can't
// be fully read or written.
var (
	ErrShortRead  = errors.New("container: short read")
	ErrShortWrite = errors.New("container: short write")
)

// ErrPathTooLong is returned when a relative path's byte length
// exceeds the uint32 field that frames it.
var ErrPathTooLong = errors.New("container: relative path exceeds maximum supported length")

func wrapf(base error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), base)
}
