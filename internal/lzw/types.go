// Package lzw implements the classic Lempel-Ziv-Welch codec with a
// fixed 12-bit, 4096-entry dictionary: growth freezes at the cap and
// encoding/decoding continues using the frozen dictionary rather than
// resetting it.
package lzw

import "errors"

const (
	// InitialDictionarySize is the number of single-byte entries
	// preloaded before encoding/decoding begins.
	InitialDictionarySize = 256
	// MaxDictionarySize is the hard 12-bit cap; growth stops here.
	MaxDictionarySize = 4096
)

// Metadata is everything a decoder needs besides the code sequence:
// the original byte count (the sole correctness check on decode) and
// the dictionary size at the end of encoding (informational only).
type Metadata struct {
	OriginalSize   uint64
	DictionarySize uint16
}

// Result is the output of Encode: metadata plus the ordered code
// sequence, each code in [0, MaxDictionarySize).
type Result struct {
	Metadata Metadata
	Codes    []uint16
}

// ErrInvalidCode is returned when a decoded code does not refer to any
// dictionary entry and isn't the cScSc special case.
var ErrInvalidCode = errors.New("lzw: invalid code")

// ErrTruncatedOutput is returned when decode emits fewer bytes than
// the declared original size.
var ErrTruncatedOutput = errors.New("lzw: decoded output shorter than declared size")

// ErrEmptyCodeStream is returned when OriginalSize is non-zero but no
// codes were supplied to decode.
var ErrEmptyCodeStream = errors.New("lzw: empty code stream for non-empty original size")
