// Package huffman implements a static, whole-buffer, byte-symbol
// Huffman codec: a frequency table drives tree construction, the tree
// drives prefix-code assignment, and the same table lets a decoder
// rebuild the identical tree without shipping it over the wire.
package huffman

import "errors"

// FrequencyTable records, per byte value, how many times it occurred
// in the original input.
type FrequencyTable [256]uint32

// Metadata is everything a decoder needs besides the compressed
// payload: the frequency table to rebuild the tree, and the original
// byte count, which is the sole termination signal during decode.
type Metadata struct {
	Frequencies  FrequencyTable
	OriginalSize uint64
}

// Result is the output of Encode: the metadata required to invert the
// operation, plus the packed bitstream.
type Result struct {
	Metadata   Metadata
	Compressed []byte
}

// ErrInvalidCodeTableEntry is returned when an input byte has no
// assigned code, meaning the frequency table is inconsistent with the
// input it was built from.
var ErrInvalidCodeTableEntry = errors.New("huffman: invalid code table entry")

// ErrCorruptBitstream is returned when decoding runs out of bits
// before emitting the declared number of symbols, or walks into a nil
// child — both indicate a malformed or truncated compressed buffer.
var ErrCorruptBitstream = errors.New("huffman: corrupt bitstream")

// ErrInvalidMetadata is returned when a non-zero OriginalSize is
// declared but the frequency table describes an empty tree.
var ErrInvalidMetadata = errors.New("huffman: invalid metadata")
