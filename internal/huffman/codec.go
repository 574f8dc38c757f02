package huffman

import (
	"fmt"

	"github.com/julianvb03/GESA/internal/bitio"
)

// Encode converts a byte buffer into its Huffman-compressed
// representation. Empty input yields a zeroed metadata table and an
// empty payload.
func Encode(input []byte) (Result, error) {
	result := Result{
		Metadata: Metadata{OriginalSize: uint64(len(input))},
	}
	if len(input) == 0 {
		return result, nil
	}

	for _, b := range input {
		result.Metadata.Frequencies[b]++
	}

	root := buildTree(result.Metadata.Frequencies)
	if root == nil {
		return result, nil
	}

	table := buildCodeTable(root)

	var writer bitio.Writer
	for _, b := range input {
		bits := table[b].bits
		if len(bits) == 0 {
			return Result{}, fmt.Errorf("%w: symbol %d has no assigned code", ErrInvalidCodeTableEntry, b)
		}
		writer.WriteBits(bits)
	}

	result.Compressed = writer.Finish()
	return result, nil
}

// Decode reverses Encode, rebuilding the tree from the frequency table
// and walking it one bit at a time until OriginalSize bytes have been
// emitted.
func Decode(metadata Metadata, compressed []byte) ([]byte, error) {
	if metadata.OriginalSize == 0 {
		return []byte{}, nil
	}

	root := buildTree(metadata.Frequencies)
	if root == nil {
		return nil, fmt.Errorf("%w: empty tree with non-zero original size", ErrInvalidMetadata)
	}

	output := make([]byte, 0, metadata.OriginalSize)

	if root.isLeaf() {
		symbol := byte(root.symbol)
		for uint64(len(output)) < metadata.OriginalSize {
			output = append(output, symbol)
		}
		return output, nil
	}

	reader := bitio.NewReader(compressed)
	current := root
	for uint64(len(output)) < metadata.OriginalSize {
		bit, ok := reader.ReadBit()
		if !ok {
			return nil, fmt.Errorf("%w: unexpected end of stream", ErrCorruptBitstream)
		}

		if bit {
			current = current.right
		} else {
			current = current.left
		}
		if current == nil {
			return nil, fmt.Errorf("%w: walked into a nil child", ErrCorruptBitstream)
		}

		if current.isLeaf() {
			output = append(output, byte(current.symbol))
			current = root
		}
	}

	return output, nil
}
