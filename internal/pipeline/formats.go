package pipeline

import (
	"io"

	"github.com/julianvb03/GESA/internal/container"
	"github.com/julianvb03/GESA/internal/huffman"
	"github.com/julianvb03/GESA/internal/lzw"
)

// HuffmanFormat instantiates Format for the static Huffman codec.
var HuffmanFormat = Format[huffman.Metadata, []byte]{
	Name: "huffman",

	Encode: func(input []byte) (huffman.Metadata, []byte, error) {
		result, err := huffman.Encode(input)
		if err != nil {
			return huffman.Metadata{}, nil, err
		}
		return result.Metadata, result.Compressed, nil
	},
	Decode: huffman.Decode,

	OriginalSize: func(metadata huffman.Metadata) uint64 { return metadata.OriginalSize },

	WriteFile: container.WriteHuffmanFile,
	ReadFile:  container.ReadHuffmanFile,

	WriteArchiveHeader: container.WriteHuffmanArchiveHeader,
	WriteArchiveEntry: func(w io.Writer, entry Entry[huffman.Metadata, []byte]) error {
		return container.WriteHuffmanArchiveEntry(w, container.HuffmanEntry{
			RelativePath: entry.RelativePath,
			Metadata:     entry.Metadata,
			Compressed:   entry.Payload,
		})
	},
	ReadArchive: func(r io.Reader) ([]Entry[huffman.Metadata, []byte], error) {
		raw, err := container.ReadHuffmanArchive(r)
		if err != nil {
			return nil, err
		}
		entries := make([]Entry[huffman.Metadata, []byte], len(raw))
		for i, e := range raw {
			entries[i] = Entry[huffman.Metadata, []byte]{
				RelativePath: e.RelativePath,
				Metadata:     e.Metadata,
				Payload:      e.Compressed,
			}
		}
		return entries, nil
	},
}

// LZWFormat instantiates Format for the 12-bit LZW codec.
var LZWFormat = Format[lzw.Metadata, []uint16]{
	Name: "lzw",

	Encode: func(input []byte) (lzw.Metadata, []uint16, error) {
		result := lzw.Encode(input)
		return result.Metadata, result.Codes, nil
	},
	Decode: lzw.Decode,

	OriginalSize: func(metadata lzw.Metadata) uint64 { return metadata.OriginalSize },

	WriteFile: container.WriteLZWFile,
	ReadFile:  container.ReadLZWFile,

	WriteArchiveHeader: container.WriteLZWArchiveHeader,
	WriteArchiveEntry: func(w io.Writer, entry Entry[lzw.Metadata, []uint16]) error {
		return container.WriteLZWArchiveEntry(w, container.LZWEntry{
			RelativePath: entry.RelativePath,
			Metadata:     entry.Metadata,
			Codes:        entry.Payload,
		})
	},
	ReadArchive: func(r io.Reader) ([]Entry[lzw.Metadata, []uint16], error) {
		raw, err := container.ReadLZWArchive(r)
		if err != nil {
			return nil, err
		}
		entries := make([]Entry[lzw.Metadata, []uint16], len(raw))
		for i, e := range raw {
			entries[i] = Entry[lzw.Metadata, []uint16]{
				RelativePath: e.RelativePath,
				Metadata:     e.Metadata,
				Payload:      e.Codes,
			}
		}
		return entries, nil
	},
}
