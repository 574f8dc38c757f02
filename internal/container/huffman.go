package container

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/julianvb03/GESA/internal/huffman"
)

// HuffmanFileMagic identifies a single-file Huffman container.
const HuffmanFileMagic = "GHUF"

// HuffmanArchiveMagic identifies a multi-file Huffman container.
const HuffmanArchiveMagic = "GHAR"

// HuffmanEntry is one framed file inside a Huffman archive.
type HuffmanEntry struct {
	RelativePath string
	Metadata     huffman.Metadata
	Compressed   []byte
}

func writeFrequencies(w io.Writer, table huffman.FrequencyTable) error {
	for _, freq := range table {
		if err := binary.Write(w, binary.LittleEndian, freq); err != nil {
			return wrapf(ErrShortWrite, "write frequency")
		}
	}
	return nil
}

func readFrequencies(r io.Reader, table *huffman.FrequencyTable) error {
	for i := range table {
		if err := binary.Read(r, binary.LittleEndian, &table[i]); err != nil {
			return wrapf(ErrShortRead, "read frequency %d", i)
		}
	}
	return nil
}

func writePadding(w io.Writer) error {
	if _, err := w.Write([]byte{0, 0, 0}); err != nil {
		return wrapf(ErrShortWrite, "write padding")
	}
	return nil
}

func readAndDiscardPadding(r io.Reader) error {
	var padding [3]byte
	if _, err := io.ReadFull(r, padding[:]); err != nil {
		return wrapf(ErrShortRead, "read padding")
	}
	return nil
}

func readMagic(r io.Reader, want string) error {
	buf := make([]byte, len(want))
	if _, err := io.ReadFull(r, buf); err != nil {
		return wrapf(ErrShortRead, "read magic")
	}
	if string(buf) != want {
		return wrapf(ErrBadMagic, "got %q, want %q", buf, want)
	}
	return nil
}

func readVersion(r io.Reader) error {
	var version uint8
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return wrapf(ErrShortRead, "read version")
	}
	if version != FormatVersion {
		return wrapf(ErrUnsupportedVersion, "version %d", version)
	}
	return nil
}

// WriteHuffmanFile writes a single-file Huffman container: magic,
// version, padding, originalSize, compressedSize, the 256-entry
// frequency table, then the payload.
func WriteHuffmanFile(w io.Writer, metadata huffman.Metadata, compressed []byte) error {
	if _, err := w.Write([]byte(HuffmanFileMagic)); err != nil {
		return wrapf(ErrShortWrite, "write magic")
	}
	if err := binary.Write(w, binary.LittleEndian, uint8(FormatVersion)); err != nil {
		return wrapf(ErrShortWrite, "write version")
	}
	if err := writePadding(w); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, metadata.OriginalSize); err != nil {
		return wrapf(ErrShortWrite, "write originalSize")
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(len(compressed))); err != nil {
		return wrapf(ErrShortWrite, "write compressedSize")
	}
	if err := writeFrequencies(w, metadata.Frequencies); err != nil {
		return err
	}
	if len(compressed) > 0 {
		if _, err := w.Write(compressed); err != nil {
			return wrapf(ErrShortWrite, "write payload")
		}
	}
	return nil
}

// ReadHuffmanFile reads and validates a single-file Huffman container,
// returning the decoded metadata and the raw compressed payload.
func ReadHuffmanFile(r io.Reader) (huffman.Metadata, []byte, error) {
	var metadata huffman.Metadata

	if err := readMagic(r, HuffmanFileMagic); err != nil {
		return metadata, nil, err
	}
	if err := readVersion(r); err != nil {
		return metadata, nil, err
	}
	if err := readAndDiscardPadding(r); err != nil {
		return metadata, nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &metadata.OriginalSize); err != nil {
		return metadata, nil, wrapf(ErrShortRead, "read originalSize")
	}
	var compressedSize uint64
	if err := binary.Read(r, binary.LittleEndian, &compressedSize); err != nil {
		return metadata, nil, wrapf(ErrShortRead, "read compressedSize")
	}
	if err := readFrequencies(r, &metadata.Frequencies); err != nil {
		return metadata, nil, err
	}

	compressed := make([]byte, compressedSize)
	if compressedSize > 0 {
		if _, err := io.ReadFull(r, compressed); err != nil {
			return metadata, nil, wrapf(ErrShortRead, "read payload")
		}
	}

	return metadata, compressed, nil
}

// WriteHuffmanArchiveHeader writes the 12-byte archive header: magic,
// version, padding, fileCount.
func WriteHuffmanArchiveHeader(w io.Writer, fileCount uint32) error {
	if _, err := w.Write([]byte(HuffmanArchiveMagic)); err != nil {
		return wrapf(ErrShortWrite, "write magic")
	}
	if err := binary.Write(w, binary.LittleEndian, uint8(FormatVersion)); err != nil {
		return wrapf(ErrShortWrite, "write version")
	}
	if err := writePadding(w); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, fileCount); err != nil {
		return wrapf(ErrShortWrite, "write fileCount")
	}
	return nil
}

// WriteHuffmanArchiveEntry writes one framed entry: pathSize, path
// bytes, originalSize, compressedSize, frequencies, payload.
func WriteHuffmanArchiveEntry(w io.Writer, entry HuffmanEntry) error {
	path := []byte(entry.RelativePath)
	if len(path) > math.MaxUint32 {
		return ErrPathTooLong
	}

	if err := binary.Write(w, binary.LittleEndian, uint32(len(path))); err != nil {
		return wrapf(ErrShortWrite, "write pathSize")
	}
	if len(path) > 0 {
		if _, err := w.Write(path); err != nil {
			return wrapf(ErrShortWrite, "write path")
		}
	}
	if err := binary.Write(w, binary.LittleEndian, entry.Metadata.OriginalSize); err != nil {
		return wrapf(ErrShortWrite, "write originalSize")
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(len(entry.Compressed))); err != nil {
		return wrapf(ErrShortWrite, "write compressedSize")
	}
	if err := writeFrequencies(w, entry.Metadata.Frequencies); err != nil {
		return err
	}
	if len(entry.Compressed) > 0 {
		if _, err := w.Write(entry.Compressed); err != nil {
			return wrapf(ErrShortWrite, "write payload")
		}
	}
	return nil
}

// ReadHuffmanArchive reads and validates the archive header, then
// parses all entries into memory.
func ReadHuffmanArchive(r io.Reader) ([]HuffmanEntry, error) {
	if err := readMagic(r, HuffmanArchiveMagic); err != nil {
		return nil, err
	}
	if err := readVersion(r); err != nil {
		return nil, err
	}
	if err := readAndDiscardPadding(r); err != nil {
		return nil, err
	}

	var fileCount uint32
	if err := binary.Read(r, binary.LittleEndian, &fileCount); err != nil {
		return nil, wrapf(ErrShortRead, "read fileCount")
	}

	entries := make([]HuffmanEntry, 0, fileCount)
	for i := uint32(0); i < fileCount; i++ {
		var pathSize uint32
		if err := binary.Read(r, binary.LittleEndian, &pathSize); err != nil {
			return nil, wrapf(ErrShortRead, "read pathSize %d", i)
		}
		path := make([]byte, pathSize)
		if pathSize > 0 {
			if _, err := io.ReadFull(r, path); err != nil {
				return nil, wrapf(ErrShortRead, "read path %d", i)
			}
		}

		var entry HuffmanEntry
		entry.RelativePath = string(path)
		if err := binary.Read(r, binary.LittleEndian, &entry.Metadata.OriginalSize); err != nil {
			return nil, wrapf(ErrShortRead, "read originalSize %d", i)
		}
		var compressedSize uint64
		if err := binary.Read(r, binary.LittleEndian, &compressedSize); err != nil {
			return nil, wrapf(ErrShortRead, "read compressedSize %d", i)
		}
		if err := readFrequencies(r, &entry.Metadata.Frequencies); err != nil {
			return nil, err
		}

		entry.Compressed = make([]byte, compressedSize)
		if compressedSize > 0 {
			if _, err := io.ReadFull(r, entry.Compressed); err != nil {
				return nil, wrapf(ErrShortRead, "read payload %d", i)
			}
		}

		entries = append(entries, entry)
	}

	return entries, nil
}
