package container

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/julianvb03/GESA/internal/lzw"
)

// LZWFileMagic identifies a single-file LZW container.
const LZWFileMagic = "GLZW"

// LZWArchiveMagic identifies a multi-file LZW container.
const LZWArchiveMagic = "GLZA"

// LZWEntry is one framed file inside an LZW archive.
type LZWEntry struct {
	RelativePath string
	Metadata     lzw.Metadata
	Codes        []uint16
}

func writeCodes(w io.Writer, codes []uint16) error {
	for _, code := range codes {
		if err := binary.Write(w, binary.LittleEndian, code); err != nil {
			return wrapf(ErrShortWrite, "write code")
		}
	}
	return nil
}

func readCodes(r io.Reader, count uint64) ([]uint16, error) {
	codes := make([]uint16, count)
	for i := range codes {
		if err := binary.Read(r, binary.LittleEndian, &codes[i]); err != nil {
			return nil, wrapf(ErrShortRead, "read code %d", i)
		}
	}
	return codes, nil
}

// WriteLZWFile writes a single-file LZW container: magic, version,
// padding, originalSize, dictionarySize, codeCount, then the codes.
func WriteLZWFile(w io.Writer, metadata lzw.Metadata, codes []uint16) error {
	if _, err := w.Write([]byte(LZWFileMagic)); err != nil {
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
	if err := binary.Write(w, binary.LittleEndian, metadata.DictionarySize); err != nil {
		return wrapf(ErrShortWrite, "write dictionarySize")
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(len(codes))); err != nil {
		return wrapf(ErrShortWrite, "write codeCount")
	}
	return writeCodes(w, codes)
}

// ReadLZWFile reads and validates a single-file LZW container.
func ReadLZWFile(r io.Reader) (lzw.Metadata, []uint16, error) {
	var metadata lzw.Metadata

	if err := readMagic(r, LZWFileMagic); err != nil {
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
	if err := binary.Read(r, binary.LittleEndian, &metadata.DictionarySize); err != nil {
		return metadata, nil, wrapf(ErrShortRead, "read dictionarySize")
	}
	var codeCount uint64
	if err := binary.Read(r, binary.LittleEndian, &codeCount); err != nil {
		return metadata, nil, wrapf(ErrShortRead, "read codeCount")
	}

	codes, err := readCodes(r, codeCount)
	if err != nil {
		return metadata, nil, err
	}
	return metadata, codes, nil
}

// WriteLZWArchiveHeader writes the 12-byte archive header: magic,
// version, padding, fileCount.
func WriteLZWArchiveHeader(w io.Writer, fileCount uint32) error {
	if _, err := w.Write([]byte(LZWArchiveMagic)); err != nil {
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

// WriteLZWArchiveEntry writes one framed entry: pathSize, path bytes,
// originalSize, dictionarySize, codeCount, codes.
func WriteLZWArchiveEntry(w io.Writer, entry LZWEntry) error {
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
	if err := binary.Write(w, binary.LittleEndian, entry.Metadata.DictionarySize); err != nil {
		return wrapf(ErrShortWrite, "write dictionarySize")
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(len(entry.Codes))); err != nil {
		return wrapf(ErrShortWrite, "write codeCount")
	}
	return writeCodes(w, entry.Codes)
}

// ReadLZWArchive reads and validates the archive header, then parses
// all entries into memory.
func ReadLZWArchive(r io.Reader) ([]LZWEntry, error) {
	if err := readMagic(r, LZWArchiveMagic); err != nil {
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

	entries := make([]LZWEntry, 0, fileCount)
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

		var entry LZWEntry
		entry.RelativePath = string(path)
		if err := binary.Read(r, binary.LittleEndian, &entry.Metadata.OriginalSize); err != nil {
			return nil, wrapf(ErrShortRead, "read originalSize %d", i)
		}
		if err := binary.Read(r, binary.LittleEndian, &entry.Metadata.DictionarySize); err != nil {
			return nil, wrapf(ErrShortRead, "read dictionarySize %d", i)
		}
		var codeCount uint64
		if err := binary.Read(r, binary.LittleEndian, &codeCount); err != nil {
			return nil, wrapf(ErrShortRead, "read codeCount %d", i)
		}

		codes, err := readCodes(r, codeCount)
		if err != nil {
			return nil, err
		}
		entry.Codes = codes

		entries = append(entries, entry)
	}

	return entries, nil
}
