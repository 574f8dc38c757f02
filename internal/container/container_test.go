package container

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/julianvb03/GESA/internal/huffman"
	"github.com/julianvb03/GESA/internal/lzw"
)

func TestHuffmanFileRoundTrip(t *testing.T) {
	input := []byte("The quick brown fox jumps over the lazy dog.\n")
	result, err := huffman.Encode(input)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteHuffmanFile(&buf, result.Metadata, result.Compressed))

	raw := buf.Bytes()
	require.Equal(t, HuffmanFileMagic, string(raw[:4]))
	require.Equal(t, uint8(FormatVersion), raw[4])

	metadata, compressed, err := ReadHuffmanFile(&buf)
	require.NoError(t, err)
	require.Equal(t, result.Metadata, metadata)
	require.Equal(t, result.Compressed, compressed)

	output, err := huffman.Decode(metadata, compressed)
	require.NoError(t, err)
	require.Equal(t, input, output)
}

func TestHuffmanFileRejectsBadMagic(t *testing.T) {
	_, _, err := ReadHuffmanFile(bytes.NewReader([]byte("XXXX")))
	require.ErrorIs(t, err, ErrBadMagic)
}

func TestHuffmanFileRejectsBadVersion(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString(HuffmanFileMagic)
	buf.WriteByte(99)
	_, _, err := ReadHuffmanFile(&buf)
	require.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestHuffmanArchiveRoundTrip(t *testing.T) {
	files := map[string]string{
		"root.txt":         "root file contents",
		"nested/alpha.bin": string(bytes.Repeat([]byte{'A'}, 512)),
		"nested/beta.bin":  "beta payload",
	}

	var entries []HuffmanEntry
	for path, content := range files {
		result, err := huffman.Encode([]byte(content))
		require.NoError(t, err)
		entries = append(entries, HuffmanEntry{RelativePath: path, Metadata: result.Metadata, Compressed: result.Compressed})
	}

	var buf bytes.Buffer
	require.NoError(t, WriteHuffmanArchiveHeader(&buf, uint32(len(entries))))
	for _, entry := range entries {
		require.NoError(t, WriteHuffmanArchiveEntry(&buf, entry))
	}

	require.Equal(t, HuffmanArchiveMagic, string(buf.Bytes()[:4]))

	read, err := ReadHuffmanArchive(&buf)
	require.NoError(t, err)
	require.Len(t, read, len(files))

	for _, entry := range read {
		want, ok := files[entry.RelativePath]
		require.True(t, ok, entry.RelativePath)
		output, err := huffman.Decode(entry.Metadata, entry.Compressed)
		require.NoError(t, err)
		require.Equal(t, want, string(output))
	}
}

func TestEmptyHuffmanArchiveIsValid(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHuffmanArchiveHeader(&buf, 0))
	entries, err := ReadHuffmanArchive(&buf)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestLZWFileRoundTrip(t *testing.T) {
	input := []byte("Sphinx of black quartz, judge my vow.\n")
	result := lzw.Encode(input)

	var buf bytes.Buffer
	require.NoError(t, WriteLZWFile(&buf, result.Metadata, result.Codes))
	require.Equal(t, LZWFileMagic, string(buf.Bytes()[:4]))

	metadata, codes, err := ReadLZWFile(&buf)
	require.NoError(t, err)
	require.Equal(t, result.Metadata, metadata)
	require.Equal(t, result.Codes, codes)

	output, err := lzw.Decode(metadata, codes)
	require.NoError(t, err)
	require.Equal(t, input, output)
}

func TestLZWArchiveRoundTrip(t *testing.T) {
	files := map[string]string{
		"root.txt":         "Root level contents",
		"nested/alpha.bin": string(bytes.Repeat([]byte{0x01}, 256)),
		"nested/beta.bin":  "beta payload\nwith multiple lines\n",
	}

	var entries []LZWEntry
	for path, content := range files {
		result := lzw.Encode([]byte(content))
		entries = append(entries, LZWEntry{RelativePath: path, Metadata: result.Metadata, Codes: result.Codes})
	}

	var buf bytes.Buffer
	require.NoError(t, WriteLZWArchiveHeader(&buf, uint32(len(entries))))
	for _, entry := range entries {
		require.NoError(t, WriteLZWArchiveEntry(&buf, entry))
	}

	read, err := ReadLZWArchive(&buf)
	require.NoError(t, err)
	require.Len(t, read, len(files))

	for _, entry := range read {
		want, ok := files[entry.RelativePath]
		require.True(t, ok, entry.RelativePath)
		output, err := lzw.Decode(entry.Metadata, entry.Codes)
		require.NoError(t, err)
		require.Equal(t, want, string(output))
	}
}

func TestLZWFileRejectsBadMagic(t *testing.T) {
	_, _, err := ReadLZWFile(bytes.NewReader([]byte("ZZZZ")))
	require.ErrorIs(t, err, ErrBadMagic)
}
