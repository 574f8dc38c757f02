package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func readTree(t *testing.T, root string) map[string]string {
	t.Helper()
	got := map[string]string{}
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		require.NoError(t, err)
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		got[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	require.NoError(t, err)
	return got
}

func TestCompressDecompressFileHuffmanRoundTrip(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "input.txt")
	archive := filepath.Join(dir, "input.ghuf")
	restored := filepath.Join(dir, "restored.txt")

	text := "the quick brown fox jumps over the lazy dog the quick fox"
	require.NoError(t, os.WriteFile(source, []byte(text), 0o644))

	require.NoError(t, CompressFile(HuffmanFormat, source, archive))
	require.NoError(t, DecompressFile(HuffmanFormat, archive, restored))

	got, err := os.ReadFile(restored)
	require.NoError(t, err)
	require.Equal(t, text, string(got))
}

func TestCompressDecompressFileLZWRoundTrip(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "input.txt")
	archive := filepath.Join(dir, "input.glzw")
	restored := filepath.Join(dir, "restored.txt")

	text := "ABABABABABABABABAB banana bandana abracadabra"
	require.NoError(t, os.WriteFile(source, []byte(text), 0o644))

	require.NoError(t, CompressFile(LZWFormat, source, archive))
	require.NoError(t, DecompressFile(LZWFormat, archive, restored))

	got, err := os.ReadFile(restored)
	require.NoError(t, err)
	require.Equal(t, text, string(got))
}

func TestCompressDecompressDirectoryHuffmanRoundTrip(t *testing.T) {
	for _, threadCount := range []int{1, 2, 0} {
		dir := t.TempDir()
		source := filepath.Join(dir, "source")
		archive := filepath.Join(dir, "archive.ghar")
		destination := filepath.Join(dir, "destination")

		files := map[string]string{
			"root.txt":        "root file contents for the archive scenario",
			"nested/alpha.bin": "alpha payload bytes",
			"nested/beta.bin":  "beta payload bytes, slightly longer than alpha",
		}
		writeTree(t, source, files)

		require.NoError(t, CompressDirectory(HuffmanFormat, source, archive, threadCount))
		require.NoError(t, DecompressArchive(HuffmanFormat, archive, destination, threadCount))

		require.Equal(t, files, readTree(t, destination))
	}
}

func TestCompressDecompressDirectoryLZWRoundTrip(t *testing.T) {
	for _, threadCount := range []int{1, 2, 0} {
		dir := t.TempDir()
		source := filepath.Join(dir, "source")
		archive := filepath.Join(dir, "archive.glza")
		destination := filepath.Join(dir, "destination")

		files := map[string]string{
			"root.txt":        "root file contents for the lzw archive scenario",
			"nested/alpha.bin": "alphaalphaalpha repeated text repeated text",
			"nested/beta.bin":  "beta payload, quite repetitive repetitive repetitive",
		}
		writeTree(t, source, files)

		require.NoError(t, CompressDirectory(LZWFormat, source, archive, threadCount))
		require.NoError(t, DecompressArchive(LZWFormat, archive, destination, threadCount))

		require.Equal(t, files, readTree(t, destination))
	}
}

func TestCompressDecompressEmptyDirectoryProducesEmptyArchive(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "source")
	require.NoError(t, os.MkdirAll(source, 0o755))
	archive := filepath.Join(dir, "archive.ghar")
	destination := filepath.Join(dir, "destination")

	require.NoError(t, CompressDirectory(HuffmanFormat, source, archive, 2))
	require.NoError(t, DecompressArchive(HuffmanFormat, archive, destination, 2))

	entries, err := os.ReadDir(destination)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestCompressDirectoryThreadCountDoesNotAffectOutput(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "source")
	files := map[string]string{
		"a.txt": "alpha bravo charlie delta echo foxtrot golf hotel",
		"b.txt": "india juliet kilo lima mike november oscar papa",
		"c.txt": "quebec romeo sierra tango uniform victor whiskey",
	}
	writeTree(t, source, files)

	var results [][]byte
	for _, threadCount := range []int{1, 2, 4} {
		archive := filepath.Join(dir, "archive.ghar")
		require.NoError(t, CompressDirectory(HuffmanFormat, source, archive, threadCount))
		data, err := os.ReadFile(archive)
		require.NoError(t, err)
		results = append(results, data)
		require.NoError(t, os.Remove(archive))
	}

	for i := 1; i < len(results); i++ {
		require.Equal(t, results[0], results[i])
	}
}
