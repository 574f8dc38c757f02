package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunCompressDecompressFileHuffmanAutoDetect(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "input.txt")
	require.NoError(t, os.WriteFile(source, []byte("hello hello hello world"), 0o644))

	archive := filepath.Join(dir, "input.ghuf")
	code := Run([]string{"compress", "--algo", "huffman", "-o", archive, source})
	require.Equal(t, 0, code)

	restored := filepath.Join(dir, "restored.txt")
	code = Run([]string{"decompress", "-o", restored, archive})
	require.Equal(t, 0, code)

	got, err := os.ReadFile(restored)
	require.NoError(t, err)
	require.Equal(t, "hello hello hello world", string(got))
}

func TestRunCompressDecompressDirectoryLZW(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "tree")
	require.NoError(t, os.MkdirAll(filepath.Join(source, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(source, "root.txt"), []byte("root root root contents"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(source, "nested", "leaf.txt"), []byte("leaf leaf leaf contents"), 0o644))

	archive := filepath.Join(dir, "tree.glza")
	code := Run([]string{"compress", "--algo", "lzw", "-o", archive, "-t", "2", source})
	require.Equal(t, 0, code)

	destination := filepath.Join(dir, "restored")
	code = Run([]string{"decompress", "-o", destination, "-t", "2", archive})
	require.Equal(t, 0, code)

	got, err := os.ReadFile(filepath.Join(destination, "root.txt"))
	require.NoError(t, err)
	require.Equal(t, "root root root contents", string(got))
}

func TestRunRejectsUnknownCommand(t *testing.T) {
	code := Run([]string{"frobnicate"})
	require.Equal(t, 1, code)
}

func TestRunHelpCommandExitsZero(t *testing.T) {
	require.Equal(t, 0, Run([]string{"help"}))
}

func TestRunWithNoArgsDefaultsToHelp(t *testing.T) {
	require.Equal(t, 0, Run([]string{}))
}
