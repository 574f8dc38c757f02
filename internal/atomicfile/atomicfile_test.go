package atomicfile

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteCreatesDestination(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "nested", "out.bin")

	err := Write(dest, func(w io.Writer) error {
		_, err := w.Write([]byte("payload"))
		return err
	})
	require.NoError(t, err)

	content, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.Equal(t, "payload", string(content))

	entries, err := os.ReadDir(filepath.Dir(dest))
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files should remain")
}

func TestWriteLeavesDestinationUntouchedOnFault(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "out.bin")
	require.NoError(t, os.WriteFile(dest, []byte("original"), 0o644))

	boom := errors.New("boom")
	err := Write(dest, func(w io.Writer) error {
		return boom
	})
	require.ErrorIs(t, err, boom)

	content, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.Equal(t, "original", string(content))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp file should have been cleaned up")
}
