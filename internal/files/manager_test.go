package files

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "stockcli/internal/errors"
)

func TestManager_WriteFile(t *testing.T) {
	m := NewManager(nil)
	path := filepath.Join(t.TempDir(), "nested", "out.csv")

	require.NoError(t, m.WriteFile(path, []byte("first")))
	require.NoError(t, m.WriteFile(path, []byte("second")))

	data, err := m.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
	assert.True(t, m.FileExists(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestManager_WriteAtomicFailureKeepsOldContent(t *testing.T) {
	m := NewManager(nil)
	dir := t.TempDir()
	path := filepath.Join(dir, "stock.csv")
	require.NoError(t, m.WriteFile(path, []byte("old")))

	boom := errors.New("render failed")
	err := m.WriteAtomic(path, func(w io.Writer) error {
		_, _ = w.Write([]byte("partial"))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestManager_Errors(t *testing.T) {
	m := NewManager(nil)
	dir := t.TempDir()

	_, err := m.ReadFile(filepath.Join(dir, "missing"))
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))

	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	err = m.WriteFile(filepath.Join(blocker, "child.txt"), []byte("x"))
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))

	assert.False(t, m.FileExists(dir), "directories are not files")
}

func TestSignature(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	require.NoError(t, os.WriteFile(a, []byte("abc"), 0644))
	require.NoError(t, os.WriteFile(b, []byte("abd"), 0644))

	sigA, err := Signature(a)
	require.NoError(t, err)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", sigA)

	sigB, err := Signature(b)
	require.NoError(t, err)
	assert.NotEqual(t, sigA, sigB)

	_, err = Signature(filepath.Join(dir, "missing"))
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
}
