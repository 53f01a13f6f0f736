package mmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blob")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestOpenAndRead(t *testing.T) {
	data := []byte("hello mapped world")
	m, err := Open(writeTemp(t, data))
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, data, m.Bytes())
	assert.Equal(t, len(data), m.Size())

	buf := make([]byte, 5)
	n, err := m.ReadAt(buf, 6)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, []byte("mappe"), buf)
}

func TestReadAtPastEnd(t *testing.T) {
	m, err := Open(writeTemp(t, []byte("abc")))
	require.NoError(t, err)
	defer m.Close()

	buf := make([]byte, 8)
	n, err := m.ReadAt(buf, 1)
	assert.Error(t, err)
	assert.Equal(t, 2, n)

	_, err = m.ReadAt(buf, 100)
	assert.Error(t, err)

	_, err = m.ReadAt(buf, -1)
	assert.ErrorIs(t, err, ErrInvalidOffset)
}

func TestEmptyFile(t *testing.T) {
	m, err := Open(writeTemp(t, nil))
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, 0, m.Size())
	assert.Empty(t, m.Bytes())
}

func TestCloseIdempotent(t *testing.T) {
	m, err := Open(writeTemp(t, []byte("x")))
	require.NoError(t, err)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	assert.Nil(t, m.Bytes())
	_, err = m.ReadAt(make([]byte, 1), 0)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestAdvise(t *testing.T) {
	m, err := Open(writeTemp(t, []byte("advise me")))
	require.NoError(t, err)
	defer m.Close()

	assert.NoError(t, m.Advise(AccessSequential))
	assert.NoError(t, m.Advise(AccessRandom))
	assert.NoError(t, m.Advise(AccessDefault))
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
