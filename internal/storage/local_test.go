package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_PutGet(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := NewLocalStorage(filepath.Join(dir, "spool"))
	require.NoError(t, err)

	require.NoError(t, s.Put(ctx, "receipts/000042.txt", strings.NewReader("first")))
	require.NoError(t, s.Put(ctx, "receipts/000042.txt", strings.NewReader("second")))

	rc, err := s.Get(ctx, "receipts/000042.txt")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	// No temporary files are left behind.
	entries, err := os.ReadDir(filepath.Join(dir, "spool", "receipts"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLocalStorage_GetMissing(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "receipts/missing.txt")

	var se *StorageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, codeNotFound, se.ErrorCode())
}

func TestLocalStorage_ExistsDelete(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ok, err := s.Exists(ctx, "a.txt")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Put(ctx, "a.txt", strings.NewReader("x")))
	ok, err = s.Exists(ctx, "a.txt")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.Delete(ctx, "a.txt"))
	require.NoError(t, s.Delete(ctx, "a.txt"), "delete is idempotent")

	ok, err = s.Exists(ctx, "a.txt")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocalStorage_RejectsEscapingKeys(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../outside.txt", "receipts/../../outside.txt", "/etc/passwd"} {
		t.Run(key, func(t *testing.T) {
			err := s.Put(ctx, key, strings.NewReader("x"))

			var se *StorageError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, codeInvalid, se.ErrorCode())
		})
	}
}
