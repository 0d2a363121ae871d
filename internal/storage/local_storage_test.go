package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateKey(t *testing.T) {
	valid := []string{"3f2a.png", "abc", "a.b.c"}
	for _, key := range valid {
		assert.NoError(t, ValidateKey(key), key)
	}

	invalid := []string{"", ".", "..", "../etc/passwd", "dir/file.png", `..\win.png`, "/abs.png"}
	for _, key := range invalid {
		assert.Error(t, ValidateKey(key), key)
	}
}

func TestLocalStorage_SaveOpenDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)
	assert.Equal(t, "local", store.Name())

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "id-1.png", strings.NewReader("payload"), "image/png"))

	rc, err := store.Open(ctx, "id-1.png")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "payload", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")

	require.NoError(t, store.Delete(ctx, "id-1.png"))
	_, err = store.Open(ctx, "id-1.png")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "id-1.png"), ErrNotFound)
}

func TestLocalStorage_Overwrite(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "same.png", strings.NewReader("first"), ""))
	require.NoError(t, store.Save(ctx, "same.png", strings.NewReader("second"), ""))

	rc, err := store.Open(ctx, "same.png")
	require.NoError(t, err)
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	assert.Equal(t, "second", string(data))
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStorage(filepath.Join(root, "uploads"))
	require.NoError(t, err)

	err = store.Save(context.Background(), "../escape.png", strings.NewReader("x"), "")
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(root, "escape.png"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestLocalStorage_CanceledContext(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, store.Save(ctx, "a.png", strings.NewReader("x"), ""), context.Canceled)
}
