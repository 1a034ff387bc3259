package storage

import (
	"bytes"
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

// smallGIF 1x2 像素 GIF
var smallGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x02, 0x00,
	0x01, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xFF, 0xFF, 0xFF, 0x21, 0xF9, 0x04, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x2C, 0x00, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x0C,
	0x0A, 0x00, 0x3B,
}

func TestLocalImageStore_SaveAndDelete(t *testing.T) {
	root := t.TempDir()
	store := NewLocalImageStore(root, "/media/")
	ctx := context.Background()

	name, err := store.Save(ctx, "small.gif", bytes.NewReader(smallGIF))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "posts/"))
	assert.True(t, strings.HasSuffix(name, ".gif"))
	assert.Equal(t, "/media/"+name, store.URL(name))

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(name)))
	require.NoError(t, err)
	assert.Equal(t, smallGIF, data)

	require.NoError(t, store.Delete(ctx, name))
	require.NoError(t, store.Delete(ctx, name))
	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(name)))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalImageStore_RejectsNonImage(t *testing.T) {
	store := NewLocalImageStore(t.TempDir(), "/media")
	_, err := store.Save(context.Background(), "notes.txt", strings.NewReader("just some text"))
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestLocalImageStore_ExtensionFromContent(t *testing.T) {
	store := NewLocalImageStore(t.TempDir(), "/media")
	name, err := store.Save(context.Background(), "upload", bytes.NewReader(smallGIF))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".gif"))
	assert.Empty(t, store.URL(""))
}

type brokenReader struct{ err error }

func (r brokenReader) Read([]byte) (int, error) { return 0, r.err }

func TestLocalImageStore_FailedWriteLeavesNothing(t *testing.T) {
	root := t.TempDir()
	store := NewLocalImageStore(root, "/media")

	// 头部足够识别为 GIF，之后读取中断
	head := append(append([]byte{}, smallGIF...), make([]byte, 1024)...)
	upload := io.MultiReader(bytes.NewReader(head), brokenReader{err: errors.New("connection reset")})

	name, err := store.Save(context.Background(), "big.gif", upload)
	require.Error(t, err)
	assert.Empty(t, name)

	entries, err := os.ReadDir(filepath.Join(root, "posts"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalImageStore_CanceledContextLeavesNothing(t *testing.T) {
	root := t.TempDir()
	store := NewLocalImageStore(root, "/media")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	name, err := store.Save(ctx, "small.gif", bytes.NewReader(smallGIF))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, name)

	entries, err := os.ReadDir(filepath.Join(root, "posts"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
