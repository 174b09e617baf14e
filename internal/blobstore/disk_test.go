package blobstore

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStore_SaveAndKeyFormat(t *testing.T) {
	t.Parallel()

	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	key, err := store.Save(context.Background(), "profilePhoto", "my photo (1).png", strings.NewReader("png-bytes"))
	require.NoError(t, err)

	// Unsafe runes are stripped from the original name.
	assert.True(t, strings.HasSuffix(key, "-myphoto1.png"), "key=%q", key)

	data, err := os.ReadFile(filepath.Join(store.Dir(), key))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestDiskStore_RejectsOversizedFile(t *testing.T) {
	t.Parallel()

	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "profilePhoto", "big.bin", bytes.NewReader(make([]byte, MaxUploadSize+1)))
	assert.ErrorIs(t, err, ErrTooLarge)

	// Nothing is left behind after a rejected upload.
	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDiskStore_AcceptsFileAtLimit(t *testing.T) {
	t.Parallel()

	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "profilePhoto", "exact.bin", bytes.NewReader(make([]byte, MaxUploadSize)))
	assert.NoError(t, err)
}
