package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiskStore_SaveAndDelete(t *testing.T) {
	store := NewDiskStore(t.TempDir())

	rel, err := store.Save("products", ".png", []byte("payload"))
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "products/"))
	assert.True(t, strings.HasSuffix(rel, ".png"))

	full := filepath.Join(store.root, filepath.FromSlash(rel))
	content, err := os.ReadFile(full)
	assert.NoError(t, err)
	assert.Equal(t, []byte("payload"), content)

	assert.NoError(t, store.Delete(rel))
	_, err = os.Stat(full)
	assert.True(t, os.IsNotExist(err))
}

func TestDiskStore_DeleteMissingIsNoError(t *testing.T) {
	store := NewDiskStore(t.TempDir())
	assert.NoError(t, store.Delete("products/never-there.png"))
	assert.NoError(t, store.Delete(""))
}

func TestDiskStore_UniqueNames(t *testing.T) {
	store := NewDiskStore(t.TempDir())
	a, err := store.Save("products", ".png", []byte("a"))
	assert.NoError(t, err)
	b, err := store.Save("products", ".png", []byte("b"))
	assert.NoError(t, err)
	assert.NotEqual(t, a, b)
}
