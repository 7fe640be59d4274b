package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	store, err := NewConfigStore("")

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(home, ".docdex", "config.toml"), store.Path())
}

func TestConfigStore_TypedGetters(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("corpus.root", "/srv/docs"))
	require.NoError(t, store.Set("chunk.max_length", 1000))
	require.NoError(t, store.Set("search.heading_boost", 2.5))
	require.NoError(t, store.Set("mcp.enabled", true))
	require.NoError(t, store.Set("corpus.extensions", []string{".md", ".markdown"}))

	assert.Equal(t, "/srv/docs", store.GetString("corpus.root"))
	assert.Equal(t, 1000, store.GetInt("chunk.max_length"))
	assert.InDelta(t, 2.5, store.GetFloat("search.heading_boost"), 0.0001)
	assert.True(t, store.GetBool("mcp.enabled"))
	assert.Equal(t, []string{".md", ".markdown"}, store.GetStringSlice("corpus.extensions"))
}

func TestConfigStore_MissingAndWrongTypes(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("corpus.root", "/srv/docs"))

	_, ok := store.Get("nonexistent")
	assert.False(t, ok)
	assert.Equal(t, "", store.GetString("nonexistent"))
	assert.Equal(t, 0, store.GetInt("corpus.root"))
	assert.Equal(t, float64(0), store.GetFloat("corpus.root"))
	assert.False(t, store.GetBool("corpus.root"))
	assert.Nil(t, store.GetStringSlice("corpus.root"))
}

func TestConfigStore_GetFloat_FromInt(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	// TOML integers come back as int64; GetFloat must still resolve them.
	store.mu.Lock()
	store.data["search.heading_boost"] = int64(2)
	store.mu.Unlock()

	assert.InDelta(t, 2.0, store.GetFloat("search.heading_boost"), 0.0001)
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store1.Set("corpus.root", "/srv/docs"))
	require.NoError(t, store1.Set("chunk.overlap", 200))

	// New store instance loads from file.
	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "/srv/docs", store2.GetString("corpus.root"))
	assert.Equal(t, 200, store2.GetInt("chunk.overlap"))
}

func TestConfigStore_NestedKeysFlattened(t *testing.T) {
	tmpDir := t.TempDir()

	content := []byte("[chunk]\nmax_length = 800\noverlap = 100\n")
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), content, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, 800, store.GetInt("chunk.max_length"))
	assert.Equal(t, 100, store.GetInt("chunk.overlap"))
}

func TestConfigStore_Load_NonExistent(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	val, ok := store.Get("any_key")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()

	corrupted := []byte("this is not valid TOML {{{[[")
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), corrupted, 0600))

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("corpus.root", "/srv/docs"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Concurrency(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			key := "key" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_, _ = store.Get(key)
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}
