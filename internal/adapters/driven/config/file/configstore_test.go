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

func TestNewConfigStore_NestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_CorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not toml {{{[["), 0600))

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_TypedValues(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("batch.rate_limited", true))
	require.NoError(t, store.Set("batch.max_parallel", 8))
	require.NoError(t, store.Set("archive.collision", "suffix"))

	assert.True(t, store.GetBool("batch.rate_limited"))
	assert.Equal(t, 8, store.GetInt("batch.max_parallel"))
	assert.Equal(t, "suffix", store.GetString("archive.collision"))

	// Wrong types and missing keys read as zero values
	assert.Empty(t, store.GetString("batch.max_parallel"))
	assert.Zero(t, store.GetInt("archive.collision"))
	assert.False(t, store.GetBool("missing"))
	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_WritesTables(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("batch.max_parallel", 4))
	require.NoError(t, store.Set("transport.user_agent", "agent/1.0"))

	content, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(content), "[batch]")
	assert.Contains(t, string(content), "[transport]")
	assert.Contains(t, string(content), "max_parallel = 4")
}

func TestConfigStore_ReloadPreservesData(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("batch.rate_limited", true))
	require.NoError(t, store.Set("batch.inter_batch_delay_ms", 0))
	require.NoError(t, store.Set("archive.output_dir", "/downloads"))

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.True(t, reloaded.GetBool("batch.rate_limited"))
	assert.Equal(t, "/downloads", reloaded.GetString("archive.output_dir"))
	val, ok := reloaded.Get("batch.inter_batch_delay_ms")
	require.True(t, ok)
	assert.Equal(t, int64(0), val)
	assert.Equal(t, 0, reloaded.GetInt("batch.inter_batch_delay_ms"))
}

func TestConfigStore_ReadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := "[batch]\nrate_limited = true\nmax_parallel = 3\n\n[transport]\ncookie = \"session=abc\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.True(t, store.GetBool("batch.rate_limited"))
	assert.Equal(t, 3, store.GetInt("batch.max_parallel"))
	assert.Equal(t, "session=abc", store.GetString("transport.cookie"))
}

func TestConfigStore_Delete(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("archive.collision", "suffix"))

	require.NoError(t, store.Delete("archive.collision"))
	require.NoError(t, store.Delete("never.set"))

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	_, ok := reloaded.Get("archive.collision")
	assert.False(t, ok)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("batch.max_parallel", 2))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Load_NonExistent(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Load())
	_, ok := store.Get("anything")
	assert.False(t, ok)
}

func TestConfigStore_Save_WriteFileError(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("test", "value"))

	// Replace the file with a directory to cause a write error
	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Set("another", "value"))
}

func TestConfigStore_SetWithUnmarshallableValue(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	// Channels cannot be marshaled to TOML
	assert.Error(t, store.Set("channel", make(chan int)))
}

func TestNestMap(t *testing.T) {
	nested := nestMap(map[string]any{
		"batch.max_parallel":   5,
		"batch.rate_limited":   false,
		"top":                  "level",
		"archive.output_dir":   "",
		"transport.cookie":     "c",
		"transport.user_agent": "ua",
	})

	assert.Equal(t, "level", nested["top"])
	batch, ok := nested["batch"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 5, batch["max_parallel"])
	assert.Equal(t, false, batch["rate_limited"])

	assert.Equal(t, flattenMap(nested, ""), map[string]any{
		"batch.max_parallel":   5,
		"batch.rate_limited":   false,
		"top":                  "level",
		"archive.output_dir":   "",
		"transport.cookie":     "c",
		"transport.user_agent": "ua",
	})
}
