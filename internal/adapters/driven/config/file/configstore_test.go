package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfigStore(t *testing.T) (*ConfigStore, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	return store, dir
}

func TestNewConfigStore_Path(t *testing.T) {
	store, dir := newTestConfigStore(t)

	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestNewConfigStore_CreatesNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	_, err := NewConfigStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestNewConfigStore_MkdirError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/nlquery")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_CorruptedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not toml {{[["), 0600))

	store, err := NewConfigStore(dir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestHomeDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home directory")
	}

	dir, err := HomeDir()

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".nlquery"), dir)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, _ := newTestConfigStore(t)

	require.NoError(t, store.Set("index.url", "http://localhost:8108"))
	require.NoError(t, store.Set("index.max_facet_values", int64(20)))
	require.NoError(t, store.Set("history.enabled", true))
	require.NoError(t, store.Set("index.query_by", []string{"name", "brand_name"}))

	assert.Equal(t, "http://localhost:8108", store.GetString("index.url"))
	assert.Equal(t, 20, store.GetInt("index.max_facet_values"))
	assert.True(t, store.GetBool("history.enabled"))
	assert.Equal(t, []string{"name", "brand_name"}, store.GetStringSlice("index.query_by"))
}

func TestConfigStore_WrongTypeReturnsZero(t *testing.T) {
	store, _ := newTestConfigStore(t)
	require.NoError(t, store.Set("index.url", "http://localhost:8108"))

	assert.Equal(t, 0, store.GetInt("index.url"))
	assert.False(t, store.GetBool("index.url"))
	assert.Nil(t, store.GetStringSlice("index.url"))
	assert.Empty(t, store.GetString("missing"))
}

func TestConfigStore_PersistsNestedTables(t *testing.T) {
	store, dir := newTestConfigStore(t)

	require.NoError(t, store.Set("index.url", "http://localhost:8108"))
	require.NoError(t, store.Set("llm.provider", "openai"))
	require.NoError(t, store.Set("cache.redis_db", int64(2)))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[index]")
	assert.Contains(t, string(raw), "[llm]")

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8108", reloaded.GetString("index.url"))
	assert.Equal(t, "openai", reloaded.GetString("llm.provider"))
	assert.Equal(t, 2, reloaded.GetInt("cache.redis_db"))
}

func TestConfigStore_LoadsHandWrittenFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[index]
url = "http://typesense:8108"
collection = "products"
max_facet_values = 15

[llm]
provider = "gemini"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "http://typesense:8108", store.GetString("index.url"))
	assert.Equal(t, "products", store.GetString("index.collection"))
	assert.Equal(t, 15, store.GetInt("index.max_facet_values"))
	assert.Equal(t, "gemini", store.GetString("llm.provider"))
}

func TestConfigStore_CommentOnlyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("# nothing\n"), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	_, ok := store.Get("index.url")
	assert.False(t, ok)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, _ := newTestConfigStore(t)
	require.NoError(t, store.Set("llm.api_key", "secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_SetRollsBackOnWriteFailure(t *testing.T) {
	store, _ := newTestConfigStore(t)
	require.NoError(t, store.Set("index.url", "http://a"))

	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	err := store.Set("index.url", "http://b")
	assert.Error(t, err)
	assert.Equal(t, "http://a", store.GetString("index.url"))

	err = store.Set("index.collection", "products")
	assert.Error(t, err)
	_, ok := store.Get("index.collection")
	assert.False(t, ok)
}

func TestConfigStore_SetUnencodableValue(t *testing.T) {
	store, _ := newTestConfigStore(t)

	err := store.Set("bad", make(chan int))

	assert.Error(t, err)
	_, ok := store.Get("bad")
	assert.False(t, ok)
}

func TestConfigStore_LoadInvalidTOML(t *testing.T) {
	store, _ := newTestConfigStore(t)
	require.NoError(t, store.Set("index.url", "http://a"))
	require.NoError(t, os.WriteFile(store.Path(), []byte("][}{"), 0600))

	assert.Error(t, store.Load())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, _ := newTestConfigStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Set("index.collection", "products")
		}()
		go func() {
			defer wg.Done()
			_ = store.GetString("index.collection")
		}()
	}
	wg.Wait()

	assert.Equal(t, "products", store.GetString("index.collection"))
}

func TestNestMap(t *testing.T) {
	nested := nestMap(map[string]any{
		"index.url":        "http://a",
		"index.collection": "products",
		"top":              "x",
	})

	assert.Equal(t, map[string]any{
		"index": map[string]any{
			"url":        "http://a",
			"collection": "products",
		},
		"top": "x",
	}, nested)
}

func TestNestMap_ScalarParentKeepsChildFlat(t *testing.T) {
	nested := nestMap(map[string]any{
		"index":     "scalar",
		"index.url": "http://a",
	})

	assert.Equal(t, "scalar", nested["index"])
	assert.Equal(t, "http://a", nested["index.url"])
}

func TestFlattenMap(t *testing.T) {
	flat := flattenMap(map[string]any{
		"llm": map[string]any{"provider": "openai", "nested": map[string]any{"x": int64(1)}},
	}, "")

	assert.Equal(t, map[string]any{
		"llm.provider": "openai",
		"llm.nested.x": int64(1),
	}, flat)
}
