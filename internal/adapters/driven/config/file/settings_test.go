package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsStore_LoadDefaultsWhenMissing(t *testing.T) {
	store, err := NewSettingsStore(t.TempDir())
	require.NoError(t, err)

	settings, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "de", settings.DefaultLanguage)
	assert.Equal(t, time.Hour, settings.Cache.SearchTTL.Duration())
	assert.Equal(t, 24*time.Hour, settings.Cache.DecisionTTL.Duration())
	assert.Equal(t, 30, settings.Sources["bger"].RequestsPerMinute)
}

func TestSettingsStore_SaveAndLoad(t *testing.T) {
	store, err := NewSettingsStore(t.TempDir())
	require.NoError(t, err)

	settings := DefaultSettings()
	settings.DefaultLanguage = "fr"
	settings.Cache.SearchTTL = duration(30 * time.Minute)
	settings.Sources["bger"] = SourceSettings{
		BaseURL:           "http://localhost:8080",
		RequestsPerMinute: 5,
	}
	require.NoError(t, store.Save(settings))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "fr", loaded.DefaultLanguage)
	assert.Equal(t, 30*time.Minute, loaded.Cache.SearchTTL.Duration())
	assert.Equal(t, "http://localhost:8080", loaded.Sources["bger"].BaseURL)
	assert.Equal(t, 5, loaded.Sources["bger"].RequestsPerMinute)
}

func TestSettingsStore_PartialFileLayersOverDefaults(t *testing.T) {
	dir := t.TempDir()
	store, err := NewSettingsStore(dir)
	require.NoError(t, err)

	content := "default_language = \"it\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	settings, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "it", settings.DefaultLanguage)
	assert.Equal(t, time.Hour, settings.Cache.SearchTTL.Duration(), "unset fields keep defaults")
}

func TestSettingsStore_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewSettingsStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not = [toml"), 0600))

	_, err = store.Load()
	assert.Error(t, err)
}
