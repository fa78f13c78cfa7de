// Package file loads and persists lexsearch settings as a TOML file.
// Settings are stored in the lexsearch config directory, by default
// ~/.lexsearch/config.toml, and every field has a working default so a
// missing file is not an error.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Settings is the full lexsearch configuration.
type Settings struct {
	// DefaultLanguage is the citation output language used when a
	// caller does not ask for one (de, fr, it or en).
	DefaultLanguage string `toml:"default_language"`

	// DataDir is where the SQLite database lives. Empty means
	// ~/.lexsearch/data.
	DataDir string `toml:"data_dir,omitempty"`

	Cache   CacheSettings             `toml:"cache"`
	Sources map[string]SourceSettings `toml:"sources"`
}

// CacheSettings controls cache TTLs and the background sweep.
type CacheSettings struct {
	// SearchTTL bounds how long search listings are served from cache.
	SearchTTL duration `toml:"search_ttl"`

	// DecisionTTL bounds how long by-identifier lookups are served
	// from cache. Individual decisions change far less often than
	// search rankings, so this is much longer.
	DecisionTTL duration `toml:"decision_ttl"`

	// SweepInterval is how often expired entries are swept. Zero
	// disables the background sweep.
	SweepInterval duration `toml:"sweep_interval"`
}

// SourceSettings configures one external source client.
type SourceSettings struct {
	// BaseURL overrides the source's default API endpoint.
	BaseURL string `toml:"base_url,omitempty"`

	// RequestsPerMinute is the outbound request budget for the source.
	RequestsPerMinute int `toml:"requests_per_minute"`
}

// duration wraps time.Duration with TOML string encoding ("1h", "30s").
type duration time.Duration

func (d duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration.
func (d duration) Duration() time.Duration {
	return time.Duration(d)
}

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() Settings {
	return Settings{
		DefaultLanguage: "de",
		Cache: CacheSettings{
			SearchTTL:     duration(time.Hour),
			DecisionTTL:   duration(24 * time.Hour),
			SweepInterval: duration(15 * time.Minute),
		},
		Sources: map[string]SourceSettings{
			"bger":           {RequestsPerMinute: 30},
			"entscheidsuche": {RequestsPerMinute: 30},
			"legalis":        {RequestsPerMinute: 20},
		},
	}
}

// SettingsStore reads and writes Settings at a fixed path.
type SettingsStore struct {
	path string
}

// NewSettingsStore creates a store rooted at configDir. If configDir is
// empty, defaults to ~/.lexsearch.
func NewSettingsStore(configDir string) (*SettingsStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".lexsearch")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	return &SettingsStore{path: filepath.Join(configDir, "config.toml")}, nil
}

// Path returns the config file path.
func (s *SettingsStore) Path() string {
	return s.path
}

// Load reads the settings file, layering it over the defaults. A missing
// file yields the defaults unchanged.
func (s *SettingsStore) Load() (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return settings, nil
	}
	if err != nil {
		return settings, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &settings); err != nil {
		return DefaultSettings(), fmt.Errorf("parsing config: %w", err)
	}
	return settings, nil
}

// Save writes the settings file.
func (s *SettingsStore) Save(settings Settings) error {
	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
