package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// APIKeyEnv overrides the configured Flickr API key when set
const APIKeyEnv = "FLICKR_API_KEY"

// Config represents the application configuration
type Config struct {
	Version    int            `toml:"version"`
	Flickr     FlickrSettings `toml:"flickr"`
	Grid       GridSettings   `toml:"grid"`
	Share      ShareSettings  `toml:"share"`
	UISettings UISettings     `toml:"ui"`
}

// FlickrSettings configures the photo search service
type FlickrSettings struct {
	APIKey         string `toml:"api_key"`
	Endpoint       string `toml:"endpoint"`
	ImageBaseURL   string `toml:"image_base_url"` // empty means the farm static hosts
	PerPage        int    `toml:"per_page"`
	ThumbnailSize  string `toml:"thumbnail_size"` // flickr size suffix
	LargeSize      string `toml:"large_size"`
	Workers        int    `toml:"workers"`    // concurrent thumbnail downloads
	CacheSize      int    `toml:"cache_size"` // images kept in memory
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// GridSettings configures the grid layout
type GridSettings struct {
	Columns     int     `toml:"columns"`
	InsetTop    float64 `toml:"inset_top"`
	InsetLeft   float64 `toml:"inset_left"`
	InsetBottom float64 `toml:"inset_bottom"`
	InsetRight  float64 `toml:"inset_right"`
}

// ShareSettings selects where shared photos go
type ShareSettings struct {
	Target    string `toml:"target"` // "directory" or "clipboard"
	Directory string `toml:"directory"`
	Reveal    bool   `toml:"reveal"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	Color        bool `toml:"color"`
	ShowHelpLine bool `toml:"show_help_line"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service backed by the user config dir
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "photogrid", "config.toml"),
	}
}

// NewConfigServiceAt creates a config service for an explicit file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration, returning defaults when the file does not exist
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start from defaults so missing keys keep sane values
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.Normalize()
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// The file may hold an API key
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv applies environment overrides
func (c *Config) ApplyEnv() {
	if key := strings.TrimSpace(os.Getenv(APIKeyEnv)); key != "" {
		c.Flickr.APIKey = key
	}
}

// Normalize replaces out-of-range values with defaults
func (c *Config) Normalize() {
	def := DefaultConfig()

	if c.Flickr.Endpoint == "" {
		c.Flickr.Endpoint = def.Flickr.Endpoint
	}
	if c.Flickr.PerPage <= 0 || c.Flickr.PerPage > 500 {
		c.Flickr.PerPage = def.Flickr.PerPage
	}
	if c.Flickr.ThumbnailSize == "" {
		c.Flickr.ThumbnailSize = def.Flickr.ThumbnailSize
	}
	if c.Flickr.LargeSize == "" {
		c.Flickr.LargeSize = def.Flickr.LargeSize
	}
	if c.Flickr.Workers <= 0 {
		c.Flickr.Workers = def.Flickr.Workers
	}
	if c.Flickr.CacheSize <= 0 {
		c.Flickr.CacheSize = def.Flickr.CacheSize
	}
	if c.Flickr.TimeoutSeconds <= 0 {
		c.Flickr.TimeoutSeconds = def.Flickr.TimeoutSeconds
	}
	if c.Grid.Columns <= 0 {
		c.Grid.Columns = def.Grid.Columns
	}
	switch c.Share.Target {
	case "directory", "clipboard":
	default:
		c.Share.Target = def.Share.Target
	}
	if c.Share.Directory == "" {
		c.Share.Directory = def.Share.Directory
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	return &Config{
		Version: 1,
		Flickr: FlickrSettings{
			Endpoint:       "https://api.flickr.com/services/rest/",
			PerPage:        20,
			ThumbnailSize:  "m",
			LargeSize:      "b",
			Workers:        8,
			CacheSize:      256,
			TimeoutSeconds: 15,
		},
		Grid: GridSettings{
			Columns: 3,
			// Layout units are terminal pixels: one column wide, half a row tall
			InsetTop:    2,
			InsetLeft:   2,
			InsetBottom: 2,
			InsetRight:  2,
		},
		Share: ShareSettings{
			Target:    "directory",
			Directory: filepath.Join(homeDir, "Pictures", "photogrid"),
		},
		UISettings: UISettings{
			Color:        true,
			ShowHelpLine: true,
		},
	}
}
