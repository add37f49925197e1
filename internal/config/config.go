package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration shared by the checkout TUI and the
// development backend.
type Config struct {
	Backend BackendConfig `mapstructure:"backend"`
	UI      UIConfig      `mapstructure:"ui"`
	Log     LogConfig     `mapstructure:"log"`
	Server  ServerConfig  `mapstructure:"server"`
}

// BackendConfig points the widget at the store backend.
type BackendConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Locale              string        `mapstructure:"locale"`
	SearchDebounce      time.Duration `mapstructure:"search_debounce"`
	DiscardStaleLookups bool          `mapstructure:"discard_stale_lookups"`
}

// LogConfig selects the log format and, for the TUI, the log file.
type LogConfig struct {
	Env  string `mapstructure:"env"`
	Path string `mapstructure:"path"`
}

// ServerConfig holds development backend settings.
type ServerConfig struct {
	Addr         string   `mapstructure:"addr"`
	DatabasePath string   `mapstructure:"database_path"`
	Migrations   string   `mapstructure:"migrations"`
	RateLimit    float64  `mapstructure:"rate_limit"`
	RateBurst    int      `mapstructure:"rate_burst"`
	CORSOrigins  []string `mapstructure:"cors_origins"`
}

const (
	DefaultBackendURL = "http://localhost:9000"
	envPrefix         = "PACKETA"
	envConfigPath     = "PACKETA_CONFIG"
)

// Path returns the config file location: PACKETA_CONFIG when set, otherwise
// ~/.config/packeta/config.toml.
func Path() string {
	if p := os.Getenv(envConfigPath); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "packeta", "config.toml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("backend.url", DefaultBackendURL)
	v.SetDefault("backend.timeout", "10s")

	v.SetDefault("ui.locale", "cs")
	v.SetDefault("ui.search_debounce", "0s")
	v.SetDefault("ui.discard_stale_lookups", true)

	v.SetDefault("log.env", "production")
	v.SetDefault("log.path", "packeta.log")

	v.SetDefault("server.addr", ":9000")
	v.SetDefault("server.database_path", filepath.Join(os.Getenv("HOME"), ".local", "share", "packeta", "devserver.db"))
	v.SetDefault("server.migrations", "")
	v.SetDefault("server.rate_limit", 20.0)
	v.SetDefault("server.rate_burst", 40)
	v.SetDefault("server.cors_origins", []string{"http://localhost:8000", "http://localhost:3000"})
}

// Load reads configuration from .env, the config file and the environment.
// Env var overrides use prefix PACKETA_; the backend URL also honours the
// storefront's NEXT_PUBLIC_MEDUSA_BACKEND_URL.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	if p := os.Getenv(envConfigPath); p != "" {
		v.SetConfigFile(p)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "packeta"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("backend.url", "PACKETA_BACKEND_URL", "NEXT_PUBLIC_MEDUSA_BACKEND_URL"); err != nil {
		return Config{}, fmt.Errorf("bind env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Backend.URL = strings.TrimRight(strings.TrimSpace(c.Backend.URL), "/")
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the programs cannot run with.
func (c Config) Validate() error {
	u, err := url.Parse(c.Backend.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("config: backend.url %q must be an absolute http(s) URL", c.Backend.URL)
	}
	if c.Backend.Timeout < 0 {
		return fmt.Errorf("config: backend.timeout must not be negative")
	}
	if c.UI.SearchDebounce < 0 {
		return fmt.Errorf("config: ui.search_debounce must not be negative")
	}
	switch strings.ToLower(c.UI.Locale) {
	case "cs", "en":
	default:
		return fmt.Errorf("config: unsupported ui.locale %q", c.UI.Locale)
	}
	if c.Server.RateLimit <= 0 || c.Server.RateBurst <= 0 {
		return fmt.Errorf("config: server.rate_limit and server.rate_burst must be positive")
	}
	return nil
}

// Save writes cfg as TOML to Path, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("backend.url", cfg.Backend.URL)
	v.Set("backend.timeout", cfg.Backend.Timeout.String())
	v.Set("ui.locale", cfg.UI.Locale)
	v.Set("ui.search_debounce", cfg.UI.SearchDebounce.String())
	v.Set("ui.discard_stale_lookups", cfg.UI.DiscardStaleLookups)
	v.Set("log.env", cfg.Log.Env)
	v.Set("log.path", cfg.Log.Path)
	v.Set("server.addr", cfg.Server.Addr)
	v.Set("server.database_path", cfg.Server.DatabasePath)
	v.Set("server.migrations", cfg.Server.Migrations)
	v.Set("server.rate_limit", cfg.Server.RateLimit)
	v.Set("server.rate_burst", cfg.Server.RateBurst)
	v.Set("server.cors_origins", cfg.Server.CORSOrigins)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
