package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds the resolved application configuration.
type Config struct {
	// Theme name: "dark" (default) or "light".
	Theme string `mapstructure:"theme" yaml:"theme"`
	// ShowHidden lists dot-files.
	ShowHidden bool `mapstructure:"show_hidden" yaml:"show_hidden"`
	// DetailRows draws directories as two-line rows with an entry summary.
	DetailRows bool `mapstructure:"detail_rows" yaml:"detail_rows"`
	// MultiSelect enables ctrl/shift clicks and drag selection.
	MultiSelect bool `mapstructure:"multi_select" yaml:"multi_select"`
	// DragSelect keeps an existing selection on press so a drag can start
	// from it; a release without movement still collapses to one row.
	DragSelect bool `mapstructure:"drag_select" yaml:"drag_select"`
	// EdgeBand is the auto-scroll edge band and per-tick step, in rows.
	EdgeBand int `mapstructure:"edge_band" yaml:"edge_band"`
	// AutoScrollInterval is the auto-scroll tick period.
	AutoScrollInterval time.Duration `mapstructure:"autoscroll_interval" yaml:"autoscroll_interval"`
	// RedrawInterval is the redraw coalescing period.
	RedrawInterval time.Duration `mapstructure:"redraw_interval" yaml:"redraw_interval"`
	// DoubleClickTimeout is the maximum gap between the clicks of a double click.
	DoubleClickTimeout time.Duration `mapstructure:"double_click_timeout" yaml:"double_click_timeout"`
	// CacheTTL bounds how long directory listings are reused.
	CacheTTL time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`
	// Watch refreshes expanded directories when they change on disk.
	Watch bool `mapstructure:"watch" yaml:"watch"`
	// WatchDebounce coalesces bursts of filesystem events.
	WatchDebounce time.Duration `mapstructure:"watch_debounce" yaml:"watch_debounce"`
	// LogLevel is a zerolog level name.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	// LogFile receives the application log. Empty uses the state directory.
	LogFile string `mapstructure:"log_file" yaml:"log_file"`
}

// Load reads configuration from ~/.config/rowview/config.yaml (or TOML/JSON).
// An explicit path, when non-empty, replaces the search.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDirectory())
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.SetEnvPrefix("ROWVIEW")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is fine; use defaults.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	cfg.normalize()
	return cfg, nil
}

// Default returns the built-in configuration without reading any file.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	_ = v.Unmarshal(cfg)
	cfg.normalize()
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("theme", "dark")
	v.SetDefault("show_hidden", false)
	v.SetDefault("detail_rows", false)
	v.SetDefault("multi_select", true)
	v.SetDefault("drag_select", true)
	v.SetDefault("edge_band", 1)
	v.SetDefault("autoscroll_interval", "70ms")
	v.SetDefault("redraw_interval", "100ms")
	v.SetDefault("double_click_timeout", "500ms")
	v.SetDefault("cache_ttl", "2s")
	v.SetDefault("watch", true)
	v.SetDefault("watch_debounce", "300ms")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
}

// normalize replaces nonsensical values with their defaults.
func (c *Config) normalize() {
	if c.EdgeBand < 1 {
		c.EdgeBand = 1
	}
	if c.AutoScrollInterval <= 0 {
		c.AutoScrollInterval = 70 * time.Millisecond
	}
	if c.RedrawInterval <= 0 {
		c.RedrawInterval = 100 * time.Millisecond
	}
	if c.DoubleClickTimeout <= 0 {
		c.DoubleClickTimeout = 500 * time.Millisecond
	}
	if c.WatchDebounce <= 0 {
		c.WatchDebounce = 300 * time.Millisecond
	}
	if c.LogFile == "" {
		c.LogFile = filepath.Join(stateDirectory(), "rowview.log")
	}
}

func configDirectory() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "rowview")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "rowview")
}

func stateDirectory() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "rowview")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "rowview")
}
