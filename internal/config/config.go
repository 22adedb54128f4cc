// Package config loads runtime settings from a YAML file and FIELDHOUSE_*
// environment variables, with sane defaults for everything.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every tunable the binary reads.
type Config struct {
	// League is the default league for commands that don't name one.
	League string `mapstructure:"league"`
	// Workers bounds batch scrape concurrency; zero means one per CPU.
	Workers int `mapstructure:"workers"`

	RESTPort string `mapstructure:"rest_port"`
	WSPort   string `mapstructure:"ws_port"`

	RedisURL     string        `mapstructure:"redis_url"`
	CacheEnabled bool          `mapstructure:"cache_enabled"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`

	FetchAttempts int           `mapstructure:"fetch_attempts"`
	FetchMinDelay time.Duration `mapstructure:"fetch_min_delay"`
	FetchMaxDelay time.Duration `mapstructure:"fetch_max_delay"`
	FetchTimeout  time.Duration `mapstructure:"fetch_timeout"`
	// UseBrowser switches fetching to headless Chrome for pages that only
	// fill in their payload client side.
	UseBrowser bool `mapstructure:"use_browser"`

	LiveEnabled  bool          `mapstructure:"live_enabled"`
	LiveInterval time.Duration `mapstructure:"live_interval"`

	// TeamDataDir optionally overrides the bundled team reference tables.
	TeamDataDir string `mapstructure:"team_data_dir"`
}

// Default returns production settings.
func Default() Config {
	return Config{
		League:        "mens",
		Workers:       0,
		RESTPort:      "8080",
		WSPort:        "8081",
		RedisURL:      "redis://localhost:6379",
		CacheEnabled:  false,
		CacheTTL:      6 * time.Hour,
		FetchAttempts: 15,
		FetchMinDelay: time.Second,
		FetchMaxDelay: 3 * time.Second,
		FetchTimeout:  30 * time.Second,
		LiveEnabled:   true,
		LiveInterval:  30 * time.Second,
	}
}

// Load reads configuration. path may be empty, in which case fieldhouse.yaml
// is searched for in the working directory and ~/.fieldhouse; a missing file
// is fine, defaults and environment apply either way.
func Load(path string) (Config, error) {
	v := viper.New()
	applyDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("fieldhouse")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.fieldhouse")
	}

	v.SetEnvPrefix("FIELDHOUSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

func applyDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("league", def.League)
	v.SetDefault("workers", def.Workers)
	v.SetDefault("rest_port", def.RESTPort)
	v.SetDefault("ws_port", def.WSPort)
	v.SetDefault("redis_url", def.RedisURL)
	v.SetDefault("cache_enabled", def.CacheEnabled)
	v.SetDefault("cache_ttl", def.CacheTTL)
	v.SetDefault("fetch_attempts", def.FetchAttempts)
	v.SetDefault("fetch_min_delay", def.FetchMinDelay)
	v.SetDefault("fetch_max_delay", def.FetchMaxDelay)
	v.SetDefault("fetch_timeout", def.FetchTimeout)
	v.SetDefault("use_browser", def.UseBrowser)
	v.SetDefault("live_enabled", def.LiveEnabled)
	v.SetDefault("live_interval", def.LiveInterval)
	v.SetDefault("team_data_dir", def.TeamDataDir)
}
