// Package config loads folio settings from .folio.yaml, FOLIO_* environment
// variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config is the resolved set of folio settings.
type Config struct {
	// Path is the diskv base directory.
	Path string
	// Store selects the KV backend: diskv, sqlite or memory.
	Store string
	// SQLite is the database file used when Store is sqlite.
	SQLite string
	// Catalog optionally overrides the embedded project catalog.
	Catalog string
	// Digest optionally overrides the built-in terminal password digest.
	Digest string
	// Addr is the HTTP listen address for `folio serve`.
	Addr string

	Contact Contact
	Log     Log
	Rate    Rate
	CORS    CORS

	// File is the config file that was read, if any.
	File string
}

type Contact struct {
	Endpoint string
	Timeout  time.Duration
}

type Log struct {
	Level       string
	Development bool
	// File receives TUI logs; empty discards them.
	File string
}

type Rate struct {
	RPS   int
	Burst int
}

type CORS struct {
	Origins []string
}

// Backend implements store.Config.
func (c *Config) Backend() string { return c.Store }

// BasePath implements store.Config.
func (c *Config) BasePath() string { return c.Path }

// DatabasePath implements store.Config.
func (c *Config) DatabasePath() string { return c.SQLite }

func setDefaults(v *viper.Viper) {
	v.SetDefault("path", "~/.folio")
	v.SetDefault("store", "diskv")
	v.SetDefault("sqlite", "~/.folio.db")
	v.SetDefault("catalog", "")
	v.SetDefault("digest", "")
	v.SetDefault("addr", ":8080")
	v.SetDefault("contact.endpoint", "")
	v.SetDefault("contact.timeout", "10s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("log.file", "")
	v.SetDefault("rate.rps", 20)
	v.SetDefault("rate.burst", 40)
	v.SetDefault("cors.origins", []string{"*"})
}

// Load reads configuration. The config file is looked up in
// $FOLIO_CONFIG_PATH first and then in the working directory; a missing file
// is not an error.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigName(".folio") // .yaml is implicit
	v.SetEnvPrefix("FOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("FOLIO_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}
	return fromViper(v)
}

// Default returns the built-in configuration without consulting files or the
// environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg, err := fromViper(v)
	if err != nil {
		// Defaults contain no user paths that could fail expansion.
		panic(err)
	}
	return cfg
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Path:    v.GetString("path"),
		Store:   strings.ToLower(v.GetString("store")),
		SQLite:  v.GetString("sqlite"),
		Catalog: v.GetString("catalog"),
		Digest:  strings.ToLower(strings.TrimSpace(v.GetString("digest"))),
		Addr:    v.GetString("addr"),
		Contact: Contact{
			Endpoint: v.GetString("contact.endpoint"),
			Timeout:  v.GetDuration("contact.timeout"),
		},
		Log: Log{
			Level:       v.GetString("log.level"),
			Development: v.GetBool("log.development"),
			File:        v.GetString("log.file"),
		},
		Rate: Rate{
			RPS:   v.GetInt("rate.rps"),
			Burst: v.GetInt("rate.burst"),
		},
		CORS: CORS{
			Origins: v.GetStringSlice("cors.origins"),
		},
		File: v.ConfigFileUsed(),
	}

	for _, p := range []*string{&cfg.Path, &cfg.SQLite, &cfg.Catalog, &cfg.Log.File} {
		if *p == "" {
			continue
		}
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return nil, fmt.Errorf("config: expand %q: %w", *p, err)
		}
		*p = expanded
	}

	if cfg.Contact.Timeout <= 0 {
		cfg.Contact.Timeout = 10 * time.Second
	}
	if cfg.Rate.RPS <= 0 {
		cfg.Rate.RPS = 20
	}
	if cfg.Rate.Burst < cfg.Rate.RPS {
		cfg.Rate.Burst = cfg.Rate.RPS
	}
	return cfg, nil
}
