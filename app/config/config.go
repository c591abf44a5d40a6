// Package config loads the unitcalc settings file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	appDir   = "unitcalc"
	fileName = "config.yaml"

	DefaultEndpoint = "http://www.mnb.hu/arfolyamok.asmx"
	DefaultTimeout  = 10 * time.Second
)

type Config struct {
	Rates   Rates   `yaml:"rates"`
	REPL    REPL    `yaml:"repl"`
	Display Display `yaml:"display"`
}

// Rates configures the exchange rate source.
type Rates struct {
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
	CacheDir string        `yaml:"cache_dir"`
	Offline  bool          `yaml:"offline"` // cache only, never fetch
}

type REPL struct {
	HistoryFile  string `yaml:"history_file"`
	Prompt       string `yaml:"prompt"`
	Continuation string `yaml:"continuation"`
}

type Display struct {
	Exact bool `yaml:"exact"` // render rationals as num/den
}

// Default returns the settings used when no file exists.
func Default() *Config {
	cfg := &Config{
		Rates: Rates{
			Endpoint: DefaultEndpoint,
			Timeout:  DefaultTimeout,
		},
		REPL: REPL{
			Prompt:       ">> ",
			Continuation: ".. ",
		},
	}
	cfg.fill()
	return cfg
}

// DefaultPath is $XDG_CONFIG_HOME/unitcalc/config.yaml or the platform
// equivalent. It is empty when no config directory is known.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appDir, fileName)
}

// Load reads the file at path over the defaults. An empty path means
// DefaultPath, which may be missing; an explicitly named file must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return Default(), nil
		}
	}
	f, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	defer f.Close()
	return Read(f, path)
}

// Read decodes a config document over the defaults. Unknown keys are an
// error. name is only used in error messages.
func Read(r io.Reader, name string) (*Config, error) {
	cfg := Default()
	cfg.Rates.CacheDir = ""
	cfg.REPL.HistoryFile = ""

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config %s: %w", name, err)
	}
	if cfg.Rates.Timeout < 0 {
		return nil, fmt.Errorf("config %s: negative rates.timeout %v", name, cfg.Rates.Timeout)
	}
	cfg.fill()
	return cfg, nil
}

// fill derives the paths left empty.
func (c *Config) fill() {
	if c.Rates.Endpoint == "" {
		c.Rates.Endpoint = DefaultEndpoint
	}
	if c.Rates.Timeout == 0 {
		c.Rates.Timeout = DefaultTimeout
	}
	if c.Rates.CacheDir == "" {
		if dir, err := os.UserCacheDir(); err == nil {
			c.Rates.CacheDir = filepath.Join(dir, appDir)
		}
	}
	if c.REPL.HistoryFile == "" && c.Rates.CacheDir != "" {
		c.REPL.HistoryFile = filepath.Join(c.Rates.CacheDir, "history.txt")
	}
}
