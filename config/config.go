// Package config holds the settings of the statebox command, read from a
// TOML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sinclairzx81/statebox/box"
	"github.com/sinclairzx81/statebox/codec"
	"github.com/sinclairzx81/statebox/debug"

	"github.com/BurntSushi/toml"
	"github.com/mattn/go-isatty"
)

const (
	EnvConfig = "STATEBOX_CONFIG"
	EnvFormat = "STATEBOX_FORMAT"
	EnvColor  = "STATEBOX_COLOR"
)

type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

var ErrBadColor = errors.New("bad color mode")

func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	case "":
		return ColorAuto, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrBadColor, s)
	}
}

type Config struct {
	Format          codec.Format
	Color           ColorMode
	Debug           []string
	MaxPublishDepth int
}

func Default() Config {
	return Config{
		Format:          codec.YAMLFormat,
		Color:           ColorAuto,
		MaxPublishDepth: box.DefaultMaxPublishDepth,
	}
}

type fileConfig struct {
	Format          string   `toml:"format"`
	Color           string   `toml:"color"`
	Debug           []string `toml:"debug"`
	MaxPublishDepth int      `toml:"max_publish_depth"`
}

// Locate returns path, or the value of $STATEBOX_CONFIG when path is empty.
func Locate(path string) string {
	if path != "" {
		return path
	}
	return os.Getenv(EnvConfig)
}

// Load reads the file at path over the defaults, then applies environment
// overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.loadEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) != 0 {
		return fmt.Errorf("load config %s: unknown keys %v", path, undecoded)
	}
	if meta.IsDefined("format") {
		f, err := codec.ParseFormat(strings.TrimSpace(raw.Format))
		if err != nil {
			return fmt.Errorf("parse format: %w", err)
		}
		c.Format = f
	}
	if meta.IsDefined("color") {
		m, err := ParseColorMode(raw.Color)
		if err != nil {
			return fmt.Errorf("parse color: %w", err)
		}
		c.Color = m
	}
	if meta.IsDefined("debug") {
		c.Debug = normalize(raw.Debug)
	}
	if meta.IsDefined("max_publish_depth") {
		if raw.MaxPublishDepth < 1 {
			return fmt.Errorf("max_publish_depth must be positive, got %d", raw.MaxPublishDepth)
		}
		c.MaxPublishDepth = raw.MaxPublishDepth
	}
	return nil
}

func (c *Config) loadEnv() error {
	if v, ok := os.LookupEnv(EnvFormat); ok && v != "" {
		f, err := codec.ParseFormat(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvFormat, err)
		}
		c.Format = f
	}
	if v, ok := os.LookupEnv(EnvColor); ok {
		m, err := ParseColorMode(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvColor, err)
		}
		c.Color = m
	}
	return nil
}

func normalize(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		v := strings.ToLower(strings.TrimSpace(s))
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Apply turns on the debug toggles named by the configuration.
func (c Config) Apply() error {
	return debug.Enable(c.Debug...)
}

func (c Config) BoxOptions() []box.Option {
	return []box.Option{box.WithMaxPublishDepth(c.MaxPublishDepth)}
}

// UseColor reports whether output written to f should be coloured.
func (c Config) UseColor(f *os.File) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
