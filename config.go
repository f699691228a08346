package main

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// ConfigFileName is looked up in the home directory when no -config flag is given
const ConfigFileName = "ive.toml"

const (
	DefaultHost              = "127.0.0.1"
	DefaultPort              = "1225"
	DefaultHistorySize       = 32
	DefaultSlideshowInterval = 5 * time.Second
)

// Flags are the command line overrides for the config file
type Flags struct {
	ConfigPath string
	Dir        string
	Sort       string
}

type tomlConfig struct {
	Directory         string   `toml:"directory"`
	Sort              string   `toml:"sort"`
	Extensions        []string `toml:"extensions"`
	HistorySize       int      `toml:"history_size"`
	SlideshowInterval string   `toml:"slideshow_interval"`
	Slideshow         bool     `toml:"slideshow"`
}

type Config struct {
	toml     tomlConfig
	dir      string
	order    SortOrder
	filter   ImageFilter
	interval time.Duration
	host     string
	port     string
}

func NewConfig(fs IveFS, flags Flags, getenv func(string) string) (*Config, error) {
	tc, err := readConfigFile(fs, flags.ConfigPath)
	if err != nil {
		return nil, err
	}

	c := &Config{
		toml:   tc,
		filter: NewImageFilter(tc.Extensions),
		host:   envOr(getenv, "HOST", DefaultHost),
		port:   envOr(getenv, "PORT", DefaultPort),
	}

	dir := firstNonEmpty(flags.Dir, tc.Directory, ".")
	if c.dir, err = fs.Abs(dir); err != nil {
		return nil, fmt.Errorf("resolve directory %q: %w", dir, err)
	}

	if sort := firstNonEmpty(flags.Sort, tc.Sort); sort != "" {
		if c.order, err = ParseSortOrder(sort); err != nil {
			return nil, err
		}
	}

	c.interval = DefaultSlideshowInterval
	if tc.SlideshowInterval != "" {
		if c.interval, err = time.ParseDuration(tc.SlideshowInterval); err != nil {
			return nil, fmt.Errorf("%w: slideshow_interval: %s", ErrValidation, err)
		}
		if c.interval <= 0 {
			return nil, fmt.Errorf("%w: slideshow_interval must be positive", ErrValidation)
		}
	}

	if tc.HistorySize < 0 {
		return nil, fmt.Errorf("%w: history_size cannot be negative", ErrValidation)
	}
	if c.toml.HistorySize == 0 {
		c.toml.HistorySize = DefaultHistorySize
	}

	return c, nil
}

// readConfigFile loads the TOML config. A missing file is only an error
// when its path was given explicitly.
func readConfigFile(fsys IveFS, path string) (tomlConfig, error) {
	var tc tomlConfig

	explicit := path != ""
	if !explicit {
		home, err := fsys.HomeDir()
		if err != nil {
			return tc, fmt.Errorf("find home directory: %w", err)
		}
		path = filepath.Join(home, ConfigFileName)
	}

	f, err := fsys.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return tc, nil
		}
		return tc, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	if err := toml.NewDecoder(f).DisallowUnknownFields().Decode(&tc); err != nil {
		return tc, fmt.Errorf("parse config %q: %w", path, err)
	}

	return tc, nil
}

func (c *Config) Dir() string {
	return c.dir
}

func (c *Config) SortOrder() SortOrder {
	return c.order
}

func (c *Config) ImageFilter() ImageFilter {
	return c.filter
}

func (c *Config) HistorySize() int {
	return c.toml.HistorySize
}

func (c *Config) SlideshowInterval() time.Duration {
	return c.interval
}

// StartSlideshow reports whether the slideshow should run on startup
func (c *Config) StartSlideshow() bool {
	return c.toml.Slideshow
}

func (c *Config) Address() string {
	return net.JoinHostPort(c.host, c.port)
}

func envOr(getenv func(string) string, key string, fallback string) string {
	value := getenv(key)
	if value == "" {
		value = fallback
	}
	return value
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
