// Package config loads mandel's TOML configuration file.
//
// The file is optional. Every key has a default, and command-line flags
// override whatever the file sets:
//
//	[render]
//	workers = 0          # 0 = one per CPU
//	limit   = 255        # 0 is valid: every point counts as bounded
//	palette = "linear"   # linear | saturate
//	mapping = "inclusive"
//
//	[output]
//	format = "png"       # used when the output path has no extension
//	theme  = "grayscale" # grayscale | fire | water
//
//	[cache]
//	enabled    = true
//	backend    = "file"  # file | redis
//	ttl        = "168h"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr       = ":8080"
//	max_pixels = 16777216 # 0 = no cap
package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/mandel/pkg/errors"
	"github.com/matzehuels/mandel/pkg/fractal"
	"github.com/matzehuels/mandel/pkg/io"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultLimit is the iteration limit used by preview and the API when
	// none is given.
	DefaultLimit = 255

	// DefaultAddr is the listen address of the API server.
	DefaultAddr = ":8080"

	// DefaultMaxPixels caps the size of a single API render (4096x4096).
	// An explicit max_pixels = 0 disables the cap.
	DefaultMaxPixels = 4096 * 4096

	// DefaultTTL is the lifetime of cached renders.
	DefaultTTL = 7 * 24 * time.Hour

	// DefaultRedisAddr is used when the redis backend is selected without
	// an address.
	DefaultRedisAddr = "localhost:6379"

	// DefaultJPEGQuality is the JPEG encoder quality.
	DefaultJPEGQuality = 90
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// =============================================================================
// Config
// =============================================================================

// Config is the whole configuration file.
type Config struct {
	Render RenderConfig `toml:"render"`
	Output OutputConfig `toml:"output"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// RenderConfig holds render defaults.
type RenderConfig struct {
	Workers int    `toml:"workers"`
	Limit   uint32 `toml:"limit"`
	Palette string `toml:"palette"`
	Mapping string `toml:"mapping"`
}

// OutputConfig holds encoder defaults.
type OutputConfig struct {
	Format      string `toml:"format"`
	Theme       string `toml:"theme"`
	JPEGQuality int    `toml:"jpeg_quality"`
}

// CacheConfig selects and configures the render cache.
type CacheConfig struct {
	Enabled       bool     `toml:"enabled"`
	Backend       string   `toml:"backend"`
	TTL           Duration `toml:"ttl"`
	Dir           string   `toml:"dir"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
}

// ServerConfig configures `mandel serve`.
type ServerConfig struct {
	Addr            string   `toml:"addr"`
	MaxPixels       int      `toml:"max_pixels"`
	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

// Duration is a time.Duration written as a Go duration string ("90s").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file exists.
//
// Numeric keys whose zero value is meaningful (render.limit,
// server.max_pixels) are set here and not in SetDefaults, so a file that
// writes them as 0 keeps the 0.
func Default() Config {
	c := Config{
		Render: RenderConfig{Limit: DefaultLimit},
		Cache:  CacheConfig{Enabled: true},
		Server: ServerConfig{MaxPixels: DefaultMaxPixels},
	}
	c.SetDefaults()
	return c
}

// SetDefaults fills every unset field whose zero value is not a valid
// setting.
func (c *Config) SetDefaults() {
	if c.Render.Palette == "" {
		c.Render.Palette = fractal.PaletteLinear.String()
	}
	if c.Render.Mapping == "" {
		c.Render.Mapping = fractal.MapInclusive.String()
	}
	if c.Output.Format == "" {
		c.Output.Format = string(io.FormatPNG)
	}
	if c.Output.Theme == "" {
		c.Output.Theme = io.ThemeGrayscale.Name
	}
	if c.Output.JPEGQuality == 0 {
		c.Output.JPEGQuality = DefaultJPEGQuality
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = BackendFile
	}
	if c.Cache.TTL.Duration == 0 {
		c.Cache.TTL.Duration = DefaultTTL
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisAddr == "" {
		c.Cache.RedisAddr = DefaultRedisAddr
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.ReadTimeout.Duration == 0 {
		c.Server.ReadTimeout.Duration = 10 * time.Second
	}
	if c.Server.WriteTimeout.Duration == 0 {
		c.Server.WriteTimeout.Duration = time.Minute
	}
	if c.Server.ShutdownTimeout.Duration == 0 {
		c.Server.ShutdownTimeout.Duration = 10 * time.Second
	}
}

// Validate checks every field that has a fixed set of values.
func (c Config) Validate() error {
	if err := errs.ValidateWorkers(c.Render.Workers); err != nil {
		return err
	}
	if _, err := fractal.ParsePalette(c.Render.Palette); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "render.palette")
	}
	if _, err := fractal.ParseMapping(c.Render.Mapping); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "render.mapping")
	}
	if _, err := io.ParseFormat(c.Output.Format); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "output.format")
	}
	if _, err := io.ParseTheme(c.Output.Theme); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "output.theme")
	}
	if c.Output.JPEGQuality < 1 || c.Output.JPEGQuality > 100 {
		return errs.New(errs.ErrCodeInvalidConfig, "output.jpeg_quality must be between 1 and 100, got %d", c.Output.JPEGQuality)
	}
	switch c.Cache.Backend {
	case BackendFile, BackendRedis:
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "cache.backend must be file or redis, got %q", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "cache.ttl cannot be negative")
	}
	if c.Server.MaxPixels < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "server.max_pixels cannot be negative")
	}
	return nil
}

// =============================================================================
// Loading
// =============================================================================

// Parse decodes a TOML document on top of Default, so keys missing from the
// document keep their defaults. Unknown keys are rejected so that typos do
// not go unnoticed.
func Parse(data []byte) (Config, error) {
	c := Default()
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errs.New(errs.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load reads the configuration at path. An empty path selects DefaultPath,
// and a missing default file yields Default. A missing explicit path is an
// error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		if explicit {
			return Config{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Default(), nil
	}
	if err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeIO, err, "read config %s", path)
	}

	c, err := Parse(data)
	if err != nil {
		return Config{}, errs.Wrap(errs.GetCode(err), err, "%s", path)
	}
	return c, nil
}

// DefaultPath returns the XDG location of the config file
// (~/.config/mandel/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "mandel", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mandel", "config.toml"), nil
}
