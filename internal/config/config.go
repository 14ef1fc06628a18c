// Package config loads the host configuration: logging, window, headless
// runner, seed and metrics endpoint. Game tuning is compiled in and is not
// read from here.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable consulted when no path is given.
const EnvPath = "WIREBOIDS_CONFIG"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Log         LogConfig         `yaml:"log"`
	Window      WindowConfig      `yaml:"window"`
	Framebuffer FramebufferConfig `yaml:"framebuffer"`
	Headless    HeadlessConfig    `yaml:"headless"`
	Game        GameConfig        `yaml:"game"`
	Metrics     MetricsConfig     `yaml:"metrics"`
}

type LogConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

type WindowConfig struct {
	Scale int `yaml:"scale"`
	TPS   int `yaml:"tps"`
}

type FramebufferConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type HeadlessConfig struct {
	Enabled        bool   `yaml:"enabled"`
	Hz             int    `yaml:"hz"`
	Ticks          uint64 `yaml:"ticks"`
	ExitOnGameOver bool   `yaml:"exit_on_game_over"`
}

type GameConfig struct {
	Seed uint32 `yaml:"seed"`
}

type MetricsConfig struct {
	// Addr is the listen address of the /metrics endpoint; empty disables it.
	Addr string `yaml:"addr"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Log:         LogConfig{Level: "info", Encoding: "console"},
		Window:      WindowConfig{Scale: 1, TPS: 60},
		Framebuffer: FramebufferConfig{Width: 960, Height: 540},
		Headless:    HeadlessConfig{Hz: 60},
	}
}

// Load reads a YAML file over the defaults. An empty path falls back to
// $WIREBOIDS_CONFIG, and to the plain defaults when that is unset too.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvPath)
		if path == "" {
			return Default(), nil
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Window.Scale <= 0:
		return fmt.Errorf("%w: window.scale must be positive, got %d", ErrInvalid, c.Window.Scale)
	case c.Window.TPS <= 0:
		return fmt.Errorf("%w: window.tps must be positive, got %d", ErrInvalid, c.Window.TPS)
	case c.Framebuffer.Width <= 0 || c.Framebuffer.Height <= 0:
		return fmt.Errorf("%w: framebuffer must be positive, got %dx%d", ErrInvalid, c.Framebuffer.Width, c.Framebuffer.Height)
	case c.Headless.Hz <= 0:
		return fmt.Errorf("%w: headless.hz must be positive, got %d", ErrInvalid, c.Headless.Hz)
	case c.Log.Encoding != "json" && c.Log.Encoding != "console":
		return fmt.Errorf("%w: log.encoding must be json or console, got %q", ErrInvalid, c.Log.Encoding)
	}
	return nil
}

// Marshal renders c as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
