/*
Package config holds the settings of a ladder diagram renderer: layout
proportions, colors, cache settling and picking tolerance.

Settings are read from YAML. Values missing from a file keep their
defaults.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/npillmayer/ladder/diagram"
	"github.com/npillmayer/ladder/layout"
	"github.com/npillmayer/ladder/rcache"
	"github.com/npillmayer/ladder/render"
	"github.com/npillmayer/schuko/tracing"
	"gopkg.in/yaml.v3"
)

// tracer writes to trace with key 'config'
func tracer() tracing.Trace {
	return tracing.Select("config")
}

// ErrInvalidConfig indicates settings which do not describe a usable renderer.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all renderer settings.
type Config struct {
	Layout       layout.Options `yaml:"layout"`
	Style        render.Style   `yaml:"style"`
	SettleFrames int            `yaml:"settle_frames"` // directly painted frames after a change
	PathSlop     int            `yaml:"path_slop"`     // picking tolerance for paths, in pixels
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Layout:       layout.DefaultOptions(),
		Style:        render.DefaultStyle(),
		SettleFrames: rcache.DefaultSettleFrames,
		PathSlop:     diagram.DefaultPathSlop,
	}
}

// Load reads a YAML configuration file. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	tracer().Infof("loaded configuration from %s", path)
	return c, nil
}

// Parse decodes YAML settings over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks all settings.
func (c *Config) Validate() error {
	if err := c.Layout.Validate(); err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	if err := c.Style.Validate(); err != nil {
		return fmt.Errorf("style: %w", err)
	}
	if c.SettleFrames < 0 {
		return fmt.Errorf("settle_frames %d: %w", c.SettleFrames, ErrInvalidConfig)
	}
	if c.PathSlop < 0 {
		return fmt.Errorf("path_slop %d: %w", c.PathSlop, ErrInvalidConfig)
	}
	return nil
}

// SessionOptions returns the session options these settings describe.
func (c *Config) SessionOptions() []diagram.Option {
	return []diagram.Option{
		diagram.WithLayout(c.Layout),
		diagram.WithStyle(c.Style),
		diagram.WithSettleFrames(c.SettleFrames),
	}
}
