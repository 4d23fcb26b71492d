// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/amf/lib/amf0"
	"github.com/bureau-foundation/amf/lib/amf3"
)

// EnvVar names the environment variable read by Load.
const EnvVar = "AMF_CONFIG"

// Config is a codec profile: how values are decoded, encoded, and
// rendered by the amf tools.
type Config struct {
	// Profile selects one of Profiles to apply over the base values.
	Profile string `yaml:"profile"`

	// Decode configures decoding.
	Decode DecodeConfig `yaml:"decode"`

	// Encode configures encoding.
	Encode EncodeConfig `yaml:"encode"`

	// Output configures rendering of decoded values.
	Output OutputConfig `yaml:"output"`

	// Profiles holds named overrides, applied when Profile names one.
	Profiles map[string]*Overrides `yaml:"profiles,omitempty"`
}

// Overrides contains the fields a named profile can override. Unset
// fields leave the base configuration alone.
type Overrides struct {
	Decode *DecodeOverrides `yaml:"decode,omitempty"`
	Encode *EncodeOverrides `yaml:"encode,omitempty"`
	Output *OutputConfig    `yaml:"output,omitempty"`
}

// DecodeOverrides mirrors DecodeConfig with presence tracking.
type DecodeOverrides struct {
	Kinds                []string `yaml:"kinds"`
	AMF3Kinds            []string `yaml:"amf3_kinds"`
	MaxDepth             *int     `yaml:"max_depth"`
	RejectUnknownMarkers *bool    `yaml:"reject_unknown_markers"`
}

// EncodeOverrides mirrors EncodeConfig with presence tracking.
type EncodeOverrides struct {
	Kinds       []string `yaml:"kinds"`
	AMF3Kinds   []string `yaml:"amf3_kinds"`
	MaxDepth    *int     `yaml:"max_depth"`
	SortKeys    *bool    `yaml:"sort_keys"`
	Compression string   `yaml:"compression"`
}

// DecodeConfig configures decoding.
type DecodeConfig struct {
	// Kinds lists the AMF0 kinds to recognize by name ("number",
	// "ecma_array", ...). Empty means all kinds.
	Kinds []string `yaml:"kinds"`

	// AMF3Kinds lists the AMF3 kinds recognized inside AVM+ values
	// ("integer", "double"). Empty means both.
	AMF3Kinds []string `yaml:"amf3_kinds"`

	// MaxDepth bounds composite nesting.
	// Default: 256
	MaxDepth int `yaml:"max_depth"`

	// RejectUnknownMarkers fails decoding on reserved and unknown
	// markers instead of producing unsupported values.
	RejectUnknownMarkers bool `yaml:"reject_unknown_markers"`
}

// EncodeConfig configures encoding.
type EncodeConfig struct {
	// Kinds lists the AMF0 kinds to encode. Values of other kinds are
	// written as the unsupported marker. Empty means all kinds.
	Kinds []string `yaml:"kinds"`

	// AMF3Kinds lists the AMF3 kinds encodable inside AVM+ values.
	AMF3Kinds []string `yaml:"amf3_kinds"`

	// MaxDepth bounds composite nesting.
	// Default: 256
	MaxDepth int `yaml:"max_depth"`

	// SortKeys writes properties in bytewise key order.
	SortKeys bool `yaml:"sort_keys"`

	// Compression wraps encoded output: "none", "zstd", or "lz4".
	// Default: none
	Compression string `yaml:"compression"`
}

// OutputConfig configures rendering of decoded values.
type OutputConfig struct {
	// Format is "json" or "yaml".
	// Default: json
	Format string `yaml:"format"`

	// Color is "auto", "always", or "never".
	// Default: auto
	Color string `yaml:"color"`
}

// Default returns the default configuration. Tools use it directly
// when no configuration file is given.
func Default() *Config {
	return &Config{
		Decode: DecodeConfig{
			MaxDepth: amf0.DefaultMaxDepth,
		},
		Encode: EncodeConfig{
			MaxDepth:    amf0.DefaultMaxDepth,
			Compression: "none",
		},
		Output: OutputConfig{
			Format: "json",
			Color:  "auto",
		},
	}
}

// Load loads configuration from the file named by AMF_CONFIG.
//
// There is no discovery: if AMF_CONFIG is not set, Load fails.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvVar)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of a codec profile, or use --config flag", EnvVar)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, applies the
// selected profile, and validates the result.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := cfg.applyProfile(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// applyProfile merges the selected profile's overrides.
func (c *Config) applyProfile() error {
	if c.Profile == "" {
		return nil
	}
	overrides, ok := c.Profiles[c.Profile]
	if !ok {
		return fmt.Errorf("profile %q is not defined", c.Profile)
	}
	if overrides == nil {
		return nil
	}

	if overrides.Decode != nil {
		if overrides.Decode.Kinds != nil {
			c.Decode.Kinds = overrides.Decode.Kinds
		}
		if overrides.Decode.AMF3Kinds != nil {
			c.Decode.AMF3Kinds = overrides.Decode.AMF3Kinds
		}
		if overrides.Decode.MaxDepth != nil {
			c.Decode.MaxDepth = *overrides.Decode.MaxDepth
		}
		if overrides.Decode.RejectUnknownMarkers != nil {
			c.Decode.RejectUnknownMarkers = *overrides.Decode.RejectUnknownMarkers
		}
	}

	if overrides.Encode != nil {
		if overrides.Encode.Kinds != nil {
			c.Encode.Kinds = overrides.Encode.Kinds
		}
		if overrides.Encode.AMF3Kinds != nil {
			c.Encode.AMF3Kinds = overrides.Encode.AMF3Kinds
		}
		if overrides.Encode.MaxDepth != nil {
			c.Encode.MaxDepth = *overrides.Encode.MaxDepth
		}
		if overrides.Encode.Compression != "" {
			c.Encode.Compression = overrides.Encode.Compression
		}
		if overrides.Encode.SortKeys != nil {
			c.Encode.SortKeys = *overrides.Encode.SortKeys
		}
	}

	if overrides.Output != nil {
		if overrides.Output.Format != "" {
			c.Output.Format = overrides.Output.Format
		}
		if overrides.Output.Color != "" {
			c.Output.Color = overrides.Output.Color
		}
	}
	return nil
}

// Validate checks the configuration for errors, reporting all of them.
func (c *Config) Validate() error {
	var errs []error

	if _, err := c.DecOptions(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.EncOptions(); err != nil {
		errs = append(errs, err)
	}

	compressions := []string{"none", "zstd", "lz4"}
	if !slices.Contains(compressions, c.Encode.Compression) {
		errs = append(errs, fmt.Errorf("encode.compression must be one of: %v", compressions))
	}
	formats := []string{"json", "yaml"}
	if !slices.Contains(formats, c.Output.Format) {
		errs = append(errs, fmt.Errorf("output.format must be one of: %v", formats))
	}
	colors := []string{"auto", "always", "never"}
	if !slices.Contains(colors, c.Output.Color) {
		errs = append(errs, fmt.Errorf("output.color must be one of: %v", colors))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// DecOptions converts the decode section to codec options.
func (c *Config) DecOptions() (amf0.DecOptions, error) {
	kinds, err := amf0.ParseKindSet(c.Decode.Kinds)
	if err != nil {
		return amf0.DecOptions{}, fmt.Errorf("decode.kinds: %w", err)
	}
	embedded, err := amf3.ParseKindSet(c.Decode.AMF3Kinds)
	if err != nil {
		return amf0.DecOptions{}, fmt.Errorf("decode.amf3_kinds: %w", err)
	}
	if c.Decode.MaxDepth < 0 {
		return amf0.DecOptions{}, fmt.Errorf("decode.max_depth must not be negative, got %d", c.Decode.MaxDepth)
	}
	return amf0.DecOptions{
		Kinds:                kinds,
		MaxDepth:             c.Decode.MaxDepth,
		RejectUnknownMarkers: c.Decode.RejectUnknownMarkers,
		AMF3:                 amf3.DecOptions{Kinds: embedded},
	}, nil
}

// EncOptions converts the encode section to codec options.
func (c *Config) EncOptions() (amf0.EncOptions, error) {
	kinds, err := amf0.ParseKindSet(c.Encode.Kinds)
	if err != nil {
		return amf0.EncOptions{}, fmt.Errorf("encode.kinds: %w", err)
	}
	embedded, err := amf3.ParseKindSet(c.Encode.AMF3Kinds)
	if err != nil {
		return amf0.EncOptions{}, fmt.Errorf("encode.amf3_kinds: %w", err)
	}
	if c.Encode.MaxDepth < 0 {
		return amf0.EncOptions{}, fmt.Errorf("encode.max_depth must not be negative, got %d", c.Encode.MaxDepth)
	}
	return amf0.EncOptions{
		Kinds:    kinds,
		SortKeys: c.Encode.SortKeys,
		MaxDepth: c.Encode.MaxDepth,
		AMF3:     amf3.EncOptions{Kinds: embedded},
	}, nil
}
