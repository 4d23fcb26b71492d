// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package amfcmd

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/amf/cmd/amf/cli"
	"github.com/bureau-foundation/amf/lib/amf0"
	"github.com/bureau-foundation/amf/lib/config"
)

// configFlag adds --config to a command's params. It implements
// cli.FlagBinder so every params struct gets the same flag by
// embedding it.
type configFlag struct {
	Path string
}

func (c *configFlag) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&c.Path, "config", "", "codec profile (YAML); defaults to $"+config.EnvVar)
}

// load resolves the codec profile: the --config path, then the
// AMF_CONFIG environment variable, then built-in defaults.
func (c *configFlag) load(logger *slog.Logger) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case c.Path != "":
		cfg, err = config.LoadFile(c.Path)
	case os.Getenv(config.EnvVar) != "":
		cfg, err = config.Load()
	default:
		return config.Default(), nil
	}
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, cli.NotFound("loading codec profile: %w", err)
		}
		return nil, cli.Validation("loading codec profile: %w", err)
	}
	logger.Debug("loaded codec profile", "profile", cfg.Profile)
	return cfg, nil
}

func decMode(cfg *config.Config) (amf0.DecMode, error) {
	options, err := cfg.DecOptions()
	if err != nil {
		return amf0.DecMode{}, cli.Validation("%w", err)
	}
	mode, err := options.DecMode()
	if err != nil {
		return amf0.DecMode{}, cli.Validation("%w", err)
	}
	return mode, nil
}

func encMode(cfg *config.Config, sortKeys bool) (amf0.EncMode, error) {
	options, err := cfg.EncOptions()
	if err != nil {
		return amf0.EncMode{}, cli.Validation("%w", err)
	}
	options.SortKeys = options.SortKeys || sortKeys
	mode, err := options.EncMode()
	if err != nil {
		return amf0.EncMode{}, cli.Validation("%w", err)
	}
	return mode, nil
}
