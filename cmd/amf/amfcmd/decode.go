// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package amfcmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/amf/cmd/amf/cli"
	"github.com/bureau-foundation/amf/lib/config"
)

type decodeParams struct {
	Config  configFlag
	Hex     bool   `flag:"hex,x"     desc:"treat input as a hex dump"`
	Compact bool   `flag:"compact,c" desc:"compact output (no indentation)"`
	Slurp   bool   `flag:"slurp,s"   desc:"write all values as one array"`
	Format  string `flag:"format,f"  desc:"output format (default from profile)" enum:"json,yaml"`
	Color   string `flag:"color"     desc:"colorize output (default from profile)" enum:"auto,always,never"`
}

func decodeCommand() *cli.Command {
	var params decodeParams

	return &cli.Command{
		Name:    "decode",
		Summary: "Convert AMF0 values to JSON or YAML",
		Description: `Decode a sequence of AMF0 values and write each one as JSON (or YAML)
on stdout.

Objects and ECMA arrays become JSON objects; a typed object carries its
class name under "$class". Strict arrays become arrays. Dates with a
finite timestamp become RFC 3339 strings. References, which this codec
does not resolve, appear as {"$ref": N}. Null, undefined, and
unsupported values become null. NaN and the infinities are written as
the strings "NaN", "Infinity", and "-Infinity".

Values embedded with the AVM+ marker are decoded with the AMF3 scalar
decoder and appear as plain JSON scalars.`,
		Usage: "amf decode [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Decode an RTMP command payload",
				Command:     "amf decode connect.amf",
			},
			{
				Description: "Decode a hex dump",
				Command:     "echo '02 00 05 68 65 6c 6c 6f' | amf decode --hex",
			},
			{
				Description: "Decode a zstd-compressed capture to a YAML stream",
				Command:     "amf decode -f yaml capture.amf.zst",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			data, remaining, err := readInput(args, params.Hex, os.Stdin, logger)
			if err != nil {
				return err
			}
			if err := expectNoArgs("decode", remaining); err != nil {
				return err
			}
			cfg, err := params.Config.load(logger)
			if err != nil {
				return err
			}
			return decodeAMF(data, os.Stdout, cfg, renderOptionsFor(cfg, params.Format, params.Color, params.Compact, params.Slurp))
		},
	}
}

// renderOptionsFor merges flag values over the profile's output
// section. Empty flag values defer to the profile.
func renderOptionsFor(cfg *config.Config, format, color string, compact, slurp bool) renderOptions {
	options := renderOptions{
		Format:  cfg.Output.Format,
		Color:   cfg.Output.Color,
		Compact: compact,
		Slurp:   slurp,
	}
	if format != "" {
		options.Format = format
	}
	if color != "" {
		options.Color = color
	}
	return options
}

// decodeAMF decodes every AMF0 value in data and renders it to w.
func decodeAMF(data []byte, w io.Writer, cfg *config.Config, options renderOptions) error {
	mode, err := decMode(cfg)
	if err != nil {
		return err
	}
	values, err := decodeAll(mode, data)
	if err != nil {
		return err
	}
	return renderValues(w, nativeValues(values), options)
}
