// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package amfcmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/amf/cmd/amf/cli"
	"github.com/bureau-foundation/amf/lib/amf0"
	"github.com/bureau-foundation/amf/lib/codec"
	"github.com/bureau-foundation/amf/lib/config"
)

type convertParams struct {
	Config  configFlag
	From    string `flag:"from"      desc:"input format"  default:"amf0" enum:"amf0,cbor"`
	To      string `flag:"to,t"      desc:"output format" default:"json" enum:"json,yaml,cbor,cbor-diag,amf0"`
	Hex     bool   `flag:"hex,x"     desc:"treat input as a hex dump"`
	Compact bool   `flag:"compact,c" desc:"compact JSON output"`
	Slurp   bool   `flag:"slurp,s"   desc:"write all values as one array (json, yaml, cbor)"`
	Sort    bool   `flag:"sort"      desc:"sort object properties (amf0 output)"`
	Color   string `flag:"color"     desc:"colorize output (default from profile)" enum:"auto,always,never"`
}

func convertCommand() *cli.Command {
	var params convertParams

	return &cli.Command{
		Name:    "convert",
		Summary: "Convert between AMF0, CBOR, JSON, and YAML",
		Description: `Convert a sequence of values from one format to another.

AMF0 input is decoded with the codec profile. CBOR input is a CBOR
sequence; each item must be representable in AMF0 (no byte strings, no
non-string map keys). CBOR output uses Core Deterministic Encoding, so
the same values always produce the same bytes, and dates are tag 0
timestamps with millisecond precision.

"cbor-diag" writes CBOR diagnostic notation (RFC 8949 section 8), one
line per value. "amf0" writes the values back as AMF0, for example to
normalize a capture with --sort.`,
		Usage: "amf convert [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "AMF0 capture to a CBOR sequence",
				Command:     "amf convert --to cbor capture.amf > capture.cbor",
			},
			{
				Description: "Inspect the CBOR form",
				Command:     "amf convert --to cbor-diag capture.amf",
			},
			{
				Description: "CBOR back to canonical AMF0",
				Command:     "amf convert --from cbor --to amf0 --sort capture.cbor",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			data, remaining, err := readInput(args, params.Hex, os.Stdin, logger)
			if err != nil {
				return err
			}
			if err := expectNoArgs("convert", remaining); err != nil {
				return err
			}
			cfg, err := params.Config.load(logger)
			if err != nil {
				return err
			}
			return convertValues(data, os.Stdout, cfg, params)
		},
	}
}

// convertValues reads values in params.From format from data and
// writes them to w in params.To format.
func convertValues(data []byte, w io.Writer, cfg *config.Config, params convertParams) error {
	var values []amf0.Value
	switch params.From {
	case "", "amf0":
		mode, err := decMode(cfg)
		if err != nil {
			return err
		}
		decoded, err := decodeAll(mode, data)
		if err != nil {
			return err
		}
		for _, value := range decoded {
			values = append(values, value.Value)
		}
	case "cbor":
		var err error
		values, err = readCBORSequence(data)
		if err != nil {
			return err
		}
	default:
		return cli.Validation("unknown input format %q", params.From)
	}

	switch params.To {
	case "", "json", "yaml":
		natives := make([]any, len(values))
		for index, value := range values {
			natives[index] = jsonSafe(amf0.ToNative(value))
		}
		options := renderOptionsFor(cfg, params.To, params.Color, params.Compact, params.Slurp)
		return renderValues(w, natives, options)

	case "cbor":
		return writeCBOR(w, values, params.Slurp)

	case "cbor-diag":
		for index, value := range values {
			encoded, err := codec.MarshalValue(value)
			if err != nil {
				return cli.Validation("value %d: %w", index, err)
			}
			notation, err := codec.Diagnose(encoded)
			if err != nil {
				return cli.Internal("value %d: diagnose CBOR: %w", index, err)
			}
			if _, err := fmt.Fprintln(w, notation); err != nil {
				return err
			}
		}
		return nil

	case "amf0":
		mode, err := encMode(cfg, params.Sort)
		if err != nil {
			return err
		}
		var encoded []byte
		for index, value := range values {
			encoded, err = mode.Append(encoded, value)
			if err != nil {
				return cli.Validation("value %d: %w", index, err)
			}
		}
		_, err = w.Write(encoded)
		return err

	default:
		return cli.Validation("unknown output format %q", params.To)
	}
}

// readCBORSequence decodes each item of a CBOR sequence to an AMF0
// value.
func readCBORSequence(data []byte) ([]amf0.Value, error) {
	if len(data) == 0 {
		return nil, cli.Validation("empty input: expected CBOR data")
	}
	decoder := codec.NewDecoder(bytes.NewReader(data))
	var values []amf0.Value
	for {
		value, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			return values, nil
		}
		if err != nil {
			return nil, cli.Validation("%w", err)
		}
		values = append(values, value)
	}
}

// writeCBOR writes values as a CBOR sequence, or as one CBOR array
// when slurp is set.
func writeCBOR(w io.Writer, values []amf0.Value, slurp bool) error {
	if slurp {
		encoded, err := codec.MarshalValues(values)
		if err != nil {
			return cli.Internal("encode CBOR: %w", err)
		}
		_, err = w.Write(encoded)
		return err
	}

	encoder := codec.NewEncoder(w)
	for index, value := range values {
		if err := encoder.Encode(value); err != nil {
			return cli.Internal("value %d: encode CBOR: %w", index, err)
		}
	}
	return nil
}
