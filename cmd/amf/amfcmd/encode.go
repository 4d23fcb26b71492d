// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package amfcmd

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/amf/cmd/amf/cli"
	"github.com/bureau-foundation/amf/lib/amf0"
	"github.com/bureau-foundation/amf/lib/capture"
	"github.com/bureau-foundation/amf/lib/config"
)

type encodeParams struct {
	Config    configFlag
	Sort      bool   `flag:"sort"       desc:"write object properties in bytewise key order"`
	Compress  string `flag:"compress"   desc:"compress the output (default from profile)" enum:"none,zstd,lz4"`
	HexOutput bool   `flag:"hex-output" desc:"write a hex dump instead of binary"`
}

func encodeCommand() *cli.Command {
	var params encodeParams

	return &cli.Command{
		Name:    "encode",
		Summary: "Convert JSON to AMF0",
		Description: `Read a sequence of JSON values and write each one as an AMF0 value.

Input may contain comments and trailing commas (JSONC). Numbers become
AMF0 numbers, objects become anonymous objects, arrays become strict
arrays. The decode forms are accepted back: an object with a "$class"
string becomes a typed object, {"$ref": N} becomes a reference, and
{"$date": millis} becomes a date.

With --sort, properties are written in bytewise key order, which makes
the output canonical (see "amf validate"). Go maps have no order, so
without --sort property order varies between runs.`,
		Usage: "amf encode [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Encode an RTMP connect command object",
				Command:     `echo '"connect" 1 {"app":"live","objectEncoding":0}' | amf encode --sort > connect.amf`,
			},
			{
				Description: "Round-trip through the codec",
				Command:     `echo '{"count":42}' | amf encode | amf decode`,
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			data, remaining, err := readInput(args, false, os.Stdin, logger)
			if err != nil {
				return err
			}
			if err := expectNoArgs("encode", remaining); err != nil {
				return err
			}
			cfg, err := params.Config.load(logger)
			if err != nil {
				return err
			}
			return encodeJSON(data, os.Stdout, cfg, params)
		},
	}
}

// encodeJSON converts the JSON values in data to AMF0 and writes the
// encoded sequence to w.
func encodeJSON(data []byte, w io.Writer, cfg *config.Config, params encodeParams) error {
	mode, err := encMode(cfg, params.Sort)
	if err != nil {
		return err
	}

	compressionName := cfg.Encode.Compression
	if params.Compress != "" {
		compressionName = params.Compress
	}
	compression, err := capture.ParseCompression(compressionName)
	if err != nil {
		return cli.Validation("%w", err)
	}

	natives, err := parseJSONValues(data)
	if err != nil {
		return err
	}

	var encoded []byte
	for index, native := range natives {
		value, err := amf0.FromNative(native)
		if err != nil {
			return cli.Validation("value %d: %w", index, err)
		}
		encoded, err = mode.Append(encoded, value)
		if err != nil {
			return cli.Validation("value %d: %w", index, err)
		}
	}

	var output bytes.Buffer
	writer, err := capture.NewWriter(&output, compression)
	if err != nil {
		return cli.Internal("open %s writer: %w", compression, err)
	}
	if _, err := writer.Write(encoded); err != nil {
		return cli.Internal("compress output: %w", err)
	}
	if err := writer.Close(); err != nil {
		return cli.Internal("compress output: %w", err)
	}

	if params.HexOutput {
		_, err = fmt.Fprintln(w, hex.EncodeToString(output.Bytes()))
		return err
	}
	_, err = w.Write(output.Bytes())
	return err
}

// parseJSONValues reads every JSON value in data. Comments and
// trailing commas are stripped first. Numbers stay json.Number until
// FromNative parses them as float64.
func parseJSONValues(data []byte) ([]any, error) {
	decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	decoder.UseNumber()

	var natives []any
	for {
		var native any
		err := decoder.Decode(&native)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, cli.Validation("parse JSON value %d: %w", len(natives), err)
		}
		natives = append(natives, native)
	}
	if len(natives) == 0 {
		return nil, cli.Validation("empty input: expected JSON data")
	}
	return natives, nil
}
