// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package amfcmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/amf/cmd/amf/cli"
	"github.com/bureau-foundation/amf/lib/config"
)

type validateParams struct {
	Config configFlag
	Hex    bool `flag:"hex,x"   desc:"treat input as a hex dump"`
	Quiet  bool `flag:"quiet,q" desc:"report only values that are not canonical"`
}

func validateCommand() *cli.Command {
	var params validateParams

	return &cli.Command{
		Name:    "validate",
		Summary: "Check that AMF0 input is well formed and canonical",
		Description: `Decode every value in the input, re-encode it with properties in
bytewise key order, and compare the result with the original bytes.

A value is canonical when re-encoding reproduces it exactly. Common
reasons a well-formed value is not canonical: properties out of key
order, an ECMA array count that does not match its entries, a long
string marker on a short string, and reserved or unknown markers.

Exits 0 when every value is canonical and 1 otherwise. Malformed input
is an error (exit 2).`,
		Usage: "amf validate [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Check an encoder's output",
				Command:     "amf validate payload.amf",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			data, remaining, err := readInput(args, params.Hex, os.Stdin, logger)
			if err != nil {
				return err
			}
			if err := expectNoArgs("validate", remaining); err != nil {
				return err
			}
			cfg, err := params.Config.load(logger)
			if err != nil {
				return err
			}
			return validateAMF(data, os.Stdout, cfg, params.Quiet)
		},
	}
}

// validateAMF reports for each value in data whether its encoding is
// canonical. It returns an *cli.ExitError with code 1 when any value
// is not.
func validateAMF(data []byte, w io.Writer, cfg *config.Config, quiet bool) error {
	decoder, err := decMode(cfg)
	if err != nil {
		return err
	}
	encoder, err := encMode(cfg, true)
	if err != nil {
		return err
	}
	values, err := decodeAll(decoder, data)
	if err != nil {
		return err
	}

	failures := 0
	for index, value := range values {
		original := value.Bytes(data)
		reencoded, err := encoder.Marshal(value.Value)
		var problem error
		switch {
		case err != nil:
			problem = fmt.Errorf("cannot re-encode: %w", err)
		case !bytes.Equal(original, reencoded):
			problem = describeMismatch(original, reencoded, value.Offset)
		}

		if problem != nil {
			failures++
			fmt.Fprintf(w, "value %d at byte %d: %v\n", index, value.Offset, problem)
		} else if !quiet {
			fmt.Fprintf(w, "value %d at byte %d: canonical\n", index, value.Offset)
		}
	}

	if failures > 0 {
		return &cli.ExitError{Code: 1}
	}
	return nil
}

// describeMismatch reports the first differing byte, as an offset into
// the whole input.
func describeMismatch(original, reencoded []byte, base int64) error {
	offset := 0
	limit := min(len(original), len(reencoded))
	for offset < limit && original[offset] == reencoded[offset] {
		offset++
	}
	return fmt.Errorf("not canonical: first difference at byte %d (original %d bytes, re-encoded %d bytes)",
		base+int64(offset), len(original), len(reencoded))
}
