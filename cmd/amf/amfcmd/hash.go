// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package amfcmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/amf/cmd/amf/cli"
	"github.com/bureau-foundation/amf/lib/config"
	"github.com/bureau-foundation/amf/lib/digest"
)

type hashParams struct {
	cli.JSONOutput
	Config configFlag
	Hex    bool `flag:"hex,x" desc:"treat input as a hex dump"`
}

// hashEntry is the digest of one value, for --json output.
type hashEntry struct {
	Index  int    `json:"index"`
	Offset int64  `json:"offset"`
	Length int64  `json:"length"`
	Digest string `json:"digest"`
}

// hashResult is the --json output of amf hash.
type hashResult struct {
	Values []hashEntry `json:"values"`
	Stream string      `json:"stream"`
}

func hashCommand() *cli.Command {
	var params hashParams

	return &cli.Command{
		Name:    "hash",
		Summary: "Print BLAKE3 content digests of AMF0 values",
		Description: `Print a content digest for each value in the input, then a digest of
the whole sequence.

A value digest is computed over the value's canonical encoding, so two
encodings of the same value tree that differ only in property order
hash the same. The sequence digest covers the ordered value digests.`,
		Usage: "amf hash [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Digest a compressed capture",
				Command:     "amf hash capture.amf.zst",
			},
			{
				Description: "Digests as JSON",
				Command:     "amf hash --json capture.amf",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			data, remaining, err := readInput(args, params.Hex, os.Stdin, logger)
			if err != nil {
				return err
			}
			if err := expectNoArgs("hash", remaining); err != nil {
				return err
			}
			cfg, err := params.Config.load(logger)
			if err != nil {
				return err
			}
			return hashAMF(data, os.Stdout, cfg, &params.JSONOutput)
		},
	}
}

// hashAMF digests every value in data and writes the results to w.
func hashAMF(data []byte, w io.Writer, cfg *config.Config, output *cli.JSONOutput) error {
	mode, err := decMode(cfg)
	if err != nil {
		return err
	}
	values, err := decodeAll(mode, data)
	if err != nil {
		return err
	}

	stream := digest.NewStream()
	result := hashResult{Values: make([]hashEntry, 0, len(values))}
	for index, value := range values {
		valueDigest, err := digest.Value(value.Value)
		if err != nil {
			return cli.Validation("value %d: %w", index, err)
		}
		stream.Add(valueDigest)
		result.Values = append(result.Values, hashEntry{
			Index:  index,
			Offset: value.Offset,
			Length: value.Length,
			Digest: valueDigest.String(),
		})
	}
	result.Stream = stream.Sum().String()

	if done, err := output.EmitJSON(w, result); done {
		return err
	}
	for _, entry := range result.Values {
		if _, err := fmt.Fprintf(w, "%s  value %d (offset %d)\n", entry.Digest, entry.Index, entry.Offset); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(w, "%s  stream (%d values)\n", result.Stream, stream.Len())
	return err
}
