// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package amfcmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/bureau-foundation/amf/cmd/amf/cli"
)

// rootParams holds the parameters for the top-level "amf" command.
// The command has both Subcommands and a Run fallback: when the first
// positional argument is not a subcommand name, Run handles it. No
// args means decode to JSON; anything else is a jq filter expression.
type rootParams struct {
	Config    configFlag
	Compact   bool `flag:"compact,c"    desc:"compact output (no indentation)"`
	RawOutput bool `flag:"raw-output,r" desc:"raw string output (passed to jq)"`
	Slurp     bool `flag:"slurp,s"      desc:"read the AMF0 sequence as one JSON array"`
	Hex       bool `flag:"hex,x"        desc:"treat input as a hex dump"`
}

// Command returns the root "amf" command.
func Command() *cli.Command {
	var params rootParams

	return &cli.Command{
		Name:    "amf",
		Summary: "Inspect, produce, and filter AMF0 data",
		Description: `Tools for working with Action Message Format data: the AMF0 encoding
used by RTMP command messages and Flash remoting, including AMF3
values embedded with the AVM+ marker.

With no arguments, decodes AMF0 on stdin to pretty-printed JSON on
stdout (equivalent to "amf decode").

When the first argument is not a subcommand name, it is treated as a
jq filter expression: the input is decoded to JSON internally and
piped through jq. -c, -r, and -s are passed through to jq.

All subcommands accept an optional trailing file path argument. When
provided, input is read from the file instead of stdin. zstd and lz4
compressed captures are decompressed automatically.`,
		Subcommands: []*cli.Command{
			decodeCommand(),
			encodeCommand(),
			diagCommand(),
			validateCommand(),
			hashCommand(),
			convertCommand(),
			versionCommand(),
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			data, remainingArgs, err := readInput(args, params.Hex, os.Stdin, logger)
			if err != nil {
				return err
			}
			cfg, err := params.Config.load(logger)
			if err != nil {
				return err
			}

			if len(remainingArgs) == 0 {
				options := renderOptionsFor(cfg, "json", "", params.Compact, params.Slurp)
				return decodeAMF(data, os.Stdout, cfg, options)
			}

			mode, err := decMode(cfg)
			if err != nil {
				return err
			}
			values, err := decodeAll(mode, data)
			if err != nil {
				return err
			}
			jsonData, err := jqInput(nativeValues(values))
			if err != nil {
				return err
			}

			var jqArgs []string
			if params.Compact {
				jqArgs = append(jqArgs, "-c")
			}
			if params.RawOutput {
				jqArgs = append(jqArgs, "-r")
			}
			if params.Slurp {
				jqArgs = append(jqArgs, "-s")
			}
			jqArgs = append(jqArgs, remainingArgs...)
			return runJQ(jsonData, jqArgs)
		},
		Examples: []cli.Example{
			{
				Description: "Decode AMF0 to pretty JSON",
				Command:     "amf < connect.amf",
			},
			{
				Description: "Extract a field with jq",
				Command:     "amf '.app' connect.amf",
			},
			{
				Description: "Encode JSON to AMF0",
				Command:     `echo '{"app":"live"}' | amf encode`,
			},
			{
				Description: "Inspect structure with markers and offsets",
				Command:     "amf diag connect.amf",
			},
			{
				Description: "Check canonical encoding",
				Command:     "amf validate connect.amf",
			},
		},
	}
}
