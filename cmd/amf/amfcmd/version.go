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
	"github.com/bureau-foundation/amf/lib/version"
)

type versionParams struct {
	cli.JSONOutput
}

func versionCommand() *cli.Command {
	var params versionParams

	return &cli.Command{
		Name:    "version",
		Summary: "Print build information",
		Params:  func() any { return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if err := expectNoArgs("version", args); err != nil {
				return err
			}
			return writeVersion(os.Stdout, &params.JSONOutput)
		},
	}
}

func writeVersion(w io.Writer, output *cli.JSONOutput) error {
	build := version.Current()
	if done, err := output.EmitJSON(w, build); done {
		return err
	}
	_, err := fmt.Fprintln(w, build.Detail())
	return err
}
