// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Command amf inspects, produces, and converts Action Message Format
// data. Run "amf --help" for usage.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bureau-foundation/amf/cmd/amf/amfcmd"
	"github.com/bureau-foundation/amf/cmd/amf/cli"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own output (validate, jq
		// passthrough) return an ExitError with the desired exit
		// code. Don't print a redundant "error:" line for those.
		var coder interface{ ExitCode() int }
		if errors.As(err, &coder) {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		var toolErr *cli.ToolError
		if errors.As(err, &toolErr) {
			os.Exit(toolErr.ExitStatus())
		}
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return amfcmd.Command().Execute(ctx, os.Args[1:])
}
