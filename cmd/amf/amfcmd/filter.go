// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package amfcmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"os/exec"

	"github.com/bureau-foundation/amf/cmd/amf/cli"
)

// jqInput encodes natives as the newline-separated JSON stream jq
// reads, one value per line.
func jqInput(natives []any) ([]byte, error) {
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	for _, native := range natives {
		if err := encoder.Encode(native); err != nil {
			return nil, cli.Internal("encode JSON for jq: %w", err)
		}
	}
	return buffer.Bytes(), nil
}

// runJQ executes jq with the given arguments, feeding jsonData to its
// stdin. jq's stdout and stderr are connected directly to the process
// stdout and stderr.
func runJQ(jsonData []byte, jqArgs []string) error {
	jqPath, err := exec.LookPath("jq")
	if err != nil {
		return cli.NotFound("jq not found in PATH").
			WithHint(`Install jq, or use "amf decode" for plain JSON output.`)
	}

	command := exec.Command(jqPath, jqArgs...)
	command.Stdin = bytes.NewReader(jsonData)
	command.Stdout = os.Stdout
	command.Stderr = os.Stderr

	if err := command.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// jq has printed its own diagnostics. Keep its exit code
			// so "jq -e" works in pipelines.
			return &cli.ExitError{Code: exitErr.ExitCode()}
		}
		return cli.Internal("run jq: %w", err)
	}
	return nil
}
