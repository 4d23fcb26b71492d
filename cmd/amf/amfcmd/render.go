// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package amfcmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/amf/cmd/amf/cli"
	"github.com/bureau-foundation/amf/lib/amf0"
)

// renderOptions controls how decoded values are written.
type renderOptions struct {
	// Format is "json" or "yaml".
	Format string

	// Compact writes one JSON value per line without indentation.
	Compact bool

	// Slurp writes all values as a single JSON array or YAML sequence
	// instead of one document per value.
	Slurp bool

	// Color is "auto", "always", or "never".
	Color string
}

// nativeValues converts decoded values to their JSON-safe native form.
func nativeValues(values []decodedValue) []any {
	natives := make([]any, len(values))
	for index, value := range values {
		natives[index] = jsonSafe(amf0.ToNative(value.Value))
	}
	return natives
}

// jsonSafe replaces the float64 values encoding/json rejects (NaN and
// the infinities) with the strings JavaScript prints for them.
func jsonSafe(native any) any {
	switch value := native.(type) {
	case float64:
		switch {
		case math.IsNaN(value):
			return "NaN"
		case math.IsInf(value, 1):
			return "Infinity"
		case math.IsInf(value, -1):
			return "-Infinity"
		}
		return value
	case map[string]any:
		for key, element := range value {
			value[key] = jsonSafe(element)
		}
		return value
	case []any:
		for index, element := range value {
			value[index] = jsonSafe(element)
		}
		return value
	default:
		return native
	}
}

// renderValues writes natives to w in the requested format.
func renderValues(w io.Writer, natives []any, options renderOptions) error {
	var buffer bytes.Buffer
	switch options.Format {
	case "", "json":
		if err := writeJSON(&buffer, natives, options); err != nil {
			return err
		}
	case "yaml":
		if err := writeYAML(&buffer, natives, options.Slurp); err != nil {
			return err
		}
	default:
		return cli.Validation("unknown output format %q", options.Format)
	}

	formatter, ok := colorFormatter(w, options.Color)
	if !ok {
		_, err := w.Write(buffer.Bytes())
		return err
	}
	lexer := options.Format
	if lexer == "" {
		lexer = "json"
	}
	if err := quick.Highlight(w, buffer.String(), lexer, formatter, "monokai"); err != nil {
		return cli.Internal("highlight output: %w", err)
	}
	return nil
}

func writeJSON(w io.Writer, natives []any, options renderOptions) error {
	encode := func(value any) error {
		var output []byte
		var err error
		if options.Compact {
			output, err = json.Marshal(value)
		} else {
			output, err = json.MarshalIndent(value, "", "  ")
		}
		if err != nil {
			return cli.Internal("encode JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(output))
		return err
	}

	if options.Slurp {
		return encode(natives)
	}
	for _, native := range natives {
		if err := encode(native); err != nil {
			return err
		}
	}
	return nil
}

func writeYAML(w io.Writer, natives []any, slurp bool) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if slurp {
		if err := encoder.Encode(natives); err != nil {
			return cli.Internal("encode YAML: %w", err)
		}
	} else {
		for _, native := range natives {
			if err := encoder.Encode(native); err != nil {
				return cli.Internal("encode YAML: %w", err)
			}
		}
	}
	if err := encoder.Close(); err != nil {
		return cli.Internal("encode YAML: %w", err)
	}
	return nil
}

// colorProfile resolves a --color mode against w. "auto" follows the
// terminal and the NO_COLOR / CLICOLOR_FORCE conventions.
func colorProfile(w io.Writer, mode string) termenv.Profile {
	switch mode {
	case "never":
		return termenv.Ascii
	case "always":
		profile := termenv.NewOutput(w).EnvColorProfile()
		if profile == termenv.Ascii {
			return termenv.ANSI256
		}
		return profile
	default:
		if !cli.IsTerminal(w) {
			return termenv.Ascii
		}
		return termenv.NewOutput(w).EnvColorProfile()
	}
}

// colorFormatter returns the chroma formatter matching the color
// profile for w, or false when output should not be colored.
func colorFormatter(w io.Writer, mode string) (string, bool) {
	switch colorProfile(w, mode) {
	case termenv.TrueColor:
		return "terminal16m", true
	case termenv.ANSI256:
		return "terminal256", true
	case termenv.ANSI:
		return "terminal16", true
	default:
		return "", false
	}
}
