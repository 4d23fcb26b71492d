// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package amfcmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/amf/cmd/amf/cli"
	"github.com/bureau-foundation/amf/lib/amf0"
	"github.com/bureau-foundation/amf/lib/amf3"
	"github.com/bureau-foundation/amf/lib/config"
)

// maxDiagString is the longest string prefix, in bytes, shown inline.
const maxDiagString = 96

type diagParams struct {
	Config configFlag
	Hex    bool   `flag:"hex,x" desc:"treat input as a hex dump"`
	Color  string `flag:"color" desc:"colorize output (default from profile)" enum:"auto,always,never"`
	Width  int    `flag:"width" desc:"truncate lines to this many columns (default: terminal width)"`
}

func diagCommand() *cli.Command {
	var params diagParams

	return &cli.Command{
		Name:    "diag",
		Summary: "Show the typed structure of AMF0 values",
		Description: `Print each value of an AMF0 sequence as an indented tree: the byte
offset and length of the value in the input, then every node with its
wire marker and kind.

Unlike "amf decode", nothing is folded into JSON: typed objects,
ECMA arrays, references, undefined, unsupported markers, and AVM+
values are all shown as what they are. Properties are listed in key
order; the codec does not keep wire order.`,
		Usage: "amf diag [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Inspect a captured command",
				Command:     "amf diag connect.amf",
			},
			{
				Description: "Inspect a hex dump",
				Command:     "echo '03 00 01 61 00 3f f0 00 00 00 00 00 00 00 00 09' | amf diag -x",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			data, remaining, err := readInput(args, params.Hex, os.Stdin, logger)
			if err != nil {
				return err
			}
			if err := expectNoArgs("diag", remaining); err != nil {
				return err
			}
			cfg, err := params.Config.load(logger)
			if err != nil {
				return err
			}
			color := cfg.Output.Color
			if params.Color != "" {
				color = params.Color
			}
			width := params.Width
			if width == 0 {
				width = cli.TerminalWidth(os.Stdout)
			}
			return diagAMF(data, os.Stdout, cfg, diagOptions{Color: color, Width: width})
		},
	}
}

// diagOptions controls the tree view.
type diagOptions struct {
	// Color is "auto", "always", or "never".
	Color string

	// Width truncates each line to this many terminal columns. Zero
	// means no limit.
	Width int
}

// diagAMF decodes data and writes a tree view of each value to w.
func diagAMF(data []byte, w io.Writer, cfg *config.Config, options diagOptions) error {
	mode, err := decMode(cfg)
	if err != nil {
		return err
	}
	values, err := decodeAll(mode, data)
	if err != nil {
		return err
	}

	printer := newDiagPrinter(w, options)
	for index, value := range values {
		if index > 0 {
			printer.line("")
		}
		printer.line(printer.styles.header.Render(
			fmt.Sprintf("value %d  offset %d  length %d", index, value.Offset, value.Length)))
		printer.node(value.Value, "", 0)
	}
	return printer.err
}

type diagStyles struct {
	header lipgloss.Style
	marker lipgloss.Style
	kind   lipgloss.Style
	key    lipgloss.Style
	scalar lipgloss.Style
}

type diagPrinter struct {
	w      io.Writer
	width  int
	styles diagStyles
	err    error
}

func newDiagPrinter(w io.Writer, options diagOptions) *diagPrinter {
	renderer := lipgloss.NewRenderer(w)
	renderer.SetColorProfile(colorProfile(w, options.Color))
	return &diagPrinter{
		w:     w,
		width: options.Width,
		styles: diagStyles{
			header: renderer.NewStyle().Bold(true),
			marker: renderer.NewStyle().Faint(true),
			kind:   renderer.NewStyle().Foreground(lipgloss.Color("39")),
			key:    renderer.NewStyle().Foreground(lipgloss.Color("214")),
			scalar: renderer.NewStyle().Foreground(lipgloss.Color("114")),
		},
	}
}

func (p *diagPrinter) line(text string) {
	if p.err != nil {
		return
	}
	if p.width > 0 {
		// Width-aware and escape-aware: styled text stays well formed.
		text = ansi.Truncate(text, p.width, "…")
	}
	_, p.err = fmt.Fprintln(p.w, text)
}

// node writes value and its children. label is the property key or
// element index that leads the line, empty at the top level.
func (p *diagPrinter) node(value amf0.Value, label string, depth int) {
	var line strings.Builder
	line.WriteString(strings.Repeat("  ", depth))
	if label != "" {
		line.WriteString(p.styles.key.Render(label))
		line.WriteString(": ")
	}
	line.WriteString(p.styles.marker.Render(fmt.Sprintf("0x%02x", markerOf(value))))
	line.WriteByte(' ')
	line.WriteString(p.styles.kind.Render(value.Kind().String()))
	if summary := summarize(value); summary != "" {
		line.WriteByte(' ')
		line.WriteString(p.styles.scalar.Render(summary))
	}
	p.line(line.String())

	switch typed := value.(type) {
	case *amf0.Object:
		p.properties(typed.Properties, depth+1)
	case *amf0.ECMAArray:
		p.properties(typed.Properties, depth+1)
	case amf0.StrictArray:
		for index, element := range typed {
			p.node(element, "["+strconv.Itoa(index)+"]", depth+1)
		}
	case amf0.AVMPlus:
		p.embedded(typed.Value, depth+1)
	}
}

func (p *diagPrinter) properties(properties amf0.Properties, depth int) {
	for _, key := range slices.Sorted(maps.Keys(properties)) {
		p.node(properties[key], strconv.Quote(key), depth)
	}
}

func (p *diagPrinter) embedded(value amf3.Value, depth int) {
	var line strings.Builder
	line.WriteString(strings.Repeat("  ", depth))
	line.WriteString(p.styles.marker.Render("amf3"))
	line.WriteByte(' ')
	line.WriteString(p.styles.kind.Render(value.Kind().String()))
	if summary := summarizeAMF3(value); summary != "" {
		line.WriteByte(' ')
		line.WriteString(p.styles.scalar.Render(summary))
	}
	p.line(line.String())
}

// markerOf returns the marker byte the value was (or would be) written
// with.
func markerOf(value amf0.Value) byte {
	switch typed := value.(type) {
	case amf0.Number:
		return amf0.MarkerNumber
	case amf0.Boolean:
		return amf0.MarkerBoolean
	case amf0.String:
		if len(typed) > amf0.MaxShortString {
			return amf0.MarkerLongString
		}
		return amf0.MarkerString
	case *amf0.Object:
		if typed.ClassName != "" {
			return amf0.MarkerTypedObject
		}
		return amf0.MarkerObject
	case amf0.Null:
		return amf0.MarkerNull
	case amf0.Undefined:
		return amf0.MarkerUndefined
	case amf0.Reference:
		return amf0.MarkerReference
	case *amf0.ECMAArray:
		return amf0.MarkerECMAArray
	case amf0.ObjectEnd:
		return amf0.MarkerObjectEnd
	case amf0.StrictArray:
		return amf0.MarkerStrictArray
	case amf0.Date:
		return amf0.MarkerDate
	case amf0.Unsupported:
		return typed.Marker
	case amf0.XMLDocument:
		return amf0.MarkerXMLDocument
	case amf0.AVMPlus:
		return amf0.MarkerAVMPlus
	default:
		return amf0.MarkerUnsupported
	}
}

// summarize renders the inline part of a node: the scalar for leaf
// values, the size for composites.
func summarize(value amf0.Value) string {
	switch typed := value.(type) {
	case amf0.Number:
		return formatNumber(float64(typed))
	case amf0.Boolean:
		return strconv.FormatBool(bool(typed))
	case amf0.String:
		return quoteTruncated(string(typed))
	case amf0.XMLDocument:
		return quoteTruncated(string(typed))
	case amf0.Reference:
		return "#" + strconv.Itoa(int(typed))
	case amf0.Date:
		text := formatNumber(typed.Millis)
		if instant, ok := typed.Time(); ok {
			text += " (" + instant.Format(time.RFC3339Nano) + ")"
		}
		if typed.TimeZone != 0 {
			text += " tz=" + strconv.Itoa(int(typed.TimeZone))
		}
		return text
	case *amf0.Object:
		size := countLabel(len(typed.Properties), "property", "properties")
		if typed.ClassName != "" {
			return strconv.Quote(typed.ClassName) + " " + size
		}
		return size
	case *amf0.ECMAArray:
		return countLabel(len(typed.Properties), "entry", "entries")
	case amf0.StrictArray:
		return countLabel(len(typed), "element", "elements")
	default:
		return ""
	}
}

func summarizeAMF3(value amf3.Value) string {
	switch typed := value.(type) {
	case amf3.Boolean:
		return strconv.FormatBool(bool(typed))
	case amf3.Integer:
		return strconv.Itoa(int(typed))
	case amf3.Double:
		return formatNumber(float64(typed))
	case amf3.String:
		return quoteTruncated(string(typed))
	default:
		return ""
	}
}

func formatNumber(number float64) string {
	return strconv.FormatFloat(number, 'g', -1, 64)
}

func quoteTruncated(text string) string {
	if len(text) <= maxDiagString {
		return strconv.Quote(text)
	}
	prefix := strings.ToValidUTF8(text[:maxDiagString], "")
	return strconv.Quote(prefix) + fmt.Sprintf("... (%d bytes)", len(text))
}

func countLabel(count int, singular, plural string) string {
	if count == 1 {
		return "(1 " + singular + ")"
	}
	return fmt.Sprintf("(%d %s)", count, plural)
}
