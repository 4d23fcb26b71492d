// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package amfcmd

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"unicode"

	"github.com/bureau-foundation/amf/cmd/amf/cli"
	"github.com/bureau-foundation/amf/lib/amf0"
	"github.com/bureau-foundation/amf/lib/capture"
)

// readInput resolves input data from either a file (the last element
// of args, if it names a regular file on disk) or stdin.
//
// When hexMode is true, the raw bytes are a hex dump: whitespace is
// stripped and the hex decoded to binary. Compressed captures are then
// decompressed.
//
// Returns the input bytes and the args with any consumed file path
// removed.
func readInput(args []string, hexMode bool, stdin io.Reader, logger *slog.Logger) ([]byte, []string, error) {
	var data []byte
	remainingArgs := args

	if length := len(args); length > 0 {
		candidate := args[length-1]
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			data, err = os.ReadFile(candidate)
			if err != nil {
				return nil, nil, cli.Internal("read %s: %w", candidate, err)
			}
			remainingArgs = args[:length-1]
		}
	}

	if data == nil {
		var err error
		data, err = io.ReadAll(stdin)
		if err != nil {
			return nil, nil, cli.Internal("read stdin: %w", err)
		}
	}

	if hexMode {
		decoded, err := decodeHexInput(data)
		if err != nil {
			return nil, nil, err
		}
		data = decoded
	}

	data, err := decompress(data, logger)
	if err != nil {
		return nil, nil, err
	}
	return data, remainingArgs, nil
}

// decompress unwraps a zstd or lz4 capture. Uncompressed data is
// returned as is.
func decompress(data []byte, logger *slog.Logger) ([]byte, error) {
	reader, err := capture.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, cli.Validation("open capture: %w", err)
	}
	defer reader.Close()
	if reader.Compression() == capture.CompressionNone {
		return data, nil
	}

	plain, err := io.ReadAll(reader)
	if err != nil {
		return nil, cli.Validation("decompress %s capture: %w", reader.Compression(), err)
	}
	logger.Debug("decompressed capture",
		"compression", reader.Compression().String(),
		"compressed_bytes", len(data),
		"bytes", len(plain),
	)
	return plain, nil
}

// decodeHexInput strips whitespace from a hex dump and decodes it.
// Whitespace between digit pairs is allowed ("02 00 03 61 62 63").
func decodeHexInput(data []byte) ([]byte, error) {
	cleaned := bytes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, data)

	if len(cleaned) == 0 {
		return nil, cli.Validation("empty input after stripping whitespace from hex")
	}

	decoded := make([]byte, hex.DecodedLen(len(cleaned)))
	count, err := hex.Decode(decoded, cleaned)
	if err != nil {
		return nil, cli.Validation("decode hex: %w", err)
	}
	return decoded[:count], nil
}

// decodedValue is one value of an input sequence with its position.
type decodedValue struct {
	Value  amf0.Value
	Offset int64
	Length int64
}

// Bytes returns the value's encoding within the input it was decoded
// from.
func (d decodedValue) Bytes(input []byte) []byte {
	return input[d.Offset : d.Offset+d.Length]
}

// decodeAll decodes every value in data. Empty input is an error: a
// zero-length AMF0 sequence is almost always a wrong file or an empty
// pipe.
func decodeAll(mode amf0.DecMode, data []byte) ([]decodedValue, error) {
	if len(data) == 0 {
		return nil, cli.Validation("empty input: expected AMF0 data")
	}

	decoder := mode.NewDecoder(bytes.NewReader(data))
	var values []decodedValue
	for {
		offset := decoder.InputOffset()
		value, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, cli.Validation("value %d: %w", len(values), err)
		}
		values = append(values, decodedValue{
			Value:  value,
			Offset: offset,
			Length: decoder.InputOffset() - offset,
		})
	}
	return values, nil
}

// expectNoArgs rejects positional arguments left after the input file.
func expectNoArgs(command string, args []string) error {
	if len(args) > 0 {
		return cli.Validation("%s: unexpected argument %q (input file not found?)", command, args[0]).
			WithHint(fmt.Sprintf("Run 'amf %s --help' for usage.", command))
	}
	return nil
}
