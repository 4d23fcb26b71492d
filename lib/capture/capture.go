// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package capture

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the framing of a capture file.
type Compression uint8

const (
	// CompressionNone is a raw AMF0 value stream.
	CompressionNone Compression = iota

	// CompressionZstd is a zstd frame stream (RFC 8878).
	CompressionZstd

	// CompressionLZ4 is an LZ4 frame stream.
	CompressionLZ4
)

// Frame magic numbers, as they appear on disk (little-endian u32).
var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// String returns the configuration name of the compression.
func (compression Compression) String() string {
	switch compression {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(compression))
	}
}

// ParseCompression parses a compression from its configuration name.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "none", "":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression: %q", name)
	}
}

// Detect reports the framing indicated by the first bytes of a file.
// Anything without a known frame magic is CompressionNone.
func Detect(prefix []byte) Compression {
	switch {
	case bytes.HasPrefix(prefix, zstdMagic):
		return CompressionZstd
	case bytes.HasPrefix(prefix, lz4Magic):
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// Reader yields the decompressed bytes of a capture.
type Reader struct {
	io.Reader
	compression Compression
	release     func()
}

// NewReader sniffs the framing of source and returns a reader over the
// decompressed stream.
//
// A raw stream whose first four bytes happen to equal a frame magic is
// misdetected. Neither magic begins with a marker that can start a
// well-formed value sequence in practice (0x28 is not a marker, 0x04
// is reserved), so this is accepted.
func NewReader(source io.Reader) (*Reader, error) {
	buffered := bufio.NewReader(source)
	prefix, err := buffered.Peek(len(zstdMagic))
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading capture header: %w", err)
	}

	switch compression := Detect(prefix); compression {
	case CompressionZstd:
		decoder, err := zstd.NewReader(buffered, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		return &Reader{Reader: decoder, compression: compression, release: decoder.Close}, nil

	case CompressionLZ4:
		return &Reader{Reader: lz4.NewReader(buffered), compression: compression}, nil

	default:
		return &Reader{Reader: buffered, compression: CompressionNone}, nil
	}
}

// Compression returns the framing detected when the reader was opened.
func (r *Reader) Compression() Compression {
	return r.compression
}

// Close releases decompressor resources. It does not close the
// underlying source.
func (r *Reader) Close() error {
	if r.release != nil {
		r.release()
		r.release = nil
	}
	return nil
}

// NewWriter returns a writer that frames everything written to it
// with compression. Close must be called to flush the final frame; it
// does not close destination.
func NewWriter(destination io.Writer, compression Compression) (io.WriteCloser, error) {
	switch compression {
	case CompressionNone:
		return nopCloser{destination}, nil

	case CompressionZstd:
		encoder, err := zstd.NewWriter(destination,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
		)
		if err != nil {
			return nil, fmt.Errorf("zstd writer: %w", err)
		}
		return encoder, nil

	case CompressionLZ4:
		return lz4.NewWriter(destination), nil

	default:
		return nil, fmt.Errorf("unsupported compression: %s", compression)
	}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
