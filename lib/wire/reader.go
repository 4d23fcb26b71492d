// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"unicode/utf8"
)

// ErrInvalidUTF8 is returned when the bytes of a string, property key,
// or class name are not valid UTF-8. Invalid text is never replaced.
var ErrInvalidUTF8 = errors.New("wire: invalid UTF-8 in string")

// Reader reads big-endian primitives from an underlying io.Reader.
// Every read is an exact io.ReadFull of the bytes it needs; nothing is
// buffered beyond the current primitive.
//
// Errors follow io.ReadFull: io.EOF when no bytes were available,
// io.ErrUnexpectedEOF when the source ended partway through a
// primitive, or the source's own error.
type Reader struct {
	source  io.Reader
	scratch [8]byte
	offset  int64
}

// NewReader returns a Reader over source. If source is already a
// *Reader it is returned unchanged so that nested decoders share one
// offset counter.
func NewReader(source io.Reader) *Reader {
	if reader, ok := source.(*Reader); ok {
		return reader
	}
	return &Reader{source: source}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int64 {
	return r.offset
}

// Read implements io.Reader so that a Reader can be handed to another
// decoder. Bytes read this way count toward Offset.
func (r *Reader) Read(buffer []byte) (int, error) {
	count, err := r.source.Read(buffer)
	r.offset += int64(count)
	return count, err
}

func (r *Reader) fill(buffer []byte) error {
	count, err := io.ReadFull(r.source, buffer)
	r.offset += int64(count)
	return err
}

// ReadByte reads a single byte. It satisfies io.ByteReader.
func (r *Reader) ReadByte() (byte, error) {
	if err := r.fill(r.scratch[:1]); err != nil {
		return 0, err
	}
	return r.scratch[0], nil
}

// ReadUint16 reads a big-endian 16-bit unsigned integer.
func (r *Reader) ReadUint16() (uint16, error) {
	if err := r.fill(r.scratch[:2]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(r.scratch[:2]), nil
}

// ReadInt16 reads a big-endian 16-bit two's-complement integer.
func (r *Reader) ReadInt16() (int16, error) {
	value, err := r.ReadUint16()
	return int16(value), err
}

// ReadUint32 reads a big-endian 32-bit unsigned integer.
func (r *Reader) ReadUint32() (uint32, error) {
	if err := r.fill(r.scratch[:4]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(r.scratch[:4]), nil
}

// ReadFloat64 reads a big-endian IEEE-754 double. The bit pattern is
// passed through unchanged: NaN payloads and infinities survive.
func (r *Reader) ReadFloat64() (float64, error) {
	if err := r.fill(r.scratch[:8]); err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(r.scratch[:8])), nil
}

// ReadBytes reads exactly length bytes into a new slice. A short
// source yields io.ErrUnexpectedEOF (or io.EOF if nothing was read).
//
// The slice grows as data arrives rather than being allocated up
// front, so a hostile length prefix cannot force a large allocation
// before the bytes actually exist.
func (r *Reader) ReadBytes(length uint32) ([]byte, error) {
	if length == 0 {
		return []byte{}, nil
	}
	const chunk = 64 << 10
	if length <= chunk {
		buffer := make([]byte, length)
		if err := r.fill(buffer); err != nil {
			return nil, err
		}
		return buffer, nil
	}

	buffer := make([]byte, 0, chunk)
	remaining := int64(length)
	for remaining > 0 {
		step := min(remaining, chunk)
		start := len(buffer)
		buffer = append(buffer, make([]byte, step)...)
		if err := r.fill(buffer[start:]); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, err
		}
		remaining -= step
	}
	return buffer, nil
}

// ReadUTF8 reads exactly length bytes and returns them as a string,
// failing with ErrInvalidUTF8 if they are not valid UTF-8. A zero
// length returns "" without touching the source.
func (r *Reader) ReadUTF8(length uint32) (string, error) {
	if length == 0 {
		return "", nil
	}
	buffer, err := r.ReadBytes(length)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(buffer) {
		return "", ErrInvalidUTF8
	}
	return string(buffer), nil
}
