// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"errors"
	"fmt"
	"io"
)

// MaxU29 is the largest value representable in the U29 encoding.
const MaxU29 = 1<<29 - 1

// ErrU29Range is returned when a value does not fit in 29 bits.
var ErrU29Range = errors.New("wire: value exceeds 29 bits")

// ReadU29 decodes a U29 variable-length unsigned integer. The first
// three bytes contribute their low seven bits while the high bit is
// set; the first byte with a clear high bit ends the value. If all
// three carried the continuation flag, a fourth byte is consumed
// unconditionally and contributes all eight bits.
//
// The encoding never exceeds four bytes. An EOF after the first byte
// is reported as io.ErrUnexpectedEOF.
func (r *Reader) ReadU29() (uint32, error) {
	var result uint32
	for index := range 3 {
		current, err := r.ReadByte()
		if err != nil {
			if index > 0 && err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return 0, err
		}
		result = result<<7 | uint32(current&0x7f)
		if current&0x80 == 0 {
			return result, nil
		}
	}

	last, err := r.ReadByte()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return 0, err
	}
	return result<<8 | uint32(last), nil
}

// AppendU29 appends the U29 encoding of value, using the shortest
// form: one byte below 2^7, two below 2^14, three below 2^21, and four
// (the last carrying eight bits) up to MaxU29.
func AppendU29(buffer []byte, value uint32) ([]byte, error) {
	switch {
	case value < 1<<7:
		return append(buffer, byte(value)), nil
	case value < 1<<14:
		return append(buffer,
			byte(value>>7)|0x80,
			byte(value)&0x7f,
		), nil
	case value < 1<<21:
		return append(buffer,
			byte(value>>14)|0x80,
			byte(value>>7)|0x80,
			byte(value)&0x7f,
		), nil
	case value <= MaxU29:
		return append(buffer,
			byte(value>>22)|0x80,
			byte(value>>15)|0x80,
			byte(value>>8)|0x80,
			byte(value),
		), nil
	default:
		return buffer, fmt.Errorf("%w: %d", ErrU29Range, value)
	}
}

// U29Len returns the number of bytes AppendU29 writes for value, or 0
// if value is out of range.
func U29Len(value uint32) int {
	switch {
	case value < 1<<7:
		return 1
	case value < 1<<14:
		return 2
	case value < 1<<21:
		return 3
	case value <= MaxU29:
		return 4
	default:
		return 0
	}
}
