// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package amf0

import (
	"errors"
	"fmt"
)

var (
	// ErrMaxDepth is returned when composite values nest deeper than
	// the mode's MaxDepth.
	ErrMaxDepth = errors.New("amf0: maximum nesting depth exceeded")

	// ErrUnknownMarker is returned for reserved or unknown markers when
	// DecOptions.RejectUnknownMarkers is set.
	ErrUnknownMarker = errors.New("amf0: unknown marker")

	// ErrTrailingData is returned by Decode when bytes follow the value.
	ErrTrailingData = errors.New("amf0: trailing data after value")

	// ErrStringTooLong is returned when a property key or class name
	// exceeds the 16-bit length field, or a string exceeds 32 bits.
	ErrStringTooLong = errors.New("amf0: string too long for length field")

	// ErrTooManyElements is returned when a container holds more
	// entries than a 32-bit count can express.
	ErrTooManyElements = errors.New("amf0: too many elements for count field")
)

// DecodeError wraps a decoding failure with the byte offset, counted
// from the decoder's first byte, at which it was detected.
type DecodeError struct {
	Offset int64
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("amf0: decode at byte %d: %v", e.Offset, e.Err)
}

// Unwrap returns the underlying cause.
func (e *DecodeError) Unwrap() error { return e.Err }
