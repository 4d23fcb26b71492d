// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package amf3

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedMarker is wrapped by every MarkerError.
	ErrUnsupportedMarker = errors.New("amf3: unsupported marker")

	// ErrIntegerRange is returned when encoding an Integer outside the
	// 29-bit signed range.
	ErrIntegerRange = errors.New("amf3: integer out of 29-bit range")

	// ErrTrailingData is returned by Decode when bytes follow the value.
	ErrTrailingData = errors.New("amf3: trailing data after value")
)

// MarkerError reports a marker this codec cannot handle: a composite
// kind, a kind disabled in the mode's KindSet, or a byte outside the
// marker space. Decoding stops at such a marker because its payload
// length is unknown.
type MarkerError struct {
	Marker byte
	Kind   Kind
}

func (e *MarkerError) Error() string {
	if e.Kind == KindInvalid {
		return fmt.Sprintf("amf3: unknown marker 0x%02x", e.Marker)
	}
	return fmt.Sprintf("amf3: unsupported marker 0x%02x (%s)", e.Marker, e.Kind)
}

// Unwrap returns ErrUnsupportedMarker.
func (e *MarkerError) Unwrap() error { return ErrUnsupportedMarker }

// DecodeError wraps a decoding failure with the byte offset at which
// it was detected.
type DecodeError struct {
	Offset int64
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("amf3: decode at byte %d: %v", e.Offset, e.Err)
}

// Unwrap returns the underlying cause.
func (e *DecodeError) Unwrap() error { return e.Err }
