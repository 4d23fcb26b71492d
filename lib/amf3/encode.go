// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package amf3

import (
	"fmt"
	"io"

	"github.com/bureau-foundation/amf/lib/wire"
)

// Encoder writes AMF3 values to a stream.
type Encoder struct {
	mode   EncMode
	writer io.Writer
	buffer []byte
}

// NewEncoder returns an encoder writing to w.
func (mode EncMode) NewEncoder(w io.Writer) *Encoder {
	return &Encoder{mode: mode, writer: w}
}

// Encode writes the encoding of value. Nothing is written if encoding
// fails.
func (e *Encoder) Encode(value Value) error {
	encoded, err := e.mode.Append(e.buffer[:0], value)
	if err != nil {
		return err
	}
	e.buffer = encoded
	_, err = e.writer.Write(encoded)
	return err
}

// Marshal returns the encoding of value.
func (mode EncMode) Marshal(value Value) ([]byte, error) {
	return mode.Append(nil, value)
}

// Append appends the encoding of value to buffer. On failure the
// returned slice is buffer unchanged.
func (mode EncMode) Append(buffer []byte, value Value) ([]byte, error) {
	if value == nil {
		return buffer, fmt.Errorf("amf3: cannot encode nil Value")
	}
	if !mode.kinds.Has(value.Kind()) {
		return buffer, &MarkerError{Marker: markerFor(value), Kind: value.Kind()}
	}

	switch typed := value.(type) {
	case Undefined:
		return append(buffer, MarkerUndefined), nil
	case Null:
		return append(buffer, MarkerNull), nil
	case Boolean:
		if typed {
			return append(buffer, MarkerTrue), nil
		}
		return append(buffer, MarkerFalse), nil
	case Integer:
		raw, err := U29FromInteger(typed)
		if err != nil {
			return buffer, err
		}
		encoded, err := wire.AppendU29(append(buffer, MarkerInteger), raw)
		if err != nil {
			return buffer, err
		}
		return encoded, nil
	case Double:
		return wire.AppendFloat64(append(buffer, MarkerDouble), float64(typed)), nil
	default:
		return buffer, &MarkerError{Marker: markerFor(value), Kind: value.Kind()}
	}
}

// markerFor returns the wire marker of value's kind.
func markerFor(value Value) byte {
	switch typed := value.(type) {
	case Boolean:
		if typed {
			return MarkerTrue
		}
		return MarkerFalse
	case Undefined:
		return MarkerUndefined
	case Null:
		return MarkerNull
	}
	return byte(value.Kind())
}
