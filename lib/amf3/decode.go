// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package amf3

import (
	"bytes"
	"errors"
	"io"

	"github.com/bureau-foundation/amf/lib/wire"
)

// Decoder reads a sequence of AMF3 values from a stream.
type Decoder struct {
	mode   DecMode
	reader *wire.Reader
}

// NewDecoder returns a decoder reading from r. The decoder reads only
// the bytes of each value; nothing is buffered between calls.
func (mode DecMode) NewDecoder(r io.Reader) *Decoder {
	return &Decoder{mode: mode, reader: wire.NewReader(r)}
}

// Decode reads the next value. It returns io.EOF, unwrapped, when the
// stream ends cleanly before a marker. All other failures are
// *DecodeError.
func (d *Decoder) Decode() (Value, error) {
	value, err := d.mode.ReadValue(d.reader)
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, &DecodeError{Offset: d.reader.Offset(), Err: err}
	}
	return value, nil
}

// Decode decodes exactly one value from data. Extra bytes after the
// value are an error.
func (mode DecMode) Decode(data []byte) (Value, error) {
	value, rest, err := mode.DecodeFirst(data)
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		return nil, &DecodeError{Offset: int64(len(data) - len(rest)), Err: ErrTrailingData}
	}
	return value, nil
}

// DecodeFirst decodes the first value in data and returns the bytes
// that follow it.
func (mode DecMode) DecodeFirst(data []byte) (Value, []byte, error) {
	source := bytes.NewReader(data)
	value, err := mode.NewDecoder(source).Decode()
	if err != nil {
		if err == io.EOF {
			err = &DecodeError{Err: io.ErrUnexpectedEOF}
		}
		return nil, nil, err
	}
	return value, data[len(data)-source.Len():], nil
}

// ReadValue reads one value from reader and returns failures without a
// DecodeError wrapper, for formats that embed AMF3 values and report
// offsets themselves. io.EOF means no marker byte was available; an
// EOF after the marker is io.ErrUnexpectedEOF.
func (mode DecMode) ReadValue(reader *wire.Reader) (Value, error) {
	marker, err := reader.ReadByte()
	if err != nil {
		return nil, err
	}

	value, err := mode.readPayload(reader, marker)
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return value, err
}

func (mode DecMode) readPayload(reader *wire.Reader, marker byte) (Value, error) {
	kind := kindForMarker(marker)
	if !mode.kinds.Has(kind) {
		return nil, &MarkerError{Marker: marker, Kind: kind}
	}

	switch marker {
	case MarkerUndefined:
		return Undefined{}, nil
	case MarkerNull:
		return Null{}, nil
	case MarkerFalse:
		return Boolean(false), nil
	case MarkerTrue:
		return Boolean(true), nil
	case MarkerInteger:
		raw, err := reader.ReadU29()
		if err != nil {
			return nil, err
		}
		return IntegerFromU29(raw), nil
	case MarkerDouble:
		value, err := reader.ReadFloat64()
		if err != nil {
			return nil, err
		}
		return Double(value), nil
	default:
		return nil, &MarkerError{Marker: marker, Kind: kind}
	}
}
