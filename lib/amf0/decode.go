// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package amf0

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/bureau-foundation/amf/lib/wire"
)

// Decoder reads a sequence of AMF0 values from a stream.
type Decoder struct {
	mode   DecMode
	reader *wire.Reader
}

// NewDecoder returns a decoder reading from r. The decoder consumes
// exactly the bytes of each value and buffers nothing, so r can be
// used by other readers between calls.
func (mode DecMode) NewDecoder(r io.Reader) *Decoder {
	return &Decoder{mode: mode, reader: wire.NewReader(r)}
}

// InputOffset returns the number of bytes consumed so far. Between
// calls to Decode it is the offset of the next value.
func (d *Decoder) InputOffset() int64 {
	return d.reader.Offset()
}

// Decode reads the next value. It returns io.EOF, unwrapped, when the
// stream ends before a marker byte. Every other failure is a
// *DecodeError; a stream that ends inside a value wraps
// io.ErrUnexpectedEOF. No partial value is ever returned.
func (d *Decoder) Decode() (Value, error) {
	marker, err := d.reader.ReadByte()
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, &DecodeError{Offset: d.reader.Offset(), Err: err}
	}

	value, err := d.readPayload(marker, 0)
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, &DecodeError{Offset: d.reader.Offset(), Err: err}
	}
	return value, nil
}

// Decode decodes exactly one value from data. Extra bytes after the
// value fail with ErrTrailingData.
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
// that follow it. Empty input is io.ErrUnexpectedEOF.
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

// readValue reads a marker and its payload. depth counts the
// composites enclosing the value.
func (d *Decoder) readValue(depth int) (Value, error) {
	marker, err := d.reader.ReadByte()
	if err != nil {
		return nil, err
	}
	return d.readPayload(marker, depth)
}

func (d *Decoder) readPayload(marker byte, depth int) (Value, error) {
	kind := KindForMarker(marker)
	if kind == KindInvalid {
		if d.mode.rejectUnknown {
			return nil, fmt.Errorf("%w 0x%02x", ErrUnknownMarker, marker)
		}
		return Unsupported{Marker: marker}, nil
	}

	// A disabled kind is still parsed so the stream stays aligned.
	value, err := d.readKnown(marker, depth)
	if err != nil {
		return nil, err
	}
	if !d.mode.kinds.Has(kind) {
		return Unsupported{Marker: marker}, nil
	}
	return value, nil
}

func (d *Decoder) readKnown(marker byte, depth int) (Value, error) {
	switch marker {
	case MarkerNumber:
		number, err := d.reader.ReadFloat64()
		if err != nil {
			return nil, err
		}
		return Number(number), nil

	case MarkerBoolean:
		flag, err := d.reader.ReadByte()
		if err != nil {
			return nil, err
		}
		return Boolean(flag != 0), nil

	case MarkerString:
		text, err := d.readShortString()
		if err != nil {
			return nil, err
		}
		return String(text), nil

	case MarkerLongString:
		text, err := d.readLongString()
		if err != nil {
			return nil, err
		}
		return String(text), nil

	case MarkerXMLDocument:
		text, err := d.readLongString()
		if err != nil {
			return nil, err
		}
		return XMLDocument(text), nil

	case MarkerNull:
		return Null{}, nil

	case MarkerUndefined:
		return Undefined{}, nil

	case MarkerObjectEnd:
		return ObjectEnd{}, nil

	case MarkerReference:
		index, err := d.reader.ReadUint16()
		if err != nil {
			return nil, err
		}
		return Reference(index), nil

	case MarkerObject:
		if err := d.enter(depth); err != nil {
			return nil, err
		}
		properties, err := d.readProperties(depth + 1)
		if err != nil {
			return nil, err
		}
		return &Object{Properties: properties}, nil

	case MarkerTypedObject:
		if err := d.enter(depth); err != nil {
			return nil, err
		}
		className, err := d.readShortString()
		if err != nil {
			return nil, fmt.Errorf("class name: %w", err)
		}
		properties, err := d.readProperties(depth + 1)
		if err != nil {
			return nil, err
		}
		return &Object{ClassName: className, Properties: properties}, nil

	case MarkerECMAArray:
		if err := d.enter(depth); err != nil {
			return nil, err
		}
		// The associative count is advisory and never bounds the loop.
		if _, err := d.reader.ReadUint32(); err != nil {
			return nil, err
		}
		properties, err := d.readProperties(depth + 1)
		if err != nil {
			return nil, err
		}
		return &ECMAArray{Properties: properties}, nil

	case MarkerStrictArray:
		if err := d.enter(depth); err != nil {
			return nil, err
		}
		count, err := d.reader.ReadUint32()
		if err != nil {
			return nil, err
		}
		// Capacity is capped: count is untrusted until the elements
		// actually arrive.
		elements := make(StrictArray, 0, min(count, 1024))
		for range count {
			element, err := d.readValue(depth + 1)
			if err != nil {
				return nil, err
			}
			elements = append(elements, element)
		}
		return elements, nil

	case MarkerDate:
		millis, err := d.reader.ReadFloat64()
		if err != nil {
			return nil, err
		}
		timeZone, err := d.reader.ReadInt16()
		if err != nil {
			return nil, err
		}
		return Date{Millis: millis, TimeZone: timeZone}, nil

	case MarkerAVMPlus:
		if err := d.enter(depth); err != nil {
			return nil, err
		}
		embedded, err := d.mode.amf3.ReadValue(d.reader)
		if err != nil {
			return nil, err
		}
		return AVMPlus{Value: embedded}, nil
	}

	return nil, fmt.Errorf("%w 0x%02x", ErrUnknownMarker, marker)
}

// readProperties decodes key/value pairs until a value decodes to
// ObjectEnd. Values are read at depth.
func (d *Decoder) readProperties(depth int) (Properties, error) {
	properties := make(Properties)
	for {
		key, err := d.readShortString()
		if err != nil {
			return nil, fmt.Errorf("property key: %w", err)
		}
		value, err := d.readValue(depth)
		if err != nil {
			return nil, err
		}
		if _, end := value.(ObjectEnd); end {
			return properties, nil
		}
		properties[key] = value
	}
}

func (d *Decoder) readShortString() (string, error) {
	length, err := d.reader.ReadUint16()
	if err != nil {
		return "", err
	}
	return d.reader.ReadUTF8(uint32(length))
}

func (d *Decoder) readLongString() (string, error) {
	length, err := d.reader.ReadUint32()
	if err != nil {
		return "", err
	}
	return d.reader.ReadUTF8(length)
}

func (d *Decoder) enter(depth int) error {
	if depth >= d.mode.maxDepth {
		return fmt.Errorf("%w (%d)", ErrMaxDepth, d.mode.maxDepth)
	}
	return nil
}
