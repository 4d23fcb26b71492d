// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package amf0

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"math"
	"slices"

	"github.com/bureau-foundation/amf/lib/wire"
)

// errNilValue is returned for a nil Value or a nil *Object/*ECMAArray.
var errNilValue = errors.New("amf0: cannot encode nil value")

// errMisplacedObjectEnd is returned when ObjectEnd is a property value.
// Written there it would close the enclosing object early.
var errMisplacedObjectEnd = errors.New("amf0: ObjectEnd cannot be a property value")

// objectEndSequence closes every object and ECMA array: an empty key
// followed by the object-end marker.
var objectEndSequence = []byte{0x00, 0x00, MarkerObjectEnd}

// Encoder writes AMF0 values to a stream.
type Encoder struct {
	mode   EncMode
	writer io.Writer
	buffer []byte
}

// NewEncoder returns an encoder writing to w.
func (mode EncMode) NewEncoder(w io.Writer) *Encoder {
	return &Encoder{mode: mode, writer: w}
}

// Encode writes the encoding of value with a single Write call.
// Nothing is written if encoding fails.
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
// returned slice is buffer with its original length.
func (mode EncMode) Append(buffer []byte, value Value) ([]byte, error) {
	encoded, err := mode.appendValue(buffer, value, 0)
	if err != nil {
		return buffer, err
	}
	return encoded, nil
}

func (mode EncMode) appendValue(buffer []byte, value Value, depth int) ([]byte, error) {
	if value == nil {
		return nil, errNilValue
	}
	if !mode.kinds.Has(value.Kind()) {
		return append(buffer, MarkerUnsupported), nil
	}

	switch typed := value.(type) {
	case Number:
		return wire.AppendFloat64(append(buffer, MarkerNumber), float64(typed)), nil

	case Boolean:
		if typed {
			return append(buffer, MarkerBoolean, 0x01), nil
		}
		return append(buffer, MarkerBoolean, 0x00), nil

	case String:
		// The marker is chosen by byte length, not character count.
		if len(typed) > MaxShortString {
			return appendLongString(append(buffer, MarkerLongString), string(typed))
		}
		return appendShortString(append(buffer, MarkerString), string(typed))

	case XMLDocument:
		return appendLongString(append(buffer, MarkerXMLDocument), string(typed))

	case Null:
		return append(buffer, MarkerNull), nil

	case Undefined:
		return append(buffer, MarkerUndefined), nil

	case Reference:
		return wire.AppendUint16(append(buffer, MarkerReference), uint16(typed)), nil

	case ObjectEnd:
		return append(buffer, objectEndSequence...), nil

	case *Object:
		if typed == nil {
			return nil, errNilValue
		}
		if err := mode.enter(depth); err != nil {
			return nil, err
		}
		var err error
		if typed.ClassName == "" {
			buffer = append(buffer, MarkerObject)
		} else {
			buffer, err = appendShortString(append(buffer, MarkerTypedObject), typed.ClassName)
			if err != nil {
				return nil, fmt.Errorf("class name: %w", err)
			}
		}
		return mode.appendProperties(buffer, typed.Properties, depth+1)

	case *ECMAArray:
		if typed == nil {
			return nil, errNilValue
		}
		if err := mode.enter(depth); err != nil {
			return nil, err
		}
		if len(typed.Properties) > math.MaxUint32 {
			return nil, ErrTooManyElements
		}
		buffer = wire.AppendUint32(append(buffer, MarkerECMAArray), uint32(len(typed.Properties)))
		return mode.appendProperties(buffer, typed.Properties, depth+1)

	case StrictArray:
		if err := mode.enter(depth); err != nil {
			return nil, err
		}
		if len(typed) > math.MaxUint32 {
			return nil, ErrTooManyElements
		}
		buffer = wire.AppendUint32(append(buffer, MarkerStrictArray), uint32(len(typed)))
		for index, element := range typed {
			var err error
			buffer, err = mode.appendValue(buffer, element, depth+1)
			if err != nil {
				return nil, fmt.Errorf("strict array element %d: %w", index, err)
			}
		}
		return buffer, nil

	case Date:
		buffer = wire.AppendFloat64(append(buffer, MarkerDate), typed.Millis)
		return wire.AppendInt16(buffer, typed.TimeZone), nil

	case AVMPlus:
		if err := mode.enter(depth); err != nil {
			return nil, err
		}
		return mode.amf3.Append(append(buffer, MarkerAVMPlus), typed.Value)

	default:
		// Unsupported, and anything else without an encoding rule.
		return append(buffer, MarkerUnsupported), nil
	}
}

// appendProperties writes each key/value pair followed by the
// object-end sequence. Values are encoded at depth.
func (mode EncMode) appendProperties(buffer []byte, properties Properties, depth int) ([]byte, error) {
	keys := maps.Keys(properties)
	if mode.sortKeys {
		keys = slices.Values(slices.Sorted(keys))
	}

	var err error
	for key := range keys {
		value := properties[key]
		if _, end := value.(ObjectEnd); end {
			return nil, fmt.Errorf("property %q: %w", key, errMisplacedObjectEnd)
		}
		buffer, err = appendShortString(buffer, key)
		if err != nil {
			return nil, fmt.Errorf("property key: %w", err)
		}
		buffer, err = mode.appendValue(buffer, value, depth)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", key, err)
		}
	}
	return append(buffer, objectEndSequence...), nil
}

func (mode EncMode) enter(depth int) error {
	if depth >= mode.maxDepth {
		return fmt.Errorf("%w (%d)", ErrMaxDepth, mode.maxDepth)
	}
	return nil
}

func appendShortString(buffer []byte, text string) ([]byte, error) {
	if len(text) > MaxShortString {
		return nil, fmt.Errorf("%w: %d bytes", ErrStringTooLong, len(text))
	}
	buffer = wire.AppendUint16(buffer, uint16(len(text)))
	return append(buffer, text...), nil
}

func appendLongString(buffer []byte, text string) ([]byte, error) {
	if uint64(len(text)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d bytes", ErrStringTooLong, len(text))
	}
	buffer = wire.AppendUint32(buffer, uint32(len(text)))
	return append(buffer, text...), nil
}
