// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/bureau-foundation/amf/lib/amf0"
)

// encMode uses Core Deterministic Encoding (RFC 8949 §4.2). Dates are
// tag 0 RFC 3339 strings with nanosecond precision so AMF's
// millisecond timestamps survive.
var encMode cbor.EncMode

// decMode decodes any-typed maps as map[string]any, the only map shape
// amf0.FromNative accepts, and tag 0/1 times as time.Time.
var decMode cbor.DecMode

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	encOptions.Time = cbor.TimeRFC3339Nano
	encOptions.TimeTag = cbor.EncTagRequired
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
		TimeTagToAny:   cbor.TimeTagToTime,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// MarshalValue encodes an AMF0 value tree as one CBOR data item. Equal
// trees give equal bytes regardless of property order.
func MarshalValue(value amf0.Value) ([]byte, error) {
	return encMode.Marshal(amf0.ToNative(value))
}

// MarshalValues encodes values as a single CBOR array.
func MarshalValues(values []amf0.Value) ([]byte, error) {
	natives := make([]any, len(values))
	for index, value := range values {
		natives[index] = amf0.ToNative(value)
	}
	return encMode.Marshal(natives)
}

// UnmarshalValue decodes exactly one CBOR data item into an AMF0 value
// tree. Embedded AMF3 values do not survive the native form: an AVM+
// integer comes back as a Number.
func UnmarshalValue(data []byte) (amf0.Value, error) {
	var native any
	if err := decMode.Unmarshal(data, &native); err != nil {
		return nil, err
	}
	return fromNative(native)
}

func fromNative(native any) (amf0.Value, error) {
	value, err := amf0.FromNative(native)
	if err != nil {
		return nil, fmt.Errorf("converting CBOR to AMF0: %w", err)
	}
	return value, nil
}

// Encoder writes AMF0 values to a CBOR sequence (RFC 8742).
type Encoder struct {
	encoder *cbor.Encoder
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{encoder: encMode.NewEncoder(w)}
}

// Encode writes value as the next item of the sequence.
func (e *Encoder) Encode(value amf0.Value) error {
	return e.encoder.Encode(amf0.ToNative(value))
}

// Decoder reads AMF0 values from a CBOR sequence.
type Decoder struct {
	decoder *cbor.Decoder
	items   int
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{decoder: decMode.NewDecoder(r)}
}

// Decode returns the next item of the sequence, or io.EOF when the
// sequence ends cleanly between items. Errors name the zero-based item
// index.
func (d *Decoder) Decode() (amf0.Value, error) {
	var native any
	if err := d.decoder.Decode(&native); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("CBOR item %d: %w", d.items, err)
	}
	value, err := fromNative(native)
	if err != nil {
		return nil, fmt.Errorf("CBOR item %d: %w", d.items, err)
	}
	d.items++
	return value, nil
}

// Diagnose returns the diagnostic notation (RFC 8949 §8) of a single
// CBOR data item.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}

// DiagnoseSequence returns the diagnostic notation of each item of a
// CBOR sequence, in order.
func DiagnoseSequence(data []byte) ([]string, error) {
	var notations []string
	for len(data) > 0 {
		notation, rest, err := cbor.DiagnoseFirst(data)
		if err != nil {
			return notations, fmt.Errorf("CBOR item %d: %w", len(notations), err)
		}
		notations = append(notations, notation)
		data = rest
	}
	return notations, nil
}
