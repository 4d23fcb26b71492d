// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package amf3

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeScalars(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  Value
	}{
		{"undefined", []byte{0x00}, Undefined{}},
		{"null", []byte{0x01}, Null{}},
		{"false", []byte{0x02}, Boolean(false)},
		{"true", []byte{0x03}, Boolean(true)},
		{"integer zero", []byte{0x04, 0x00}, Integer(0)},
		{"integer 127", []byte{0x04, 0x7f}, Integer(127)},
		{"integer 128", []byte{0x04, 0x81, 0x00}, Integer(128)},
		{"integer three byte max", []byte{0x04, 0xff, 0xff, 0x7f}, Integer(2097151)},
		{"integer max", []byte{0x04, 0xbf, 0xff, 0xff, 0xff}, Integer(MaxInteger)},
		{"integer sign bit", []byte{0x04, 0xc0, 0x80, 0x80, 0x00}, Integer(-268435456)},
		{"integer minus one", []byte{0x04, 0xff, 0xff, 0xff, 0xff}, Integer(-1)},
		{"double", []byte{0x05, 0x40, 0x0c, 0, 0, 0, 0, 0, 0}, Double(3.5)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Decode(test.input)
			if err != nil {
				t.Fatalf("Decode(% x): %v", test.input, err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Decode(% x) mismatch (-want +got):\n%s", test.input, diff)
			}
		})
	}
}

func TestIntegerFromU29(t *testing.T) {
	tests := []struct {
		raw  uint32
		want Integer
	}{
		{0, 0},
		{0x0fffffff, MaxInteger},
		{0x10000000, -268435456},
		{0x1fffffff, -1},
	}
	for _, test := range tests {
		if got := IntegerFromU29(test.raw); got != test.want {
			t.Errorf("IntegerFromU29(%#x) = %d, want %d", test.raw, got, test.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	values := []Value{
		Undefined{},
		Null{},
		Boolean(false),
		Boolean(true),
		Integer(0),
		Integer(-1),
		Integer(MinInteger),
		Integer(MaxInteger),
		Integer(16384),
		Double(math.Inf(1)),
		Double(math.Inf(-1)),
		Double(-0.5),
	}

	for _, value := range values {
		encoded, err := Marshal(value)
		if err != nil {
			t.Fatalf("Marshal(%#v): %v", value, err)
		}
		decoded, err := Decode(encoded)
		if err != nil {
			t.Fatalf("Decode(% x): %v", encoded, err)
		}
		if diff := cmp.Diff(value, decoded); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestMarshalIntegerOutOfRange(t *testing.T) {
	for _, value := range []Integer{MaxInteger + 1, MinInteger - 1} {
		if _, err := Marshal(value); !errors.Is(err, ErrIntegerRange) {
			t.Errorf("Marshal(%d) error = %v, want ErrIntegerRange", value, err)
		}
	}
}

func TestDecodeUnsupportedMarkerIsFatal(t *testing.T) {
	markers := []byte{
		MarkerString, MarkerXMLDocument, MarkerDate, MarkerArray, MarkerObject,
		MarkerXML, MarkerByteArray, MarkerVectorInt, MarkerVectorUint,
		MarkerVectorDouble, MarkerVectorObject, MarkerDictionary, 0x12, 0xff,
	}

	for _, marker := range markers {
		_, err := Decode([]byte{marker, 0x01})
		if !errors.Is(err, ErrUnsupportedMarker) {
			t.Errorf("Decode(marker 0x%02x) error = %v, want ErrUnsupportedMarker", marker, err)
			continue
		}
		var markerError *MarkerError
		if !errors.As(err, &markerError) || markerError.Marker != marker {
			t.Errorf("Decode(marker 0x%02x): MarkerError = %+v", marker, markerError)
		}
	}
}

func TestMarshalCompositeIsUnsupported(t *testing.T) {
	values := []Value{
		String("x"),
		&Object{Properties: map[string]Value{}},
		ByteArray{1, 2},
		&Dictionary{},
	}
	for _, value := range values {
		if _, err := Marshal(value); !errors.Is(err, ErrUnsupportedMarker) {
			t.Errorf("Marshal(%T) error = %v, want ErrUnsupportedMarker", value, err)
		}
	}
}

func TestDisabledKinds(t *testing.T) {
	decodeMode, err := DecOptions{Kinds: AllKinds.Without(KindInteger)}.DecMode()
	if err != nil {
		t.Fatalf("DecMode: %v", err)
	}
	if _, err := decodeMode.Decode([]byte{0x04, 0x01}); !errors.Is(err, ErrUnsupportedMarker) {
		t.Errorf("decode of disabled integer: error = %v, want ErrUnsupportedMarker", err)
	}
	if _, err := decodeMode.Decode([]byte{0x03}); err != nil {
		t.Errorf("booleans are always enabled: %v", err)
	}

	encodeMode, err := EncOptions{Kinds: KindSetOf(KindInteger)}.EncMode()
	if err != nil {
		t.Fatalf("EncMode: %v", err)
	}
	if _, err := encodeMode.Marshal(Double(1)); !errors.Is(err, ErrUnsupportedMarker) {
		t.Errorf("encode of disabled double: error = %v, want ErrUnsupportedMarker", err)
	}
}

func TestDecodeTruncated(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"empty", nil},
		{"integer without payload", []byte{0x04}},
		{"integer missing fourth byte", []byte{0x04, 0xff, 0xff, 0xff}},
		{"double short", []byte{0x05, 0x40, 0x0c}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Decode(test.input)
			if !errors.Is(err, io.ErrUnexpectedEOF) {
				t.Errorf("Decode(% x) error = %v, want io.ErrUnexpectedEOF", test.input, err)
			}
		})
	}
}

func TestDecodeTrailingData(t *testing.T) {
	_, err := Decode([]byte{0x01, 0x01})
	if !errors.Is(err, ErrTrailingData) {
		t.Errorf("error = %v, want ErrTrailingData", err)
	}
}

func TestDecoderStream(t *testing.T) {
	var stream bytes.Buffer
	encoder := NewEncoder(&stream)
	want := []Value{Integer(7), Boolean(true), Double(2.25), Null{}}
	for _, value := range want {
		if err := encoder.Encode(value); err != nil {
			t.Fatalf("Encode(%v): %v", value, err)
		}
	}

	decoder := NewDecoder(&stream)
	var got []Value
	for {
		value, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		got = append(got, value)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("stream mismatch (-want +got):\n%s", diff)
	}
}

func TestParseKindSet(t *testing.T) {
	set, err := ParseKindSet([]string{"integer"})
	if err != nil {
		t.Fatalf("ParseKindSet: %v", err)
	}
	if !set.Has(KindInteger) || set.Has(KindDouble) {
		t.Errorf("ParseKindSet([integer]) = %v", set)
	}
	if _, err := ParseKindSet([]string{"quaternion"}); err == nil {
		t.Error("ParseKindSet accepted an unknown kind")
	}
	for _, name := range []string{"string", "array", "dictionary", "date"} {
		if _, err := ParseKindSet([]string{"integer", name}); err == nil {
			t.Errorf("ParseKindSet accepted unimplemented kind %q", name)
		}
	}
	scalars, err := ParseKindSet([]string{"null", "boolean", "double"})
	if err != nil {
		t.Fatalf("ParseKindSet: %v", err)
	}
	if scalars != KindSetOf(KindDouble) {
		t.Errorf("ParseKindSet([null boolean double]) = %v, want double only", scalars)
	}
	all, err := ParseKindSet(nil)
	if err != nil || all != AllKinds {
		t.Errorf("ParseKindSet(nil) = %v, %v; want AllKinds", all, err)
	}
}

func TestToNativeDate(t *testing.T) {
	if got, want := ToNative(Date{Millis: 1000}), any(time.Unix(1, 0).UTC()); !cmp.Equal(want, got) {
		t.Errorf("ToNative(1000) = %v, want %v", got, want)
	}
	for _, millis := range []float64{8.64e15, 1.5, 1e300, math.NaN()} {
		got, ok := ToNative(Date{Millis: millis}).(float64)
		if !ok {
			t.Errorf("ToNative(%v) = %T, want float64 milliseconds", millis, ToNative(Date{Millis: millis}))
			continue
		}
		if got != millis && !(math.IsNaN(got) && math.IsNaN(millis)) {
			t.Errorf("ToNative(%v) = %v", millis, got)
		}
	}
}

func TestToNative(t *testing.T) {
	object := &Object{
		ClassName:  "flex.Point",
		Properties: map[string]Value{"x": Integer(3), "y": Double(0.5)},
	}
	want := map[string]any{"$class": "flex.Point", "x": int64(3), "y": 0.5}
	if diff := cmp.Diff(want, ToNative(object)); diff != "" {
		t.Errorf("ToNative mismatch (-want +got):\n%s", diff)
	}
}
