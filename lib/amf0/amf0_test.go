// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package amf0

import (
	"bytes"
	"errors"
	"io"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/bureau-foundation/amf/lib/amf3"
	"github.com/bureau-foundation/amf/lib/wire"
)

// join concatenates byte fragments into one input.
func join(fragments ...[]byte) []byte {
	return bytes.Join(fragments, nil)
}

func number(value float64) []byte {
	return wire.AppendFloat64([]byte{MarkerNumber}, value)
}

func key(name string) []byte {
	return append([]byte{0, byte(len(name))}, name...)
}

var objectEnd = []byte{0x00, 0x00, 0x09}

func TestDecodeScalars(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  Value
	}{
		{"number", number(1.5), Number(1.5)},
		{"negative zero", number(math.Copysign(0, -1)), Number(math.Copysign(0, -1))},
		{"false", []byte{0x01, 0x00}, Boolean(false)},
		{"true", []byte{0x01, 0x01}, Boolean(true)},
		{"non-zero boolean", []byte{0x01, 0x7f}, Boolean(true)},
		{"empty string", []byte{0x02, 0x00, 0x00}, String("")},
		{"string", []byte{0x02, 0x00, 0x02, 'h', 'i'}, String("hi")},
		{"long string", []byte{0x0c, 0, 0, 0, 2, 'h', 'i'}, String("hi")},
		{"null", []byte{0x05}, Null{}},
		{"undefined", []byte{0x06}, Undefined{}},
		{"reference", []byte{0x07, 0x00, 0x2a}, Reference(42)},
		{"bare object end", []byte{0x09}, ObjectEnd{}},
		{"xml document", []byte{0x0f, 0, 0, 0, 3, '<', 'a', '>'}, XMLDocument("<a>")},
		{"date", join([]byte{0x0b}, number(-1)[1:], []byte{0, 0}), Date{Millis: -1}},
		{"date with time zone", join([]byte{0x0b}, number(0)[1:], []byte{0xff, 0xfe}), Date{Millis: 0, TimeZone: -2}},
		{"unsupported", []byte{0x0d}, Unsupported{Marker: 0x0d}},
		{"movie clip", []byte{0x04}, Unsupported{Marker: 0x04}},
		{"record set", []byte{0x0e}, Unsupported{Marker: 0x0e}},
		{"unknown", []byte{0x12}, Unsupported{Marker: 0x12}},
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

func TestDecodeComposites(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  Value
	}{
		{
			name:  "empty object",
			input: []byte{0x03, 0x00, 0x00, 0x09},
			want:  &Object{Properties: Properties{}},
		},
		{
			name:  "object",
			input: join([]byte{0x03}, key("a"), number(1), key("b"), []byte{0x05}, objectEnd),
			want:  &Object{Properties: Properties{"a": Number(1), "b": Null{}}},
		},
		{
			name:  "duplicate key keeps last",
			input: join([]byte{0x03}, key("a"), number(1), key("a"), number(2), objectEnd),
			want:  &Object{Properties: Properties{"a": Number(2)}},
		},
		{
			name:  "typed object",
			input: join([]byte{0x10}, key("Foo"), key("x"), []byte{0x01, 0x01}, objectEnd),
			want:  &Object{ClassName: "Foo", Properties: Properties{"x": Boolean(true)}},
		},
		{
			name:  "ecma array count is advisory",
			input: join([]byte{0x08, 0, 0, 0, 5}, key("a"), number(1), objectEnd),
			want:  &ECMAArray{Properties: Properties{"a": Number(1)}},
		},
		{
			name:  "empty ecma array with wrong count",
			input: join([]byte{0x08, 0xff, 0xff, 0xff, 0xff}, objectEnd),
			want:  &ECMAArray{Properties: Properties{}},
		},
		{
			name:  "strict array",
			input: []byte{0x0a, 0, 0, 0, 2, 0x05, 0x06},
			want:  StrictArray{Null{}, Undefined{}},
		},
		{
			name:  "empty strict array",
			input: []byte{0x0a, 0, 0, 0, 0},
			want:  StrictArray{},
		},
		{
			name:  "nested",
			input: join([]byte{0x0a, 0, 0, 0, 1, 0x03}, key("list"), []byte{0x0a, 0, 0, 0, 1}, number(3), objectEnd),
			want:  StrictArray{&Object{Properties: Properties{"list": StrictArray{Number(3)}}}},
		},
		{
			name:  "unknown marker inside object",
			input: join([]byte{0x03}, key("clip"), []byte{0x04}, key("n"), number(1), objectEnd),
			want:  &Object{Properties: Properties{"clip": Unsupported{Marker: 0x04}, "n": Number(1)}},
		},
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

func TestStrictArrayConsumesExactly(t *testing.T) {
	input := []byte{0x0a, 0, 0, 0, 2, 0x05, 0x05, 0x06}
	value, rest, err := DecodeFirst(input)
	if err != nil {
		t.Fatalf("DecodeFirst: %v", err)
	}
	if diff := cmp.Diff(StrictArray{Null{}, Null{}}, value); diff != "" {
		t.Errorf("value mismatch (-want +got):\n%s", diff)
	}
	if !bytes.Equal(rest, []byte{0x06}) {
		t.Errorf("rest = % x, want 06", rest)
	}
}

func TestUnknownMarkerConsumesNothing(t *testing.T) {
	value, rest, err := DecodeFirst([]byte{0x04, 0x05})
	if err != nil {
		t.Fatalf("DecodeFirst: %v", err)
	}
	if value != (Unsupported{Marker: 0x04}) {
		t.Errorf("value = %#v, want Unsupported{Marker: 0x04}", value)
	}
	if !bytes.Equal(rest, []byte{0x05}) {
		t.Errorf("rest = % x, want 05", rest)
	}
}

func TestRejectUnknownMarkers(t *testing.T) {
	mode, err := DecOptions{RejectUnknownMarkers: true}.DecMode()
	if err != nil {
		t.Fatalf("DecMode: %v", err)
	}
	for _, marker := range []byte{0x04, 0x0e, 0x12, 0xff} {
		_, err := mode.Decode([]byte{marker})
		if !errors.Is(err, ErrUnknownMarker) {
			t.Errorf("Decode(%#02x) error = %v, want ErrUnknownMarker", marker, err)
		}
	}
	// The unsupported marker itself is a known kind.
	value, err := mode.Decode([]byte{0x0d})
	if err != nil {
		t.Fatalf("Decode(0d): %v", err)
	}
	if value != (Unsupported{Marker: 0x0d}) {
		t.Errorf("Decode(0d) = %#v", value)
	}
}

func TestDecodeTruncated(t *testing.T) {
	inputs := map[string][]byte{
		"empty":                {},
		"number":               {0x00, 0x3f, 0xf0},
		"boolean":              {0x01},
		"string length":        {0x02, 0x00},
		"string body":          {0x02, 0x00, 0x05, 'a', 'b'},
		"long string":          {0x0c, 0, 0, 0, 9, 'a'},
		"reference":            {0x07, 0x00},
		"object without end":   join([]byte{0x03}, key("a"), number(1)),
		"object key":           {0x03, 0x00},
		"ecma count":           {0x08, 0, 0},
		"strict array short":   {0x0a, 0, 0, 0, 3, 0x05, 0x05},
		"date time zone":       join([]byte{0x0b}, number(0)[1:], []byte{0}),
		"typed object class":   {0x10, 0x00, 0x04, 'F'},
		"avmplus missing body": {0x11},
		"avmplus integer":      {0x11, 0x04, 0x81},
	}
	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(input)
			if !errors.Is(err, io.ErrUnexpectedEOF) {
				t.Fatalf("Decode(% x) error = %v, want io.ErrUnexpectedEOF", input, err)
			}
			var decodeError *DecodeError
			if !errors.As(err, &decodeError) {
				t.Fatalf("Decode(% x) error %T is not a *DecodeError", input, err)
			}
		})
	}
}

func TestDecodeInvalidUTF8(t *testing.T) {
	inputs := map[string][]byte{
		"string":      {0x02, 0x00, 0x01, 0xff},
		"long string": {0x0c, 0, 0, 0, 2, 0xc3, 0x28},
		"key":         join([]byte{0x03, 0x00, 0x01, 0xff}, []byte{0x05}, objectEnd),
		"class name":  join([]byte{0x10, 0x00, 0x01, 0xfe}, objectEnd),
		"xml":         {0x0f, 0, 0, 0, 1, 0x80},
	}
	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(input)
			if !errors.Is(err, wire.ErrInvalidUTF8) {
				t.Fatalf("Decode(% x) error = %v, want wire.ErrInvalidUTF8", input, err)
			}
		})
	}
}

func TestDecodeTrailingData(t *testing.T) {
	_, err := Decode([]byte{0x05, 0x05})
	if !errors.Is(err, ErrTrailingData) {
		t.Fatalf("Decode error = %v, want ErrTrailingData", err)
	}
	var decodeError *DecodeError
	if errors.As(err, &decodeError) && decodeError.Offset != 1 {
		t.Errorf("Offset = %d, want 1", decodeError.Offset)
	}
}

func nestedStrictArrays(depth int) []byte {
	var input []byte
	for range depth {
		input = append(input, 0x0a, 0, 0, 0, 1)
	}
	return append(input, 0x05)
}

func TestDecodeMaxDepth(t *testing.T) {
	if _, err := Decode(nestedStrictArrays(DefaultMaxDepth)); err != nil {
		t.Fatalf("Decode at the depth limit: %v", err)
	}
	_, err := Decode(nestedStrictArrays(DefaultMaxDepth + 1))
	if !errors.Is(err, ErrMaxDepth) {
		t.Fatalf("Decode beyond the depth limit error = %v, want ErrMaxDepth", err)
	}

	mode, err := DecOptions{MaxDepth: 2}.DecMode()
	if err != nil {
		t.Fatalf("DecMode: %v", err)
	}
	nestedObjects := join([]byte{0x03}, key("a"), []byte{0x03}, key("b"), []byte{0x03}, objectEnd, objectEnd, objectEnd)
	if _, err := mode.Decode(nestedObjects); !errors.Is(err, ErrMaxDepth) {
		t.Errorf("Decode with MaxDepth 2 error = %v, want ErrMaxDepth", err)
	}
	if _, err := mode.Decode(nestedStrictArrays(2)); err != nil {
		t.Errorf("Decode two levels with MaxDepth 2: %v", err)
	}
}

func TestNegativeMaxDepth(t *testing.T) {
	if _, err := (DecOptions{MaxDepth: -1}).DecMode(); err == nil {
		t.Error("DecOptions{MaxDepth: -1}.DecMode succeeded")
	}
	if _, err := (EncOptions{MaxDepth: -1}).EncMode(); err == nil {
		t.Error("EncOptions{MaxDepth: -1}.EncMode succeeded")
	}
}

func TestDisabledKindsStayAligned(t *testing.T) {
	mode, err := DecOptions{Kinds: AllKinds.Without(KindNumber, KindDate)}.DecMode()
	if err != nil {
		t.Fatalf("DecMode: %v", err)
	}
	input := join(
		[]byte{0x0a, 0, 0, 0, 3},
		number(7),
		join([]byte{0x0b}, number(1000)[1:], []byte{0, 0}),
		[]byte{0x02, 0x00, 0x01, 'x'},
	)
	got, err := mode.Decode(input)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := StrictArray{Unsupported{Marker: MarkerNumber}, Unsupported{Marker: MarkerDate}, String("x")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDisabledCompositeIsSkipped(t *testing.T) {
	mode, err := DecOptions{Kinds: AllKinds.Without(KindObject)}.DecMode()
	if err != nil {
		t.Fatalf("DecMode: %v", err)
	}
	input := join([]byte{0x10}, key("Foo"), key("a"), number(1), objectEnd, []byte{0x05})
	value, rest, err := mode.DecodeFirst(input)
	if err != nil {
		t.Fatalf("DecodeFirst: %v", err)
	}
	if value != (Unsupported{Marker: MarkerTypedObject}) {
		t.Errorf("value = %#v, want Unsupported{Marker: 0x10}", value)
	}
	if !bytes.Equal(rest, []byte{0x05}) {
		t.Errorf("rest = % x, want 05", rest)
	}
}

func TestAVMPlusBridge(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  Value
	}{
		{"integer sign bit", []byte{0x11, 0x04, 0xc0, 0x80, 0x80, 0x00}, AVMPlus{Value: amf3.Integer(-268435456)}},
		{"integer", []byte{0x11, 0x04, 0x7f}, AVMPlus{Value: amf3.Integer(127)}},
		{"double", []byte{0x11, 0x05, 0x3f, 0xf8, 0, 0, 0, 0, 0, 0}, AVMPlus{Value: amf3.Double(1.5)}},
		{"true", []byte{0x11, 0x03}, AVMPlus{Value: amf3.Boolean(true)}},
		{"null", []byte{0x11, 0x01}, AVMPlus{Value: amf3.Null{}}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Decode(test.input)
			if err != nil {
				t.Fatalf("Decode(% x): %v", test.input, err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Decode mismatch (-want +got):\n%s", diff)
			}
			encoded, err := Marshal(got)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if !bytes.Equal(encoded, test.input) {
				t.Errorf("Marshal = % x, want % x", encoded, test.input)
			}
		})
	}
}

func TestAVMPlusUnsupportedAMF3Marker(t *testing.T) {
	// An AMF3 array cannot be decoded and is fatal for the whole value.
	_, err := Decode([]byte{0x11, 0x09, 0x01, 0x01})
	if !errors.Is(err, amf3.ErrUnsupportedMarker) {
		t.Fatalf("Decode error = %v, want amf3.ErrUnsupportedMarker", err)
	}

	_, err = Marshal(AVMPlus{Value: &amf3.Object{}})
	if !errors.Is(err, amf3.ErrUnsupportedMarker) {
		t.Fatalf("Marshal error = %v, want amf3.ErrUnsupportedMarker", err)
	}
}

func TestRoundTrip(t *testing.T) {
	values := []Value{
		Number(0),
		Number(-1.25),
		Number(math.Inf(1)),
		Number(math.Inf(-1)),
		Boolean(true),
		Boolean(false),
		String(""),
		String("héllo"),
		String(strings.Repeat("x", MaxShortString+1)),
		Null{},
		Undefined{},
		Reference(65535),
		XMLDocument("<root/>"),
		NewDate(1700000000000),
		NewDate(-1),
		NewDate(1.5),
		NewDate(8.64e15),
		Date{Millis: math.Inf(1)},
		Date{Millis: 5, TimeZone: 60},
		&Object{Properties: Properties{}},
		&Object{ClassName: "com.example.Point", Properties: Properties{"x": Number(1), "y": Number(2)}},
		&ECMAArray{Properties: Properties{"0": String("a"), "length": Number(1)}},
		StrictArray{},
		StrictArray{Number(1), String("two"), StrictArray{Null{}}, &Object{Properties: Properties{"k": Boolean(true)}}},
		AVMPlus{Value: amf3.Integer(amf3.MinInteger)},
		AVMPlus{Value: amf3.Double(2.5)},
	}

	for _, value := range values {
		encoded, err := Marshal(value)
		if err != nil {
			t.Fatalf("Marshal(%#v): %v", value, err)
		}
		decoded, err := Decode(encoded)
		if err != nil {
			t.Fatalf("Decode(Marshal(%#v)): %v", value, err)
		}
		if diff := cmp.Diff(value, decoded); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestStringMarkerBoundary(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantMarker byte
		wantLength int
	}{
		{"65535 bytes", strings.Repeat("a", 65535), MarkerString, 1 + 2 + 65535},
		{"65536 bytes", strings.Repeat("a", 65536), MarkerLongString, 1 + 4 + 65536},
		// 21846 three-byte characters: few characters, many bytes.
		{"multibyte over limit", strings.Repeat("€", 21846), MarkerLongString, 1 + 4 + 65538},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			encoded, err := Marshal(String(test.text))
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if encoded[0] != test.wantMarker {
				t.Errorf("marker = %#02x, want %#02x", encoded[0], test.wantMarker)
			}
			if len(encoded) != test.wantLength {
				t.Errorf("length = %d, want %d", len(encoded), test.wantLength)
			}
		})
	}
}

func TestMarshalBytes(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  []byte
	}{
		{"true", Boolean(true), []byte{0x01, 0x01}},
		{"false", Boolean(false), []byte{0x01, 0x00}},
		{"null", Null{}, []byte{0x05}},
		{"undefined", Undefined{}, []byte{0x06}},
		{"reference", Reference(0x0102), []byte{0x07, 0x01, 0x02}},
		{"object end", ObjectEnd{}, []byte{0x00, 0x00, 0x09}},
		{"unsupported", Unsupported{Marker: 0x04}, []byte{0x0d}},
		{"empty object", &Object{}, []byte{0x03, 0x00, 0x00, 0x09}},
		{
			"typed object",
			&Object{ClassName: "Foo", Properties: Properties{"x": Boolean(true)}},
			join([]byte{0x10}, key("Foo"), key("x"), []byte{0x01, 0x01}, objectEnd),
		},
		{
			"ecma array count",
			&ECMAArray{Properties: Properties{"a": Null{}}},
			join([]byte{0x08, 0, 0, 0, 1}, key("a"), []byte{0x05}, objectEnd),
		},
		{"strict array has no terminator", StrictArray{Null{}}, []byte{0x0a, 0, 0, 0, 1, 0x05}},
		{
			"date infinity",
			Date{Millis: math.Inf(1)},
			[]byte{0x0b, 0x7f, 0xf0, 0, 0, 0, 0, 0, 0, 0x00, 0x00},
		},
		{"xml", XMLDocument("<a/>"), []byte{0x0f, 0, 0, 0, 4, '<', 'a', '/', '>'}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Marshal(test.value)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if !bytes.Equal(got, test.want) {
				t.Errorf("Marshal = % x, want % x", got, test.want)
			}
		})
	}
}

func TestMarshalCanonicalSortsKeys(t *testing.T) {
	value := &Object{Properties: Properties{
		"b": Number(2),
		"a": Number(1),
		"c": &ECMAArray{Properties: Properties{"z": Null{}, "y": Null{}}},
	}}
	want := join(
		[]byte{0x03},
		key("a"), number(1),
		key("b"), number(2),
		key("c"), []byte{0x08, 0, 0, 0, 2}, key("y"), []byte{0x05}, key("z"), []byte{0x05}, objectEnd,
		objectEnd,
	)
	for range 10 {
		got, err := MarshalCanonical(value)
		if err != nil {
			t.Fatalf("MarshalCanonical: %v", err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("MarshalCanonical = % x, want % x", got, want)
		}
	}
}

func TestMarshalDisabledKind(t *testing.T) {
	mode, err := EncOptions{Kinds: AllKinds.Without(KindString)}.EncMode()
	if err != nil {
		t.Fatalf("EncMode: %v", err)
	}
	got, err := mode.Marshal(StrictArray{String("x"), Null{}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := []byte{0x0a, 0, 0, 0, 2, 0x0d, 0x05}
	if !bytes.Equal(got, want) {
		t.Errorf("Marshal = % x, want % x", got, want)
	}
}

func TestMarshalErrors(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  error
	}{
		{"nil", nil, errNilValue},
		{"nil object", (*Object)(nil), errNilValue},
		{"nil inside array", StrictArray{nil}, errNilValue},
		{"long key", &Object{Properties: Properties{strings.Repeat("k", 65536): Null{}}}, ErrStringTooLong},
		{"long class name", &Object{ClassName: strings.Repeat("C", 65536)}, ErrStringTooLong},
		{"object end property", &Object{Properties: Properties{"end": ObjectEnd{}}}, errMisplacedObjectEnd},
		{"amf3 integer range", AVMPlus{Value: amf3.Integer(amf3.MaxInteger + 1)}, amf3.ErrIntegerRange},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Marshal(test.value)
			if !errors.Is(err, test.want) {
				t.Fatalf("Marshal error = %v, want %v", err, test.want)
			}
		})
	}
}

func TestMarshalMaxDepth(t *testing.T) {
	mode, err := EncOptions{MaxDepth: 2}.EncMode()
	if err != nil {
		t.Fatalf("EncMode: %v", err)
	}
	if _, err := mode.Marshal(StrictArray{StrictArray{}}); err != nil {
		t.Errorf("Marshal two levels: %v", err)
	}
	_, err = mode.Marshal(StrictArray{StrictArray{StrictArray{}}})
	if !errors.Is(err, ErrMaxDepth) {
		t.Errorf("Marshal three levels error = %v, want ErrMaxDepth", err)
	}
}

func TestAppendLeavesBufferOnFailure(t *testing.T) {
	prefix := []byte{0xaa, 0xbb}
	got, err := defaultEncMode.Append(prefix, StrictArray{Null{}, nil})
	if err == nil {
		t.Fatal("Append succeeded with a nil element")
	}
	if !bytes.Equal(got, prefix) {
		t.Errorf("Append returned % x, want % x", got, prefix)
	}

	var output bytes.Buffer
	if err := NewEncoder(&output).Encode(StrictArray{nil}); err == nil {
		t.Fatal("Encode succeeded with a nil element")
	}
	if output.Len() != 0 {
		t.Errorf("Encode wrote %d bytes on failure", output.Len())
	}
}

func TestDecoderStream(t *testing.T) {
	var stream bytes.Buffer
	encoder := NewEncoder(&stream)
	values := []Value{String("connect"), Number(1), &Object{Properties: Properties{"app": String("live")}}, Null{}}
	for _, value := range values {
		if err := encoder.Encode(value); err != nil {
			t.Fatalf("Encode(%#v): %v", value, err)
		}
	}

	decoder := NewDecoder(&stream)
	for index, want := range values {
		got, err := decoder.Decode()
		if err != nil {
			t.Fatalf("Decode %d: %v", index, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("value %d mismatch (-want +got):\n%s", index, diff)
		}
	}
	if _, err := decoder.Decode(); err != io.EOF {
		t.Fatalf("Decode at end = %v, want io.EOF", err)
	}
}

func TestDecoderStreamTruncated(t *testing.T) {
	decoder := NewDecoder(bytes.NewReader([]byte{0x05, 0x02, 0x00, 0x04, 'a'}))
	if _, err := decoder.Decode(); err != nil {
		t.Fatalf("first Decode: %v", err)
	}
	if offset := decoder.InputOffset(); offset != 1 {
		t.Errorf("InputOffset = %d, want 1", offset)
	}
	_, err := decoder.Decode()
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("second Decode error = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestParseKindSet(t *testing.T) {
	set, err := ParseKindSet([]string{"number", " String ", "ecma_array"})
	if err != nil {
		t.Fatalf("ParseKindSet: %v", err)
	}
	if want := KindSetOf(KindNumber, KindString, KindECMAArray); set != want {
		t.Errorf("ParseKindSet = %v, want %v", set, want)
	}
	if !set.Has(KindNull) || !set.Has(KindUnsupported) {
		t.Error("sentinel kinds must always be recognized")
	}
	if set.Has(KindDate) {
		t.Error("KindDate should not be in the set")
	}

	all, err := ParseKindSet(nil)
	if err != nil || all != AllKinds {
		t.Errorf("ParseKindSet(nil) = %v, %v; want AllKinds", all, err)
	}
	if _, err := ParseKindSet([]string{"movieclip"}); err == nil {
		t.Error("ParseKindSet accepted an unknown kind")
	}
}

func TestToNative(t *testing.T) {
	value := &Object{ClassName: "Sample", Properties: Properties{
		"n":     Number(2.5),
		"s":     String("text"),
		"list":  StrictArray{Boolean(true), Null{}, Undefined{}},
		"map":   &ECMAArray{Properties: Properties{"k": Number(1)}},
		"when":  NewDate(86400000),
		"never": Date{Millis: math.Inf(-1)},
		"ref":   Reference(3),
		"bad":   Unsupported{Marker: 0x04},
		"avm":   AVMPlus{Value: amf3.Integer(-5)},
	}}
	want := map[string]any{
		ClassKey: "Sample",
		"n":      2.5,
		"s":      "text",
		"list":   []any{true, nil, nil},
		"map":    map[string]any{"k": 1.0},
		"when":   time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC),
		"never":  map[string]any{DateKey: math.Inf(-1)},
		"ref":    map[string]any{ReferenceKey: int64(3)},
		"bad":    nil,
		"avm":    int64(-5),
	}
	if diff := cmp.Diff(want, ToNative(value)); diff != "" {
		t.Errorf("ToNative mismatch (-want +got):\n%s", diff)
	}
}

func TestDateTime(t *testing.T) {
	tests := []struct {
		name   string
		millis float64
		want   time.Time
		ok     bool
	}{
		{"epoch", 0, time.Unix(0, 0).UTC(), true},
		{"before epoch", -1, time.Date(1969, 12, 31, 23, 59, 59, 999e6, time.UTC), true},
		{"first instant of year 0", -62167219200000, time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"last instant of year 9999", 253402300799999, time.Date(9999, 12, 31, 23, 59, 59, 999e6, time.UTC), true},
		{"before year 0", -62167219200001, time.Time{}, false},
		{"after year 9999", 253402300800000, time.Time{}, false},
		{"ECMAScript maximum", 8.64e15, time.Time{}, false},
		{"fractional", 1.5, time.Time{}, false},
		{"huge", 1e300, time.Time{}, false},
		{"NaN", math.NaN(), time.Time{}, false},
		{"negative infinity", math.Inf(-1), time.Time{}, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, ok := NewDate(test.millis).Time()
			if ok != test.ok {
				t.Fatalf("Time() ok = %v, want %v", ok, test.ok)
			}
			if !got.Equal(test.want) {
				t.Errorf("Time() = %v, want %v", got, test.want)
			}
		})
	}
}

func TestToNativeDateOutsideTimeRange(t *testing.T) {
	for _, millis := range []float64{8.64e15, 1.5, 1e300} {
		want := map[string]any{DateKey: millis}
		if diff := cmp.Diff(want, ToNative(NewDate(millis))); diff != "" {
			t.Errorf("ToNative(NewDate(%v)) mismatch (-want +got):\n%s", millis, diff)
		}
		back, err := FromNative(ToNative(NewDate(millis)))
		if err != nil {
			t.Fatalf("FromNative: %v", err)
		}
		if diff := cmp.Diff(Value(NewDate(millis)), back); diff != "" {
			t.Errorf("native round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestFromNative(t *testing.T) {
	native := map[string]any{
		ClassKey: "Point",
		"x":      1.0,
		"y":      int64(2),
		"tags":   []any{"a", nil, true},
		"ref":    map[string]any{ReferenceKey: 7.0},
		"at":     map[string]any{DateKey: 1000.0},
		"nested": map[any]any{"k": "v"},
	}
	want := &Object{ClassName: "Point", Properties: Properties{
		"x":      Number(1),
		"y":      Number(2),
		"tags":   StrictArray{String("a"), Null{}, Boolean(true)},
		"ref":    Reference(7),
		"at":     NewDate(1000),
		"nested": &Object{Properties: Properties{"k": String("v")}},
	}}
	got, err := FromNative(native)
	if err != nil {
		t.Fatalf("FromNative: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FromNative mismatch (-want +got):\n%s", diff)
	}

	for _, bad := range []any{
		struct{}{},
		map[string]any{ReferenceKey: -1.0},
		map[string]any{ReferenceKey: 1.5},
		map[string]any{ClassKey: 3.0},
		map[any]any{1: "x"},
	} {
		if _, err := FromNative(bad); err == nil {
			t.Errorf("FromNative(%#v) succeeded", bad)
		}
	}
}
