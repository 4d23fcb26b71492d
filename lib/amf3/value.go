// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package amf3

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Marker bytes. These are protocol constants.
const (
	MarkerUndefined    byte = 0x00
	MarkerNull         byte = 0x01
	MarkerFalse        byte = 0x02
	MarkerTrue         byte = 0x03
	MarkerInteger      byte = 0x04
	MarkerDouble       byte = 0x05
	MarkerString       byte = 0x06
	MarkerXMLDocument  byte = 0x07
	MarkerDate         byte = 0x08
	MarkerArray        byte = 0x09
	MarkerObject       byte = 0x0a
	MarkerXML          byte = 0x0b
	MarkerByteArray    byte = 0x0c
	MarkerVectorInt    byte = 0x0d
	MarkerVectorUint   byte = 0x0e
	MarkerVectorDouble byte = 0x0f
	MarkerVectorObject byte = 0x10
	MarkerDictionary   byte = 0x11
)

// Integer range. AMF3 integers are 29-bit two's complement.
const (
	MinInteger = -1 << 28
	MaxInteger = 1<<28 - 1
)

// Kind identifies the variant of a Value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindUndefined
	KindNull
	KindBoolean
	KindInteger
	KindDouble
	KindString
	KindXMLDocument
	KindDate
	KindArray
	KindObject
	KindXML
	KindByteArray
	KindVectorInt
	KindVectorUint
	KindVectorDouble
	KindVectorObject
	KindDictionary

	kindCount
)

var kindNames = [kindCount]string{
	KindInvalid:      "invalid",
	KindUndefined:    "undefined",
	KindNull:         "null",
	KindBoolean:      "boolean",
	KindInteger:      "integer",
	KindDouble:       "double",
	KindString:       "string",
	KindXMLDocument:  "xml_document",
	KindDate:         "date",
	KindArray:        "array",
	KindObject:       "object",
	KindXML:          "xml",
	KindByteArray:    "byte_array",
	KindVectorInt:    "vector_int",
	KindVectorUint:   "vector_uint",
	KindVectorDouble: "vector_double",
	KindVectorObject: "vector_object",
	KindDictionary:   "dictionary",
}

// String returns the configuration name of the kind.
func (kind Kind) String() string {
	if kind < kindCount {
		return kindNames[kind]
	}
	return fmt.Sprintf("unknown(%d)", uint8(kind))
}

// ParseKind parses a kind from its configuration name.
func ParseKind(name string) (Kind, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for kind := KindUndefined; kind < kindCount; kind++ {
		if kindNames[kind] == normalized {
			return kind, nil
		}
	}
	return KindInvalid, fmt.Errorf("unknown AMF3 kind: %q", name)
}

// kindForMarker maps a marker byte to its kind. Both boolean markers
// map to KindBoolean.
func kindForMarker(marker byte) Kind {
	switch marker {
	case MarkerUndefined:
		return KindUndefined
	case MarkerNull:
		return KindNull
	case MarkerFalse, MarkerTrue:
		return KindBoolean
	}
	// From the integer marker on, kinds are numbered like their markers.
	if marker <= MarkerDictionary {
		return Kind(marker)
	}
	return KindInvalid
}

// Value is a decoded AMF3 value. The set of implementations is closed:
// only the types in this package satisfy it.
type Value interface {
	// Kind reports which variant the value is.
	Kind() Kind
	isValue()
}

type (
	// Undefined is the undefined sentinel (0x00).
	Undefined struct{}

	// Null is the null sentinel (0x01).
	Null struct{}

	// Boolean is encoded as a bare marker: 0x02 for false, 0x03 for true.
	Boolean bool

	// Integer is a 29-bit signed integer in [MinInteger, MaxInteger].
	Integer int32

	// Double is an IEEE-754 double.
	Double float64

	// String is a UTF-8 string (0x06).
	String string

	// XMLDocument is a legacy XML document (0x07).
	XMLDocument string

	// XML is an E4X XML value (0x0b).
	XML string

	// ByteArray is an opaque byte sequence (0x0c).
	ByteArray []byte
)

// Date is an instant in milliseconds since the Unix epoch (0x08).
type Date struct {
	Millis float64
}

// Millisecond bounds of years 0 through 9999, the range RFC 3339 text
// can express.
const (
	minTimeMillis = -62167219200000
	maxTimeMillis = 253402300799999
)

// Time returns d as a UTC time.Time. It reports false when Millis is
// fractional, not finite, or outside years 0 through 9999; such dates
// have no exact time.Time that also renders as RFC 3339.
func (d Date) Time() (time.Time, bool) {
	if d.Millis != math.Trunc(d.Millis) || d.Millis < minTimeMillis || d.Millis > maxTimeMillis {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(d.Millis)).UTC(), true
}

// Array has a dense part and an associative part (0x09).
type Array struct {
	Dense       []Value
	Associative map[string]Value
}

// Object is an instance with an optional class name (0x0a).
type Object struct {
	ClassName  string
	Properties map[string]Value
}

// VectorInt is a typed vector of signed 32-bit integers (0x0d).
type VectorInt struct {
	Fixed bool
	Items []int32
}

// VectorUint is a typed vector of unsigned 32-bit integers (0x0e).
type VectorUint struct {
	Fixed bool
	Items []uint32
}

// VectorDouble is a typed vector of doubles (0x0f).
type VectorDouble struct {
	Fixed bool
	Items []float64
}

// VectorObject is a typed vector of values of one class (0x10).
type VectorObject struct {
	Fixed    bool
	TypeName string
	Items    []Value
}

// Dictionary maps arbitrary values to values (0x11).
type Dictionary struct {
	WeakKeys bool
	Entries  []DictionaryEntry
}

// DictionaryEntry is one key/value pair of a Dictionary.
type DictionaryEntry struct {
	Key   Value
	Value Value
}

func (Undefined) Kind() Kind     { return KindUndefined }
func (Null) Kind() Kind          { return KindNull }
func (Boolean) Kind() Kind       { return KindBoolean }
func (Integer) Kind() Kind       { return KindInteger }
func (Double) Kind() Kind        { return KindDouble }
func (String) Kind() Kind        { return KindString }
func (XMLDocument) Kind() Kind   { return KindXMLDocument }
func (Date) Kind() Kind          { return KindDate }
func (*Array) Kind() Kind        { return KindArray }
func (*Object) Kind() Kind       { return KindObject }
func (XML) Kind() Kind           { return KindXML }
func (ByteArray) Kind() Kind     { return KindByteArray }
func (VectorInt) Kind() Kind     { return KindVectorInt }
func (VectorUint) Kind() Kind    { return KindVectorUint }
func (VectorDouble) Kind() Kind  { return KindVectorDouble }
func (*VectorObject) Kind() Kind { return KindVectorObject }
func (*Dictionary) Kind() Kind   { return KindDictionary }

func (Undefined) isValue()     {}
func (Null) isValue()          {}
func (Boolean) isValue()       {}
func (Integer) isValue()       {}
func (Double) isValue()        {}
func (String) isValue()        {}
func (XMLDocument) isValue()   {}
func (Date) isValue()          {}
func (*Array) isValue()        {}
func (*Object) isValue()       {}
func (XML) isValue()           {}
func (ByteArray) isValue()     {}
func (VectorInt) isValue()     {}
func (VectorUint) isValue()    {}
func (VectorDouble) isValue()  {}
func (*VectorObject) isValue() {}
func (*Dictionary) isValue()   {}

// IntegerFromU29 sign-extends a raw 29-bit quantity: if bit 28 is set
// the result is raw - 2^29.
func IntegerFromU29(raw uint32) Integer {
	value := int32(raw & 0x1fffffff)
	if value&(1<<28) != 0 {
		value -= 1 << 29
	}
	return Integer(value)
}

// U29FromInteger returns the 29-bit two's-complement representation of
// value. It fails with ErrIntegerRange outside [MinInteger, MaxInteger].
func U29FromInteger(value Integer) (uint32, error) {
	if value < MinInteger || value > MaxInteger {
		return 0, fmt.Errorf("%w: %d", ErrIntegerRange, value)
	}
	return uint32(value) & 0x1fffffff, nil
}
