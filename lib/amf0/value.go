// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package amf0

import (
	"time"

	"github.com/bureau-foundation/amf/lib/amf3"
)

// Value is a decoded AMF0 value. The set of implementations is closed:
// only the types in this package satisfy it. Values are never modified
// by the codec after construction.
type Value interface {
	// Kind reports which variant the value is.
	Kind() Kind
	isValue()
}

// Properties is the key/value map of an Object or ECMAArray. Keys are
// unique; a key repeated on the wire keeps its last value. Iteration
// order carries no meaning.
type Properties map[string]Value

type (
	// Number is an IEEE-754 double (0x00).
	Number float64

	// Boolean is a single byte, any non-zero value true (0x01).
	Boolean bool

	// String is UTF-8 text (0x02, or 0x0c above MaxShortString bytes).
	String string

	// Null is the null sentinel (0x05).
	Null struct{}

	// Undefined is the undefined sentinel (0x06).
	Undefined struct{}

	// Reference is an unresolved 16-bit index into the sender's table
	// of previously serialized complex values (0x07).
	Reference uint16

	// ObjectEnd is the property-list terminator (0x09). It appears as
	// a decode result only when a caller decodes the bytes of a bare
	// terminator; object and ECMA array decoding consume it.
	ObjectEnd struct{}

	// StrictArray is an ordered, length-prefixed list (0x0a).
	StrictArray []Value

	// XMLDocument is XML markup, encoded like a long string (0x0f).
	XMLDocument string
)

// Object is an anonymous (0x03) or typed (0x10) object. An empty
// ClassName means anonymous.
type Object struct {
	ClassName  string
	Properties Properties
}

// ECMAArray is an associative array (0x08). On the wire it carries an
// element count; the count is written from len(Properties) and ignored
// on decode.
type ECMAArray struct {
	Properties Properties
}

// Date is milliseconds since the Unix epoch plus a reserved 16-bit time
// zone field (0x0b). TimeZone should be zero; a non-zero value read
// from the wire is preserved and written back unchanged.
type Date struct {
	Millis   float64
	TimeZone int16
}

// NewDate returns a Date with a zero time zone.
func NewDate(millis float64) Date {
	return Date{Millis: millis}
}

// Time returns d as a UTC time.Time, within the same limits as
// amf3.Date.Time. The time zone field is ignored.
func (d Date) Time() (time.Time, bool) {
	return amf3.Date{Millis: d.Millis}.Time()
}

// Unsupported stands for data this codec could not represent: an
// unknown or reserved marker, or a marker whose kind is disabled.
// Marker records the byte that produced it; it is not written back.
type Unsupported struct {
	Marker byte
}

// AVMPlus embeds one AMF3 value in an AMF0 stream (0x11).
type AVMPlus struct {
	Value amf3.Value
}

func (Number) Kind() Kind      { return KindNumber }
func (Boolean) Kind() Kind     { return KindBoolean }
func (String) Kind() Kind      { return KindString }
func (*Object) Kind() Kind     { return KindObject }
func (Null) Kind() Kind        { return KindNull }
func (Undefined) Kind() Kind   { return KindUndefined }
func (Reference) Kind() Kind   { return KindReference }
func (*ECMAArray) Kind() Kind  { return KindECMAArray }
func (ObjectEnd) Kind() Kind   { return KindObjectEnd }
func (StrictArray) Kind() Kind { return KindStrictArray }
func (Date) Kind() Kind        { return KindDate }
func (Unsupported) Kind() Kind { return KindUnsupported }
func (XMLDocument) Kind() Kind { return KindXMLDocument }
func (AVMPlus) Kind() Kind     { return KindAVMPlus }

func (Number) isValue()      {}
func (Boolean) isValue()     {}
func (String) isValue()      {}
func (*Object) isValue()     {}
func (Null) isValue()        {}
func (Undefined) isValue()   {}
func (Reference) isValue()   {}
func (*ECMAArray) isValue()  {}
func (ObjectEnd) isValue()   {}
func (StrictArray) isValue() {}
func (Date) isValue()        {}
func (Unsupported) isValue() {}
func (XMLDocument) isValue() {}
func (AVMPlus) isValue()     {}
