// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package amf3 implements the scalar subset of AMF3, the successor to
// AMF0.
//
// AMF3 shares AMF0's big-endian doubles but replaces most fixed-width
// fields with the U29 variable-length integer (see package wire) and
// assigns a new marker space:
//
//	0x00 undefined     0x06 string        0x0c byte array
//	0x01 null          0x07 XML document  0x0d vector<int>
//	0x02 false         0x08 date          0x0e vector<uint>
//	0x03 true          0x09 array         0x0f vector<double>
//	0x04 integer       0x0a object        0x10 vector<object>
//	0x05 double        0x0b XML           0x11 dictionary
//
// Undefined, null, the two booleans, 29-bit signed integers, and
// doubles decode and encode fully. The composite kinds have value types
// so that the model is complete, but their wire encodings (with string,
// object, and trait reference tables) are not implemented: decoding or
// encoding one fails with an error wrapping [ErrUnsupportedMarker].
// This is stricter than AMF0, which degrades an unknown marker to an
// unsupported sentinel.
//
// Basic usage:
//
//	value, err := amf3.Decode(data)
//	data, err = amf3.Marshal(amf3.Integer(-5))
//
// Embedding formats (AMF0's AVM+ marker) use [DecMode.ReadValue] and
// [EncMode.Append] to share the surrounding stream.
package amf3
