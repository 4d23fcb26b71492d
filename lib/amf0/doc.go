// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package amf0 implements AMF0 (Action Message Format version 0), the
// tagged binary format used by RTMP command messages, Flash remoting,
// and FLV metadata.
//
// Every value starts with a one-byte marker that selects how its
// payload is read:
//
//	0x00 number          0x06 undefined        0x0c long string
//	0x01 boolean         0x07 reference        0x0d unsupported
//	0x02 string          0x08 ECMA array       0x0e recordset (reserved)
//	0x03 object          0x09 object end       0x0f XML document
//	0x04 movieclip (res) 0x0a strict array     0x10 typed object
//	0x05 null            0x0b date             0x11 AVM+ (embedded AMF3)
//
// The decoded form is the closed [Value] interface. Objects and ECMA
// arrays hold a [Properties] map and are terminated on the wire by an
// empty key followed by the object-end marker. ECMA arrays also carry
// an element count, which the decoder reads and ignores: the
// terminator, not the count, ends the property list. Strict arrays are
// length-prefixed and have no terminator.
//
// # Modes
//
// Like fxamacker/cbor, configuration is captured in immutable modes:
//
//	decodeMode, err := amf0.DecOptions{MaxDepth: 64}.DecMode()
//	value, err := decodeMode.Decode(data)
//
//	encodeMode, err := amf0.EncOptions{SortKeys: true}.EncMode()
//	data, err := encodeMode.Marshal(value)
//
// The package-level [Decode], [DecodeFirst], [NewDecoder], [Marshal],
// and [NewEncoder] use the default modes. Modes are safe for concurrent
// use; Decoders and Encoders are not.
//
// # Enabled kinds
//
// [KindSet] selects which kinds a mode recognizes. A known marker whose
// kind is disabled is still parsed, so the stream stays aligned, but
// decodes to [Unsupported]. Encoding a disabled kind, or an
// [Unsupported] value, writes the single unsupported marker 0x0d.
//
// # Unknown markers
//
// Reserved and unknown markers (0x04, 0x0d, 0x0e, and anything above
// 0x11) decode to [Unsupported] without consuming any payload, because
// their payload length cannot be known. Bytes after such a marker are
// not reliably aligned. Set [DecOptions.RejectUnknownMarkers] to fail
// with [ErrUnknownMarker] instead.
//
// # References
//
// A [Reference] is returned as its raw 16-bit index. The decoder keeps
// no object table, so the decoded form is always a tree.
//
// # Errors
//
// Decoding failures are *[DecodeError] values carrying the byte
// offset. Use errors.Is with io.ErrUnexpectedEOF (truncated input),
// wire.ErrInvalidUTF8, [ErrMaxDepth], [ErrUnknownMarker], or
// [ErrTrailingData]. A Decoder returns a bare io.EOF when the stream
// ends cleanly between values.
package amf0
