// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package wire provides the primitive encodings shared by the AMF0 and
// AMF3 codecs.
//
// Both formats are big-endian. Fixed-width integers and IEEE-754
// doubles are read through [Reader] and written with the Append*
// functions. AMF3 adds the U29 variable-length unsigned integer
// ([Reader.ReadU29], [AppendU29]): up to three bytes carrying seven
// bits each behind a continuation flag, most significant group first,
// and an optional fourth byte that contributes all eight of its bits.
//
// [Reader] never reads ahead. A decoder built on it consumes exactly
// the bytes of one value, so callers can decode a stream of
// concatenated values or hand the source to another consumer between
// values.
//
// This package depends on no other packages in this module.
package wire
