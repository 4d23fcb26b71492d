// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec converts AMF0 value trees to and from CBOR.
//
// Values travel through their native Go form (amf0.ToNative and
// amf0.FromNative): objects become maps with text keys, strict arrays
// become arrays, dates become tag 0 times. Output uses Core
// Deterministic Encoding, so the same logical value always produces
// the same bytes.
//
// Single items go through [MarshalValue] and [UnmarshalValue]. CBOR
// sequences, one AMF0 value per item, go through [Encoder] and
// [Decoder]. [Diagnose] and [DiagnoseSequence] render diagnostic
// notation for inspecting the output.
package codec
