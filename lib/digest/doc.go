// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package digest computes content digests of AMF0 values.
//
// A value digest is the BLAKE3 keyed hash of the value's canonical
// encoding (properties in bytewise key order), so it identifies the
// value tree rather than one particular serialization of it. A stream
// digest hashes the ordered value digests of a capture under a
// separate domain key.
//
// Digests format as 64 lowercase hex characters ([Digest.String]) and
// parse back with [Parse].
package digest
