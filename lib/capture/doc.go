// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package capture reads and writes AMF capture files: concatenated
// AMF0 values, optionally wrapped in a zstd or LZ4 frame stream.
//
// [NewReader] sniffs the frame magic and decompresses transparently,
// so a decoder reads the same value stream regardless of framing.
// [NewWriter] applies the framing chosen by configuration.
//
// zstd uses github.com/klauspost/compress/zstd at the default level;
// LZ4 uses the frame format from github.com/pierrec/lz4/v4.
package capture
