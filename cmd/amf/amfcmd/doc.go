// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package amfcmd implements the amf command tree: decode, encode,
// diag, validate, hash, convert, and version, plus a jq filter
// shorthand on the root command.
//
// Every command reads its input from a trailing file argument or from
// stdin. Capture files compressed with zstd or lz4 are recognized by
// their frame magic and decompressed transparently; --hex accepts a
// whitespace-separated hex dump instead of binary. Input is a sequence
// of concatenated AMF0 values, as found in RTMP command payloads and
// remoting bodies.
//
// Codec behaviour (enabled kinds, depth limit, unknown marker policy,
// key ordering) comes from a YAML profile named by --config or the
// AMF_CONFIG environment variable; see lib/config.
package amfcmd
