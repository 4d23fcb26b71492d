// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML codec profile loading for the amf tools.
//
// Configuration is loaded from a single file specified by either the
// AMF_CONFIG environment variable (via [Load]) or a --config flag (via
// [LoadFile]). There are no fallbacks and no automatic file search;
// without a file, tools use [Default].
//
// A profile file has decode, encode, and output sections plus an
// optional map of named profiles. When the top-level profile key names
// one of them, its non-empty fields override the base values:
//
//	profile: strict
//	decode:
//	  max_depth: 64
//	profiles:
//	  strict:
//	    decode:
//	      reject_unknown_markers: true
//	      kinds: [number, boolean, string, object, strict_array]
//
// [Config.DecOptions] and [Config.EncOptions] convert the loaded
// profile to [amf0.DecOptions] and [amf0.EncOptions].
package config
