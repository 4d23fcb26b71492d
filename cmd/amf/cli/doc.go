// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework behind the amf binary.
//
// A [Command] tree dispatches on the first positional argument, parses
// flags with pflag, and suggests the closest subcommand or flag name on
// typos. Flags are normally declared as tagged fields of a params struct
// and bound with [FlagsFromParams]:
//
//	type decodeParams struct {
//	    Hex    bool   `flag:"hex" desc:"input is a hex dump"`
//	    Format string `flag:"format,f" desc:"output format" default:"json"`
//	}
//
// Commands return categorized errors ([Validation], [NotFound],
// [Internal]) so main can print them uniformly, and [ExitError] when a
// non-zero exit status is a normal outcome (validate finding a
// non-canonical stream).
package cli
