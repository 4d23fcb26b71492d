// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports build information for the amf tools.
//
// [GitCommit], [GitDirty], [BuildTime] and [Version] may be injected
// with -ldflags -X. Anything not injected is taken from the VCS stamp
// that the go command records in the binary, so plain "go build" and
// "go install" still report a commit. [Current] assembles the result
// as a [Build], which renders as one line ([Build.String]), as a
// multi-line report ([Build.Detail]), or as JSON.
package version
