// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for the amf packages.
//
// [Hex] turns an annotated hex dump into bytes, so fixtures can be
// written one field per line with comments. [WriteFile] places a
// fixture in the test's temporary directory and returns its path.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil
