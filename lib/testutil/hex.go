// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"encoding/hex"
	"strings"
)

// Hex decodes a hex dump. Whitespace is ignored and "#" starts a
// comment running to the end of the line:
//
//	data := testutil.Hex(t, `
//		03          # object
//		00 01 61    # key "a"
//		05          # null
//		00 00 09    # end
//	`)
func Hex(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, dump string) []byte {
	t.Helper()
	var digits strings.Builder
	for line := range strings.Lines(dump) {
		if index := strings.IndexByte(line, '#'); index >= 0 {
			line = line[:index]
		}
		for _, field := range strings.Fields(line) {
			digits.WriteString(field)
		}
	}
	data, err := hex.DecodeString(digits.String())
	if err != nil {
		t.Fatalf("invalid hex fixture: %v", err)
	}
	return data
}
