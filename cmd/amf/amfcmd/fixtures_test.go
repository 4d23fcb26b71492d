// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package amfcmd

import (
	"io"
	"log/slog"
	"testing"

	"github.com/bureau-foundation/amf/lib/amf0"
	"github.com/bureau-foundation/amf/lib/config"
	"github.com/bureau-foundation/amf/lib/testutil"
)

// connectSequence is the start of an RTMP connect command: the command
// name, the transaction ID, and a command object.
func connectSequence(t *testing.T) []byte {
	return testutil.Hex(t, `
		02 00 07 63 6f 6e 6e 65 63 74         # "connect"
		00 3f f0 00 00 00 00 00 00            # 1
		03                                    # object
		  00 03 61 70 70 02 00 04 6c 69 76 65 # app: "live"
		00 00 09                              # end
	`)
}

func defaultDecMode(t *testing.T) amf0.DecMode {
	t.Helper()
	mode, err := amf0.DecOptions{}.DecMode()
	if err != nil {
		t.Fatalf("DecMode: %v", err)
	}
	return mode
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func plainConfig() *config.Config {
	cfg := config.Default()
	cfg.Output.Color = "never"
	return cfg
}

// mustDecode converts one JSON value to an AMF0 value.
func mustDecode(t *testing.T, data []byte) amf0.Value {
	t.Helper()
	natives, err := parseJSONValues(data)
	if err != nil || len(natives) != 1 {
		t.Fatalf("parseJSONValues(%s) = %v, %v", data, natives, err)
	}
	value, err := amf0.FromNative(natives[0])
	if err != nil {
		t.Fatalf("FromNative: %v", err)
	}
	return value
}
