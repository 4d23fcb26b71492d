// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Set with -ldflags -X at build time, for example:
//
//	go build -ldflags "-X github.com/bureau-foundation/amf/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// Values left unset fall back to the VCS stamp the go command embeds
// in the binary.
var (
	GitCommit = ""
	GitDirty  = ""
	BuildTime = ""
	Version   = "0.1.0-dev"
)

// Formats lists the wire formats the codec reads and writes.
var Formats = []string{"amf0", "amf3-scalar"}

// Build describes the running binary.
type Build struct {
	Version  string   `json:"version"`
	Commit   string   `json:"commit"`
	Dirty    bool     `json:"dirty"`
	Time     string   `json:"build_time"`
	Go       string   `json:"go"`
	Platform string   `json:"platform"`
	Formats  []string `json:"formats"`
}

// Current returns the build information for this binary.
func Current() Build {
	build := Build{
		Version:  Version,
		Commit:   GitCommit,
		Dirty:    GitDirty == "true",
		Time:     BuildTime,
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
		Formats:  Formats,
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		build.fillFromBuildInfo(info)
	}
	if build.Commit == "" {
		build.Commit = "unknown"
	}
	if build.Time == "" {
		build.Time = "unknown"
	}
	return build
}

// fillFromBuildInfo copies the vcs.* settings into fields the linker
// flags left empty.
func (b *Build) fillFromBuildInfo(info *debug.BuildInfo) {
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if b.Commit == "" {
				b.Commit = setting.Value
				if len(b.Commit) > 7 {
					b.Commit = b.Commit[:7]
				}
			}
		case "vcs.modified":
			if GitDirty == "" {
				b.Dirty = setting.Value == "true"
			}
		case "vcs.time":
			if b.Time == "" {
				b.Time = setting.Value
			}
		}
	}
}

// String formats the build as "0.1.0-dev (abc1234-dirty, 2026-...)".
func (b Build) String() string {
	dirty := ""
	if b.Dirty {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", b.Version, b.Commit, dirty, b.Time)
}

// Detail adds the toolchain, platform, and supported formats to String.
func (b Build) Detail() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s\n  Formats: %s",
		b, b.Go, b.Platform, strings.Join(b.Formats, ", "))
}
