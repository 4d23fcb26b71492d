// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package amf0

import (
	"fmt"
	"io"

	"github.com/bureau-foundation/amf/lib/amf3"
)

// DefaultMaxDepth bounds the nesting of objects, arrays, and embedded
// AMF3 values when no other limit is configured.
const DefaultMaxDepth = 256

// DecOptions configures decoding.
type DecOptions struct {
	// Kinds is the set of recognized kinds. Zero means AllKinds.
	Kinds KindSet

	// MaxDepth bounds composite nesting. Zero means DefaultMaxDepth.
	MaxDepth int

	// RejectUnknownMarkers makes reserved and unknown markers fail with
	// ErrUnknownMarker instead of decoding to Unsupported.
	RejectUnknownMarkers bool

	// AMF3 configures values embedded with the AVM+ marker.
	AMF3 amf3.DecOptions
}

// DecMode is an immutable decoding configuration, safe for concurrent
// use.
type DecMode struct {
	kinds         KindSet
	maxDepth      int
	rejectUnknown bool
	amf3          amf3.DecMode
}

// DecMode validates the options and returns the mode they describe.
func (options DecOptions) DecMode() (DecMode, error) {
	if options.MaxDepth < 0 {
		return DecMode{}, fmt.Errorf("amf0: MaxDepth must not be negative, got %d", options.MaxDepth)
	}
	embedded, err := options.AMF3.DecMode()
	if err != nil {
		return DecMode{}, fmt.Errorf("amf0: embedded AMF3 options: %w", err)
	}
	mode := DecMode{
		kinds:         options.Kinds,
		maxDepth:      options.MaxDepth,
		rejectUnknown: options.RejectUnknownMarkers,
		amf3:          embedded,
	}
	if mode.kinds == 0 {
		mode.kinds = AllKinds
	}
	if mode.maxDepth == 0 {
		mode.maxDepth = DefaultMaxDepth
	}
	return mode, nil
}

// EncOptions configures encoding.
type EncOptions struct {
	// Kinds is the set of encodable kinds. Values of other kinds are
	// written as the unsupported marker. Zero means AllKinds.
	Kinds KindSet

	// SortKeys writes object and ECMA array properties in bytewise key
	// order, making the output deterministic. Otherwise properties are
	// written in map iteration order.
	SortKeys bool

	// MaxDepth bounds composite nesting. Zero means DefaultMaxDepth.
	MaxDepth int

	// AMF3 configures values embedded with the AVM+ marker.
	AMF3 amf3.EncOptions
}

// EncMode is an immutable encoding configuration, safe for concurrent
// use.
type EncMode struct {
	kinds    KindSet
	sortKeys bool
	maxDepth int
	amf3     amf3.EncMode
}

// EncMode validates the options and returns the mode they describe.
func (options EncOptions) EncMode() (EncMode, error) {
	if options.MaxDepth < 0 {
		return EncMode{}, fmt.Errorf("amf0: MaxDepth must not be negative, got %d", options.MaxDepth)
	}
	embedded, err := options.AMF3.EncMode()
	if err != nil {
		return EncMode{}, fmt.Errorf("amf0: embedded AMF3 options: %w", err)
	}
	mode := EncMode{
		kinds:    options.Kinds,
		sortKeys: options.SortKeys,
		maxDepth: options.MaxDepth,
		amf3:     embedded,
	}
	if mode.kinds == 0 {
		mode.kinds = AllKinds
	}
	if mode.maxDepth == 0 {
		mode.maxDepth = DefaultMaxDepth
	}
	return mode, nil
}

// CanonicalEncOptions returns options that produce one byte sequence
// per value tree: sorted keys, all kinds enabled.
func CanonicalEncOptions() EncOptions {
	return EncOptions{SortKeys: true}
}

var (
	defaultDecMode   = mustDecMode(DecOptions{})
	defaultEncMode   = mustEncMode(EncOptions{})
	canonicalEncMode = mustEncMode(CanonicalEncOptions())
)

func mustDecMode(options DecOptions) DecMode {
	mode, err := options.DecMode()
	if err != nil {
		panic("amf0: default decoder initialization failed: " + err.Error())
	}
	return mode
}

func mustEncMode(options EncOptions) EncMode {
	mode, err := options.EncMode()
	if err != nil {
		panic("amf0: default encoder initialization failed: " + err.Error())
	}
	return mode
}

// NewDecoder returns a decoder reading from r with the default mode.
func NewDecoder(r io.Reader) *Decoder {
	return defaultDecMode.NewDecoder(r)
}

// Decode decodes exactly one value from data with the default mode.
func Decode(data []byte) (Value, error) {
	return defaultDecMode.Decode(data)
}

// DecodeFirst decodes the first value in data with the default mode
// and returns the remaining bytes.
func DecodeFirst(data []byte) (Value, []byte, error) {
	return defaultDecMode.DecodeFirst(data)
}

// NewEncoder returns an encoder writing to w with the default mode.
func NewEncoder(w io.Writer) *Encoder {
	return defaultEncMode.NewEncoder(w)
}

// Marshal encodes value with the default mode.
func Marshal(value Value) ([]byte, error) {
	return defaultEncMode.Marshal(value)
}

// MarshalCanonical encodes value with sorted keys.
func MarshalCanonical(value Value) ([]byte, error) {
	return canonicalEncMode.Marshal(value)
}
