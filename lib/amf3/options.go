// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package amf3

import (
	"fmt"
	"io"
	"strings"
)

// KindSet is the set of kinds a codec mode recognizes. Undefined,
// null, and the booleans are always recognized; the remaining bits
// gate their kinds in both directions.
type KindSet uint32

// AllKinds enables every kind this package implements.
const AllKinds = KindSet(1<<KindInteger | 1<<KindDouble)

// KindSetOf returns a set containing kinds.
func KindSetOf(kinds ...Kind) KindSet {
	var set KindSet
	for _, kind := range kinds {
		set |= 1 << kind
	}
	return set
}

// ParseKindSet parses configuration names into a set. An empty list
// yields AllKinds. Only kinds the codec implements are accepted: the
// gated integer and double, plus the always-recognized undefined, null
// and boolean. Naming any other kind is an error, since it could never
// be decoded or encoded.
func ParseKindSet(names []string) (KindSet, error) {
	if len(names) == 0 {
		return AllKinds, nil
	}
	var set KindSet
	for _, name := range names {
		kind, err := ParseKind(name)
		if err != nil {
			return 0, err
		}
		switch kind {
		case KindUndefined, KindNull, KindBoolean:
		case KindInteger, KindDouble:
			set |= 1 << kind
		default:
			return 0, fmt.Errorf("AMF3 kind %q is not supported by this codec", name)
		}
	}
	return set, nil
}

// Has reports whether kind is recognized.
func (set KindSet) Has(kind Kind) bool {
	switch kind {
	case KindUndefined, KindNull, KindBoolean:
		return true
	}
	return set&(1<<kind) != 0
}

// Without returns a copy of set with kinds removed.
func (set KindSet) Without(kinds ...Kind) KindSet {
	for _, kind := range kinds {
		set &^= 1 << kind
	}
	return set
}

// String lists the gated kinds in the set.
func (set KindSet) String() string {
	var names []string
	for kind := KindInteger; kind < kindCount; kind++ {
		if set&(1<<kind) != 0 {
			names = append(names, kind.String())
		}
	}
	return "{" + strings.Join(names, ",") + "}"
}

// DecOptions configures decoding.
type DecOptions struct {
	// Kinds is the set of recognized kinds. Zero means AllKinds.
	Kinds KindSet
}

// DecMode is an immutable decoding configuration, safe for concurrent
// use.
type DecMode struct {
	kinds KindSet
}

// DecMode returns the mode described by the options.
func (options DecOptions) DecMode() (DecMode, error) {
	kinds := options.Kinds
	if kinds == 0 {
		kinds = AllKinds
	}
	return DecMode{kinds: kinds}, nil
}

// EncOptions configures encoding.
type EncOptions struct {
	// Kinds is the set of encodable kinds. Zero means AllKinds.
	Kinds KindSet
}

// EncMode is an immutable encoding configuration, safe for concurrent
// use.
type EncMode struct {
	kinds KindSet
}

// EncMode returns the mode described by the options.
func (options EncOptions) EncMode() (EncMode, error) {
	kinds := options.Kinds
	if kinds == 0 {
		kinds = AllKinds
	}
	return EncMode{kinds: kinds}, nil
}

var (
	defaultDecMode = DecMode{kinds: AllKinds}
	defaultEncMode = EncMode{kinds: AllKinds}
)

// NewDecoder returns a decoder reading from r with the default mode.
func NewDecoder(r io.Reader) *Decoder {
	return defaultDecMode.NewDecoder(r)
}

// Decode decodes exactly one value from data with the default mode.
func Decode(data []byte) (Value, error) {
	return defaultDecMode.Decode(data)
}

// NewEncoder returns an encoder writing to w with the default mode.
func NewEncoder(w io.Writer) *Encoder {
	return defaultEncMode.NewEncoder(w)
}

// Marshal encodes value with the default mode.
func Marshal(value Value) ([]byte, error) {
	return defaultEncMode.Marshal(value)
}
