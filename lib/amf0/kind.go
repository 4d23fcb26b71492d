// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package amf0

import (
	"fmt"
	"strings"
)

// Marker bytes. These are protocol constants.
const (
	MarkerNumber      byte = 0x00
	MarkerBoolean     byte = 0x01
	MarkerString      byte = 0x02
	MarkerObject      byte = 0x03
	MarkerMovieClip   byte = 0x04 // reserved
	MarkerNull        byte = 0x05
	MarkerUndefined   byte = 0x06
	MarkerReference   byte = 0x07
	MarkerECMAArray   byte = 0x08
	MarkerObjectEnd   byte = 0x09
	MarkerStrictArray byte = 0x0a
	MarkerDate        byte = 0x0b
	MarkerLongString  byte = 0x0c
	MarkerUnsupported byte = 0x0d
	MarkerRecordSet   byte = 0x0e // reserved
	MarkerXMLDocument byte = 0x0f
	MarkerTypedObject byte = 0x10
	MarkerAVMPlus     byte = 0x11
)

// MaxShortString is the longest string, in bytes, that uses the short
// string marker. Longer strings use MarkerLongString.
const MaxShortString = 0xffff

// Kind identifies the variant of a Value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindNumber
	KindBoolean
	KindString
	KindObject
	KindNull
	KindUndefined
	KindReference
	KindECMAArray
	KindObjectEnd
	KindStrictArray
	KindDate
	KindUnsupported
	KindXMLDocument
	KindAVMPlus

	kindCount
)

var kindNames = [kindCount]string{
	KindInvalid:     "invalid",
	KindNumber:      "number",
	KindBoolean:     "boolean",
	KindString:      "string",
	KindObject:      "object",
	KindNull:        "null",
	KindUndefined:   "undefined",
	KindReference:   "reference",
	KindECMAArray:   "ecma_array",
	KindObjectEnd:   "object_end",
	KindStrictArray: "strict_array",
	KindDate:        "date",
	KindUnsupported: "unsupported",
	KindXMLDocument: "xml_document",
	KindAVMPlus:     "avmplus",
}

// String returns the configuration name of the kind.
func (kind Kind) String() string {
	if kind < kindCount {
		return kindNames[kind]
	}
	return fmt.Sprintf("unknown(%d)", uint8(kind))
}

// ParseKind parses a kind from its configuration name.
func ParseKind(name string) (Kind, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for kind := KindNumber; kind < kindCount; kind++ {
		if kindNames[kind] == normalized {
			return kind, nil
		}
	}
	return KindInvalid, fmt.Errorf("unknown AMF0 kind: %q", name)
}

// KindForMarker returns the kind a marker byte decodes to. Long
// strings share KindString and typed objects share KindObject.
// Reserved and unknown markers return KindInvalid.
func KindForMarker(marker byte) Kind {
	switch marker {
	case MarkerNumber:
		return KindNumber
	case MarkerBoolean:
		return KindBoolean
	case MarkerString, MarkerLongString:
		return KindString
	case MarkerObject, MarkerTypedObject:
		return KindObject
	case MarkerNull:
		return KindNull
	case MarkerUndefined:
		return KindUndefined
	case MarkerReference:
		return KindReference
	case MarkerECMAArray:
		return KindECMAArray
	case MarkerObjectEnd:
		return KindObjectEnd
	case MarkerStrictArray:
		return KindStrictArray
	case MarkerDate:
		return KindDate
	case MarkerXMLDocument:
		return KindXMLDocument
	case MarkerAVMPlus:
		return KindAVMPlus
	default:
		return KindInvalid
	}
}

// KindSet is the set of kinds a mode recognizes (the "enabled variant
// set"). Null, undefined, object end, and unsupported are always
// recognized; every other kind is gated by its bit.
type KindSet uint32

// AllKinds enables every kind.
const AllKinds = KindSet(1<<KindNumber | 1<<KindBoolean | 1<<KindString |
	1<<KindObject | 1<<KindReference | 1<<KindECMAArray |
	1<<KindStrictArray | 1<<KindDate | 1<<KindXMLDocument | 1<<KindAVMPlus)

// KindSetOf returns a set containing kinds.
func KindSetOf(kinds ...Kind) KindSet {
	var set KindSet
	for _, kind := range kinds {
		set |= 1 << kind
	}
	return set
}

// ParseKindSet parses configuration names into a set. An empty list
// yields AllKinds.
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
		set |= 1 << kind
	}
	return set, nil
}

// Has reports whether kind is recognized.
func (set KindSet) Has(kind Kind) bool {
	switch kind {
	case KindNull, KindUndefined, KindObjectEnd, KindUnsupported:
		return true
	case KindInvalid:
		return false
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
	for kind := KindNumber; kind < kindCount; kind++ {
		if set&(1<<kind) != 0 {
			names = append(names, kind.String())
		}
	}
	return "{" + strings.Join(names, ",") + "}"
}
