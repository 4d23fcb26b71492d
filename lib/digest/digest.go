// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/amf/lib/amf0"
)

// Digest is a 32-byte BLAKE3 keyed hash.
type Digest [32]byte

// domainKey is a 32-byte key for BLAKE3 keyed hashing.
type domainKey [32]byte

// Domain separation keys: the ASCII domain name zero-padded to 32
// bytes. Changing them invalidates every digest in that domain.
var (
	valueDomainKey = domainKey{
		'a', 'm', 'f', '.', 'v', 'a', 'l', 'u', 'e', 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}

	streamDomainKey = domainKey{
		'a', 'm', 'f', '.', 's', 't', 'r', 'e', 'a', 'm', 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
)

// Value returns the value-domain digest of value's canonical
// encoding. Two value trees that differ only in property order have
// the same digest.
func Value(value amf0.Value) (Digest, error) {
	encoded, err := amf0.MarshalCanonical(value)
	if err != nil {
		return Digest{}, fmt.Errorf("canonical encoding: %w", err)
	}
	return Encoded(encoded), nil
}

// Encoded returns the value-domain digest of bytes that are already a
// canonical encoding. It does not check that they are.
func Encoded(canonical []byte) Digest {
	return keyedHash(valueDomainKey, canonical)
}

// Stream accumulates the digest of a value sequence. The result
// depends on the order of values, and differs from the digest of any
// single value.
type Stream struct {
	hasher *blake3.Hasher
	count  int
}

// NewStream returns an empty stream digest.
func NewStream() *Stream {
	hasher, err := blake3.NewKeyed(streamDomainKey[:])
	if err != nil {
		panic("digest: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	return &Stream{hasher: hasher}
}

// Add appends a value digest to the stream.
func (s *Stream) Add(value Digest) {
	s.hasher.Write(value[:])
	s.count++
}

// Len returns the number of digests added.
func (s *Stream) Len() int {
	return s.count
}

// Sum returns the stream digest of everything added so far.
func (s *Stream) Sum() Digest {
	var result Digest
	copy(result[:], s.hasher.Sum(nil))
	return result
}

// String returns the hex encoding of the digest.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Parse parses a 64-character hex string into a Digest.
func Parse(hexString string) (Digest, error) {
	var result Digest
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return result, fmt.Errorf("parsing digest: %w", err)
	}
	if len(decoded) != len(result) {
		return result, fmt.Errorf("digest is %d bytes, want %d", len(decoded), len(result))
	}
	copy(result[:], decoded)
	return result, nil
}

func keyedHash(key domainKey, data []byte) Digest {
	// NewKeyed only fails for a key that is not 32 bytes.
	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		panic("digest: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var result Digest
	copy(result[:], hasher.Sum(nil))
	return result
}
