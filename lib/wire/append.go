// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/binary"
	"math"
)

// AppendUint16 appends value in big-endian order.
func AppendUint16(buffer []byte, value uint16) []byte {
	return binary.BigEndian.AppendUint16(buffer, value)
}

// AppendInt16 appends value as a big-endian two's-complement integer.
func AppendInt16(buffer []byte, value int16) []byte {
	return binary.BigEndian.AppendUint16(buffer, uint16(value))
}

// AppendUint32 appends value in big-endian order.
func AppendUint32(buffer []byte, value uint32) []byte {
	return binary.BigEndian.AppendUint32(buffer, value)
}

// AppendFloat64 appends the IEEE-754 bit pattern of value in
// big-endian order.
func AppendFloat64(buffer []byte, value float64) []byte {
	return binary.BigEndian.AppendUint64(buffer, math.Float64bits(value))
}
