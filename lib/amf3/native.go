// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package amf3

import "strconv"

// ToNative converts value to plain Go values for rendering as JSON,
// YAML, or CBOR: nil for undefined and null, bool, int64 for integers,
// float64, string, []byte, []any, map[string]any, and time.Time for
// dates (dates Date.Time rejects stay float64 milliseconds).
func ToNative(value Value) any {
	switch typed := value.(type) {
	case Undefined, Null, nil:
		return nil
	case Boolean:
		return bool(typed)
	case Integer:
		return int64(typed)
	case Double:
		return float64(typed)
	case String:
		return string(typed)
	case XMLDocument:
		return string(typed)
	case XML:
		return string(typed)
	case ByteArray:
		return []byte(typed)
	case Date:
		if instant, ok := typed.Time(); ok {
			return instant
		}
		return typed.Millis
	case *Array:
		if len(typed.Associative) == 0 {
			return nativeList(typed.Dense)
		}
		result := nativeMap(typed.Associative)
		for index, element := range typed.Dense {
			result[strconv.Itoa(index)] = ToNative(element)
		}
		return result
	case *Object:
		result := nativeMap(typed.Properties)
		if typed.ClassName != "" {
			result["$class"] = typed.ClassName
		}
		return result
	case VectorInt:
		result := make([]any, len(typed.Items))
		for index, item := range typed.Items {
			result[index] = int64(item)
		}
		return result
	case VectorUint:
		result := make([]any, len(typed.Items))
		for index, item := range typed.Items {
			result[index] = int64(item)
		}
		return result
	case VectorDouble:
		result := make([]any, len(typed.Items))
		for index, item := range typed.Items {
			result[index] = item
		}
		return result
	case *VectorObject:
		return nativeList(typed.Items)
	case *Dictionary:
		result := make([]any, len(typed.Entries))
		for index, entry := range typed.Entries {
			result[index] = map[string]any{
				"key":   ToNative(entry.Key),
				"value": ToNative(entry.Value),
			}
		}
		return result
	default:
		return nil
	}
}

func nativeList(values []Value) []any {
	result := make([]any, len(values))
	for index, element := range values {
		result[index] = ToNative(element)
	}
	return result
}

func nativeMap(properties map[string]Value) map[string]any {
	result := make(map[string]any, len(properties))
	for key, element := range properties {
		result[key] = ToNative(element)
	}
	return result
}
