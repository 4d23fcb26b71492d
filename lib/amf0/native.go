// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package amf0

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/bureau-foundation/amf/lib/amf3"
)

// Keys with special meaning in the native representation. A map whose
// only key is ReferenceKey or DateKey stands for a Reference or Date;
// ClassKey carries the class name of a typed object.
const (
	ClassKey     = "$class"
	ReferenceKey = "$ref"
	DateKey      = "$date"
)

// ToNative converts value to plain Go values for rendering as JSON,
// YAML, or CBOR. Objects and ECMA arrays become map[string]any (typed
// objects gain a ClassKey entry), strict arrays []any, dates time.Time
// in UTC (a one-entry DateKey map when Date.Time rejects them),
// references a one-entry ReferenceKey map, and null, undefined, and
// unsupported values nil.
func ToNative(value Value) any {
	switch typed := value.(type) {
	case Number:
		return float64(typed)
	case Boolean:
		return bool(typed)
	case String:
		return string(typed)
	case XMLDocument:
		return string(typed)
	case *Object:
		result := nativeMap(typed.Properties)
		if typed.ClassName != "" {
			result[ClassKey] = typed.ClassName
		}
		return result
	case *ECMAArray:
		return nativeMap(typed.Properties)
	case StrictArray:
		result := make([]any, len(typed))
		for index, element := range typed {
			result[index] = ToNative(element)
		}
		return result
	case Date:
		if instant, ok := typed.Time(); ok {
			return instant
		}
		return map[string]any{DateKey: typed.Millis}
	case Reference:
		return map[string]any{ReferenceKey: int64(typed)}
	case AVMPlus:
		return amf3.ToNative(typed.Value)
	default:
		return nil
	}
}

func nativeMap(properties Properties) map[string]any {
	result := make(map[string]any, len(properties))
	for key, element := range properties {
		result[key] = ToNative(element)
	}
	return result
}

// FromNative converts plain Go values, as produced by encoding/json,
// yaml.v3, or CBOR decoding into interface values, to an AMF0 value.
// Numbers of every Go numeric type become Number, maps become Object
// (or Reference and Date for the special single-key forms), slices
// become StrictArray, and time.Time becomes Date.
func FromNative(native any) (Value, error) {
	switch typed := native.(type) {
	case nil:
		return Null{}, nil
	case bool:
		return Boolean(typed), nil
	case string:
		return String(typed), nil
	case float64:
		return Number(typed), nil
	case float32:
		return Number(typed), nil
	case int:
		return Number(typed), nil
	case int64:
		return Number(typed), nil
	case int32:
		return Number(typed), nil
	case uint64:
		return Number(typed), nil
	case uint32:
		return Number(typed), nil
	case json.Number:
		number, err := typed.Float64()
		if err != nil {
			return nil, fmt.Errorf("amf0: number %q: %w", typed, err)
		}
		return Number(number), nil
	case time.Time:
		return NewDate(float64(typed.UnixMilli())), nil
	case []any:
		elements := make(StrictArray, len(typed))
		for index, element := range typed {
			converted, err := FromNative(element)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", index, err)
			}
			elements[index] = converted
		}
		return elements, nil
	case map[string]any:
		return fromNativeMap(typed)
	case map[any]any:
		converted := make(map[string]any, len(typed))
		for key, element := range typed {
			text, ok := key.(string)
			if !ok {
				return nil, fmt.Errorf("amf0: map key %v (%T) is not a string", key, key)
			}
			converted[text] = element
		}
		return fromNativeMap(converted)
	default:
		return nil, fmt.Errorf("amf0: cannot convert %T to an AMF0 value", native)
	}
}

func fromNativeMap(native map[string]any) (Value, error) {
	if len(native) == 1 {
		if raw, ok := native[ReferenceKey]; ok {
			index, err := nativeInteger(raw)
			if err != nil || index < 0 || index > math.MaxUint16 {
				return nil, fmt.Errorf("amf0: %s must be an integer in [0, 65535], got %v", ReferenceKey, raw)
			}
			return Reference(index), nil
		}
		if raw, ok := native[DateKey]; ok {
			millis, err := FromNative(raw)
			if err != nil {
				return nil, err
			}
			number, ok := millis.(Number)
			if !ok {
				return nil, fmt.Errorf("amf0: %s must be a number of milliseconds, got %v", DateKey, raw)
			}
			return NewDate(float64(number)), nil
		}
	}

	object := &Object{Properties: make(Properties, len(native))}
	for key, element := range native {
		if key == ClassKey {
			className, ok := element.(string)
			if !ok {
				return nil, fmt.Errorf("amf0: %s must be a string, got %T", ClassKey, element)
			}
			object.ClassName = className
			continue
		}
		converted, err := FromNative(element)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", key, err)
		}
		object.Properties[key] = converted
	}
	return object, nil
}

func nativeInteger(raw any) (int64, error) {
	value, err := FromNative(raw)
	if err != nil {
		return 0, err
	}
	number, ok := value.(Number)
	if !ok || float64(number) != math.Trunc(float64(number)) {
		return 0, fmt.Errorf("not an integer: %v", raw)
	}
	return int64(number), nil
}
