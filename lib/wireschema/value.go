// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wireschema

import (
	"encoding/json"
	"math"
	"reflect"
)

// toInt64 converts any Go integer, an integral float, or a json.Number
// to int64. Unsigned values above MaxInt64 wrap, which is harmless
// because every wire integer is at most 32 bits wide and truncation
// keeps the low bits.
func toInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), true
	case float32:
		return floatToInt64(float64(v))
	case float64:
		return floatToInt64(v)
	case json.Number:
		if integer, err := v.Int64(); err == nil {
			return integer, true
		}
		if float, err := v.Float64(); err == nil {
			return floatToInt64(float)
		}
		return 0, false
	default:
		return 0, false
	}
}

func floatToInt64(v float64) (int64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, false
	}
	if v >= math.MinInt64 && v < math.MaxInt64 {
		return int64(v), true
	}
	return 0, false
}

// toFloat64 converts any Go number or json.Number to float64.
func toFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case json.Number:
		float, err := v.Float64()
		return float, err == nil
	}
	if integer, ok := toInt64(value); ok {
		return float64(integer), true
	}
	return 0, false
}

// elements returns the elements of a slice or array value. []any is
// returned as is; other slice and array types go through reflection so
// callers can pass typed Go slices such as []int32.
func elements(value any) ([]any, bool) {
	if items, ok := value.([]any); ok {
		return items, true
	}
	if value == nil {
		return nil, false
	}
	reflected := reflect.ValueOf(value)
	switch reflected.Kind() {
	case reflect.Slice, reflect.Array:
	default:
		return nil, false
	}
	items := make([]any, reflected.Len())
	for i := range items {
		items[i] = reflected.Index(i).Interface()
	}
	return items, true
}

// absent reports whether value stands for a missing optional: untyped
// nil, or a nil pointer, map, interface, channel, or function. A nil
// slice is an empty array, not an absent value.
func absent(value any) bool {
	if value == nil {
		return true
	}
	reflected := reflect.ValueOf(value)
	switch reflected.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Interface, reflect.Chan, reflect.Func:
		return reflected.IsNil()
	}
	return false
}

// properties returns value as a property map.
func properties(value any) (map[string]any, bool) {
	fields, ok := value.(map[string]any)
	return fields, ok
}
