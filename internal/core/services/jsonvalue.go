package services

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Helpers for inspecting values produced by encoding/json decoding into any.

func asObject(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok && m != nil
}

func asArray(v any) ([]any, bool) {
	a, ok := v.([]any)
	return a, ok
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asNumber accepts every numeric type a decoder or a test may produce.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n)
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func numberPtr(v any) *float64 {
	if f, ok := asNumber(v); ok {
		return &f
	}
	return nil
}

func intPtr(v any) *int {
	if f, ok := asNumber(v); ok {
		i := int(f)
		return &i
	}
	return nil
}

func int64Ptr(v any) *int64 {
	if f, ok := asNumber(v); ok {
		i := int64(f)
		return &i
	}
	return nil
}

// isNull reports whether key is present with an explicit JSON null.
func isNull(m map[string]any, key string) bool {
	v, ok := m[key]
	return ok && v == nil
}

// truthy mirrors the JSON notion of a value worth keeping:
// null, false, 0, NaN and "" are dropped.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	default:
		if f, ok := asNumber(v); ok {
			return f != 0
		}
		if _, isNum := v.(float64); isNum {
			return false
		}
		return true
	}
}

// stringify renders any decoded value as display text.
// Integral numbers print without a fraction; composites print as compact JSON.
func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	}
	if f, ok := asNumber(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

// scalarString returns strings as-is and numbers stringified; anything else is empty.
func scalarString(v any) string {
	if s, ok := asString(v); ok {
		return s
	}
	if _, ok := asNumber(v); ok {
		return stringify(v)
	}
	return ""
}

func prettyJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
