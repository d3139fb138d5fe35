package models

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// decodeLenient decodes a JSON object into v one field at a time. A field whose
// value has the wrong shape keeps the value v already holds; numeric and boolean
// strings are accepted for number and bool fields. Input that is not an object
// leaves v untouched. It never returns an error.
func decodeLenient[T any](data []byte, v *T) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return
	}

	// Sorted keys keep case-variant duplicates deterministic
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := raw[key]
		if decodeField(key, value, v) {
			continue
		}
		if coerced, ok := coerceScalar(value); ok {
			decodeField(key, coerced, v)
		}
	}
}

// decodeField applies {key: value} to a scratch copy of v and keeps the copy
// only when it decodes cleanly, so a failed field cannot leave a half-set pointer.
func decodeField[T any](key string, value json.RawMessage, v *T) bool {
	obj, err := json.Marshal(map[string]json.RawMessage{key: value})
	if err != nil {
		return false
	}
	scratch := *v
	if err := json.Unmarshal(obj, &scratch); err != nil {
		return false
	}
	*v = scratch
	return true
}

// coerceScalar turns "12.5" into 12.5 and "true" into true
func coerceScalar(value json.RawMessage) (json.RawMessage, bool) {
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return nil, false
	}
	s = strings.TrimSpace(s)
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		out, err := json.Marshal(f)
		return out, err == nil
	}
	if b, err := strconv.ParseBool(s); err == nil {
		out, _ := json.Marshal(b)
		return out, true
	}
	return nil, false
}

// looseFloat reads a JSON number or numeric string, returning 0 otherwise
func looseFloat(value json.RawMessage) float64 {
	var f float64
	if err := json.Unmarshal(value, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(value, &s); err == nil {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return parsed
		}
	}
	return 0
}

// isEmptyObject reports whether value is null, {} or anything but an object
func isEmptyObject(value json.RawMessage) bool {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(value, &obj); err != nil {
		return true
	}
	return len(obj) == 0
}
