package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var errNotNumeric = fmt.Errorf("not a number")

// absent reports whether a raw field was omitted or null
func absent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// decodes a JSON string field; ok is false for any other JSON type
func stringField(raw json.RawMessage) (string, bool) {
	if absent(raw) {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}

	return s, true
}

// coerces a JSON number or numeric string. absent fields return def.
func number(raw json.RawMessage, def float64) (float64, error) {
	if absent(raw) {
		return def, nil
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, nil
	}

	s, ok := stringField(raw)
	if !ok {
		return 0, errNotNumeric
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotNumeric
	}

	return f, nil
}

// coerces a whole number; fractional values are rejected
func integer(raw json.RawMessage, def int) (int, error) {
	f, err := number(raw, float64(def))
	if err != nil {
		return 0, err
	}

	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, errNotNumeric
	}

	return int(f), nil
}

func clamp[T int | float64](v, lo, hi T) T {
	return max(lo, min(v, hi))
}
