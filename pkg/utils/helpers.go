package utils

import (
	"fmt"
	"strconv"
	"strings"

	"csv-manager/internal/model"
)

// ParseScalar converts a raw CSV cell into a typed cell value. Cells
// arrive as strings; uploads keep them as strings so that type
// inference stays a per-request concern, but cell edits may carry
// numbers or booleans through JSON.
func ParseScalar(raw interface{}) model.Value {
	switch v := raw.(type) {
	case nil:
		return model.NullValue()
	case string:
		return model.StringValue(v)
	case bool:
		return model.BoolValue(v)
	case float64:
		return model.NumberValue(v)
	case int:
		return model.NumberValue(float64(v))
	default:
		return model.StringValue(fmt.Sprintf("%v", v))
	}
}

// CleanHeader normalizes a CSV header name: trims whitespace and strips
// stray quotes left by loosely quoted files.
func CleanHeader(h string) string {
	h = strings.TrimSpace(h)
	return strings.ReplaceAll(h, `"`, "")
}

// ParseIntDefault parses s as a positive integer, falling back to def
// when s is empty or malformed.
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
