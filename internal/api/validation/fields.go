package validation

import (
	"strconv"
	"strings"
	"time"
)

// Fields is a decoded JSON request body.
type Fields map[string]any

// present reports whether name carries a non-null value.
func (f Fields) present(name string) bool {
	v, ok := f[name]
	return ok && v != nil
}

// String returns the text form of the field, or "" when absent.
func (f Fields) String(name string) string {
	return textOf(f[name])
}

// Float returns the numeric value of the field. Numeric strings are accepted.
func (f Fields) Float(name string) float64 {
	switch v := f[name].(type) {
	case float64:
		return v
	case string:
		n, _ := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return n
	}
	return 0
}

// Bool returns the boolean value of the field. "true"/"false"/"1"/"0" strings
// are accepted.
func (f Fields) Bool(name string) bool {
	switch v := f[name].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(v))
		return b
	case float64:
		return v != 0
	}
	return false
}

// Time parses the field as an RFC 3339 timestamp or a plain date.
func (f Fields) Time(name string) time.Time {
	t, _ := parseDate(f.String(name))
	return t
}

func textOf(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

func parseDate(s string) (time.Time, error) {
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, err
}
