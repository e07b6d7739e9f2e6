// Package normalize turns arbitrary client or spreadsheet input into
// canonical Opportunity field values. Every function here is total: bad
// input produces a fallback or nil, never an error.
package normalize

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	decimalPattern = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
	leadingIntPat  = regexp.MustCompile(`^[+-]?\d+`)
)

// String trims the raw value to a string; nil becomes the empty string.
func String(raw any) string {
	if raw == nil {
		return ""
	}
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strings.TrimSpace(strconv.FormatFloat(v, 'f', -1, 64))
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

// Enum lower-cases and trims raw, returning it only when it is a member of
// allowed. Anything else, including missing input, yields fallback: an
// unrecognized value is silently replaced rather than rejected.
func Enum(raw any, allowed []string, fallback string) string {
	s := strings.ToLower(String(raw))
	if s == "" {
		return fallback
	}
	for _, v := range allowed {
		if v == s {
			return v
		}
	}
	return fallback
}

// OptionalNumber coerces raw to a float. Missing, empty, unparseable, or
// non-finite input yields nil.
func OptionalNumber(raw any) *float64 {
	switch v := raw.(type) {
	case nil:
		return nil
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return finite(float64(v))
	case int64:
		return finite(float64(v))
	}
	s := String(raw)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return finite(f)
}

// TolerantPrice parses currency-formatted text such as "$12,345.67" or
// "USD 900": thousand separators are stripped, then the first signed decimal
// numeral wins. Numeric input passes through; no numeral means nil.
func TolerantPrice(raw any) *float64 {
	switch v := raw.(type) {
	case nil:
		return nil
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return finite(float64(v))
	case int64:
		return finite(float64(v))
	}
	s := String(raw)
	if s == "" {
		return nil
	}
	cleaned := strings.ReplaceAll(s, ",", "")
	match := decimalPattern.FindString(cleaned)
	if match == "" {
		return nil
	}
	f, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return nil
	}
	return finite(f)
}

// Confidence parses raw as an integer, falling back to the default of 50 and
// clamping the result into [0,100].
func Confidence(raw any) int {
	n := 50
	switch v := raw.(type) {
	case int:
		n = v
	case int64:
		n = int(v)
	case float64:
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			n = int(v)
		}
	default:
		if match := leadingIntPat.FindString(String(raw)); match != "" {
			if parsed, err := strconv.Atoi(match); err == nil {
				n = parsed
			}
		}
	}
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

func finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
