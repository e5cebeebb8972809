package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// timeLayouts are tried in order for string timestamps. Zone-less layouts are read as UTC.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02 15:04:05.999999999Z0700",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z07",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

// maxEpochMillis is the largest magnitude a JavaScript Date accepts.
const maxEpochMillis = 8.64e15

// parseTimestamp reads a JSON string or epoch-millisecond number.
// A missing value yields now. Instants outside years 0..9999 are rejected since
// they cannot be encoded as RFC 3339.
func parseTimestamp(raw json.RawMessage, now time.Time) (time.Time, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || isNull(raw) {
		return now.UTC(), nil
	}
	if raw[0] != '"' {
		ms, err := strconv.ParseFloat(string(raw), 64)
		if err != nil || math.IsNaN(ms) || math.IsInf(ms, 0) || math.Abs(ms) > maxEpochMillis {
			return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidTimestamp, raw)
		}
		return inRange(time.UnixMilli(int64(ms)).UTC(), string(raw))
	}

	s := strings.TrimSpace(stringify(raw))
	if s == "" {
		return now.UTC(), nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return inRange(t.UTC(), s)
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
}

func inRange(t time.Time, src string) (time.Time, error) {
	if y := t.Year(); y < 0 || y > 9999 {
		return time.Time{}, fmt.Errorf("%w: %q out of range", ErrInvalidTimestamp, src)
	}
	return t, nil
}

// durationSeconds is floor(end-start) in whole seconds, clamped at 0.
func durationSeconds(start, end time.Time) int {
	d := end.Sub(start)
	if d <= 0 {
		return 0
	}
	return int(d / time.Second)
}

var billedDurationRe = regexp.MustCompile(`(\d+)(?:\.\d+)?s`)

// billedSeconds extracts the whole seconds from a provider string such as "180s" or "42.5s".
// ok is false when the string has no usable value, including "0s".
func billedSeconds(s string) (int, bool) {
	m := billedDurationRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

var leadingNumberRe = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// parseAmount reads a JSON number or numeric string. Strings parse their leading number,
// so "1.25 INR" is 1.25. Anything else is 0.
func parseAmount(raw json.RawMessage) float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || isNull(raw) {
		return 0
	}
	if raw[0] == '"' {
		s := strings.TrimSpace(stringify(raw))
		m := leadingNumberRe.FindString(s)
		if m == "" {
			return 0
		}
		f, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return 0
		}
		return f
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return 0
	}
	return f
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
