// Package timeparse normalizes caller-supplied timestamps into UTC epoch
// seconds. Calendar strings are parsed day-before-month: "01/11/2025" is
// 1 November, not January 11.
package timeparse

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnparseableTimestamp indicates a timestamp string that matches no
// supported layout.
var ErrUnparseableTimestamp = errors.New("unparseable timestamp")

// Day-first layouts are tried before ISO ones so ambiguous dates resolve
// day-before-month. ISO strings fall through because a four-digit year never
// parses as a day.
var layouts = []string{
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"02-01-2006 15:04:05",
	"02-01-2006",
	"02.01.2006 15:04:05",
	"02.01.2006",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Normalize converts a decoded JSON timestamp field into epoch seconds:
// nil records the current UTC time, numbers pass through verbatim, strings
// are parsed as day-first calendar dates. Anything else is a caller error.
func Normalize(raw any) (int64, error) {
	switch v := raw.(type) {
	case nil:
		return time.Now().UTC().Unix(), nil
	case float64:
		return int64(v), nil
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrUnparseableTimestamp, v.String())
		}
		return n, nil
	case string:
		t, err := ParseDayFirst(v)
		if err != nil {
			return 0, err
		}
		return t.Unix(), nil
	default:
		return 0, fmt.Errorf("%w: unsupported type %T", ErrUnparseableTimestamp, raw)
	}
}

// ParseDayFirst parses a calendar date/time string, preferring
// day-before-month field ordering, and returns it in UTC.
func ParseDayFirst(s string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseableTimestamp, s)
}
