package utils

import (
	"strconv"
	"time"
)

// SecondsToMillis converts unix seconds to unix milliseconds
func SecondsToMillis(sec int64) int64 {
	return sec * 1000
}

// NowMillis returns t as unix milliseconds
func NowMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// InHalfOpen reports whether lo <= value < hi
func InHalfOpen(value, lo, hi int64) bool {
	return value >= lo && value < hi
}

// FormatNumber prints a JSON number the way it appeared on the wire:
// integers without a fraction, everything else with the shortest form.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseHours clamps a history window to [1, max] hours, falling back to def
func ParseHours(hours, def, max int) int {
	if hours < 1 || hours > max {
		return def
	}
	return hours
}
