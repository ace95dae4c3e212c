package util

import (
    "strconv"
    "time"
)

// DayFormat is the wire format for calendar days.
const DayFormat = "2006-01-02"

// ParseTime tries RFC3339, RFC3339Nano, day format, and unix seconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
    if s == "" {
        return time.Time{}, false
    }
    if t, err := time.Parse(time.RFC3339, s); err == nil {
        return t, true
    }
    if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
        return t, true
    }
    if t, err := time.Parse(DayFormat, s); err == nil {
        return t, true
    }
    if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
        return time.Unix(ts, 0), true
    }
    return time.Time{}, false
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time {
    if t, ok := ParseTime(s); ok {
        return t
    }
    return def
}

// Day truncates t to UTC midnight.
func Day(t time.Time) time.Time {
    return t.UTC().Truncate(24 * time.Hour)
}

// FormatDay renders t as a calendar day string.
func FormatDay(t time.Time) string {
    return t.UTC().Format(DayFormat)
}

// DaysBetween counts whole days from a to b (negative if b is before a).
func DaysBetween(a, b time.Time) int {
    return int(Day(b).Sub(Day(a)) / (24 * time.Hour))
}
