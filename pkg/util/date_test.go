package util

import (
    "strconv"
    "testing"
    "time"
)

func TestParseTimeRFC3339(t *testing.T) {
    s := "2024-10-10T10:10:10Z"
    got, ok := ParseTime(s)
    if !ok {
        t.Fatalf("expected ok")
    }
    if got.UTC().Format(time.RFC3339) != s {
        t.Fatalf("unexpected time %v", got)
    }
}

func TestParseTimeDay(t *testing.T) {
    got, ok := ParseTime("2024-10-10")
    if !ok {
        t.Fatalf("expected ok")
    }
    if FormatDay(got) != "2024-10-10" {
        t.Fatalf("unexpected day %v", got)
    }
}

func TestParseTimeUnix(t *testing.T) {
    ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
    got, ok := ParseTime(strconv.FormatInt(ts, 10))
    if !ok {
        t.Fatalf("expected ok")
    }
    if got.Unix() != ts {
        t.Fatalf("unexpected unix %v", got.Unix())
    }
}

func TestParseTimeDefault(t *testing.T) {
    def := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC)
    got := ParseTimeDefault("", def)
    if !got.Equal(def) {
        t.Fatalf("expected default")
    }
}

func TestDayTruncates(t *testing.T) {
    in := time.Date(2024, 10, 10, 18, 30, 0, 0, time.UTC)
    got := Day(in)
    if got.Hour() != 0 || got.Day() != 10 {
        t.Fatalf("unexpected day %v", got)
    }
}

func TestDaysBetween(t *testing.T) {
    a := time.Date(2024, 10, 10, 23, 0, 0, 0, time.UTC)
    b := time.Date(2024, 10, 13, 1, 0, 0, 0, time.UTC)
    if got := DaysBetween(a, b); got != 3 {
        t.Fatalf("expected 3, got %d", got)
    }
}
