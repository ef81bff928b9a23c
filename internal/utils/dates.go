package utils

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const DayLayout = "2006-01-02"

// ParseInstant accepts an RFC 3339 timestamp or a bare yyyy-mm-dd day (UTC midnight).
func ParseInstant(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(DayLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected ISO-8601", value)
	}
	return t, nil
}

// ParseDay parses a calendar day and truncates timestamps to their UTC day.
func ParseDay(value string) (time.Time, error) {
	t, err := ParseInstant(value)
	if err != nil {
		return time.Time{}, err
	}
	return TruncateDay(t), nil
}

// TruncateDay returns midnight UTC of the day containing t.
func TruncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func FormatDay(t time.Time) string {
	return t.UTC().Format(DayLayout)
}

// DaysBetween lists every day in the half-open range [from, to).
func DaysBetween(from, to time.Time) []time.Time {
	from, to = TruncateDay(from), TruncateDay(to)
	var days []time.Time
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// CeilDays counts started 24h periods between two instants.
func CeilDays(from, to time.Time) int {
	return int(math.Ceil(to.Sub(from).Hours() / 24))
}
