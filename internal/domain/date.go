package domain

import (
	"fmt"
	"strings"
	"time"
)

// ISODateTimeLayout is the zone-less timestamp written for due dates.
const ISODateTimeLayout = "2006-01-02T15:04:05"

var isoLayouts = []string{
	ISODateTimeLayout,
	"2006-01-02T15:04:05.999999999",
	time.RFC3339Nano,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// NormalizeDate truncates t to midnight of its calendar date. The result is
// carried in UTC so that dates compare exactly regardless of the local zone.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NormalizeDatePtr is NormalizeDate for optional dates.
func NormalizeDatePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	n := NormalizeDate(*t)
	return &n
}

const secondsPerDay = 24 * 60 * 60

// DaysBetween returns the number of whole calendar days from a to b. It counts
// in Unix seconds since a time.Duration saturates after about 292 years.
func DaysBetween(a, b time.Time) int {
	return int((NormalizeDate(b).Unix() - NormalizeDate(a).Unix()) / secondsPerDay)
}

// FormatISO renders a due date the way it is persisted.
func FormatISO(t time.Time) string {
	return NormalizeDate(t).Format(ISODateTimeLayout)
}

// ParseISO accepts the persisted layout plus the other ISO 8601 shapes found in
// hand-edited or older files. The result is normalised to a date.
func ParseISO(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NormalizeDate(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("not an ISO 8601 date: %q", s)
}
