package importer

import (
	"strings"
	"time"

	"task-widget/internal/domain"
)

// dateLayouts are tried in order before falling back to ISO 8601. Month and
// day may be written with or without a leading zero.
var dateLayouts = []string{
	"1/2/2006",
	"1/2/06",
	"2006-1-2",
}

// ParseDate reads a due date cell. It reports false when the cell is blank or
// in no recognised format.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return domain.NormalizeDate(t), true
		}
	}

	if t, err := domain.ParseISO(s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
