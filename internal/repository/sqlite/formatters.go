package sqlite

import (
	"database/sql"
	"time"

	"task-widget/internal/domain"
)

// FormatDueDateForDB formats a due date for storage, returning nil for undated tasks
func FormatDueDateForDB(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return domain.FormatISO(*t)
}

// ParseDueDateFromDB parses a stored due date. NULL and empty values are undated.
func ParseDueDateFromDB(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := domain.ParseISO(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatBoolForDB stores booleans as 0/1
func FormatBoolForDB(b bool) int {
	if b {
		return 1
	}
	return 0
}
