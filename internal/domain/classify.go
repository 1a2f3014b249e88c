package domain

import (
	"fmt"
	"time"
)

// Bucket is a coarse urgency class used to pick visual emphasis. It never
// filters tasks out of a view.
type Bucket int

const (
	BucketNoDate Bucket = iota
	BucketOverdue
	BucketToday
	BucketTomorrow
	BucketDayAfter
	BucketFuture
)

// String returns the bucket name.
func (b Bucket) String() string {
	switch b {
	case BucketOverdue:
		return "overdue"
	case BucketToday:
		return "today"
	case BucketTomorrow:
		return "tomorrow"
	case BucketDayAfter:
		return "day_after"
	case BucketFuture:
		return "future"
	default:
		return "no_date"
	}
}

// MarshalText encodes the bucket by name.
func (b Bucket) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// DefaultDateFormat renders dates beyond the relative labels as MM/DD/YY.
const DefaultDateFormat = "01/02/06"

// ClassifyOptions tunes the labels produced by Classify.
type ClassifyOptions struct {
	// DayAfterLabel enables the "Day After" label. When false the bucket is
	// still BucketDayAfter but the label is the formatted date.
	DayAfterLabel bool
	DateFormat    string
}

// DefaultClassifyOptions returns the options used when none are configured.
func DefaultClassifyOptions() ClassifyOptions {
	return ClassifyOptions{
		DayAfterLabel: true,
		DateFormat:    DefaultDateFormat,
	}
}

// Classification is the result of classifying one due date against "now".
type Classification struct {
	Bucket      Bucket
	Label       string
	DaysOverdue int
}

// Classify maps a due date to an urgency bucket and display label relative to now.
// Only calendar dates are compared.
func Classify(due *time.Time, now time.Time, opts ClassifyOptions) Classification {
	if due == nil {
		return Classification{Bucket: BucketNoDate}
	}
	if opts.DateFormat == "" {
		opts.DateFormat = DefaultDateFormat
	}

	today := NormalizeDate(now)
	date := NormalizeDate(*due)
	days := DaysBetween(today, date)

	switch {
	case days == 0:
		return Classification{Bucket: BucketToday, Label: "Today"}
	case days == 1:
		return Classification{Bucket: BucketTomorrow, Label: "Tomorrow"}
	case days == 2:
		label := date.Format(opts.DateFormat)
		if opts.DayAfterLabel {
			label = "Day After"
		}
		return Classification{Bucket: BucketDayAfter, Label: label}
	case days < 0:
		return Classification{
			Bucket:      BucketOverdue,
			Label:       fmt.Sprintf("%dd overdue", -days),
			DaysOverdue: -days,
		}
	default:
		return Classification{Bucket: BucketFuture, Label: date.Format(opts.DateFormat)}
	}
}

// IsOverdue reports whether an incomplete task is past its due date.
func IsOverdue(t Task, now time.Time) bool {
	if t.Completed || !t.HasDueDate() {
		return false
	}
	return NormalizeDate(*t.DueDate).Before(NormalizeDate(now))
}

// OverdueCount counts incomplete tasks whose due date is before today.
func OverdueCount(tasks []Task, now time.Time) int {
	count := 0
	for _, t := range tasks {
		if IsOverdue(t, now) {
			count++
		}
	}
	return count
}
