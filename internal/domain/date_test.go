package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	evening := time.Date(2024, 6, 15, 23, 59, 0, 0, time.FixedZone("EST", -5*3600))

	got := NormalizeDate(evening)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), got)

	assert.Nil(t, NormalizeDatePtr(nil))
	assert.Equal(t, got, *NormalizeDatePtr(&evening))
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, 2, 28, 22, 0, 0, 0, time.Local)
	b := time.Date(2024, 3, 1, 1, 0, 0, 0, time.Local)

	assert.Equal(t, 2, DaysBetween(a, b))
	assert.Equal(t, -2, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a))

	// beyond the range of a time.Duration
	ancient := time.Date(24, 6, 15, 0, 0, 0, 0, time.UTC)
	today := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 730485, DaysBetween(ancient, today))
	assert.Equal(t, -730485, DaysBetween(today, ancient))
}

func TestParseISO(t *testing.T) {
	want := time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC)

	for _, input := range []string{
		"2024-06-16T00:00:00",
		"2024-06-16T13:45:10.123456",
		"2024-06-16T13:45:10Z",
		"2024-06-16T13:45",
		"2024-06-16 13:45:10",
		" 2024-06-16 ",
	} {
		t.Run(input, func(t *testing.T) {
			got, err := ParseISO(input)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	_, err := ParseISO("06/16/2024")
	assert.Error(t, err)
}

func TestFormatISO(t *testing.T) {
	due := time.Date(2024, 6, 16, 15, 30, 0, 0, time.Local)
	assert.Equal(t, "2024-06-16T00:00:00", FormatISO(due))

	parsed, err := ParseISO(FormatISO(due))
	require.NoError(t, err)
	assert.Equal(t, NormalizeDate(due), parsed)
}
