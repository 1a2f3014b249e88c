package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestNewTask(t *testing.T) {
	task := NewTask("Essay")

	assert.NotEqual(t, uuid.Nil, task.ID)
	assert.Equal(t, "Essay", task.Text)
	assert.Equal(t, CategoryDated, task.Category)
	assert.False(t, task.Completed)
	assert.Nil(t, task.DueDate)

	other := NewTask("Essay")
	assert.NotEqual(t, task.ID, other.ID, "every task gets its own identifier")
}

func TestNewDailyTask(t *testing.T) {
	task := NewDailyTask("Stretch")
	assert.Equal(t, CategoryDaily, task.Category)
	assert.NotEqual(t, uuid.Nil, task.ID)
}

func TestTask_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		task     Task
		expected bool
	}{
		{
			name:     "valid dated task",
			task:     Task{Text: "Read chapter 4", DueDate: date(2024, 6, 20)},
			expected: true,
		},
		{
			name:     "empty text",
			task:     Task{Text: ""},
			expected: false,
		},
		{
			name:     "whitespace text",
			task:     Task{Text: "  \t"},
			expected: false,
		},
		{
			name:     "daily task without date",
			task:     Task{Text: "Water plants", Category: CategoryDaily},
			expected: true,
		},
		{
			name:     "daily task with date",
			task:     Task{Text: "Water plants", Category: CategoryDaily, DueDate: date(2024, 6, 20)},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.task.IsValid())
		})
	}
}

func TestTask_CloneDoesNotShareDueDate(t *testing.T) {
	original := Task{Text: "x", DueDate: date(2024, 6, 20)}
	clone := original.Clone()

	*clone.DueDate = clone.DueDate.AddDate(0, 0, 1)
	assert.Equal(t, 20, original.DueDate.Day())
}

func TestTask_Apply(t *testing.T) {
	original := Task{Text: "Essay", Course: "CS101", DueDate: date(2024, 6, 20)}

	text := "Final essay"
	patched := original.Apply(TaskPatch{Text: &text})
	assert.Equal(t, "Final essay", patched.Text)
	assert.Equal(t, "CS101", patched.Course)
	assert.Equal(t, "Essay", original.Text)

	newDue := time.Date(2024, 7, 1, 15, 30, 0, 0, time.UTC)
	patched = original.Apply(TaskPatch{DueDate: &newDue})
	require.NotNil(t, patched.DueDate)
	assert.Equal(t, *date(2024, 7, 1), *patched.DueDate, "due dates are normalised to midnight")

	patched = original.Apply(TaskPatch{ClearDueDate: true, DueDate: &newDue})
	assert.Nil(t, patched.DueDate, "clearing wins over setting")

	assert.True(t, TaskPatch{}.IsEmpty())
	assert.False(t, TaskPatch{ClearDueDate: true}.IsEmpty())
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("Daily")
	require.NoError(t, err)
	assert.Equal(t, CategoryDaily, c)

	c, err = ParseCategory("")
	require.NoError(t, err)
	assert.Equal(t, CategoryDated, c)

	_, err = ParseCategory("weekly")
	assert.Error(t, err)

	assert.Equal(t, "daily", CategoryDaily.String())
	assert.Equal(t, "dated", CategoryDated.String())
}

func TestSnapshot(t *testing.T) {
	snap := &Snapshot{
		Daily: []Task{NewDailyTask("a")},
		Dated: []Task{NewTask("b"), NewTask("c")},
	}
	assert.Equal(t, 3, snap.Len())
	assert.Len(t, snap.List(CategoryDaily), 1)
	assert.Len(t, snap.List(CategoryDated), 2)
}
