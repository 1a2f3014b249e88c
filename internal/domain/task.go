package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category selects which list a task belongs to.
type Category int

const (
	// CategoryDated tasks may carry a due date and are sorted chronologically.
	CategoryDated Category = iota
	// CategoryDaily tasks recur every day, never carry a due date and keep insertion order.
	CategoryDaily
)

// String returns the category name used in flags and logs.
func (c Category) String() string {
	switch c {
	case CategoryDaily:
		return "daily"
	default:
		return "dated"
	}
}

// MarshalText encodes the category by name.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ParseCategory converts a category name back into a Category.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dated", "":
		return CategoryDated, nil
	case "daily":
		return CategoryDaily, nil
	default:
		return CategoryDated, fmt.Errorf("unknown task category %q", s)
	}
}

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{CategoryDaily, CategoryDated}
}

// Task represents a to-do item in the domain model.
// This is a pure domain model without storage-specific concerns.
type Task struct {
	ID          uuid.UUID
	Text        string
	Description string
	DueDate     *time.Time
	Course      string
	Completed   bool
	Category    Category
}

// NewTask creates a new dated Task with a fresh identifier.
func NewTask(text string) Task {
	return Task{
		ID:       uuid.New(),
		Text:     text,
		Category: CategoryDated,
	}
}

// NewDailyTask creates a new daily Task with a fresh identifier.
func NewDailyTask(text string) Task {
	task := NewTask(text)
	task.Category = CategoryDaily
	return task
}

// IsValid checks if the task has valid data.
func (t Task) IsValid() bool {
	if strings.TrimSpace(t.Text) == "" {
		return false
	}
	if t.Category == CategoryDaily && t.DueDate != nil {
		return false
	}
	return true
}

// HasDueDate reports whether the task carries a due date.
func (t Task) HasDueDate() bool {
	return t.DueDate != nil
}

// ShortID returns the first eight characters of the identifier for display purposes.
func (t Task) ShortID() string {
	return t.ID.String()[:8]
}

// Clone returns a copy that shares no pointers with t.
func (t Task) Clone() Task {
	if t.DueDate != nil {
		due := *t.DueDate
		t.DueDate = &due
	}
	return t
}

// String returns the task text for display purposes.
func (t Task) String() string {
	return t.Text
}

// TaskPatch describes an edit to an existing task. Nil fields are left untouched.
type TaskPatch struct {
	Text         *string
	Description  *string
	Course       *string
	DueDate      *time.Time
	ClearDueDate bool
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Text == nil && p.Description == nil && p.Course == nil && p.DueDate == nil && !p.ClearDueDate
}

// Apply returns a copy of t with the patch applied.
func (t Task) Apply(p TaskPatch) Task {
	out := t.Clone()
	if p.Text != nil {
		out.Text = *p.Text
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Course != nil {
		out.Course = *p.Course
	}
	if p.ClearDueDate {
		out.DueDate = nil
	} else if p.DueDate != nil {
		out.DueDate = NormalizeDatePtr(p.DueDate)
	}
	return out
}

// Snapshot is the full persisted state: one ordered list per category.
type Snapshot struct {
	Daily []Task
	Dated []Task
}

// List returns the tasks of one category.
func (s *Snapshot) List(c Category) []Task {
	if c == CategoryDaily {
		return s.Daily
	}
	return s.Dated
}

// Len returns the number of tasks across both lists.
func (s *Snapshot) Len() int {
	return len(s.Daily) + len(s.Dated)
}
