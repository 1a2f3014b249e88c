// Package api is the boundary consumed by the command line and widget shells.
// It resolves user-facing identifiers, parses typed input and decorates tasks
// with their urgency classification.
package api

import (
	"context"
	"fmt"
	"time"

	"task-widget/internal/domain"
)

// AppTitle is the widget title shown when nothing is overdue.
const AppTitle = "Agent MoiRai"

// MinIDPrefix is the shortest ID prefix accepted in place of a full ID.
const MinIDPrefix = 4

// NewTaskInput is what a shell collects before adding a task. DueDate is typed
// by the user as MM/DD/YYYY and may be blank.
type NewTaskInput struct {
	Text        string `json:"text"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
	Course      string `json:"course,omitempty"`
	Daily       bool   `json:"daily,omitempty"`
}

// EditTaskInput describes an edit. Nil fields are left untouched; a blank
// DueDate removes the date.
type EditTaskInput struct {
	Text         *string `json:"text,omitempty"`
	Description  *string `json:"description,omitempty"`
	DueDate      *string `json:"due_date,omitempty"`
	Course       *string `json:"course,omitempty"`
	ClearDueDate bool    `json:"clear_due_date,omitempty"`
}

// TaskView is a task as a shell renders it.
type TaskView struct {
	ID          string          `json:"id"`
	ShortID     string          `json:"short_id"`
	Text        string          `json:"text"`
	Description string          `json:"description,omitempty"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	Course      string          `json:"course,omitempty"`
	Completed   bool            `json:"completed"`
	Category    domain.Category `json:"category"`
	Bucket      domain.Bucket   `json:"bucket"`
	Label       string          `json:"label,omitempty"`
	DaysOverdue int             `json:"days_overdue,omitempty"`
}

// ImportSummary reports the outcome of a CSV import.
type ImportSummary struct {
	Path      string `json:"path"`
	Imported  int    `json:"imported"`
	Skipped   int    `json:"skipped"`
	Delimiter string `json:"delimiter"`
	Message   string `json:"message"`
}

// Status summarises both lists for a title bar or status line.
type Status struct {
	Title          string `json:"title"`
	Total          int    `json:"total"`
	Open           int    `json:"open"`
	Completed      int    `json:"completed"`
	Overdue        int    `json:"overdue"`
	Daily          int    `json:"daily"`
	Dated          int    `json:"dated"`
	DailyCompleted int    `json:"daily_completed"`
	DatedCompleted int    `json:"dated_completed"`
}

// CompletedIn returns the number of completed tasks in one list.
func (s *Status) CompletedIn(category domain.Category) int {
	if category == domain.CategoryDaily {
		return s.DailyCompleted
	}
	return s.DatedCompleted
}

// API defines the operations available to presentation shells. Task IDs may
// be given in full or as a unique prefix of at least MinIDPrefix characters.
type API interface {
	// AddTask validates the input and appends a new task to its list
	AddTask(ctx context.Context, input NewTaskInput) (*TaskView, error)

	// ToggleTask flips the completed flag
	ToggleTask(ctx context.Context, id string) (*TaskView, error)

	// DeleteTask removes a task
	DeleteTask(ctx context.Context, id string) error

	// EditTask changes text, description, due date or course
	EditTask(ctx context.Context, id string, input EditTaskInput) (*TaskView, error)

	// ClearCompleted removes every completed task from a list and returns the count
	ClearCompleted(ctx context.Context, category domain.Category) (int, error)

	// ListTasks returns a list in display order with each row classified
	ListTasks(ctx context.Context, category domain.Category) ([]*TaskView, error)

	// ImportCSV parses a spreadsheet export and adds every usable row as a dated task
	ImportCSV(ctx context.Context, path string) (*ImportSummary, error)

	// Status counts tasks and builds the window title
	Status(ctx context.Context) (*Status, error)
}

// WindowTitle returns the widget title for the given number of overdue tasks.
func WindowTitle(overdue int) string {
	if overdue <= 0 {
		return AppTitle
	}
	return fmt.Sprintf("%s (%d overdue)", AppTitle, overdue)
}

// ImportMessage returns the sentence shown after an import.
func ImportMessage(imported int) string {
	if imported == 0 {
		return "No tasks found in the selected CSV."
	}
	return fmt.Sprintf("Imported %d tasks from CSV.", imported)
}

func newTaskView(t domain.Task, now time.Time, opts domain.ClassifyOptions) *TaskView {
	view := &TaskView{
		ID:          t.ID.String(),
		ShortID:     t.ShortID(),
		Text:        t.Text,
		Description: t.Description,
		DueDate:     t.Clone().DueDate,
		Course:      t.Course,
		Completed:   t.Completed,
		Category:    t.Category,
	}
	if t.Category == domain.CategoryDated {
		c := domain.Classify(t.DueDate, now, opts)
		view.Bucket = c.Bucket
		view.Label = c.Label
		view.DaysOverdue = c.DaysOverdue
	}
	return view
}
