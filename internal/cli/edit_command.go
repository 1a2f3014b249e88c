package cli

import (
	"context"
	"fmt"

	"task-widget/internal/api"
	"task-widget/internal/errors"
)

// EditOptions holds the edit command flags. Nil fields were not given.
type EditOptions struct {
	Text        *string
	Description *string
	Due         *string
	Course      *string
	ClearDue    bool
}

// EditCommand handles the edit command
type EditCommand struct {
	app          *App
	opts         EditOptions
	errorHandler *ErrorHandler
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App, opts EditOptions) *EditCommand {
	return &EditCommand{
		app:          app,
		opts:         opts,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the edit command
func (c *EditCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "edit", "usage: tw edit <task id> [--text t] [--due MM/DD/YYYY | --clear-due]")
	}

	view, err := c.app.api.EditTask(ctx, args[0], api.EditTaskInput{
		Text:         c.opts.Text,
		Description:  c.opts.Description,
		DueDate:      c.opts.Due,
		Course:       c.opts.Course,
		ClearDueDate: c.opts.ClearDue,
	})
	if view == nil {
		return c.errorHandler.Handle("edit task", err)
	}
	if err != nil {
		c.app.warn(err)
	}

	fmt.Fprintf(c.app.out, "Updated task %s: %s\n", view.ShortID, view.Text)
	return nil
}
