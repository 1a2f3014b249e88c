package cli

import (
	"context"
	"fmt"
	"strings"

	"task-widget/internal/api"
	"task-widget/internal/errors"
)

// AddOptions holds the add command flags
type AddOptions struct {
	Description string
	Due         string
	Course      string
	Daily       bool
}

// AddCommand handles the add command
type AddCommand struct {
	app          *App
	opts         AddOptions
	errorHandler *ErrorHandler
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App, opts AddOptions) *AddCommand {
	return &AddCommand{
		app:          app,
		opts:         opts,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the add command
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "add", "usage: tw add \"task text\" [--due MM/DD/YYYY]")
	}

	view, err := c.app.api.AddTask(ctx, api.NewTaskInput{
		Text:        strings.Join(args, " "),
		Description: c.opts.Description,
		DueDate:     c.opts.Due,
		Course:      c.opts.Course,
		Daily:       c.opts.Daily,
	})
	if view == nil {
		return c.errorHandler.Handle("add task", err)
	}
	if err != nil {
		c.app.warn(err)
	}

	if view.Label != "" {
		fmt.Fprintf(c.app.out, "Added task %s: %s (%s)\n", view.ShortID, view.Text, view.Label)
	} else {
		fmt.Fprintf(c.app.out, "Added task %s: %s\n", view.ShortID, view.Text)
	}
	return nil
}
