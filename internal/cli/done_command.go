package cli

import (
	"context"
	"fmt"

	"task-widget/internal/errors"
)

// DoneCommand handles the done command, which toggles a task's completed flag
type DoneCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewDoneCommand creates a new done command handler
func NewDoneCommand(app *App) *DoneCommand {
	return &DoneCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the done command
func (c *DoneCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "done", "usage: tw done <task id>")
	}

	view, err := c.app.api.ToggleTask(ctx, args[0])
	if view == nil {
		return c.errorHandler.Handle("toggle task", err)
	}
	if err != nil {
		c.app.warn(err)
	}

	if view.Completed {
		fmt.Fprintf(c.app.out, "Completed: %s\n", view.Text)
	} else {
		fmt.Fprintf(c.app.out, "Reopened: %s\n", view.Text)
	}
	return nil
}
