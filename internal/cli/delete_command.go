package cli

import (
	"context"
	"fmt"

	"task-widget/internal/errors"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "delete", "usage: tw delete <task id>")
	}

	err := c.app.api.DeleteTask(ctx, args[0])
	if err != nil && !c.errorHandler.IsPersistenceWriteError(err) {
		return c.errorHandler.Handle("delete task", err)
	}
	if err != nil {
		c.app.warn(err)
	}

	fmt.Fprintf(c.app.out, "Deleted task %s\n", args[0])
	return nil
}
