package cli

import (
	"context"
	"fmt"
)

// StatusCommand handles the status command
type StatusCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewStatusCommand creates a new status command handler
func NewStatusCommand(app *App) *StatusCommand {
	return &StatusCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the status command
func (c *StatusCommand) Execute(ctx context.Context, args []string) error {
	status, err := c.app.api.Status(ctx)
	if err != nil {
		return c.errorHandler.Handle("read status", err)
	}

	fmt.Fprintln(c.app.out, status.Title)
	fmt.Fprintf(c.app.out, "%d tasks: %d open, %d completed, %d overdue\n",
		status.Total, status.Open, status.Completed, status.Overdue)
	fmt.Fprintf(c.app.out, "daily: %d, dated: %d\n", status.Daily, status.Dated)
	return nil
}
