package cli

import (
	"context"
	"fmt"

	"task-widget/internal/errors"
)

// ImportCommand handles the import command
type ImportCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewImportCommand creates a new import command handler
func NewImportCommand(app *App) *ImportCommand {
	return &ImportCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the import command
func (c *ImportCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "import", "usage: tw import <file.csv>")
	}

	summary, err := c.app.api.ImportCSV(ctx, args[0])
	if summary == nil {
		return c.errorHandler.Handle("import CSV", err)
	}
	if err != nil {
		c.app.warn(err)
	}

	fmt.Fprintln(c.app.out, summary.Message)
	if summary.Skipped > 0 {
		fmt.Fprintf(c.app.out, "Skipped %d row(s) without a usable title.\n", summary.Skipped)
	}
	return nil
}
