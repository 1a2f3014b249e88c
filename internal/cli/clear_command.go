package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"task-widget/internal/domain"
)

// ClearOptions holds the clear command flags
type ClearOptions struct {
	Daily bool
	Yes   bool
}

// ClearCommand handles the clear command
type ClearCommand struct {
	app          *App
	opts         ClearOptions
	errorHandler *ErrorHandler
}

// NewClearCommand creates a new clear command handler
func NewClearCommand(app *App, opts ClearOptions) *ClearCommand {
	return &ClearCommand{
		app:          app,
		opts:         opts,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the clear command. Unless --yes is given the user confirms
// before anything is removed.
func (c *ClearCommand) Execute(ctx context.Context, args []string) error {
	category := domain.CategoryDated
	if c.opts.Daily {
		category = domain.CategoryDaily
	}

	status, err := c.app.api.Status(ctx)
	if err != nil {
		return c.errorHandler.Handle("clear completed tasks", err)
	}

	pending := status.CompletedIn(category)
	if pending == 0 {
		fmt.Fprintln(c.app.out, "No completed tasks to clear.")
		return nil
	}

	if !c.opts.Yes && !c.confirm(fmt.Sprintf("Remove %d completed task(s)?", pending)) {
		fmt.Fprintln(c.app.out, "Clear cancelled.")
		return nil
	}

	removed, err := c.app.api.ClearCompleted(ctx, category)
	if err != nil && !c.errorHandler.IsPersistenceWriteError(err) {
		return c.errorHandler.Handle("clear completed tasks", err)
	}
	if err != nil {
		c.app.warn(err)
	}

	fmt.Fprintf(c.app.out, "Removed %d completed task(s).\n", removed)
	return nil
}

func (c *ClearCommand) confirm(question string) bool {
	fmt.Fprintf(c.app.out, "%s [y/N]: ", question)

	answer, _ := bufio.NewReader(c.app.in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
