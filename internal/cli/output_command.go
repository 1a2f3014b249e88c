package cli

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"task-widget/internal/api"
	"task-widget/internal/domain"
	"task-widget/internal/errors"
)

// ExportDateLayout writes due dates the way the importer reads them back.
const ExportDateLayout = "01/02/2006"

// OutputCommand handles the output command
type OutputCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewOutputCommand creates a new output command handler
func NewOutputCommand(app *App) *OutputCommand {
	return &OutputCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the output command
func (c *OutputCommand) Execute(ctx context.Context, args []string) error {
	return c.outputTasks(ctx, args)
}

// outputTasks outputs tasks in the specified format
func (c *OutputCommand) outputTasks(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("command", "output", "usage: tw output format=csv")
	}

	// Parse format option
	format := args[0]
	if !strings.HasPrefix(format, "format=") {
		return errors.NewInvalidInputError("format", format, "invalid format option")
	}

	views, err := c.allTasks(ctx)
	if err != nil {
		return c.errorHandler.Handle("export tasks", err)
	}

	format = strings.TrimPrefix(format, "format=")
	switch format {
	case "csv":
		return c.outputCSV(views)
	case "json":
		enc := json.NewEncoder(c.app.out)
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	default:
		return errors.NewInvalidInputError("format", format, "unsupported format")
	}
}

func (c *OutputCommand) allTasks(ctx context.Context) ([]*api.TaskView, error) {
	var all []*api.TaskView
	for _, category := range domain.Categories() {
		views, err := c.app.api.ListTasks(ctx, category)
		if err != nil {
			return nil, err
		}
		all = append(all, views...)
	}
	return all, nil
}

// outputCSV writes tasks with headers the CSV importer recognises
func (c *OutputCommand) outputCSV(views []*api.TaskView) error {
	writer := csv.NewWriter(c.app.out)

	header := []string{"Name", "Description", "Date", "Course", "Completed", "Category"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, v := range views {
		var due string
		if v.DueDate != nil {
			due = v.DueDate.Format(ExportDateLayout)
		}

		row := []string{
			v.Text,
			v.Description,
			due,
			v.Course,
			strconv.FormatBool(v.Completed),
			v.Category.String(),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
