package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"task-widget/internal/api"
	"task-widget/internal/domain"
	"task-widget/internal/errors"
)

// List scopes and formats
const (
	ListScopeAll   = "all"
	ListScopeDaily = "daily"
	ListScopeDated = "dated"

	FormatTable = "table"
	FormatJSON  = "json"
)

// ListOptions holds the list command flags
type ListOptions struct {
	Scope  string
	Format string
}

// ListCommand handles the list command
type ListCommand struct {
	app          *App
	opts         ListOptions
	errorHandler *ErrorHandler
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App, opts ListOptions) *ListCommand {
	return &ListCommand{
		app:          app,
		opts:         opts,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	categories, err := c.categories()
	if err != nil {
		return err
	}

	sections := make(map[domain.Category][]*api.TaskView, len(categories))
	total := 0
	for _, category := range categories {
		views, err := c.app.api.ListTasks(ctx, category)
		if err != nil {
			return c.errorHandler.Handle("list tasks", err)
		}
		sections[category] = views
		total += len(views)
	}

	switch c.format() {
	case FormatJSON:
		return c.printJSON(categories, sections)
	case FormatTable:
		if total == 0 {
			fmt.Fprintln(c.app.out, "No tasks found")
			return nil
		}
		return c.printTable(categories, sections)
	default:
		return errors.NewInvalidInputError("format", c.opts.Format, "supported formats are table and json")
	}
}

func (c *ListCommand) categories() ([]domain.Category, error) {
	scope := strings.ToLower(c.opts.Scope)
	if scope == "" {
		scope = ListScopeAll
	}

	switch scope {
	case ListScopeAll:
		return domain.Categories(), nil
	case ListScopeDaily:
		return []domain.Category{domain.CategoryDaily}, nil
	case ListScopeDated:
		return []domain.Category{domain.CategoryDated}, nil
	default:
		return nil, errors.NewInvalidInputError("scope", c.opts.Scope, "use all, daily or dated")
	}
}

func (c *ListCommand) format() string {
	if c.opts.Format == "" {
		return FormatTable
	}
	return strings.ToLower(c.opts.Format)
}

// printTable prints one line per task:
// [x] shortID  label  course  text
func (c *ListCommand) printTable(categories []domain.Category, sections map[domain.Category][]*api.TaskView) error {
	w := tabwriter.NewWriter(c.app.out, 2, 4, 2, ' ', 0)
	withHeadings := len(categories) > 1

	for _, category := range categories {
		views := sections[category]
		if withHeadings {
			if len(views) == 0 {
				continue
			}
			fmt.Fprintf(w, "%s:\n", headingFor(category))
		}
		for _, v := range views {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", checkbox(v.Completed), v.ShortID, dash(v.Label), dash(v.Course), v.Text)
		}
	}
	return w.Flush()
}

func (c *ListCommand) printJSON(categories []domain.Category, sections map[domain.Category][]*api.TaskView) error {
	out := make(map[string][]*api.TaskView, len(categories))
	for _, category := range categories {
		out[category.String()] = sections[category]
	}

	enc := json.NewEncoder(c.app.out)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func headingFor(category domain.Category) string {
	if category == domain.CategoryDaily {
		return "Daily"
	}
	return "Tasks"
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
