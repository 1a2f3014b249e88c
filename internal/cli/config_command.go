package cli

import (
	"context"
	"fmt"

	"task-widget/internal/config"
	"task-widget/internal/errors"
)

// ConfigCommand prints the effective configuration or where it is read from
type ConfigCommand struct {
	app      *App
	filePath string
}

// NewConfigCommand creates a new config command handler
func NewConfigCommand(app *App, filePath string) *ConfigCommand {
	return &ConfigCommand{app: app, filePath: filePath}
}

// Execute runs "config show" or "config path"
func (c *ConfigCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "config", "usage: tw config show|path")
	}

	switch args[0] {
	case "show":
		data, err := config.Marshal(c.app.config)
		if err != nil {
			return fmt.Errorf("failed to render configuration: %w", err)
		}
		_, err = c.app.out.Write(data)
		return err
	case "path":
		fmt.Fprintf(c.app.out, "config: %s\n", dash(c.filePath))
		fmt.Fprintf(c.app.out, "data:   %s\n", c.app.config.GetDataPath())
		return nil
	default:
		return errors.NewInvalidInputError("command", args[0], "usage: tw config show|path")
	}
}
