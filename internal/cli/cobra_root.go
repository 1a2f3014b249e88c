package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"task-widget/internal/api"
	"task-widget/internal/config"
	"task-widget/internal/logging"
	"task-widget/internal/tui"
)

// LogFileName is the widget log, written next to the data file so logging
// does not draw over the terminal UI.
const LogFileName = "tw.log"

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	loader  *config.Loader
	config  *config.Config
	logger  zerolog.Logger
	factory RepositoryFactory
	clock   api.Clock
	out     io.Writer
	errOut  io.Writer
	in      io.Reader
	session *Session
	closers []io.Closer
	flags   rootFlags
}

type rootFlags struct {
	configFile     string
	dataDir        string
	dataFile       string
	backend        string
	layout         string
	datedLimit     int
	dateFormat     string
	dayAfterLabel  bool
	refresh        time.Duration
	textMax        int
	descriptionMax int
	verbose        bool
}

// RootOption configures the root command
type RootOption func(*RootCommand)

// WithLoader replaces the configuration loader
func WithLoader(loader *config.Loader) RootOption {
	return func(r *RootCommand) {
		r.loader = loader
	}
}

// WithRepositoryFactory replaces how the persistence backend is opened
func WithRepositoryFactory(factory RepositoryFactory) RootOption {
	return func(r *RootCommand) {
		r.factory = factory
	}
}

// WithClock replaces the clock used to classify due dates
func WithClock(clock api.Clock) RootOption {
	return func(r *RootCommand) {
		r.clock = clock
	}
}

// WithIO replaces the standard streams
func WithIO(out, errOut io.Writer, in io.Reader) RootOption {
	return func(r *RootCommand) {
		r.out = out
		r.errOut = errOut
		r.in = in
	}
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(opts ...RootOption) *RootCommand {
	root := &RootCommand{
		loader:  config.NewLoader(),
		factory: config.CreateRepository,
		clock:   time.Now,
		logger:  zerolog.Nop(),
		out:     os.Stdout,
		errOut:  os.Stderr,
		in:      os.Stdin,
	}
	for _, opt := range opts {
		opt(root)
	}

	root.cmd = &cobra.Command{
		Use:   "tw",
		Short: "A small task list for daily chores and dated assignments",
		Long: `Task Widget (tw) keeps two lists: daily tasks that stay put and dated
tasks that are ordered by due date and coloured by how close they are.

EXAMPLES:
  tw add "Read chapter 4" --due 06/16/2024 --course HIST
  tw add "Water plants" --daily
  tw list
  tw done 3f2a
  tw import grades.csv
  tw widget

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > config file > defaults

  Storage Configuration:
    TW_DATA_DIR                            Data directory (default: home directory)
    TW_DATA_FILE                           Data filename (default: todo_widget_data.json, .db for sqlite)
    TW_STORAGE_BACKEND                     json or sqlite (default: json)

  Layout Configuration:
    TW_LAYOUT                              single or split (default: single)
    TW_DATED_VIEW_LIMIT                    Dated rows shown in split layout (default: 10)

  Display Configuration:
    TW_DATE_FORMAT                         Due date format (default: 01/02/06)
    TW_DAY_AFTER_LABEL                     Label the day after tomorrow (default: true)
    TW_REFRESH_INTERVAL                    Widget refresh interval (default: 1m)

GETTING HELP:
  tw [command] --help                      # Get help for any specific command`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.loadConfig(cmd)
		},
	}
	root.cmd.SetOut(root.out)
	root.cmd.SetErr(root.errOut)
	root.cmd.SetIn(root.in)

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command and releases whatever the command opened.
// Application errors come back with their user-facing message.
func (r *RootCommand) Execute(ctx context.Context) error {
	defer r.close()
	if err := r.cmd.ExecuteContext(ctx); err != nil {
		return NewErrorHandler().HandleSimple(err)
	}
	return nil
}

// SetArgs sets the arguments used instead of os.Args
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// Config returns the configuration loaded for the last run
func (r *RootCommand) Config() *config.Config {
	return r.config
}

func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()
	f := &r.flags

	flags.StringVar(&f.configFile, "config", "", "Config file (overrides TW_CONFIG)")

	// Storage configuration
	flags.StringVar(&f.dataDir, "data-dir", "", "Data directory (overrides TW_DATA_DIR)")
	flags.StringVar(&f.dataFile, "data-file", "", "Data filename (overrides TW_DATA_FILE)")
	flags.StringVar(&f.backend, "backend", "", "Storage backend: json or sqlite (overrides TW_STORAGE_BACKEND)")

	// Layout configuration
	flags.StringVar(&f.layout, "layout", "", "Layout: single or split (overrides TW_LAYOUT)")
	flags.IntVar(&f.datedLimit, "dated-limit", 0, "Dated tasks shown in split layout (overrides TW_DATED_VIEW_LIMIT)")

	// Display configuration
	flags.StringVar(&f.dateFormat, "date-format", "", "Due date display format (overrides TW_DATE_FORMAT)")
	flags.BoolVar(&f.dayAfterLabel, "day-after-label", true, "Label the day after tomorrow (overrides TW_DAY_AFTER_LABEL)")
	flags.DurationVar(&f.refresh, "refresh", 0, "Widget refresh interval (overrides TW_REFRESH_INTERVAL)")

	// Validation configuration
	flags.IntVar(&f.textMax, "text-max", 0, "Maximum task text length (overrides TW_TEXT_MAX)")
	flags.IntVar(&f.descriptionMax, "description-max", 0, "Maximum description length (overrides TW_DESCRIPTION_MAX)")

	flags.BoolVar(&f.verbose, "verbose", false, "Enable verbose logging (overrides TW_VERBOSE)")
}

// overrides collects the flags that were given on the command line
func (r *RootCommand) overrides(cmd *cobra.Command) *config.ConfigOverrides {
	flags := cmd.Flags()
	f := r.flags
	o := &config.ConfigOverrides{}

	if flags.Changed("data-dir") {
		o.DataDir = &f.dataDir
	}
	if flags.Changed("data-file") {
		o.DataFile = &f.dataFile
	}
	if flags.Changed("backend") {
		o.Backend = &f.backend
	}
	if flags.Changed("layout") {
		o.Layout = &f.layout
	}
	if flags.Changed("dated-limit") {
		o.DatedViewLimit = &f.datedLimit
	}
	if flags.Changed("date-format") {
		o.DateFormat = &f.dateFormat
	}
	if flags.Changed("day-after-label") {
		o.DayAfterLabel = &f.dayAfterLabel
	}
	if flags.Changed("refresh") {
		o.RefreshInterval = &f.refresh
	}
	if flags.Changed("text-max") {
		o.TextMaxLength = &f.textMax
	}
	if flags.Changed("description-max") {
		o.DescriptionMaxLength = &f.descriptionMax
	}
	if flags.Changed("verbose") {
		o.Verbose = &f.verbose
	}
	return o
}

// loadConfig applies flags over the loaded configuration before any command runs
func (r *RootCommand) loadConfig(cmd *cobra.Command) error {
	if cmd.Flags().Changed("config") {
		r.loader = config.NewLoaderWithFile(r.flags.configFile)
	}

	cfg, err := r.loader.LoadWithOverrides(r.overrides(cmd))
	if err != nil {
		return err
	}
	r.config = cfg
	r.logger = logging.Setup(r.errOut, cfg.Application.Verbose)
	return nil
}

// app opens the task store on first use
func (r *RootCommand) app(ctx context.Context) (*App, error) {
	if r.session == nil {
		session, err := OpenSession(ctx, r.config, r.logger, r.factory, r.clock)
		if err != nil {
			return nil, err
		}
		r.session = session
	}

	app := NewApp(r.session.API, r.config).WithIO(r.out, r.errOut, r.in)
	if r.session.LoadErr != nil {
		app.warn(r.session.LoadErr)
	}
	return app, nil
}

func (r *RootCommand) close() {
	if r.session != nil {
		if err := r.session.Close(); err != nil {
			r.logger.Warn().Err(err).Msg("failed to close storage")
		}
		r.session = nil
	}
	for _, c := range r.closers {
		c.Close()
	}
	r.closers = nil
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	var addOpts AddOptions
	addCmd := &cobra.Command{
		Use:   "add \"task text\"",
		Short: "Add a task",
		Long: `Add a dated task, or a daily task with --daily.

Dates are typed as MM/DD/YYYY; a blank date leaves the task undated.

Examples:
  tw add "Essay draft" --due 06/16/2024 --course ENG101
  tw add "Stretch" --daily`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.app(cmd.Context())
			if err != nil {
				return err
			}
			return NewAddCommand(app, addOpts).Execute(cmd.Context(), args)
		},
	}
	addCmd.Flags().StringVarP(&addOpts.Due, "due", "d", "", "Due date as MM/DD/YYYY")
	addCmd.Flags().StringVar(&addOpts.Description, "description", "", "Longer description")
	addCmd.Flags().StringVarP(&addOpts.Course, "course", "c", "", "Course or project")
	addCmd.Flags().BoolVar(&addOpts.Daily, "daily", false, "Add to the daily list")

	var listOpts ListOptions
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List the daily and dated tasks in display order.

Dated tasks are sorted by due date with undated tasks last and show how
soon they are due.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.app(cmd.Context())
			if err != nil {
				return err
			}
			return NewListCommand(app, listOpts).Execute(cmd.Context(), args)
		},
	}
	listCmd.Flags().StringVarP(&listOpts.Scope, "scope", "s", ListScopeAll, "all, daily or dated")
	listCmd.Flags().StringVarP(&listOpts.Format, "format", "f", FormatTable, "table or json")

	doneCmd := &cobra.Command{
		Use:     "done <task id>",
		Aliases: []string{"toggle"},
		Short:   "Mark a task completed, or reopen it",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.app(cmd.Context())
			if err != nil {
				return err
			}
			return NewDoneCommand(app).Execute(cmd.Context(), args)
		},
	}

	deleteCmd := &cobra.Command{
		Use:     "delete <task id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.app(cmd.Context())
			if err != nil {
				return err
			}
			return NewDeleteCommand(app).Execute(cmd.Context(), args)
		},
	}

	var (
		editText, editDescription, editDue, editCourse string
		editClearDue                                   bool
	)
	editCmd := &cobra.Command{
		Use:   "edit <task id>",
		Short: "Change a task's text, description, due date or course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := EditOptions{ClearDue: editClearDue}
			if cmd.Flags().Changed("text") {
				opts.Text = &editText
			}
			if cmd.Flags().Changed("description") {
				opts.Description = &editDescription
			}
			if cmd.Flags().Changed("due") {
				opts.Due = &editDue
			}
			if cmd.Flags().Changed("course") {
				opts.Course = &editCourse
			}

			app, err := r.app(cmd.Context())
			if err != nil {
				return err
			}
			return NewEditCommand(app, opts).Execute(cmd.Context(), args)
		},
	}
	editCmd.Flags().StringVar(&editText, "text", "", "New task text")
	editCmd.Flags().StringVar(&editDescription, "description", "", "New description")
	editCmd.Flags().StringVarP(&editDue, "due", "d", "", "New due date as MM/DD/YYYY")
	editCmd.Flags().StringVarP(&editCourse, "course", "c", "", "New course")
	editCmd.Flags().BoolVar(&editClearDue, "clear-due", false, "Remove the due date")

	var clearOpts ClearOptions
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove completed tasks",
		Long:  "Remove every completed task from the dated list, or the daily list with --daily.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.app(cmd.Context())
			if err != nil {
				return err
			}
			return NewClearCommand(app, clearOpts).Execute(cmd.Context(), args)
		},
	}
	clearCmd.Flags().BoolVar(&clearOpts.Daily, "daily", false, "Clear the daily list")
	clearCmd.Flags().BoolVarP(&clearOpts.Yes, "yes", "y", false, "Do not ask for confirmation")

	importCmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import dated tasks from a spreadsheet export",
		Long: `Import dated tasks from a CSV file.

The delimiter is detected from the start of the file. Columns are matched by
header name: Name, Task or Title for the text, Date, Due or Due Date for the
due date, Course or Class, and Description or Notes. Rows without a header
match use their first non-empty cell as the text.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.app(cmd.Context())
			if err != nil {
				return err
			}
			return NewImportCommand(app).Execute(cmd.Context(), args)
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show task counts and the widget title",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.app(cmd.Context())
			if err != nil {
				return err
			}
			return NewStatusCommand(app).Execute(cmd.Context(), args)
		},
	}

	outputCmd := &cobra.Command{
		Use:   "output format=csv|json",
		Short: "Export tasks in specified format",
		Long: `Export both lists in the specified format.

Supported formats:
  csv  - Comma-separated values that tw import can read back
  json - Both lists with their classification

Example:
  tw output format=csv > tasks.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.app(cmd.Context())
			if err != nil {
				return err
			}
			return NewOutputCommand(app).Execute(cmd.Context(), args)
		},
	}

	configCmd := &cobra.Command{
		Use:       "config show|path",
		Short:     "Show the effective configuration",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"show", "path"},
		RunE: func(cmd *cobra.Command, args []string) error {
			app := NewApp(nil, r.config).WithIO(r.out, r.errOut, r.in)
			return NewConfigCommand(app, r.loader.FilePath()).Execute(cmd.Context(), args)
		},
	}

	widgetCmd := &cobra.Command{
		Use:   "widget",
		Short: "Open the terminal widget",
		Long: `Open the task list as a terminal widget that re-colours itself as the
day advances.

Keys: space toggles, d deletes, c clears completed tasks, r refreshes, q quits.
Logs are written to tw.log in the data directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runWidget(cmd.Context())
		},
	}

	r.cmd.AddCommand(
		addCmd,
		listCmd,
		doneCmd,
		deleteCmd,
		editCmd,
		clearCmd,
		importCmd,
		statusCmd,
		outputCmd,
		configCmd,
		widgetCmd,
	)
}

// runWidget moves logging into a file, opens the store and blocks until the
// widget is closed.
func (r *RootCommand) runWidget(ctx context.Context) error {
	if err := os.MkdirAll(r.config.Storage.Dir, os.FileMode(r.config.Storage.DirPermissions)); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	logPath := filepath.Join(r.config.Storage.Dir, LogFileName)
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", logPath, err)
	}
	r.closers = append(r.closers, logFile)
	r.logger = logging.Setup(logFile, r.config.Application.Verbose)

	if r.session == nil {
		session, err := OpenSession(ctx, r.config, r.logger, r.factory, r.clock)
		if err != nil {
			return err
		}
		r.session = session
	}

	var notice string
	if r.session.LoadErr != nil {
		notice = NewErrorHandler().Warning(r.session.LoadErr)
	}

	widget := tui.New(r.session.API, tui.Options{
		RefreshInterval: r.config.Display.RefreshInterval,
		Split:           r.config.IsSplitLayout(),
		Notice:          notice,
		Logger:          r.logger,
	})
	return widget.Run(ctx)
}
