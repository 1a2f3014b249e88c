package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"task-widget/internal/api"
	"task-widget/internal/config"
	"task-widget/internal/domain"
	"task-widget/internal/errors"
	"task-widget/internal/importer"
	"task-widget/internal/repository"
	"task-widget/internal/store"
	"task-widget/internal/validation"
)

// RepositoryFactory opens the persistence backend for a configuration.
type RepositoryFactory func(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (repository.Repository, error)

// App holds what every command handler needs
type App struct {
	api    api.API
	config *config.Config
	out    io.Writer
	errOut io.Writer
	in     io.Reader
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(apiInstance api.API, cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &App{
		api:    apiInstance,
		config: cfg,
		out:    os.Stdout,
		errOut: os.Stderr,
		in:     os.Stdin,
	}
}

// WithIO replaces the standard streams, mainly for tests
func (a *App) WithIO(out, errOut io.Writer, in io.Reader) *App {
	a.out = out
	a.errOut = errOut
	a.in = in
	return a
}

// API returns the task API used by the commands
func (a *App) API() api.API {
	return a.api
}

// Session is an opened store together with the API on top of it.
type Session struct {
	API   api.API
	Store *store.Store
	// LoadErr is set when saved tasks could not be read and the store started empty.
	LoadErr error
}

// Close releases the store's repository.
func (s *Session) Close() error {
	return s.Store.Close()
}

// OpenSession wires repository, store, importer and API from a configuration.
// A store that could not load its saved tasks is still returned, with the
// read error in LoadErr.
func OpenSession(ctx context.Context, cfg *config.Config, logger zerolog.Logger, factory RepositoryFactory, clock api.Clock) (*Session, error) {
	if factory == nil {
		factory = config.CreateRepository
	}
	if clock == nil {
		clock = time.Now
	}

	repo, err := factory(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	validator := validation.NewTaskValidatorWithConfig(cfg)
	storeOpts := []store.Option{
		store.WithLogger(logger),
		store.WithValidator(validator),
	}
	if cfg.IsSplitLayout() {
		storeOpts = append(storeOpts, store.WithDatedViewLimit(cfg.Layout.DatedViewLimit))
	}

	s, loadErr := store.Open(ctx, repo, storeOpts...)
	if loadErr != nil && !errors.IsErrorType(loadErr, errors.ErrorTypePersistenceRead) {
		repo.Close()
		return nil, loadErr
	}

	apiInstance := api.New(s,
		api.WithClock(clock),
		api.WithClassifyOptions(domain.ClassifyOptions{
			DayAfterLabel: cfg.Display.DayAfterLabel,
			DateFormat:    cfg.Display.DateFormat,
		}),
		api.WithValidator(validator),
		api.WithImporter(importer.New(
			importer.WithSampleSize(cfg.Import.SampleSize),
			importer.WithLogger(logger),
		)),
		api.WithLogger(logger),
	)

	return &Session{API: apiInstance, Store: s, LoadErr: loadErr}, nil
}

// warn prints a non-fatal error to the error stream.
func (a *App) warn(err error) {
	fmt.Fprintln(a.errOut, NewErrorHandler().Warning(err))
}
