package api

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"task-widget/internal/domain"
	"task-widget/internal/errors"
	"task-widget/internal/importer"
	"task-widget/internal/store"
	"task-widget/internal/validation"
)

// Clock returns the current time.
type Clock func() time.Time

// Option configures the API.
type Option func(*taskAPI)

// WithClock replaces time.Now as the source of "today".
func WithClock(clock Clock) Option {
	return func(a *taskAPI) {
		a.now = clock
	}
}

// WithClassifyOptions sets how due dates are labelled.
func WithClassifyOptions(opts domain.ClassifyOptions) Option {
	return func(a *taskAPI) {
		a.classify = opts
	}
}

// WithValidator replaces the default task validator.
func WithValidator(v *validation.TaskValidator) Option {
	return func(a *taskAPI) {
		a.validator = v
	}
}

// WithImporter replaces the default CSV parser.
func WithImporter(p *importer.Parser) Option {
	return func(a *taskAPI) {
		a.importer = p
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(a *taskAPI) {
		a.log = logger.With().Str("component", "api").Logger()
	}
}

type taskAPI struct {
	store     *store.Store
	now       Clock
	classify  domain.ClassifyOptions
	validator *validation.TaskValidator
	importer  *importer.Parser
	log       zerolog.Logger
}

// New creates an API backed by an opened store.
func New(s *store.Store, opts ...Option) API {
	a := &taskAPI{
		store:     s,
		now:       time.Now,
		classify:  domain.DefaultClassifyOptions(),
		validator: validation.NewTaskValidator(),
		importer:  importer.New(),
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *taskAPI) AddTask(ctx context.Context, input NewTaskInput) (*TaskView, error) {
	due, err := a.validator.ParseDueDate(input.DueDate)
	if err != nil {
		return nil, errors.NewValidationError(validationMessage(err), err)
	}

	task := domain.NewTask(input.Text)
	if input.Daily {
		task.Category = domain.CategoryDaily
	}
	task.Description = input.Description
	task.Course = input.Course
	task.DueDate = due

	added, err := a.store.Add(ctx, task)
	if err != nil && !errors.IsErrorType(err, errors.ErrorTypePersistenceWrite) {
		return nil, err
	}
	return a.view(added), err
}

func (a *taskAPI) ToggleTask(ctx context.Context, id string) (*TaskView, error) {
	taskID, err := a.resolve(id)
	if err != nil {
		return nil, err
	}

	task, err := a.store.Toggle(ctx, taskID)
	if err != nil && !errors.IsErrorType(err, errors.ErrorTypePersistenceWrite) {
		return nil, err
	}
	return a.view(task), err
}

func (a *taskAPI) DeleteTask(ctx context.Context, id string) error {
	taskID, err := a.resolve(id)
	if err != nil {
		return err
	}

	_, err = a.store.DeleteByID(ctx, taskID)
	return err
}

func (a *taskAPI) EditTask(ctx context.Context, id string, input EditTaskInput) (*TaskView, error) {
	taskID, err := a.resolve(id)
	if err != nil {
		return nil, err
	}

	patch := domain.TaskPatch{
		Text:         input.Text,
		Description:  input.Description,
		Course:       input.Course,
		ClearDueDate: input.ClearDueDate,
	}
	if input.DueDate != nil && !input.ClearDueDate {
		due, err := a.validator.ParseDueDate(*input.DueDate)
		if err != nil {
			return nil, errors.NewValidationError(validationMessage(err), err)
		}
		if due == nil {
			patch.ClearDueDate = true
		}
		patch.DueDate = due
	}

	task, err := a.store.Update(ctx, taskID, patch)
	if err != nil && !errors.IsErrorType(err, errors.ErrorTypePersistenceWrite) {
		return nil, err
	}
	return a.view(task), err
}

func (a *taskAPI) ClearCompleted(ctx context.Context, category domain.Category) (int, error) {
	return a.store.ClearCompleted(ctx, category)
}

func (a *taskAPI) ListTasks(ctx context.Context, category domain.Category) ([]*TaskView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := a.now()
	tasks := a.store.SortedView(category)
	views := make([]*TaskView, len(tasks))
	for i, t := range tasks {
		views[i] = newTaskView(t, now, a.classify)
	}
	return views, nil
}

func (a *taskAPI) ImportCSV(ctx context.Context, path string) (*ImportSummary, error) {
	result, err := a.importer.ParseFile(path)
	if err != nil {
		return nil, err
	}

	usable := make([]domain.Task, 0, len(result.Tasks))
	skipped := result.Skipped
	for _, t := range result.Tasks {
		if err := a.validator.ValidateTask(t); err != nil {
			a.log.Debug().Str("task", t.Text).Err(err).Msg("skipping imported row")
			skipped++
			continue
		}
		usable = append(usable, t)
	}

	summary := &ImportSummary{
		Path:      path,
		Skipped:   skipped,
		Delimiter: string(result.Delimiter),
	}
	if len(usable) == 0 {
		summary.Message = ImportMessage(0)
		return summary, nil
	}

	added, err := a.store.AddAll(ctx, usable)
	if err != nil && !errors.IsErrorType(err, errors.ErrorTypePersistenceWrite) {
		return nil, err
	}
	summary.Imported = added
	summary.Message = ImportMessage(added)
	a.log.Info().Str("path", path).Int("imported", added).Int("skipped", skipped).Msg("csv imported")
	return summary, err
}

func (a *taskAPI) Status(ctx context.Context) (*Status, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap := a.store.Snapshot()
	status := &Status{
		Total:   snap.Len(),
		Daily:   len(snap.Daily),
		Dated:   len(snap.Dated),
		Overdue: domain.OverdueCount(snap.Dated, a.now()),
	}
	for _, t := range snap.Daily {
		if t.Completed {
			status.DailyCompleted++
		}
	}
	for _, t := range snap.Dated {
		if t.Completed {
			status.DatedCompleted++
		}
	}
	status.Completed = status.DailyCompleted + status.DatedCompleted
	status.Open = status.Total - status.Completed
	status.Title = WindowTitle(status.Overdue)
	return status, nil
}

// resolve turns a full ID or a unique prefix into a task ID.
func (a *taskAPI) resolve(id string) (uuid.UUID, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	if parsed, err := uuid.Parse(id); err == nil {
		if _, ok := a.store.Get(parsed); !ok {
			return uuid.Nil, errors.NewNotFoundError("task", id)
		}
		return parsed, nil
	}

	if len(id) < MinIDPrefix {
		return uuid.Nil, errors.NewInvalidInputError("id", id, "use at least 4 characters of the task ID")
	}

	var matches []uuid.UUID
	snap := a.store.Snapshot()
	for _, c := range domain.Categories() {
		for _, t := range snap.List(c) {
			if strings.HasPrefix(t.ID.String(), id) {
				matches = append(matches, t.ID)
			}
		}
	}

	switch len(matches) {
	case 0:
		return uuid.Nil, errors.NewNotFoundError("task", id)
	case 1:
		return matches[0], nil
	default:
		return uuid.Nil, errors.NewInvalidInputError("id", id, "matches more than one task, use more characters").
			WithContext("matches", len(matches))
	}
}

func (a *taskAPI) view(t domain.Task) *TaskView {
	return newTaskView(t, a.now(), a.classify)
}

func validationMessage(err error) string {
	var ve *validation.ValidationError
	if stderrors.As(err, &ve) {
		return ve.GetUserFriendlyMessage()
	}
	return err.Error()
}
