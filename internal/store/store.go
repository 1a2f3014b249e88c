// Package store holds the in-memory task lists and writes every change
// through to a repository.
package store

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"task-widget/internal/domain"
	"task-widget/internal/errors"
	"task-widget/internal/repository"
	"task-widget/internal/validation"
)

// Store owns the daily and dated task lists. Both are kept in insertion
// order; sorting happens only in SortedView. Every successful mutation is
// saved before the call returns.
type Store struct {
	mu        sync.Mutex
	repo      repository.Repository
	daily     []domain.Task
	dated     []domain.Task
	validator *validation.TaskValidator
	viewLimit int
	log       zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for persistence diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.log = logger.With().Str("component", "store").Logger()
	}
}

// WithValidator replaces the default task validator.
func WithValidator(v *validation.TaskValidator) Option {
	return func(s *Store) {
		s.validator = v
	}
}

// WithDatedViewLimit caps the number of tasks SortedView returns for the
// dated list. n <= 0 means no cap.
func WithDatedViewLimit(n int) Option {
	return func(s *Store) {
		s.viewLimit = n
	}
}

// New creates an empty store without loading anything.
func New(repo repository.Repository, opts ...Option) *Store {
	s := &Store{
		repo:      repo,
		daily:     []domain.Task{},
		dated:     []domain.Task{},
		validator: validation.NewTaskValidator(),
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates a store and loads the saved tasks. When the saved data cannot
// be read, Open still returns a usable empty store together with the
// persistence read error so the caller can warn the user.
func Open(ctx context.Context, repo repository.Repository, opts ...Option) (*Store, error) {
	s := New(repo, opts...)

	snap, err := repo.Load(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("could not load saved tasks, starting empty")
		if !errors.IsAppError(err) {
			err = errors.NewPersistenceReadError("storage", err)
		}
		return s, err
	}

	s.daily = append(s.daily, snap.Daily...)
	s.dated = append(s.dated, snap.Dated...)
	s.log.Debug().Int("daily", len(s.daily)).Int("dated", len(s.dated)).Msg("store opened")
	return s, nil
}

// Add validates and appends a task to the end of its category list. A missing
// ID is generated and the due date is normalised. The stored copy is returned.
func (s *Store) Add(ctx context.Context, task domain.Task) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.prepare(task, true)
	if err != nil {
		return domain.Task{}, err
	}

	list := s.list(task.Category)
	*list = append(*list, task)

	return task.Clone(), s.flush(ctx)
}

// AddAll adds several tasks with a single save. Nothing is added when any
// task fails validation.
func (s *Store) AddAll(ctx context.Context, tasks []domain.Task) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepared := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		p, err := s.prepare(task, true)
		if err != nil {
			return 0, err
		}
		prepared = append(prepared, p)
	}
	if len(prepared) == 0 {
		return 0, nil
	}

	for _, task := range prepared {
		list := s.list(task.Category)
		*list = append(*list, task)
	}

	return len(prepared), s.flush(ctx)
}

// ToggleCompleted flips the completed flag of the task at index in the
// backing (insertion) order of the category.
func (s *Store) ToggleCompleted(ctx context.Context, category domain.Category, index int) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.list(category)
	if err := checkIndex(category, index, len(*list)); err != nil {
		return domain.Task{}, err
	}

	(*list)[index].Completed = !(*list)[index].Completed
	return (*list)[index].Clone(), s.flush(ctx)
}

// Toggle flips the completed flag of the task with the given ID.
func (s *Store) Toggle(ctx context.Context, id uuid.UUID) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, index, err := s.find(id)
	if err != nil {
		return domain.Task{}, err
	}

	(*list)[index].Completed = !(*list)[index].Completed
	return (*list)[index].Clone(), s.flush(ctx)
}

// Delete removes the task at index in the backing order of the category.
// The store is unchanged when the index is out of range.
func (s *Store) Delete(ctx context.Context, category domain.Category, index int) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.list(category)
	if err := checkIndex(category, index, len(*list)); err != nil {
		return domain.Task{}, err
	}

	removed := (*list)[index]
	*list = append((*list)[:index], (*list)[index+1:]...)
	return removed, s.flush(ctx)
}

// DeleteByID removes the task with the given ID.
func (s *Store) DeleteByID(ctx context.Context, id uuid.UUID) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, index, err := s.find(id)
	if err != nil {
		return domain.Task{}, err
	}

	removed := (*list)[index]
	*list = append((*list)[:index], (*list)[index+1:]...)
	return removed, s.flush(ctx)
}

// Update applies an edit to the task with the given ID. The edited task goes
// through the same validation as Add and keeps its position.
func (s *Store) Update(ctx context.Context, id uuid.UUID, patch domain.TaskPatch) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.validator.ValidatePatch(patch); err != nil {
		return domain.Task{}, errors.NewValidationError(userMessage(err), err)
	}

	list, index, err := s.find(id)
	if err != nil {
		return domain.Task{}, err
	}

	updated, err := s.prepare((*list)[index].Apply(patch), false)
	if err != nil {
		return domain.Task{}, err
	}

	(*list)[index] = updated
	return updated.Clone(), s.flush(ctx)
}

// ClearCompleted removes every completed task from the category and returns
// how many were removed. Nothing is saved when there was nothing to remove.
func (s *Store) ClearCompleted(ctx context.Context, category domain.Category) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.list(category)
	kept := make([]domain.Task, 0, len(*list))
	for _, t := range *list {
		if !t.Completed {
			kept = append(kept, t)
		}
	}

	removed := len(*list) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	*list = kept
	return removed, s.flush(ctx)
}

// Tasks returns a copy of the category list in backing order.
func (s *Store) Tasks(category domain.Category) []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cloneAll(*s.list(category))
}

// SortedView returns the list as it should be displayed. Dated tasks are
// ordered by due date with undated tasks last and capped to the view limit;
// daily tasks keep insertion order.
func (s *Store) SortedView(category domain.Category) []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := cloneAll(*s.list(category))
	if category == domain.CategoryDaily {
		return tasks
	}
	return domain.Limit(domain.SortByDueDate(tasks), s.viewLimit)
}

// Snapshot returns a copy of both lists.
func (s *Store) Snapshot() *domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot()
}

// Get looks up a task by ID.
func (s *Store) Get(id uuid.UUID) (domain.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, index, err := s.find(id)
	if err != nil {
		return domain.Task{}, false
	}
	return (*list)[index].Clone(), true
}

// IndexOf resolves a task ID to its current position in the backing order.
func (s *Store) IndexOf(category domain.Category, id uuid.UUID) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range *s.list(category) {
		if t.ID == id {
			return i, true
		}
	}
	return -1, false
}

// Len returns the number of tasks in both lists.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.daily) + len(s.dated)
}

// Close releases the underlying repository.
func (s *Store) Close() error {
	return s.repo.Close()
}

// prepare trims, validates and normalises a task. For new tasks a missing or
// already used ID is replaced. Callers hold s.mu.
func (s *Store) prepare(task domain.Task, isNew bool) (domain.Task, error) {
	task = task.Clone()
	task.Text = strings.TrimSpace(task.Text)
	task.Description = strings.TrimSpace(task.Description)
	task.Course = strings.TrimSpace(task.Course)
	task.DueDate = domain.NormalizeDatePtr(task.DueDate)

	if err := s.validator.ValidateTask(task); err != nil {
		return domain.Task{}, errors.NewValidationError(userMessage(err), err)
	}

	if isNew && (task.ID == uuid.Nil || s.has(task.ID)) {
		task.ID = uuid.New()
	}
	return task, nil
}

func (s *Store) has(id uuid.UUID) bool {
	_, _, err := s.find(id)
	return err == nil
}

func (s *Store) find(id uuid.UUID) (*[]domain.Task, int, error) {
	for _, c := range domain.Categories() {
		list := s.list(c)
		for i, t := range *list {
			if t.ID == id {
				return list, i, nil
			}
		}
	}
	return nil, -1, errors.NewNotFoundError("task", id.String())
}

func (s *Store) list(category domain.Category) *[]domain.Task {
	if category == domain.CategoryDaily {
		return &s.daily
	}
	return &s.dated
}

func (s *Store) snapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Daily: cloneAll(s.daily),
		Dated: cloneAll(s.dated),
	}
}

// flush writes the current state through to the repository. The in-memory
// change stands even when the save fails.
func (s *Store) flush(ctx context.Context) error {
	if err := s.repo.Save(ctx, s.snapshot()); err != nil {
		s.log.Error().Err(err).Msg("write-through save failed")
		if !errors.IsAppError(err) {
			err = errors.NewPersistenceWriteError("storage", err)
		}
		return err
	}
	return nil
}

func checkIndex(category domain.Category, index, length int) error {
	if index < 0 || index >= length {
		return errors.NewIndexError(category.String(), index, length)
	}
	return nil
}

func cloneAll(tasks []domain.Task) []domain.Task {
	out := make([]domain.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}

func userMessage(err error) string {
	var ve *validation.ValidationError
	if stderrors.As(err, &ve) {
		return ve.GetUserFriendlyMessage()
	}
	return err.Error()
}
