// Package jsonfile stores task snapshots in a single JSON document.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"task-widget/internal/domain"
	"task-widget/internal/errors"
)

// CorruptSuffix is appended to the data file path when a malformed file is
// set aside.
const CorruptSuffix = ".corrupt"

// Options configures a Repository.
type Options struct {
	// Split writes daily and dated tasks under separate keys.
	Split bool
	// DirPermissions is used when the parent directory must be created.
	DirPermissions fs.FileMode
	Logger         zerolog.Logger
}

// Repository is a file-backed repository.Repository.
type Repository struct {
	path string
	opts Options
	mu   sync.Mutex
	log  zerolog.Logger
}

// New creates a repository for the document at path. The file is not touched
// until the first Load or Save.
func New(path string, opts Options) *Repository {
	if opts.DirPermissions == 0 {
		opts.DirPermissions = 0755
	}
	return &Repository{
		path: path,
		opts: opts,
		log:  opts.Logger.With().Str("component", "jsonfile").Str("path", path).Logger(),
	}
}

// Path returns the location of the data file.
func (r *Repository) Path() string {
	return r.path
}

// Load reads the data file. A missing file yields an empty snapshot. A file
// that cannot be decoded is copied aside to <path>.corrupt and reported as a
// persistence read error.
func (r *Repository) Load(ctx context.Context) (*domain.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, errors.NewPersistenceReadError(r.path, err)
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			r.log.Debug().Msg("no data file yet, starting empty")
			return &domain.Snapshot{}, nil
		}
		return nil, errors.NewPersistenceReadError(r.path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		r.log.Warn().Msg("data file is empty, starting empty")
		return &domain.Snapshot{}, nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		r.quarantine(data)
		return nil, errors.NewPersistenceReadError(r.path, err)
	}

	snap := &domain.Snapshot{
		Daily: r.toTasks(doc.DailyTasks, domain.CategoryDaily),
		Dated: append(r.toTasks(doc.Tasks, domain.CategoryDated), r.toTasks(doc.DatedTasks, domain.CategoryDated)...),
	}
	r.log.Debug().Int("daily", len(snap.Daily)).Int("dated", len(snap.Dated)).Msg("loaded tasks")
	return snap, nil
}

// Save writes the snapshot to a temporary file beside the target and renames
// it into place.
func (r *Repository) Save(ctx context.Context, snapshot *domain.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return errors.NewPersistenceWriteError(r.path, err)
	}

	data, err := r.encode(snapshot)
	if err != nil {
		return errors.NewPersistenceWriteError(r.path, err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, r.opts.DirPermissions); err != nil {
		return errors.NewPersistenceWriteError(r.path, fmt.Errorf("create directory: %w", err))
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".tmp-*")
	if err != nil {
		return errors.NewPersistenceWriteError(r.path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.NewPersistenceWriteError(r.path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.NewPersistenceWriteError(r.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.NewPersistenceWriteError(r.path, err)
	}

	if err := os.Rename(tmpPath, r.path); err != nil {
		os.Remove(tmpPath)
		return errors.NewPersistenceWriteError(r.path, fmt.Errorf("rename: %w", err))
	}

	r.log.Debug().Int("tasks", snapshot.Len()).Msg("saved tasks")
	return nil
}

// Close is a no-op; the file is only open during Load and Save.
func (r *Repository) Close() error {
	return nil
}

// quarantine keeps a copy of an undecodable file so the next save does not
// overwrite the only copy of the user's data.
func (r *Repository) quarantine(data []byte) {
	backup := r.path + CorruptSuffix
	if err := os.WriteFile(backup, data, 0600); err != nil {
		r.log.Error().Err(err).Msg("could not back up malformed data file")
		return
	}
	r.log.Warn().Str("backup", backup).Msg("data file is malformed, moved aside")
}

func (r *Repository) encode(snapshot *domain.Snapshot) ([]byte, error) {
	if snapshot == nil {
		snapshot = &domain.Snapshot{}
	}

	var v interface{}
	if r.opts.Split {
		v = splitDocument{
			DailyTasks: fromTasks(snapshot.Daily),
			DatedTasks: fromTasks(snapshot.Dated),
		}
	} else {
		v = singleDocument{
			Tasks:      fromTasks(snapshot.Dated),
			DailyTasks: fromTasks(snapshot.Daily),
		}
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func (r *Repository) toTasks(records []record, category domain.Category) []domain.Task {
	tasks := make([]domain.Task, 0, len(records))
	for i, rec := range records {
		text := strings.TrimSpace(rec.Text)
		task := domain.Task{
			Text:        text,
			Description: rec.Description,
			Course:      rec.Course,
			Completed:   rec.Completed,
			Category:    category,
		}

		id, err := uuid.Parse(rec.ID)
		if err != nil {
			id = uuid.New()
		}
		task.ID = id

		if rec.DueDate != nil && strings.TrimSpace(*rec.DueDate) != "" && category == domain.CategoryDated {
			due, err := domain.ParseISO(*rec.DueDate)
			if err != nil {
				r.log.Warn().Str("due_date", *rec.DueDate).Str("task", text).Msg("unreadable due date, loading as undated")
			} else {
				task.DueDate = &due
			}
		}

		if !task.IsValid() {
			r.log.Warn().Int("record", i).Str("list", category.String()).Msg("dropping task without text")
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks
}

func fromTasks(tasks []domain.Task) []record {
	records := make([]record, 0, len(tasks))
	for _, t := range tasks {
		rec := record{
			ID:          t.ID.String(),
			Text:        t.Text,
			Description: t.Description,
			Course:      t.Course,
			Completed:   t.Completed,
		}
		if t.HasDueDate() {
			s := domain.FormatISO(*t.DueDate)
			rec.DueDate = &s
		}
		records = append(records, rec)
	}
	return records
}
