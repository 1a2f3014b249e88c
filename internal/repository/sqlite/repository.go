package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"task-widget/internal/domain"
	"task-widget/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// SQLiteRepository stores task snapshots in a SQLite database. It implements
// repository.Repository.
type SQLiteRepository struct {
	db   *sql.DB
	path string
	log  zerolog.Logger
}

// New opens (creating if needed) the database at dbPath and brings its
// schema up to date.
func New(ctx context.Context, dbPath string, logger zerolog.Logger) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, HandleReadError(dbPath, "open database", err)
	}
	if dbPath == MemoryPath {
		// each connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}

	if err := migrations.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, HandleReadError(dbPath, "run migrations", err)
	}

	return &SQLiteRepository{
		db:   db,
		path: dbPath,
		log:  logger.With().Str("component", "sqlite").Str("path", dbPath).Logger(),
	}, nil
}

// NewInMemory opens a fresh in-memory database, used for tests and the
// testing environment.
func NewInMemory(ctx context.Context) (*SQLiteRepository, error) {
	return New(ctx, MemoryPath, zerolog.Nop())
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Load returns every stored task grouped by category in stored order.
// Rows with empty text are skipped and unreadable dates load as undated.
func (r *SQLiteRepository) Load(ctx context.Context) (*domain.Snapshot, error) {
	query := `
	SELECT id, category, position, text, description, due_date, course, completed
	FROM tasks
	ORDER BY category ASC, position ASC`

	rows, err := QueryMultiple(ctx, r.db, r.path, query, ScanTaskRows)
	if err != nil {
		return nil, err
	}

	snap := &domain.Snapshot{Daily: []domain.Task{}, Dated: []domain.Task{}}
	for _, row := range rows {
		task, ok := r.toTask(row)
		if !ok {
			continue
		}
		if task.Category == domain.CategoryDaily {
			snap.Daily = append(snap.Daily, task)
		} else {
			snap.Dated = append(snap.Dated, task)
		}
	}

	r.log.Debug().Int("daily", len(snap.Daily)).Int("dated", len(snap.Dated)).Msg("loaded tasks")
	return snap, nil
}

// Save replaces the stored tasks with the snapshot inside one transaction.
func (r *SQLiteRepository) Save(ctx context.Context, snapshot *domain.Snapshot) error {
	if snapshot == nil {
		snapshot = &domain.Snapshot{}
	}

	err := WithTransaction(ctx, r.db, r.path, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
			return fmt.Errorf("clear tasks: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tasks (id, category, position, text, description, due_date, course, completed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, category := range domain.Categories() {
			for i, t := range snapshot.List(category) {
				_, err := stmt.ExecContext(ctx,
					t.ID.String(),
					category.String(),
					i,
					t.Text,
					t.Description,
					FormatDueDateForDB(t.DueDate),
					t.Course,
					FormatBoolForDB(t.Completed),
				)
				if err != nil {
					return fmt.Errorf("insert task %s: %w", t.ID, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.log.Debug().Int("tasks", snapshot.Len()).Msg("saved tasks")
	return nil
}

func (r *SQLiteRepository) toTask(row *taskRow) (domain.Task, bool) {
	if row.Text == "" {
		r.log.Warn().Str("id", row.ID).Msg("skipping task without text")
		return domain.Task{}, false
	}

	category, err := domain.ParseCategory(row.Category)
	if err != nil {
		r.log.Warn().Str("id", row.ID).Str("category", row.Category).Msg("unknown category, treating as dated")
	}

	id, err := uuid.Parse(row.ID)
	if err != nil {
		id = uuid.New()
	}

	task := domain.Task{
		ID:          id,
		Text:        row.Text,
		Description: row.Description,
		Course:      row.Course,
		Completed:   row.Completed,
		Category:    category,
	}

	if category == domain.CategoryDated {
		due, err := ParseDueDateFromDB(row.DueDate)
		if err != nil {
			r.log.Warn().Str("id", row.ID).Str("due_date", row.DueDate.String).Msg("unreadable due date, loading as undated")
		}
		task.DueDate = due
	}
	return task, true
}
