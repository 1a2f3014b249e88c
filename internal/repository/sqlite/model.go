package sqlite

import "database/sql"

// taskRow is one row of the tasks table
type taskRow struct {
	ID          string
	Category    string
	Position    int
	Text        string
	Description string
	DueDate     sql.NullString // NULL for undated tasks
	Course      string
	Completed   bool
}
