package sqlite

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanTaskRow scans a single task from a database row
func ScanTaskRow(scanner Scanner) (*taskRow, error) {
	row := &taskRow{}
	var completed int64

	err := scanner.Scan(
		&row.ID,
		&row.Category,
		&row.Position,
		&row.Text,
		&row.Description,
		&row.DueDate,
		&row.Course,
		&completed,
	)
	if err != nil {
		return nil, err
	}

	row.Completed = completed != 0
	return row, nil
}

// ScanTaskRows scans multiple tasks from database rows
func ScanTaskRows(rows Rows) ([]*taskRow, error) {
	var result []*taskRow
	for rows.Next() {
		row, err := ScanTaskRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
