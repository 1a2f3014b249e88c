package tui

import (
	"task-widget/internal/api"
	"task-widget/internal/domain"
)

// row is one line of the table: either a section heading or a task.
type row struct {
	heading string
	task    *api.TaskView
	// n counts task rows within the section, for striping
	n int
}

// buildRows lays out the daily section above the dated list. The daily
// section is shown in split layout or whenever it has tasks.
func buildRows(daily, dated []*api.TaskView, split bool) []row {
	var rows []row

	if split || len(daily) > 0 {
		rows = append(rows, row{heading: "Daily"})
		for i, v := range daily {
			rows = append(rows, row{task: v, n: i})
		}
		rows = append(rows, row{heading: "Tasks"})
	}

	for i, v := range dated {
		rows = append(rows, row{task: v, n: i})
	}
	return rows
}

// categoryAt returns the list a table row belongs to.
func categoryAt(rows []row, index int) domain.Category {
	if index < 0 || index >= len(rows) {
		return domain.CategoryDated
	}
	if rows[index].task != nil {
		return rows[index].task.Category
	}
	if rows[index].heading == "Daily" {
		return domain.CategoryDaily
	}
	return domain.CategoryDated
}

// firstTaskRow returns the index of the first selectable row, or -1.
func firstTaskRow(rows []row) int {
	for i, r := range rows {
		if r.task != nil {
			return i
		}
	}
	return -1
}
