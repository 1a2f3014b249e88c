package domain

import (
	"sort"
)

// SortByDueDate returns a new slice ordered by ascending due date. Undated
// tasks sort after every dated task and ties keep their original order.
func SortByDueDate(tasks []Task) []Task {
	sorted := make([]Task, len(tasks))
	copy(sorted, tasks)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].DueDate, sorted[j].DueDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return NormalizeDate(*a).Before(NormalizeDate(*b))
		}
	})

	return sorted
}

// Limit truncates tasks to at most n entries. n <= 0 means no limit.
func Limit(tasks []Task, n int) []Task {
	if n <= 0 || len(tasks) <= n {
		return tasks
	}
	return tasks[:n]
}
