package tui

import (
	"github.com/gdamore/tcell/v2"

	"task-widget/internal/api"
	"task-widget/internal/domain"
)

// Row backgrounds by urgency. Rows without urgency alternate between the two
// stripe colours.
var (
	colorOverdue  = tcell.GetColor("#ffcccc")
	colorToday    = tcell.GetColor("#fff3cd")
	colorTomorrow = tcell.GetColor("#f0f8ff")
	colorStripeA  = tcell.GetColor("#f0f0f0")
	colorStripeB  = tcell.GetColor("#e6e6e6")
	colorHeading  = tcell.ColorYellow
)

// rowBackground picks the background for the n-th task row of a list.
func rowBackground(bucket domain.Bucket, n int) tcell.Color {
	switch bucket {
	case domain.BucketOverdue:
		return colorOverdue
	case domain.BucketToday:
		return colorToday
	case domain.BucketTomorrow:
		return colorTomorrow
	}
	if n%2 == 0 {
		return colorStripeA
	}
	return colorStripeB
}

// rowStyle renders completed tasks struck through.
func rowStyle(v *api.TaskView, n int) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.ColorBlack).
		Background(rowBackground(v.Bucket, n)).
		StrikeThrough(v.Completed)
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}
