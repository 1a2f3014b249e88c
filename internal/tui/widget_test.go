package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-widget/internal/api"
	"task-widget/internal/domain"
	"task-widget/internal/errors"
	"task-widget/internal/repository/jsonfile"
	"task-widget/internal/store"
)

var fixedNow = time.Date(2024, 6, 15, 9, 30, 0, 0, time.Local)

func setupTestWidget(t *testing.T, split bool) (*Widget, api.API) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "todo_widget_data.json")
	repo := jsonfile.New(path, jsonfile.Options{Logger: zerolog.Nop()})

	s, err := store.Open(context.Background(), repo)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	a := api.New(s, api.WithClock(func() time.Time { return fixedNow }))
	return New(a, Options{Split: split, Logger: zerolog.Nop()}), a
}

func addTask(t *testing.T, a api.API, input api.NewTaskInput) *api.TaskView {
	t.Helper()
	view, err := a.AddTask(context.Background(), input)
	require.NoError(t, err)
	return view
}

func TestRefresh_RendersRowsAndTitle(t *testing.T) {
	w, a := setupTestWidget(t, false)
	ctx := context.Background()

	addTask(t, a, api.NewTaskInput{Text: "Quiz", DueDate: "06/16/2024", Course: "MATH"})
	overdue := addTask(t, a, api.NewTaskInput{Text: "Essay", DueDate: "06/14/2024"})

	w.refresh(ctx)

	require.Equal(t, 2, w.table.GetRowCount())
	assert.Equal(t, "Essay", w.table.GetCell(0, 3).Text)
	assert.Equal(t, "1d overdue", w.table.GetCell(0, 1).Text)
	assert.Equal(t, "Tomorrow", w.table.GetCell(1, 1).Text)
	assert.Equal(t, "MATH", w.table.GetCell(1, 2).Text)
	assert.Equal(t, overdue.ID, w.selectedID())

	_, bg, _ := w.table.GetCell(0, 0).Style.Decompose()
	assert.Equal(t, colorOverdue, bg)

	assert.Equal(t, " Agent MoiRai (1 overdue) ", w.table.GetTitle())
}

func TestRefresh_SplitLayoutHeadings(t *testing.T) {
	w, a := setupTestWidget(t, true)
	addTask(t, a, api.NewTaskInput{Text: "Essay", DueDate: "06/20/2024"})

	w.refresh(context.Background())

	require.Equal(t, 3, w.table.GetRowCount())
	assert.Equal(t, "Daily", w.table.GetCell(0, 0).Text)
	assert.True(t, w.table.GetCell(0, 0).NotSelectable)
	assert.Equal(t, "Tasks", w.table.GetCell(1, 0).Text)
	assert.Equal(t, "Essay", w.table.GetCell(2, 3).Text)

	row, _ := w.table.GetSelection()
	assert.Equal(t, 2, row)
}

func TestToggleSelected(t *testing.T) {
	w, a := setupTestWidget(t, false)
	ctx := context.Background()
	addTask(t, a, api.NewTaskInput{Text: "Essay", DueDate: "06/20/2024"})
	w.refresh(ctx)

	w.toggleSelected(ctx)

	assert.Equal(t, "[x]", w.table.GetCell(0, 0).Text)
	_, _, attrs := w.table.GetCell(0, 3).Style.Decompose()
	assert.NotZero(t, attrs&tcell.AttrStrikeThrough)

	w.toggleSelected(ctx)
	assert.Equal(t, "[ ]", w.table.GetCell(0, 0).Text)
}

func TestRefresh_SelectionFollowsTask(t *testing.T) {
	w, a := setupTestWidget(t, false)
	ctx := context.Background()
	addTask(t, a, api.NewTaskInput{Text: "Later", DueDate: "06/30/2024"})
	w.refresh(ctx)
	later := w.selectedID()

	// an earlier task is inserted above the selected one
	addTask(t, a, api.NewTaskInput{Text: "Sooner", DueDate: "06/16/2024"})
	w.refresh(ctx)

	assert.Equal(t, later, w.selectedID())
	row, _ := w.table.GetSelection()
	assert.Equal(t, 1, row)
}

func TestDeleteSelected(t *testing.T) {
	w, a := setupTestWidget(t, false)
	ctx := context.Background()
	addTask(t, a, api.NewTaskInput{Text: "Essay", DueDate: "06/20/2024"})
	addTask(t, a, api.NewTaskInput{Text: "Quiz", DueDate: "06/21/2024"})
	w.refresh(ctx)

	w.deleteSelected(ctx)

	require.Equal(t, 1, w.table.GetRowCount())
	assert.Equal(t, "Quiz", w.table.GetCell(0, 3).Text)

	tasks, err := a.ListTasks(ctx, domain.CategoryDated)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestSelectedActions_EmptyList(t *testing.T) {
	w, _ := setupTestWidget(t, false)
	ctx := context.Background()
	w.refresh(ctx)

	assert.Empty(t, w.selectedID())
	assert.NotPanics(t, func() {
		w.toggleSelected(ctx)
		w.deleteSelected(ctx)
	})
}

func TestAskClear_NothingCompleted(t *testing.T) {
	w, a := setupTestWidget(t, false)
	ctx := context.Background()
	addTask(t, a, api.NewTaskInput{Text: "Essay", DueDate: "06/20/2024"})
	w.refresh(ctx)

	w.askClear(ctx)

	assert.False(t, w.pages.HasPage(pageConfirm))
	assert.Contains(t, w.footer.GetText(true), "No completed tasks to clear.")
}

func TestAskClear_ConfirmAndCancel(t *testing.T) {
	w, a := setupTestWidget(t, false)
	ctx := context.Background()
	addTask(t, a, api.NewTaskInput{Text: "Essay", DueDate: "06/20/2024"})
	addTask(t, a, api.NewTaskInput{Text: "Quiz", DueDate: "06/21/2024"})
	w.refresh(ctx)
	w.toggleSelected(ctx)

	w.askClear(ctx)
	require.True(t, w.pages.HasPage(pageConfirm))

	w.confirmClear(ctx, domain.CategoryDated, false)
	assert.False(t, w.pages.HasPage(pageConfirm))
	assert.Equal(t, 2, w.table.GetRowCount())

	w.askClear(ctx)
	w.confirmClear(ctx, domain.CategoryDated, true)

	assert.False(t, w.pages.HasPage(pageConfirm))
	require.Equal(t, 1, w.table.GetRowCount())
	assert.Equal(t, "Quiz", w.table.GetCell(0, 3).Text)
	assert.Contains(t, w.footer.GetText(true), "Removed 1 completed task(s).")
}

func TestKeyboard_DispatchesRunes(t *testing.T) {
	w, a := setupTestWidget(t, false)
	ctx := context.Background()
	addTask(t, a, api.NewTaskInput{Text: "Essay", DueDate: "06/20/2024"})
	w.refresh(ctx)

	capture := w.keyboard(ctx)

	consumed := capture(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	assert.Nil(t, consumed)
	assert.Equal(t, "[x]", w.table.GetCell(0, 0).Text)

	passed := capture(tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone))
	assert.NotNil(t, passed)

	arrow := capture(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	assert.NotNil(t, arrow)
}

func TestReport_ShowsUserMessage(t *testing.T) {
	w, _ := setupTestWidget(t, false)

	w.fail(errors.NewNotFoundError("task", "abcd"))
	assert.Contains(t, w.footer.GetText(true), "not found")

	w.report(nil)
	w.renderFooter()
	assert.NotContains(t, w.footer.GetText(true), "not found")
}

func TestNew_NoticeShownInFooter(t *testing.T) {
	w, _ := setupTestWidget(t, false)
	w2 := New(w.api, Options{Notice: "Warning: could not read saved tasks"})

	w2.refresh(context.Background())
	assert.Contains(t, w2.footer.GetText(true), "could not read saved tasks")
	assert.Equal(t, time.Minute, w2.opts.RefreshInterval)
}
