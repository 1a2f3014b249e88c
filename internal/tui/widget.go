// Package tui is the terminal widget: a coloured task list that re-renders
// as the day advances.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"

	"task-widget/internal/api"
	"task-widget/internal/domain"
	"task-widget/internal/errors"
)

const (
	pageMain    = "main"
	pageConfirm = "confirm"

	keyHelp = "[orange]<space>[white] toggle  [orange]<d>[white] delete  [orange]<c>[white] clear completed  [orange]<r>[white] refresh  [orange]<q>[white] quit"
)

// Options configures the widget.
type Options struct {
	// RefreshInterval is how often labels and colours are recomputed.
	RefreshInterval time.Duration
	// Split shows the daily list above the dated list even when it is empty.
	Split bool
	// Notice is shown in the footer until the first action.
	Notice string
	Logger zerolog.Logger
}

// KeyEvent defines an action bound to a key.
type KeyEvent struct {
	Description string
	Action      func(ctx context.Context)
}

// Widget mediates between the task API and the terminal.
type Widget struct {
	api     api.API
	opts    Options
	app     *tview.Application
	pages   *tview.Pages
	table   *tview.Table
	footer  *tview.TextView
	rows    []row
	events  map[rune]KeyEvent
	message string
	log     zerolog.Logger
}

// New creates a widget. Nothing is drawn until Run.
func New(a api.API, opts Options) *Widget {
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = time.Minute
	}

	w := &Widget{
		api:     a,
		opts:    opts,
		app:     tview.NewApplication(),
		message: opts.Notice,
		log:     opts.Logger.With().Str("component", "tui").Logger(),
	}

	w.table = tview.NewTable().SetBorders(false).SetSelectable(true, false)
	w.table.SetBorder(true)
	w.footer = tview.NewTextView().SetDynamicColors(true)

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(w.table, 0, 1, true).
		AddItem(w.footer, 2, 0, false)

	w.pages = tview.NewPages().AddPage(pageMain, layout, true, true)
	w.initEvents()
	return w
}

// Run draws the widget and blocks until the user quits or ctx is done.
func (w *Widget) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w.refresh(ctx)
	w.app.SetInputCapture(w.keyboard(ctx))

	go w.tick(ctx)

	w.log.Info().Msg("starting widget")
	return w.app.SetRoot(w.pages, true).SetFocus(w.table).Run()
}

// tick re-renders on every interval so "Today" becomes "1d overdue" at
// midnight without user input.
func (w *Widget) tick(ctx context.Context) {
	ticker := time.NewTicker(w.opts.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.app.Stop()
			return
		case <-ticker.C:
			w.app.QueueUpdateDraw(func() { w.refresh(ctx) })
		}
	}
}

func (w *Widget) initEvents() {
	w.events = map[rune]KeyEvent{
		' ': {Description: "Toggle", Action: w.toggleSelected},
		'd': {Description: "Delete", Action: w.deleteSelected},
		'c': {Description: "Clear completed", Action: w.askClear},
		'r': {Description: "Refresh", Action: w.refresh},
		'q': {Description: "Quit", Action: func(context.Context) { w.app.Stop() }},
	}
}

func (w *Widget) keyboard(ctx context.Context) func(*tcell.EventKey) *tcell.EventKey {
	return func(evt *tcell.EventKey) *tcell.EventKey {
		if name, _ := w.pages.GetFrontPage(); name == pageConfirm {
			return evt
		}
		if evt.Key() != tcell.KeyRune {
			return evt
		}
		if event, ok := w.events[evt.Rune()]; ok {
			event.Action(ctx)
			return nil
		}
		return evt
	}
}

// refresh reloads both lists and redraws the table. The selection follows
// the selected task by ID, not by position.
func (w *Widget) refresh(ctx context.Context) {
	selectedID := w.selectedID()

	daily, err := w.api.ListTasks(ctx, domain.CategoryDaily)
	if err != nil {
		w.fail(err)
		return
	}
	dated, err := w.api.ListTasks(ctx, domain.CategoryDated)
	if err != nil {
		w.fail(err)
		return
	}
	w.rows = buildRows(daily, dated, w.opts.Split)

	w.table.Clear()
	selectRow := -1
	for i, r := range w.rows {
		if r.task == nil {
			w.table.SetCell(i, 0, tview.NewTableCell(r.heading).
				SetTextColor(colorHeading).SetSelectable(false))
			continue
		}

		style := rowStyle(r.task, r.n)
		cells := []string{checkbox(r.task.Completed), r.task.Label, r.task.Course, r.task.Text}
		for col, text := range cells {
			cell := tview.NewTableCell(text).SetStyle(style).SetReference(r.task.ID)
			if col == len(cells)-1 {
				cell.SetExpansion(1)
			}
			w.table.SetCell(i, col, cell)
		}
		if r.task.ID == selectedID {
			selectRow = i
		}
	}

	if selectRow < 0 {
		selectRow = firstTaskRow(w.rows)
	}
	if selectRow >= 0 {
		w.table.Select(selectRow, 0)
	}

	if status, err := w.api.Status(ctx); err == nil {
		w.table.SetTitle(" " + status.Title + " ")
	}
	w.renderFooter()
}

// selectedID returns the ID stored on the selected row, or "".
func (w *Widget) selectedID() string {
	row, _ := w.table.GetSelection()
	cell := w.table.GetCell(row, 0)
	if cell == nil {
		return ""
	}
	id, _ := cell.GetReference().(string)
	return id
}

func (w *Widget) toggleSelected(ctx context.Context) {
	id := w.selectedID()
	if id == "" {
		return
	}

	view, err := w.api.ToggleTask(ctx, id)
	w.report(err)
	if view != nil {
		w.refresh(ctx)
	}
}

func (w *Widget) deleteSelected(ctx context.Context) {
	id := w.selectedID()
	if id == "" {
		return
	}

	err := w.api.DeleteTask(ctx, id)
	w.report(err)
	w.refresh(ctx)
}

// askClear shows the confirmation prompt for the list of the selected row.
func (w *Widget) askClear(ctx context.Context) {
	row, _ := w.table.GetSelection()
	category := categoryAt(w.rows, row)

	status, err := w.api.Status(ctx)
	if err != nil {
		w.fail(err)
		return
	}

	pending := status.CompletedIn(category)
	if pending == 0 {
		w.message = "No completed tasks to clear."
		w.renderFooter()
		return
	}

	modal := tview.NewModal().
		SetText(fmt.Sprintf("Remove %d completed task(s)?", pending)).
		AddButtons([]string{"Remove", "Cancel"}).
		SetDoneFunc(func(buttonIndex int, _ string) {
			w.confirmClear(ctx, category, buttonIndex == 0)
		})

	w.pages.AddPage(pageConfirm, modal, false, true)
	w.app.SetFocus(modal)
}

// confirmClear closes the prompt and clears the list when accepted.
func (w *Widget) confirmClear(ctx context.Context, category domain.Category, accepted bool) {
	w.pages.RemovePage(pageConfirm)
	w.app.SetFocus(w.table)
	if accepted {
		w.clear(ctx, category)
	}
}

func (w *Widget) clear(ctx context.Context, category domain.Category) {
	removed, err := w.api.ClearCompleted(ctx, category)
	w.report(err)
	if err == nil {
		w.message = fmt.Sprintf("Removed %d completed task(s).", removed)
	}
	w.refresh(ctx)
}

// report shows an error in the footer. Save failures leave the change in
// place, so the list is still refreshed by the caller.
func (w *Widget) report(err error) {
	if err == nil {
		w.message = ""
		return
	}
	if errors.ShouldLogError(err) {
		w.log.Error().Err(err).Msg("widget action failed")
	}
	w.message = errors.GetUserMessage(err)
}

func (w *Widget) fail(err error) {
	w.report(err)
	w.renderFooter()
}

func (w *Widget) renderFooter() {
	text := keyHelp
	if w.message != "" {
		text = "[red]" + tview.Escape(w.message) + "[white]\n" + keyHelp
	}
	w.footer.SetText(text)
}
