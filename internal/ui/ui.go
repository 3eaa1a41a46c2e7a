// Package ui implements the interactive month view.
package ui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"monthcal/internal/calendar"
	"monthcal/internal/config"
	"monthcal/internal/storage"
	"monthcal/internal/ui/mouse"
)

type mode int

const (
	modeView mode = iota
	modeAdd
)

// NoteStore is the slice of storage the widget reads and writes.
type NoteStore interface {
	AddNote(date time.Time, text string) (storage.Note, error)
	NotesOn(date time.Time) ([]storage.Note, error)
	MarkedDays(m calendar.MonthRef) (map[int]bool, error)
}

// DisplayedDate is the month on screen. Day and Date record today as of
// construction; Month and Year follow navigation.
type DisplayedDate struct {
	Day   time.Weekday
	Date  int
	Month time.Month
	Year  int
}

func (d DisplayedDate) Ref() calendar.MonthRef {
	return calendar.MonthRef{Year: d.Year, Month: d.Month}
}

type Option func(*Widget)

// WithClock replaces time.Now as the source of today.
func WithClock(now func() time.Time) Option {
	return func(w *Widget) { w.now = now }
}

func WithStore(s NoteStore) Option {
	return func(w *Widget) { w.store = s }
}

func WithLogger(l *slog.Logger) Option {
	return func(w *Widget) { w.logger = l }
}

// WithMonth opens the widget on m instead of the current month.
func WithMonth(m calendar.MonthRef) Option {
	return func(w *Widget) { w.start = &m }
}

// Widget is the month calendar Bubble Tea model.
type Widget struct {
	cfg    config.Config
	keys   KeyMap
	styles Styles
	help   help.Model
	input  textinput.Model
	hits   *mouse.HitMap

	store  NoteStore
	logger *slog.Logger
	now    func() time.Time
	start  *calendar.MonthRef

	displayed DisplayedDate
	grid      calendar.Grid
	notes     []storage.Note
	mode      mode
	status    string
}

// New captures today, lays out the header and weekday headings and builds
// the first grid.
func New(cfg config.Config, opts ...Option) Widget {
	ti := textinput.New()
	ti.Placeholder = "Note"
	ti.CharLimit = 256
	ti.Width = gridWidth

	w := Widget{
		cfg:    cfg,
		keys:   NewKeyMap(cfg.Keys),
		styles: NewStyles(cfg.Theme),
		help:   help.New(),
		input:  ti,
		hits:   newHitMap(),
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
		status: "Click a day or use the arrow keys.",
	}
	for _, opt := range opts {
		opt(&w)
	}

	today := w.now()
	w.displayed = DisplayedDate{
		Day:   today.Weekday(),
		Date:  today.Day(),
		Month: today.Month(),
		Year:  today.Year(),
	}
	if w.start != nil {
		w.displayed.Month = w.start.Month
		w.displayed.Year = w.start.Year
	}
	w.render()
	return w
}

// BindEvents returns the program options that deliver the events the
// widget handles: mouse clicks when enabled, on top of key presses.
func BindEvents(cfg config.Config) []tea.ProgramOption {
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	return opts
}

func Run(cfg config.Config, opts ...Option) error {
	w := New(cfg, opts...)
	program := tea.NewProgram(w, BindEvents(cfg)...)
	_, err := program.Run()
	return err
}

func (w Widget) Displayed() DisplayedDate { return w.displayed }

func (w Widget) Grid() calendar.Grid { return w.grid }

func (w Widget) Notes() []storage.Note { return w.notes }

func (w Widget) Status() string { return w.status }

func (w Widget) Init() tea.Cmd {
	return nil
}

func (w Widget) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if w.mode == modeAdd {
			return w.updateAddMode(msg)
		}
		return w.updateViewMode(msg)
	case tea.MouseMsg:
		if w.mode == modeAdd {
			return w, nil
		}
		w.handleClick(msg)
	case tea.WindowSizeMsg:
		w.help.Width = msg.Width
	}
	return w, nil
}

func (w Widget) updateViewMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, w.keys.Quit):
		return w, tea.Quit
	case key.Matches(msg, w.keys.Prev):
		w.ShowPrevMonth()
	case key.Matches(msg, w.keys.Next):
		w.ShowNextMonth()
	case key.Matches(msg, w.keys.Today):
		w.SelectDate(w.now())
	case key.Matches(msg, w.keys.Left):
		w.moveHighlight(-1)
	case key.Matches(msg, w.keys.Right):
		w.moveHighlight(1)
	case key.Matches(msg, w.keys.Up):
		w.moveHighlight(-calendar.DaysPerWeek)
	case key.Matches(msg, w.keys.Down):
		w.moveHighlight(calendar.DaysPerWeek)
	case key.Matches(msg, w.keys.Notes):
		w.loadNotes()
	case key.Matches(msg, w.keys.Add):
		return w.startAdd()
	case key.Matches(msg, w.keys.Help):
		w.help.ShowAll = !w.help.ShowAll
	}
	return w, nil
}

func (w Widget) startAdd() (tea.Model, tea.Cmd) {
	if w.store == nil {
		w.status = "Notes are disabled"
		return w, nil
	}
	cell, ok := w.highlightedCell()
	if !ok {
		w.status = "Select a day first"
		return w, nil
	}
	w.mode = modeAdd
	w.input.SetValue("")
	w.status = fmt.Sprintf("New note for %s: type and press %s", formatDay(cell.Date), w.cfg.Keys.Confirm)
	cmd := w.input.Focus()
	return w, cmd
}

func (w Widget) updateAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, w.keys.Cancel):
		w.mode = modeView
		w.input.SetValue("")
		w.input.Blur()
		w.status = "Cancelled"
		return w, nil
	case key.Matches(msg, w.keys.Confirm):
		text := strings.TrimSpace(w.input.Value())
		if text == "" {
			w.status = "Note cannot be empty"
			return w, nil
		}
		cell, ok := w.highlightedCell()
		if !ok {
			w.status = "Select a day first"
			return w, nil
		}
		if _, err := w.store.AddNote(cell.Date, text); err != nil {
			w.logger.Warn("add note", "date", cell.Date.Format(time.DateOnly), "err", err)
			w.status = fmt.Sprintf("save failed: %v", err)
			return w, nil
		}
		w.input.SetValue("")
		w.input.Blur()
		w.mode = modeView
		w.refreshMarks()
		w.loadNotes()
		w.status = "Added note"
		return w, nil
	default:
		var cmd tea.Cmd
		w.input, cmd = w.input.Update(msg)
		return w, cmd
	}
}

// handleClick dispatches a primary click to the header buttons or a day
// cell. Anything else is ignored.
func (w *Widget) handleClick(msg tea.MouseMsg) {
	if !mouse.IsPrimaryClick(msg) {
		return
	}
	region := w.hits.Test(msg.X, msg.Y)
	if region == nil {
		return
	}
	switch region.ID {
	case regionPrev:
		w.ShowPrevMonth()
	case regionNext:
		w.ShowNextMonth()
	case regionCell:
		pos := region.Data.(cellPos)
		w.SelectCell(pos.row, pos.col)
	}
}

func (w *Widget) ShowPrevMonth() {
	w.showMonth(calendar.PrevMonth(w.displayed.Ref()))
}

func (w *Widget) ShowNextMonth() {
	w.showMonth(calendar.NextMonth(w.displayed.Ref()))
}

func (w *Widget) showMonth(m calendar.MonthRef) {
	w.displayed.Month = m.Month
	w.displayed.Year = m.Year
	w.render()
	w.logger.Debug("show month", "month", m.String())
}

// render replaces the grid with a fresh one for the displayed month.
// Highlight and notes belong to the old grid and are dropped.
func (w *Widget) render() {
	ref := w.displayed.Ref()
	w.grid = calendar.Build(ref, w.now(), w.markedDays(ref))
	w.notes = nil
}

func (w *Widget) markedDays(ref calendar.MonthRef) map[int]bool {
	if w.store == nil {
		return nil
	}
	marked, err := w.store.MarkedDays(ref)
	if err != nil {
		w.logger.Warn("load marked days", "month", ref.String(), "err", err)
		w.status = fmt.Sprintf("load failed: %v", err)
		return nil
	}
	return marked
}

func (w *Widget) refreshMarks() {
	marked := w.markedDays(w.displayed.Ref())
	for r := range w.grid.Rows {
		for c := range w.grid.Rows[r] {
			cell := &w.grid.Rows[r][c]
			cell.Marked = cell.Kind == calendar.KindCurrent && marked[cell.Number()]
		}
	}
}

// SelectCell highlights the cell at row, col. An overflow cell moves the
// view to its month and highlights the same day number there.
func (w *Widget) SelectCell(row, col int) {
	cell, ok := w.grid.At(row, col)
	if !ok {
		return
	}
	w.grid.ClearHighlight()
	w.grid.Highlight(row, col)

	switch cell.Kind {
	case calendar.KindPrev:
		day := cell.Number()
		w.ShowPrevMonth()
		w.grid.HighlightDay(day)
	case calendar.KindNext:
		day := cell.Number()
		w.ShowNextMonth()
		w.grid.HighlightDay(day)
	}
	w.loadNotes()
}

// SelectDate shows the month of t and highlights its day.
func (w *Widget) SelectDate(t time.Time) {
	if !w.displayed.Ref().Contains(t) {
		w.showMonth(calendar.Of(t))
	}
	w.grid.ClearHighlight()
	w.grid.HighlightDay(t.Day())
	w.loadNotes()
}

func (w *Widget) moveHighlight(days int) {
	cell, ok := w.highlightedCell()
	if !ok {
		today := w.now()
		if w.displayed.Ref().Contains(today) {
			w.SelectDate(today)
		} else {
			w.SelectDate(w.displayed.Ref().First())
		}
		return
	}
	w.SelectDate(cell.Date.AddDate(0, 0, days))
}

func (w Widget) highlightedCell() (calendar.Cell, bool) {
	r, c, ok := w.grid.Highlighted()
	if !ok {
		return calendar.Cell{}, false
	}
	return w.grid.At(r, c)
}

func (w *Widget) loadNotes() {
	w.notes = nil
	if w.store == nil {
		return
	}
	cell, ok := w.highlightedCell()
	if !ok {
		return
	}
	notes, err := w.store.NotesOn(cell.Date)
	if err != nil {
		w.logger.Warn("load notes", "date", cell.Date.Format(time.DateOnly), "err", err)
		w.status = fmt.Sprintf("load failed: %v", err)
		return
	}
	w.notes = notes
}

func (w Widget) View() string {
	var b strings.Builder
	b.WriteString(w.CalendarView())
	b.WriteString("\n")

	if cell, ok := w.highlightedCell(); ok {
		b.WriteString(formatDay(cell.Date))
		b.WriteString("\n")
		for _, n := range w.notes {
			b.WriteString(w.styles.Note.Render("• " + n.Text))
			b.WriteString("\n")
		}
	}
	if w.mode == modeAdd {
		b.WriteString(w.input.View())
		b.WriteString("\n")
	}

	b.WriteString(w.styles.Status.Render(w.status))
	b.WriteString("\n")
	if w.mode == modeAdd {
		b.WriteString(w.help.View(addModeHelp{confirm: w.keys.Confirm, cancel: w.keys.Cancel}))
	} else {
		b.WriteString(w.help.View(w.keys))
	}
	return b.String()
}

// CalendarView renders the framed header, weekday headings and grid.
func (w Widget) CalendarView() string {
	lines := []string{w.renderHeader(), w.renderWeekdays()}
	for _, row := range w.grid.Rows {
		lines = append(lines, w.renderRow(row))
	}
	return w.styles.Frame.Render(strings.Join(lines, "\n"))
}

func (w Widget) renderHeader() string {
	ref := w.displayed.Ref()
	prev := w.styles.Button.Render(fmt.Sprintf("‹ %s", calendar.PrevMonth(ref).Short()))
	next := w.styles.Button.Render(fmt.Sprintf("%s ›", calendar.NextMonth(ref).Short()))
	title := lipgloss.PlaceHorizontal(gridWidth-2*buttonWidth, lipgloss.Center, w.styles.Title.Render(ref.Title()))
	return prev + title + next
}

func (w Widget) renderWeekdays() string {
	cells := make([]string, 0, len(weekdays))
	for _, d := range weekdays {
		cells = append(cells, w.styles.Weekday.Render(d))
	}
	return strings.Join(cells, "")
}

func (w Widget) renderRow(row []calendar.Cell) string {
	cells := make([]string, 0, len(row))
	for _, c := range row {
		cells = append(cells, w.styles.CellStyle(c).Render(fmt.Sprintf("%d", c.Number())))
	}
	return strings.Join(cells, "")
}

func formatDay(t time.Time) string {
	return t.Format("Mon, 2 Jan 2006")
}
