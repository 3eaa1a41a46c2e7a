package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"monthcal/internal/calendar"
	"monthcal/internal/config"
	"monthcal/internal/storage"
)

var fixedNow = time.Date(2024, time.March, 14, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type memStore struct {
	notes  []storage.Note
	nextID int
	err    error
}

func (s *memStore) AddNote(date time.Time, text string) (storage.Note, error) {
	if s.err != nil {
		return storage.Note{}, s.err
	}
	s.nextID++
	n := storage.Note{ID: s.nextID, Date: calendar.Day(date), Text: text}
	s.notes = append(s.notes, n)
	return n, nil
}

func (s *memStore) NotesOn(date time.Time) ([]storage.Note, error) {
	var out []storage.Note
	for _, n := range s.notes {
		if n.Date.Equal(calendar.Day(date)) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *memStore) MarkedDays(m calendar.MonthRef) (map[int]bool, error) {
	if s.err != nil {
		return nil, s.err
	}
	marked := map[int]bool{}
	for _, n := range s.notes {
		if m.Contains(n.Date) {
			marked[n.Date.Day()] = true
		}
	}
	return marked, nil
}

func newTestWidget(t *testing.T, opts ...Option) Widget {
	t.Helper()
	opts = append([]Option{WithClock(fixedClock)}, opts...)
	return New(config.Default(), opts...)
}

func update(t *testing.T, w Widget, msg tea.Msg) Widget {
	t.Helper()
	next, _ := w.Update(msg)
	return next.(Widget)
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func clickCell(t *testing.T, w Widget, row, col int) Widget {
	t.Helper()
	x, y := cellPoint(row, col)
	return update(t, w, click(x+cellWidth-1, y))
}

func clickPrev(t *testing.T, w Widget) Widget {
	t.Helper()
	return update(t, w, click(originX, originY+headerLine))
}

func clickNext(t *testing.T, w Widget) Widget {
	t.Helper()
	return update(t, w, click(originX+gridWidth-1, originY+headerLine))
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func highlighted(t *testing.T, w Widget) calendar.Cell {
	t.Helper()
	g := w.Grid()
	r, c, ok := g.Highlighted()
	if !ok {
		t.Fatal("no highlighted cell")
	}
	cell, _ := g.At(r, c)
	return cell
}

func assertMonth(t *testing.T, w Widget, year int, month time.Month) {
	t.Helper()
	d := w.Displayed()
	if d.Year != year || d.Month != month {
		t.Fatalf("displayed %s %d, want %s %d", d.Month, d.Year, month, year)
	}
	if w.Grid().Month != (calendar.MonthRef{Year: year, Month: month}) {
		t.Fatalf("grid month %v, want %s %d", w.Grid().Month, month, year)
	}
}

func TestNewCapturesToday(t *testing.T) {
	w := newTestWidget(t)
	d := w.Displayed()
	if d.Year != 2024 || d.Month != time.March || d.Date != 14 || d.Day != time.Thursday {
		t.Errorf("displayed = %+v", d)
	}
	if n := w.Grid().CountToday(); n != 1 {
		t.Errorf("today cells = %d, want 1", n)
	}
	if _, _, ok := w.Grid().Highlighted(); ok {
		t.Error("fresh widget has a highlight")
	}
}

func TestNextButtonTwice(t *testing.T) {
	w := newTestWidget(t)
	w = clickNext(t, w)
	w = clickNext(t, w)
	assertMonth(t, w, 2024, time.May)
	if n := w.Grid().CountToday(); n != 0 {
		t.Errorf("today cells in May = %d, want 0", n)
	}
	// Day and date still describe the day the widget was opened.
	if d := w.Displayed(); d.Date != 14 || d.Day != time.Thursday {
		t.Errorf("displayed = %+v", d)
	}
}

func TestPrevButtonRollsYear(t *testing.T) {
	w := newTestWidget(t, WithMonth(calendar.MonthRef{Year: 2024, Month: time.January}))
	w = clickPrev(t, w)
	assertMonth(t, w, 2023, time.December)
	w = clickNext(t, w)
	w = clickNext(t, w)
	assertMonth(t, w, 2024, time.February)
}

func TestClickOverflowNext(t *testing.T) {
	w := newTestWidget(t, WithMonth(calendar.MonthRef{Year: 2024, Month: time.January}))
	cell, _ := w.Grid().At(4, 6)
	if cell.Kind != calendar.KindNext || cell.Number() != 3 {
		t.Fatalf("cell (4,6) = %+v, want overflow-next 3", cell)
	}

	w = clickCell(t, w, 4, 6)
	assertMonth(t, w, 2024, time.February)
	got := highlighted(t, w)
	if got.Kind != calendar.KindCurrent || got.Number() != 3 || got.Date.Month() != time.February {
		t.Errorf("highlighted %+v, want Feb 3", got)
	}
}

func TestClickOverflowPrev(t *testing.T) {
	w := newTestWidget(t, WithMonth(calendar.MonthRef{Year: 2024, Month: time.January}))
	w = clickCell(t, w, 0, 0)
	assertMonth(t, w, 2023, time.December)
	got := highlighted(t, w)
	if got.Kind != calendar.KindCurrent || got.Number() != 31 {
		t.Errorf("highlighted %+v, want Dec 31", got)
	}
}

func TestClickOverflowOntoToday(t *testing.T) {
	feb3 := time.Date(2024, time.February, 3, 8, 0, 0, 0, time.UTC)
	w := New(config.Default(),
		WithClock(func() time.Time { return feb3 }),
		WithMonth(calendar.MonthRef{Year: 2024, Month: time.January}),
	)
	w = clickCell(t, w, 4, 6)
	assertMonth(t, w, 2024, time.February)
	got := highlighted(t, w)
	if !got.Today || got.Number() != 3 {
		t.Errorf("highlighted %+v, want today Feb 3", got)
	}
}

func TestClickCurrentCellOnlyHighlights(t *testing.T) {
	w := newTestWidget(t)
	w = clickCell(t, w, 2, 3)
	assertMonth(t, w, 2024, time.March)
	first := highlighted(t, w)
	if first.Number() != 13 {
		t.Errorf("highlighted %d, want 13", first.Number())
	}

	w = clickCell(t, w, 3, 0)
	count := 0
	for _, row := range w.Grid().Rows {
		for _, c := range row {
			if c.Highlighted {
				count++
			}
		}
	}
	if count != 1 {
		t.Errorf("highlighted cells = %d, want 1", count)
	}
	if got := highlighted(t, w); got.Number() != 17 {
		t.Errorf("highlighted %d, want 17", got.Number())
	}
}

func TestNavigationDropsHighlight(t *testing.T) {
	w := newTestWidget(t)
	w = clickCell(t, w, 2, 3)
	w = clickNext(t, w)
	if _, _, ok := w.Grid().Highlighted(); ok {
		t.Error("highlight survived navigation")
	}
}

func TestIgnoredMouseEvents(t *testing.T) {
	w := newTestWidget(t)
	x, y := cellPoint(2, 3)

	for _, msg := range []tea.MouseMsg{
		{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonRight},
		{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft},
		{X: x, Y: y, Action: tea.MouseActionMotion},
		click(0, 0),
		click(originX+gridWidth/2, originY+headerLine),
		click(originX, originY+1),
	} {
		w = update(t, w, msg)
	}
	assertMonth(t, w, 2024, time.March)
	if _, _, ok := w.Grid().Highlighted(); ok {
		t.Error("ignored event highlighted a cell")
	}
}

func TestKeyboardNavigation(t *testing.T) {
	w := newTestWidget(t)
	w = update(t, w, keyPress("n"))
	assertMonth(t, w, 2024, time.April)
	w = update(t, w, keyPress("p"))
	w = update(t, w, keyPress("p"))
	assertMonth(t, w, 2024, time.February)

	w = update(t, w, keyPress("t"))
	assertMonth(t, w, 2024, time.March)
	if got := highlighted(t, w); got.Number() != 14 || !got.Today {
		t.Errorf("today key highlighted %+v", got)
	}

	w.SelectDate(time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC))
	w = update(t, w, keyPress("right"))
	assertMonth(t, w, 2024, time.April)
	if got := highlighted(t, w); got.Number() != 1 {
		t.Errorf("right from Mar 31 highlighted %d, want Apr 1", got.Number())
	}

	w = update(t, w, keyPress("k"))
	assertMonth(t, w, 2024, time.March)
	if got := highlighted(t, w); got.Number() != 25 {
		t.Errorf("up from Apr 1 highlighted %d, want Mar 25", got.Number())
	}
}

func TestArrowWithoutHighlightStartsAtFirst(t *testing.T) {
	w := newTestWidget(t, WithMonth(calendar.MonthRef{Year: 2024, Month: time.June}))
	w = update(t, w, keyPress("down"))
	if got := highlighted(t, w); got.Number() != 1 || got.Date.Month() != time.June {
		t.Errorf("highlighted %+v, want Jun 1", got)
	}
}

func TestQuit(t *testing.T) {
	w := newTestWidget(t)
	_, cmd := w.Update(keyPress("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestViewHeader(t *testing.T) {
	w := newTestWidget(t, WithMonth(calendar.MonthRef{Year: 2024, Month: time.January}))
	view := w.View()
	for _, want := range []string{"‹ Dec", "January 2024", "Feb ›", "Sun", "Sat", "31"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	w = clickNext(t, w)
	view = w.CalendarView()
	for _, want := range []string{"‹ Jan", "February 2024", "Mar ›"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q after next:\n%s", want, view)
		}
	}
	if strings.Contains(view, "January 2024") {
		t.Error("stale title left in header")
	}
}

func TestViewLayoutMatchesHitMap(t *testing.T) {
	w := newTestWidget(t, WithMonth(calendar.MonthRef{Year: 2024, Month: time.January}))
	lines := strings.Split(w.CalendarView(), "\n")

	_, y := cellPoint(0, 0)
	if !strings.Contains(lines[y], "31") {
		t.Errorf("line %d = %q, want first grid row", y, lines[y])
	}
	if !strings.Contains(lines[originY+headerLine], "‹ Dec") {
		t.Errorf("line %d = %q, want header", originY+headerLine, lines[originY+headerLine])
	}
	if got := len(lines); got != originY+gridLine+calendar.MinRows+1 {
		t.Errorf("frame has %d lines", got)
	}
}

func TestAddNoteFlow(t *testing.T) {
	store := &memStore{}
	w := newTestWidget(t, WithStore(store))

	w = clickCell(t, w, 2, 3)
	w = update(t, w, keyPress("a"))
	if w.mode != modeAdd {
		t.Fatalf("mode = %v, want add", w.mode)
	}
	// Keys that navigate in view mode are text while typing.
	w = update(t, w, keyPress("n"))
	w = update(t, w, keyPress("ap"))
	assertMonth(t, w, 2024, time.March)
	w = update(t, w, keyPress("enter"))

	if w.mode != modeView {
		t.Fatalf("mode = %v after enter, want view", w.mode)
	}
	if len(store.notes) != 1 || store.notes[0].Text != "nap" || store.notes[0].Date.Day() != 13 {
		t.Fatalf("store notes = %+v", store.notes)
	}
	if got := highlighted(t, w); !got.Marked {
		t.Error("highlighted day not marked after adding a note")
	}
	if len(w.Notes()) != 1 {
		t.Errorf("notes shown = %d, want 1", len(w.Notes()))
	}
	if !strings.Contains(w.View(), "• nap") {
		t.Errorf("view missing note:\n%s", w.View())
	}

	// Marks survive navigation away and back.
	w = clickNext(t, w)
	w = clickPrev(t, w)
	r, c, _ := w.Grid().Find(13)
	if cell, _ := w.Grid().At(r, c); !cell.Marked {
		t.Error("mark lost after navigation")
	}
}

func TestAddNoteCancelAndValidation(t *testing.T) {
	store := &memStore{}
	w := newTestWidget(t, WithStore(store))

	w = update(t, w, keyPress("a"))
	if w.mode != modeView || w.Status() != "Select a day first" {
		t.Errorf("add without selection: mode %v status %q", w.mode, w.Status())
	}

	w = clickCell(t, w, 1, 1)
	w = update(t, w, keyPress("a"))
	w = update(t, w, keyPress("enter"))
	if w.Status() != "Note cannot be empty" || w.mode != modeAdd {
		t.Errorf("empty note: mode %v status %q", w.mode, w.Status())
	}
	w = update(t, w, keyPress("esc"))
	if w.mode != modeView || len(store.notes) != 0 {
		t.Errorf("cancel: mode %v notes %d", w.mode, len(store.notes))
	}
}

func TestAddNoteStoreError(t *testing.T) {
	store := &memStore{}
	w := newTestWidget(t, WithStore(store))
	w = clickCell(t, w, 1, 1)
	w = update(t, w, keyPress("a"))
	w = update(t, w, keyPress("x"))
	store.err = errors.New("disk full")
	w = update(t, w, keyPress("enter"))
	if !strings.Contains(w.Status(), "disk full") {
		t.Errorf("status = %q", w.Status())
	}
}

func TestNotesDisabledWithoutStore(t *testing.T) {
	w := newTestWidget(t)
	w = clickCell(t, w, 1, 1)
	w = update(t, w, keyPress("a"))
	if w.mode != modeView || w.Status() != "Notes are disabled" {
		t.Errorf("mode %v status %q", w.mode, w.Status())
	}
}

func TestBindEvents(t *testing.T) {
	cfg := config.Default()
	if got := len(BindEvents(cfg)); got != 2 {
		t.Errorf("options with mouse = %d, want 2", got)
	}
	cfg.Mouse = false
	if got := len(BindEvents(cfg)); got != 1 {
		t.Errorf("options without mouse = %d, want 1", got)
	}
}
