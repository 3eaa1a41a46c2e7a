package calendar

import "time"

const (
	DaysPerWeek = 7
	MinRows     = 6
)

// Class names carried by cells. Renderers map them to styles.
const (
	ClassToday     = "current"
	ClassHighlight = "highlight"
	ClassPrev      = "non-active-prev"
	ClassNext      = "non-active-next"
	ClassMarked    = "marked"
)

type Kind int

const (
	KindCurrent Kind = iota
	KindPrev
	KindNext
)

func (k Kind) String() string {
	switch k {
	case KindPrev:
		return "overflow-previous"
	case KindNext:
		return "overflow-next"
	default:
		return "current-month"
	}
}

// Cell is one rendered day.
type Cell struct {
	Date        time.Time
	Kind        Kind
	Today       bool
	Highlighted bool
	Marked      bool
}

func (c Cell) Number() int {
	return c.Date.Day()
}

// Classes lists the tags of the cell in a stable order. A plain
// current-month day has none.
func (c Cell) Classes() []string {
	var out []string
	switch c.Kind {
	case KindPrev:
		out = append(out, ClassPrev)
	case KindNext:
		out = append(out, ClassNext)
	}
	if c.Today {
		out = append(out, ClassToday)
	}
	if c.Marked {
		out = append(out, ClassMarked)
	}
	if c.Highlighted {
		out = append(out, ClassHighlight)
	}
	return out
}

// Grid is the Sunday-first week table of one month.
type Grid struct {
	Month MonthRef
	Rows  [][]Cell
}

// Build lays out the month, padding it with the trailing days of the
// previous month and the leading days of the next one until it spans
// MinRows full weeks. today is the real current date; marked holds the
// current-month day numbers that carry notes.
func Build(m MonthRef, today time.Time, marked map[int]bool) Grid {
	prev := PrevMonth(m)
	next := NextMonth(m)
	daysInPrev := prev.Days()
	daysInMonth := m.Days()

	g := Grid{Month: m}
	row := make([]Cell, 0, DaysPerWeek)

	firstDay := int(FirstWeekday(m))
	for i := firstDay; i > 0; i-- {
		row = append(row, Cell{
			Date: time.Date(prev.Year, prev.Month, daysInPrev-i+1, 0, 0, 0, 0, time.UTC),
			Kind: KindPrev,
		})
	}

	todayInMonth := m.Contains(today)
	date := m.First()
	for day := 1; day <= daysInMonth; day++ {
		row = append(row, Cell{
			Date:   date,
			Kind:   KindCurrent,
			Today:  todayInMonth && today.Day() == day,
			Marked: marked[day],
		})
		if date.Weekday() == time.Saturday {
			g.Rows = append(g.Rows, row)
			row = make([]Cell, 0, DaysPerWeek)
		}
		date = date.AddDate(0, 0, 1)
	}

	cursor := next.First()
	emitNext := func() Cell {
		c := Cell{Date: cursor, Kind: KindNext}
		cursor = cursor.AddDate(0, 0, 1)
		return c
	}

	if len(row) > 0 {
		for len(row) < DaysPerWeek {
			row = append(row, emitNext())
		}
		g.Rows = append(g.Rows, row)
	}
	for len(g.Rows) < MinRows {
		row = make([]Cell, 0, DaysPerWeek)
		for i := 0; i < DaysPerWeek; i++ {
			row = append(row, emitNext())
		}
		g.Rows = append(g.Rows, row)
	}
	return g
}

func (g Grid) Len() int {
	n := 0
	for _, row := range g.Rows {
		n += len(row)
	}
	return n
}

// Count returns how many cells are of kind k.
func (g Grid) Count(k Kind) int {
	n := 0
	for _, row := range g.Rows {
		for _, c := range row {
			if c.Kind == k {
				n++
			}
		}
	}
	return n
}

func (g Grid) CountToday() int {
	n := 0
	for _, row := range g.Rows {
		for _, c := range row {
			if c.Today {
				n++
			}
		}
	}
	return n
}

// At returns the cell at row, col.
func (g Grid) At(row, col int) (Cell, bool) {
	if row < 0 || row >= len(g.Rows) || col < 0 || col >= len(g.Rows[row]) {
		return Cell{}, false
	}
	return g.Rows[row][col], true
}

func (g *Grid) ClearHighlight() {
	for r := range g.Rows {
		for c := range g.Rows[r] {
			g.Rows[r][c].Highlighted = false
		}
	}
}

func (g *Grid) Highlight(row, col int) bool {
	if _, ok := g.At(row, col); !ok {
		return false
	}
	g.Rows[row][col].Highlighted = true
	return true
}

// HighlightDay tags the first current-month cell showing day. It reports
// false when the month has no such day.
func (g *Grid) HighlightDay(day int) bool {
	row, col, ok := g.Find(day)
	if !ok {
		return false
	}
	g.Rows[row][col].Highlighted = true
	return true
}

// Find locates the current-month cell showing day.
func (g Grid) Find(day int) (row, col int, ok bool) {
	for r, cells := range g.Rows {
		for c, cell := range cells {
			if cell.Kind == KindCurrent && cell.Number() == day {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// Highlighted returns the position of the highlighted cell, if any.
func (g Grid) Highlighted() (row, col int, ok bool) {
	for r, cells := range g.Rows {
		for c, cell := range cells {
			if cell.Highlighted {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}
