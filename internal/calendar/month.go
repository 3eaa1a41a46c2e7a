// Package calendar holds month arithmetic and the day grid shown by the
// month view.
package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidMonth = errors.New("invalid month")

// MonthRef names a calendar month.
type MonthRef struct {
	Year  int
	Month time.Month
}

func Of(t time.Time) MonthRef {
	return MonthRef{Year: t.Year(), Month: t.Month()}
}

// NextMonth returns the month after m, rolling into the next year after December.
func NextMonth(m MonthRef) MonthRef {
	month := m.Month + 1
	year := m.Year
	if month > time.December {
		month = time.January
		year++
	}
	return MonthRef{Year: year, Month: month}
}

// PrevMonth returns the month before m, rolling into the previous year before January.
func PrevMonth(m MonthRef) MonthRef {
	month := m.Month - 1
	year := m.Year
	if month < time.January {
		month = time.December
		year--
	}
	return MonthRef{Year: year, Month: month}
}

// DaysIn returns the last day number of the month. Day 0 of the following
// month normalizes to it, so leap years need no special case.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (m MonthRef) Days() int {
	return DaysIn(m.Year, m.Month)
}

// First returns midnight UTC on day 1 of the month.
func (m MonthRef) First() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

func FirstWeekday(m MonthRef) time.Weekday {
	return m.First().Weekday()
}

func (m MonthRef) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

func (m MonthRef) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Title renders "January 2024".
func (m MonthRef) Title() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

// Short renders the three letter month name.
func (m MonthRef) Short() string {
	return m.Month.String()[:3]
}

// ParseMonth accepts "YYYY-MM".
func ParseMonth(v string) (MonthRef, error) {
	v = strings.TrimSpace(v)
	t, err := time.Parse("2006-01", v)
	if err != nil {
		return MonthRef{}, fmt.Errorf("%w %q: want YYYY-MM", ErrInvalidMonth, v)
	}
	return Of(t), nil
}

// ParseDate accepts "YYYY-MM-DD" and returns midnight UTC of that day.
func ParseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", v)
	}
	return t, nil
}

// Day truncates t to its calendar day in UTC, keeping the wall clock date.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
