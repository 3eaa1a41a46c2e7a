package ui

import (
	"monthcal/internal/calendar"
	"monthcal/internal/ui/mouse"
)

const (
	cellWidth   = 4
	gridWidth   = cellWidth * calendar.DaysPerWeek
	buttonWidth = 5
	framePadX   = 1

	// Offsets of the first content cell inside the rounded frame.
	originX = 1 + framePadX
	originY = 1

	headerLine = 0
	gridLine   = 2
)

const (
	regionPrev = "prev"
	regionNext = "next"
	regionCell = "cell"
)

type cellPos struct {
	row, col int
}

// weekdays heads the grid columns, Sunday first.
var weekdays = [calendar.DaysPerWeek]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// newHitMap lays out the clickable regions. The grid always has the same
// shape, so the map does not change across navigation.
func newHitMap() *mouse.HitMap {
	hm := mouse.NewHitMap()
	hm.AddRect(regionPrev, originX, originY+headerLine, buttonWidth, 1, nil)
	hm.AddRect(regionNext, originX+gridWidth-buttonWidth, originY+headerLine, buttonWidth, 1, nil)
	for row := 0; row < calendar.MinRows; row++ {
		for col := 0; col < calendar.DaysPerWeek; col++ {
			x, y := cellPoint(row, col)
			hm.AddRect(regionCell, x, y, cellWidth, 1, cellPos{row: row, col: col})
		}
	}
	return hm
}

// cellPoint is the top-left screen coordinate of a grid cell.
func cellPoint(row, col int) (x, y int) {
	return originX + col*cellWidth, originY + gridLine + row
}
