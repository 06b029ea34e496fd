// Package layout places elements on the canvas: fixed grids for
// layout_grid and free-position scanning for suggest_position.
package layout

import (
	"math"

	"sketchboard/internal/domain"
)

const (
	GridSize   = 20.0  // snap step for suggested positions
	Padding    = 40.0  // clearance around existing elements
	MaxScanW   = 2000.0
	DefaultGap = 40.0 // default grid gaps when the caller omits them
)

// Engine computes element placement.
type Engine struct {
	gridSize float64
	padding  float64
	maxScanW float64
}

// NewEngine creates an Engine with the default canvas metrics.
func NewEngine() *Engine {
	return &Engine{gridSize: GridSize, padding: Padding, maxScanW: MaxScanW}
}

// Snap rounds v to the nearest grid point.
func (le *Engine) Snap(v float64) float64 {
	return math.Round(v/le.gridSize) * le.gridSize
}

// Placement is one element's new position from ArrangeGrid.
type Placement struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// ArrangeGrid lays the given elements out left-to-right, top-to-bottom
// in cols columns starting at origin. Rows are as tall as their tallest
// member; each element keeps its own size. The input order decides the
// cell order.
func (le *Engine) ArrangeGrid(elements []domain.Element, origin domain.Box, cols int, gapX, gapY float64) []Placement {
	if cols < 1 {
		cols = 1
	}
	if gapX <= 0 {
		gapX = DefaultGap
	}
	if gapY <= 0 {
		gapY = DefaultGap
	}

	placements := make([]Placement, 0, len(elements))
	x := origin.X
	y := origin.Y
	rowHeight := 0.0
	col := 0

	for _, e := range elements {
		placements = append(placements, Placement{ID: e.ID, X: x, Y: y})

		if e.Height > rowHeight {
			rowHeight = e.Height
		}
		col++
		if col == cols {
			col = 0
			x = origin.X
			y += rowHeight + gapY
			rowHeight = 0
		} else {
			x += e.Width + gapX
		}
	}
	return placements
}

type rect struct {
	x, y, w, h float64
}

func (a rect) intersects(b rect) bool {
	return a.x < b.x+b.w && a.x+a.w > b.x &&
		a.y < b.y+b.h && a.y+a.h > b.y
}

// NextPosition scans rows top-to-bottom for the first grid-snapped spot
// where a (newW x newH) element clears every existing element by the
// padding margin. Falls back to a row below everything.
func (le *Engine) NextPosition(existing []domain.Element, newW, newH float64) (float64, float64) {
	if len(existing) == 0 {
		return 0, 0
	}

	occupied := make([]rect, len(existing))
	for i, e := range existing {
		occupied[i] = rect{e.X, e.Y, e.Width, e.Height}
	}

	candidate := rect{w: newW, h: newH}
	for y := 0.0; y < 100000; y += le.gridSize {
		for x := 0.0; x < le.maxScanW; x += le.gridSize {
			candidate.x = le.Snap(x)
			candidate.y = le.Snap(y)

			overlaps := false
			for _, occ := range occupied {
				padded := rect{
					x: occ.x - le.padding,
					y: occ.y - le.padding,
					w: occ.w + le.padding*2,
					h: occ.h + le.padding*2,
				}
				if candidate.intersects(padded) {
					overlaps = true
					break
				}
			}
			if !overlaps {
				return candidate.x, candidate.y
			}
		}
	}

	maxY := 0.0
	for _, e := range existing {
		if e.Y+e.Height > maxY {
			maxY = e.Y + e.Height
		}
	}
	return 0, le.Snap(maxY + le.padding)
}
