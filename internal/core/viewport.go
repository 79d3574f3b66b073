package core

import "math"

// Viewport projects pixel-space geometry onto terminal cells.
// Terminal cells are roughly twice as tall as they are wide, so the
// two cell dimensions are configured separately.
type Viewport struct {
	CellW float64 // Pixels covered by one cell horizontally
	CellH float64 // Pixels covered by one cell vertically
}

// NewViewport creates a viewport, falling back to 10x20 pixel cells for
// non-positive dimensions.
func NewViewport(cellW, cellH float64) Viewport {
	if cellW <= 0 {
		cellW = 10
	}
	if cellH <= 0 {
		cellH = 20
	}
	return Viewport{CellW: cellW, CellH: cellH}
}

// WorldSize returns the pixel extent covered by a screen of the given size.
func (v Viewport) WorldSize(cols, rows int) (w, h float64) {
	return float64(cols) * v.CellW, float64(rows) * v.CellH
}

// Cells returns the cell block covered by a pixel rectangle. Any rectangle
// with area covers at least one cell so thin walls stay visible.
func (v Viewport) Cells(r Rect) (x, y, w, h int) {
	x = int(math.Floor(r.X / v.CellW))
	y = int(math.Floor(r.Y / v.CellH))
	right := int(math.Ceil(r.Right() / v.CellW))
	bottom := int(math.Ceil(r.Bottom() / v.CellH))
	w = Max(right-x, 1)
	h = Max(bottom-y, 1)
	return x, y, w, h
}

// Draw fills the cells covered by r.
func (v Viewport) Draw(dst *Screen, r Rect, fill rune, c Color) {
	x, y, w, h := v.Cells(r)
	dst.FillCells(x, y, w, h, fill, c)
}
