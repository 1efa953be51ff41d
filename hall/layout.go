package hall

// Layout maps seat identities to grid-local terminal coordinates and
// back. X grows rightward in terminal columns, Y grows downward in
// terminal rows, with (0, 0) at the top-left seat's first cell.
//
// Each seat occupies SeatWidth consecutive columns on one terminal row.
// Ownership is half-open: the seat at (row, col) owns exactly the
// columns [x0, x0+SeatWidth) where x0 = CellOrigin(row, col). The GapX
// columns between seats and the GapY rows between seat rows belong to
// no seat, so seat regions are disjoint and SeatAt never needs a
// tie-break.
//
// The zero value is usable: every method treats a SeatWidth below 1 as
// the default width and negative gaps as zero.
type Layout struct {
	SeatWidth int // terminal columns per seat
	GapX      int // blank columns between adjacent seats
	GapY      int // blank rows between seat rows
}

// DefaultLayout matches the rendered seat tokens: two columns per seat
// with a single blank column between them and no blank rows.
func DefaultLayout() Layout {
	return Layout{SeatWidth: 2, GapX: 1, GapY: 0}
}

func (l Layout) normalized() Layout {
	if l.SeatWidth < 1 {
		l.SeatWidth = DefaultLayout().SeatWidth
	}
	if l.GapX < 0 {
		l.GapX = 0
	}
	if l.GapY < 0 {
		l.GapY = 0
	}
	return l
}

func (l Layout) strideX() int { return l.SeatWidth + l.GapX }
func (l Layout) strideY() int { return 1 + l.GapY }

// CellOrigin returns the leftmost terminal cell occupied by the seat at
// (row, col).
func (l Layout) CellOrigin(row, col int) (x, y int) {
	l = l.normalized()
	return col * l.strideX(), row * l.strideY()
}

// SeatAt is the inverse of CellOrigin: it returns the seat whose region
// contains the grid-local point (x, y). It reports ok=false when the
// point falls in a gap or outside the quadrant covered by the grid.
// SeatAt does not know the grid bounds; Grid.HitTest layers them on.
func (l Layout) SeatAt(x, y int) (row, col int, ok bool) {
	l = l.normalized()
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	if y%l.strideY() != 0 {
		return 0, 0, false
	}
	if x%l.strideX() >= l.SeatWidth {
		return 0, 0, false
	}
	return y / l.strideY(), x / l.strideX(), true
}

// GridSize returns the total terminal width and height of a rows×cols
// grid rendered with this layout.
func (l Layout) GridSize(rows, cols int) (width, height int) {
	l = l.normalized()
	if rows <= 0 || cols <= 0 {
		return 0, 0
	}
	width = cols*l.SeatWidth + (cols-1)*l.GapX
	height = rows + (rows-1)*l.GapY
	return width, height
}
