package hall

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidDimensions is returned by New when the requested grid has
// no seats.
var ErrInvalidDimensions = errors.New("hall: rows and columns must be positive")

// Grid is the full hall: a fixed rows×cols arrangement of seats plus
// hit-testing and aggregate counts. Every (row, col) pair inside the
// bounds has exactly one seat for the lifetime of the grid; toggling
// and resetting change occupancy only.
//
// Grid is not safe for concurrent use. The session loop owns it.
type Grid struct {
	rows   int
	cols   int
	layout Layout

	states []State // row-major, rows*cols entries
	sold   int     // kept equal to the number of Sold entries in states

	dirty map[int]bool // seat rows touched since the last drain
}

// New creates a rows×cols grid with every seat Free.
func New(rows, cols int, layout Layout) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, rows, cols)
	}
	return &Grid{
		rows:   rows,
		cols:   cols,
		layout: layout.normalized(),
		states: make([]State, rows*cols),
		dirty:  make(map[int]bool),
	}, nil
}

func (g *Grid) Rows() int      { return g.rows }
func (g *Grid) Cols() int      { return g.cols }
func (g *Grid) Layout() Layout { return g.layout }

func (g *Grid) index(row, col int) int { return row*g.cols + col }

func (g *Grid) inBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// State returns the occupancy of the seat at (row, col).
func (g *Grid) State(row, col int) (State, bool) {
	if !g.inBounds(row, col) {
		return Free, false
	}
	return g.states[g.index(row, col)], true
}

// Toggle flips the seat at (row, col) between Free and Sold and reports
// whether a seat was toggled. There are no other side effects.
func (g *Grid) Toggle(row, col int) bool {
	if !g.inBounds(row, col) {
		return false
	}
	i := g.index(row, col)
	if g.states[i] == Free {
		g.states[i] = Sold
		g.sold++
	} else {
		g.states[i] = Free
		g.sold--
	}
	g.dirty[row] = true
	return true
}

// Counts returns the number of sold and free seats. The two always sum
// to rows×cols.
func (g *Grid) Counts() (sold, free int) {
	return g.sold, g.rows*g.cols - g.sold
}

// Reset sets every seat back to Free.
func (g *Grid) Reset() {
	for i := range g.states {
		g.states[i] = Free
	}
	g.sold = 0
	for row := 0; row < g.rows; row++ {
		g.dirty[row] = true
	}
}

// HitTest returns the seat whose region contains the grid-local point
// (x, y), composing the layout's inverse transform with the grid
// bounds. ok is false when the point falls in a gap, outside the grid,
// or at negative coordinates.
func (g *Grid) HitTest(x, y int) (row, col int, ok bool) {
	row, col, ok = g.layout.SeatAt(x, y)
	if !ok || !g.inBounds(row, col) {
		return 0, 0, false
	}
	return row, col, true
}

// Snapshot returns a copy of every seat in row-major order.
func (g *Grid) Snapshot() []Seat {
	seats := make([]Seat, 0, len(g.states))
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			seats = append(seats, Seat{Row: row, Col: col, State: g.states[g.index(row, col)]})
		}
	}
	return seats
}

// Apply restores occupancy from a snapshot. Seats outside the grid
// bounds are ignored, so a snapshot taken from a larger hall loads
// cleanly into a smaller one.
func (g *Grid) Apply(seats []Seat) {
	for _, seat := range seats {
		if !g.inBounds(seat.Row, seat.Col) {
			continue
		}
		i := g.index(seat.Row, seat.Col)
		if g.states[i] == seat.State {
			continue
		}
		if seat.State == Sold {
			g.sold++
		} else {
			g.sold--
		}
		g.states[i] = seat.State
		g.dirty[seat.Row] = true
	}
}

// Update runs fn as one batched mutation and returns the seat rows it
// touched, sorted. The drain happens in a defer, so the changed rows
// are reported even when fn fails midway; the caller's flush (redraw,
// save) always sees every mutation that actually happened.
func (g *Grid) Update(fn func() error) (changed []int, err error) {
	defer func() {
		changed = g.drainDirty()
	}()
	err = fn()
	return
}

func (g *Grid) drainDirty() []int {
	if len(g.dirty) == 0 {
		return nil
	}
	rows := make([]int, 0, len(g.dirty))
	for row := range g.dirty {
		rows = append(rows, row)
		delete(g.dirty, row)
	}
	sort.Ints(rows)
	return rows
}
