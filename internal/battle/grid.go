package battle

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is returned by cell queries for coordinates outside the
// grid rectangle.
var ErrOutOfBounds = errors.New("coordinate out of bounds")

// Coord addresses a grid cell by row and column.
type Coord struct {
	R int `json:"r"`
	C int `json:"c"`
}

// Less orders coordinates in reading order: top to bottom, then left to
// right. Every tie-break in the simulation reduces to this comparison.
func (a Coord) Less(b Coord) bool {
	if a.R != b.R {
		return a.R < b.R
	}
	return a.C < b.C
}

func (a Coord) String() string { return fmt.Sprintf("(%d,%d)", a.R, a.C) }

// neighbors4 returns the four orthogonal neighbors in the fixed visiting
// order up, down, left, right.
func (a Coord) neighbors4() [4]Coord {
	return [4]Coord{
		{a.R - 1, a.C},
		{a.R + 1, a.C},
		{a.R, a.C - 1},
		{a.R, a.C + 1},
	}
}

// Cell is one grid square: a position plus whether units may stand on it.
// Immutable after the grid is built.
type Cell struct {
	Pos  Coord
	Open bool
}

// Grid is the static wall mask plus an occupancy index into the unit
// arena. Cells are stored row-major; occ holds arena indices, -1 when
// the cell is empty.
type Grid struct {
	w, h int
	wall []bool
	occ  []int
}

func (g *Grid) Width() int  { return g.w }
func (g *Grid) Height() int { return g.h }

func (g *Grid) index(c Coord) int { return c.R*g.w + c.C }

// InBounds reports whether c lies inside the grid rectangle.
func (g *Grid) InBounds(c Coord) bool {
	return c.R >= 0 && c.R < g.h && c.C >= 0 && c.C < g.w
}

// CellAt returns the cell at c, or ErrOutOfBounds.
func (g *Grid) CellAt(c Coord) (Cell, error) {
	if !g.InBounds(c) {
		return Cell{}, fmt.Errorf("cell %v: %w", c, ErrOutOfBounds)
	}
	return Cell{Pos: c, Open: !g.wall[g.index(c)]}, nil
}

// open reports whether c is inside the grid and not a wall.
func (g *Grid) open(c Coord) bool {
	return g.InBounds(c) && !g.wall[g.index(c)]
}

// AdjacentOpen returns the open cells orthogonally adjacent to c, in the
// visiting order up, down, left, right.
func (g *Grid) AdjacentOpen(c Coord) []Cell {
	out := make([]Cell, 0, 4)
	for _, n := range c.neighbors4() {
		if g.open(n) {
			out = append(out, Cell{Pos: n, Open: true})
		}
	}
	return out
}

// unitIndexAt returns the arena index of the unit occupying c, or -1.
func (g *Grid) unitIndexAt(c Coord) int {
	if !g.InBounds(c) {
		return -1
	}
	return g.occ[g.index(c)]
}

func (g *Grid) place(c Coord, idx int) { g.occ[g.index(c)] = idx }
func (g *Grid) clear(c Coord)          { g.occ[g.index(c)] = -1 }

// relocate moves an occupant between cells as one operation, so no
// intermediate occupancy state is observable.
func (g *Grid) relocate(from, to Coord, idx int) {
	g.occ[g.index(from)] = -1
	g.occ[g.index(to)] = idx
}

func (g *Grid) clone() Grid {
	cp := Grid{w: g.w, h: g.h,
		wall: make([]bool, len(g.wall)),
		occ:  make([]int, len(g.occ)),
	}
	copy(cp.wall, g.wall)
	copy(cp.occ, g.occ)
	return cp
}
