package battle

import (
	"fmt"
	"strings"
)

// Render draws the current state in the textual map form, one line per
// row, each followed by the units standing in it with their hit points.
// Diagnostic view only; built from the same read-only queries any
// external presenter would use.
func (s *Simulation) Render() string {
	var b strings.Builder
	for r := 0; r < s.grid.h; r++ {
		var units []string
		for c := 0; c < s.grid.w; c++ {
			pos := Coord{R: r, C: c}
			if u, ok := s.UnitAt(pos); ok {
				b.WriteByte(byte(u.Faction))
				units = append(units, fmt.Sprintf("%s(%d)", u.Faction, u.HP))
				continue
			}
			cell, _ := s.grid.CellAt(pos)
			if cell.Open {
				b.WriteByte('.')
			} else {
				b.WriteByte('#')
			}
		}
		if len(units) > 0 {
			b.WriteString("   ")
			b.WriteString(strings.Join(units, ", "))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
