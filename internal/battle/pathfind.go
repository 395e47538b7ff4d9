package battle

// walkable reports whether a unit may step onto c this turn: open floor
// with nobody standing on it.
func (s *Simulation) walkable(c Coord) bool {
	return s.grid.open(c) && s.grid.unitIndexAt(c) < 0
}

// flood runs a breadth-first expansion from start over walkable cells
// and returns the distance field, -1 for unreached cells. The start
// cell itself need not be walkable (it is usually occupied by the unit
// asking).
func (s *Simulation) flood(start Coord) []int {
	dist := make([]int, s.grid.w*s.grid.h)
	for i := range dist {
		dist[i] = -1
	}
	dist[s.grid.index(start)] = 0
	queue := []Coord{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		d := dist[s.grid.index(cur)]
		for _, n := range cur.neighbors4() {
			if !s.walkable(n) || dist[s.grid.index(n)] >= 0 {
				continue
			}
			dist[s.grid.index(n)] = d + 1
			queue = append(queue, n)
		}
	}
	return dist
}

// findStep decides the single step the unit at idx should take toward
// the closest cell adjacent to an enemy. Two ordered tie-breaks, applied
// in sequence:
//
//  1. among reachable target cells, minimum distance, then reading order;
//  2. among the unit's legal first steps on a shortest path to that
//     chosen target, reading order of the step cell.
//
// Returns false when no target cell is reachable (the unit holds
// position; a normal outcome, not an error).
func (s *Simulation) findStep(idx int) (Coord, bool) {
	u := &s.units[idx]

	inTargets := make([]bool, s.grid.w*s.grid.h)
	any := false
	for i := range s.units {
		v := &s.units[i]
		if !v.Alive() || v.Faction == u.Faction {
			continue
		}
		for _, n := range v.Pos.neighbors4() {
			if s.walkable(n) {
				inTargets[s.grid.index(n)] = true
				any = true
			}
		}
	}
	if !any {
		return Coord{}, false
	}

	dist := s.flood(u.Pos)
	var target Coord
	bestD := -1
	for r := 0; r < s.grid.h; r++ {
		for c := 0; c < s.grid.w; c++ {
			i := r*s.grid.w + c
			if !inTargets[i] || dist[i] < 0 {
				continue
			}
			if bestD < 0 || dist[i] < bestD {
				target, bestD = Coord{R: r, C: c}, dist[i]
			}
		}
	}
	if bestD < 0 {
		return Coord{}, false
	}

	// Walk the distance field back from the chosen target: a first step
	// lies on a shortest path iff it sits one closer to the target than
	// the unit itself.
	back := s.flood(target)
	var step Coord
	found := false
	for _, n := range u.Pos.neighbors4() {
		if !s.walkable(n) {
			continue
		}
		d := back[s.grid.index(n)]
		if d < 0 || d != bestD-1 {
			continue
		}
		if !found || n.Less(step) {
			step, found = n, true
		}
	}
	return step, found
}
