package battle

import (
	"fmt"
	"sort"
)

// CorruptionError is a fatal bookkeeping mismatch between a unit and the
// grid occupancy index. It means the move/attack bookkeeping is buggy;
// the battle stops immediately and the error carries enough context to
// reproduce.
type CorruptionError struct {
	Round int
	Unit  Unit
	Cell  Coord
	Msg   string
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("state corruption in round %d: %s (unit %s, cell %s)",
		e.Round, e.Msg, e.Unit, e.Cell)
}

// Outcome summarizes a battle that ran to completion.
type Outcome struct {
	Rounds    int     `json:"rounds"`
	Winner    Faction `json:"winner"`
	HPLeft    int     `json:"hp_left"`
	Score     int     `json:"score"`
	Survivors []Unit  `json:"survivors"`
}

// Run plays rounds until one faction is eliminated and returns the
// outcome. A round cut short because no enemies remain does not count
// toward the round total. Errors are either a CorruptionError or
// whatever the installed kill policy returned to abort the attempt.
func (s *Simulation) Run() (Outcome, error) {
	for {
		over, err := s.playRound()
		if err != nil {
			return Outcome{}, err
		}
		if over {
			return s.outcome(), nil
		}
		s.rounds++
		s.event(Event{Type: "round_end", Payload: map[string]any{"completed": s.rounds}})
	}
}

// playRound runs one round: snapshot turn order, then one turn per
// still-living snapshot member. Returns true when combat ended mid-round
// because a unit found no enemies left anywhere.
func (s *Simulation) playRound() (bool, error) {
	order := make([]int, 0, len(s.units))
	for i, u := range s.units {
		if u.Alive() {
			order = append(order, i)
		}
	}
	sort.Slice(order, func(i, j int) bool {
		return s.units[order[i]].Pos.Less(s.units[order[j]].Pos)
	})

	for _, idx := range order {
		if !s.units[idx].Alive() {
			continue
		}
		if !s.enemiesRemain(s.units[idx].Faction) {
			return true, nil
		}
		if err := s.takeTurn(idx); err != nil {
			return false, err
		}
	}
	return false, nil
}

// takeTurn runs one unit's move-then-attack turn: attack if an enemy is
// already adjacent, otherwise step toward the closest one and re-check.
func (s *Simulation) takeTurn(idx int) error {
	u := &s.units[idx]
	if got := s.grid.unitIndexAt(u.Pos); got != idx {
		return &CorruptionError{Round: s.rounds, Unit: *u, Cell: u.Pos,
			Msg: fmt.Sprintf("occupancy index holds %d, unit expects itself", got)}
	}

	if t := s.chooseTarget(idx); t >= 0 {
		return s.attack(idx, t)
	}
	step, ok := s.findStep(idx)
	if !ok {
		return nil
	}
	if err := s.move(idx, step); err != nil {
		return err
	}
	if t := s.chooseTarget(idx); t >= 0 {
		return s.attack(idx, t)
	}
	return nil
}

// move steps the unit at idx onto an adjacent open cell, updating unit
// position and occupancy index together.
func (s *Simulation) move(idx int, to Coord) error {
	u := &s.units[idx]
	if !s.walkable(to) {
		return &CorruptionError{Round: s.rounds, Unit: *u, Cell: to,
			Msg: "instructed to move onto a non-open cell"}
	}
	from := u.Pos
	s.grid.relocate(from, to, idx)
	u.Pos = to
	s.event(Event{Type: "move", Payload: map[string]any{
		"unit": u.String(), "from": []int{from.R, from.C}, "to": []int{to.R, to.C},
	}})
	return nil
}

// attack applies the attacker's power to the victim. A victim dropping
// to 0 or below is removed from occupancy in the same step, so every
// later query this round already sees it gone.
func (s *Simulation) attack(attacker, victim int) error {
	a := &s.units[attacker]
	v := &s.units[victim]
	v.HP -= a.Power
	s.event(Event{Type: "attack", Payload: map[string]any{
		"attacker": a.String(), "target": v.String(), "damage": a.Power,
	}})
	if v.Alive() {
		return nil
	}
	s.grid.clear(v.Pos)
	s.event(Event{Type: "kill", Payload: map[string]any{
		"unit": v.Faction.String(), "at": []int{v.Pos.R, v.Pos.C},
	}})
	if s.onKill != nil {
		return s.onKill(*v)
	}
	return nil
}

// enemiesRemain reports whether any living unit opposes faction f.
func (s *Simulation) enemiesRemain(f Faction) bool {
	for _, u := range s.units {
		if u.Alive() && u.Faction != f {
			return true
		}
	}
	return false
}

func (s *Simulation) outcome() Outcome {
	out := Outcome{Rounds: s.rounds, Survivors: s.Units()}
	for _, u := range out.Survivors {
		out.Winner = u.Faction
		out.HPLeft += u.HP
	}
	out.Score = out.Rounds * out.HPLeft
	return out
}
