package battle

import (
	"encoding/json"
	"fmt"
)

// Faction tags a unit's side. There are exactly two; any unit of the
// other faction is an enemy.
type Faction byte

const (
	Elf    Faction = 'E'
	Goblin Faction = 'G'
)

func (f Faction) String() string { return string(rune(f)) }

func (f Faction) MarshalJSON() ([]byte, error) { return json.Marshal(f.String()) }

// Enemy returns the opposing faction.
func (f Faction) Enemy() Faction {
	if f == Elf {
		return Goblin
	}
	return Elf
}

// Default combat stats applied to every parsed unit unless the scenario
// overrides them.
const (
	DefaultHP    = 200
	DefaultPower = 3
)

// Unit is one combatant. Units live in the simulation's arena slice and
// are addressed by index; a dead unit stays in the slice with HP <= 0
// and is excluded from every query. Never resurrected.
type Unit struct {
	Pos     Coord   `json:"pos"`
	Faction Faction `json:"faction"`
	HP      int     `json:"hp"`
	Power   int     `json:"power"`
}

// Alive reports whether the unit still participates in combat.
func (u Unit) Alive() bool { return u.HP > 0 }

func (u Unit) String() string {
	return fmt.Sprintf("%s(%d)@%s", u.Faction, u.HP, u.Pos)
}

// chooseTarget picks the adjacent enemy the unit at idx should attack:
// fewest remaining hit points, ties broken by reading order of position.
// Returns -1 when no adjacent enemy exists. Pure selection; the caller
// applies the damage.
func (s *Simulation) chooseTarget(idx int) int {
	u := &s.units[idx]
	best := -1
	for _, n := range u.Pos.neighbors4() {
		vi := s.grid.unitIndexAt(n)
		if vi < 0 {
			continue
		}
		v := &s.units[vi]
		if v.Faction == u.Faction {
			continue
		}
		if best < 0 || v.HP < s.units[best].HP ||
			(v.HP == s.units[best].HP && v.Pos.Less(s.units[best].Pos)) {
			best = vi
		}
	}
	return best
}
