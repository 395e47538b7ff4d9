package battle

import (
	"errors"
	"fmt"
	"sort"
)

// ErrMalformedMap is wrapped by New for map text the parser rejects.
var ErrMalformedMap = errors.New("malformed map")

// Options tunes the stats applied to parsed units. Zero fields fall back
// to the defaults.
type Options struct {
	HP    int // starting hit points per unit
	Power int // attack power per unit, both factions
}

// Simulation owns one battle: the grid, the unit arena and the round
// counter. It is mutated in place while running and is single-use;
// Clone the base state to run again.
type Simulation struct {
	grid   Grid
	units  []Unit
	rounds int

	emit   func(Event)             // nil unless a recorder is attached
	onKill func(victim Unit) error // early-abort policy, nil by default
}

// New parses the textual map and builds a fresh simulation. Recognized
// runes: '#' wall, '.' open floor, 'E' and 'G' units of the two
// factions at the given stats. Rows must all be the same width.
func New(lines []string, opts Options) (*Simulation, error) {
	if opts.HP == 0 {
		opts.HP = DefaultHP
	}
	if opts.Power == 0 {
		opts.Power = DefaultPower
	}
	if len(lines) == 0 || len(lines[0]) == 0 {
		return nil, fmt.Errorf("empty map: %w", ErrMalformedMap)
	}

	w, h := len(lines[0]), len(lines)
	s := &Simulation{grid: Grid{w: w, h: h,
		wall: make([]bool, w*h),
		occ:  make([]int, w*h),
	}}
	for i := range s.grid.occ {
		s.grid.occ[i] = -1
	}

	for r, line := range lines {
		if len(line) != w {
			return nil, fmt.Errorf("row %d is %d cells wide, want %d: %w", r, len(line), w, ErrMalformedMap)
		}
		for c, ch := range []byte(line) {
			pos := Coord{R: r, C: c}
			switch ch {
			case '#':
				s.grid.wall[s.grid.index(pos)] = true
			case '.':
			case byte(Elf), byte(Goblin):
				s.grid.place(pos, len(s.units))
				s.units = append(s.units, Unit{
					Pos:     pos,
					Faction: Faction(ch),
					HP:      opts.HP,
					Power:   opts.Power,
				})
			default:
				return nil, fmt.Errorf("row %d col %d: unknown rune %q: %w", r, c, ch, ErrMalformedMap)
			}
		}
	}
	return s, nil
}

// Clone deep-copies the simulation so a new attempt can run without
// touching the base layout. The recorder and kill policy do not carry
// over.
func (s *Simulation) Clone() *Simulation {
	cp := &Simulation{
		grid:   s.grid.clone(),
		units:  make([]Unit, len(s.units)),
		rounds: s.rounds,
	}
	copy(cp.units, s.units)
	return cp
}

// SetPower sets the attack power of every unit in the given faction.
func (s *Simulation) SetPower(f Faction, power int) {
	for i := range s.units {
		if s.units[i].Faction == f {
			s.units[i].Power = power
		}
	}
}

// Record attaches an event recorder. Events cover moves, attacks, kills
// and round ends; nothing is emitted (or allocated) without a recorder.
func (s *Simulation) Record(fn func(Event)) { s.emit = fn }

// OnKill installs a policy observing every kill. A non-nil return
// unwinds the running battle immediately with that error.
func (s *Simulation) OnKill(fn func(victim Unit) error) { s.onKill = fn }

// Rounds returns the number of fully completed rounds.
func (s *Simulation) Rounds() int { return s.rounds }

// Grid exposes the read-only cell queries.
func (s *Simulation) Grid() *Grid { return &s.grid }

// UnitAt returns a copy of the living unit occupying c, if any.
func (s *Simulation) UnitAt(c Coord) (Unit, bool) {
	idx := s.grid.unitIndexAt(c)
	if idx < 0 {
		return Unit{}, false
	}
	return s.units[idx], true
}

// Units returns copies of all living units in reading order.
func (s *Simulation) Units() []Unit {
	out := make([]Unit, 0, len(s.units))
	for _, u := range s.units {
		if u.Alive() {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Pos.Less(out[j].Pos) })
	return out
}

func (s *Simulation) event(ev Event) {
	if s.emit != nil {
		ev.Round = s.rounds
		s.emit(ev)
	}
}
