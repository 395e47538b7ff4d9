package battle

import (
	"errors"
	"fmt"
)

// ErrProtectedLoss is the abort signal raised when a unit of the
// protected faction dies during a search attempt. A control signal, not
// a failure: the driver consumes it and tries the next power.
var ErrProtectedLoss = errors.New("protected faction took a loss")

// ErrNoSolution is returned when no power up to the one-hit-kill
// threshold kept the protected faction alive.
var ErrNoSolution = errors.New("no attack power satisfies the no-losses constraint")

// Attempt records one candidate power and how its battle ended.
type Attempt struct {
	Power     int     `json:"power"`
	Completed bool    `json:"completed"`
	Outcome   Outcome `json:"outcome,omitzero"`
}

// SearchResult is the answer of the minimum-power search.
type SearchResult struct {
	Power    int       `json:"power"`
	Outcome  Outcome   `json:"outcome"`
	Attempts []Attempt `json:"attempts"`
}

// FindMinPower runs the battle repeatedly, raising the protected
// faction's attack power from minPower upward, and returns the first
// power at which combat completes without a single protected-faction
// death. Each attempt runs on its own deep copy of base; base itself is
// never touched.
//
// Attack power only ever helps the faction wielding it, so the first
// satisfying power is the minimal one and the search stops there. Powers
// beyond the strongest enemy's starting hit points all behave like a
// one-hit kill, which bounds the search.
func FindMinPower(base *Simulation, protected Faction, minPower int) (SearchResult, error) {
	if minPower < 1 {
		minPower = 1
	}
	limit := 0
	for _, u := range base.units {
		if u.Alive() && u.Faction != protected && u.HP > limit {
			limit = u.HP
		}
	}
	if limit < minPower {
		limit = minPower
	}

	res := SearchResult{}
	for power := minPower; power <= limit; power++ {
		sim := base.Clone()
		sim.SetPower(protected, power)
		sim.OnKill(func(victim Unit) error {
			if victim.Faction == protected {
				return fmt.Errorf("%s died at power %d: %w", victim, power, ErrProtectedLoss)
			}
			return nil
		})

		out, err := sim.Run()
		switch {
		case err == nil:
			res.Attempts = append(res.Attempts, Attempt{Power: power, Completed: true, Outcome: out})
			res.Power = power
			res.Outcome = out
			return res, nil
		case errors.Is(err, ErrProtectedLoss):
			res.Attempts = append(res.Attempts, Attempt{Power: power})
		default:
			return SearchResult{}, err
		}
	}
	return SearchResult{}, fmt.Errorf("tried powers %d..%d: %w", minPower, limit, ErrNoSolution)
}
