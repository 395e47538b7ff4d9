package battle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Known minimum elf attack powers and outcomes for the reference
// boards.
var searchFixtures = []struct {
	name   string
	lines  []string
	power  int
	rounds int
	hpLeft int
	score  int
}{
	{
		name: "corridor junction", lines: combatFixtures[0].lines,
		power: 15, rounds: 29, hpLeft: 172, score: 4988,
	},
	{
		name: "elves outnumber", lines: combatFixtures[2].lines,
		power: 4, rounds: 33, hpLeft: 948, score: 31284,
	},
	{
		name: "goblins corner the elves", lines: combatFixtures[3].lines,
		power: 15, rounds: 37, hpLeft: 94, score: 3478,
	},
	{
		name: "dead-end pockets", lines: combatFixtures[4].lines,
		power: 12, rounds: 39, hpLeft: 166, score: 6474,
	},
	{
		name: "open cave", lines: combatFixtures[5].lines,
		power: 34, rounds: 30, hpLeft: 38, score: 1140,
	},
}

func TestFindMinPowerReferenceBoards(t *testing.T) {
	for _, fx := range searchFixtures {
		t.Run(fx.name, func(t *testing.T) {
			base := mustSim(t, fx.lines)
			res, err := FindMinPower(base, Elf, 4)
			require.NoError(t, err)
			assert.Equal(t, fx.power, res.Power)
			assert.Equal(t, fx.rounds, res.Outcome.Rounds)
			assert.Equal(t, Elf, res.Outcome.Winner)
			assert.Equal(t, fx.hpLeft, res.Outcome.HPLeft)
			assert.Equal(t, fx.score, res.Outcome.Score)

			// One attempt per candidate; only the last completed.
			require.Len(t, res.Attempts, fx.power-4+1)
			for _, a := range res.Attempts[:len(res.Attempts)-1] {
				assert.False(t, a.Completed)
			}
			assert.True(t, res.Attempts[len(res.Attempts)-1].Completed)
		})
	}
}

func TestPowerBelowMinimumAborts(t *testing.T) {
	// The board that is winnable loss-free at power 4 still costs an elf
	// at the default 3: extra power only ever helps, so the search may
	// stop at the first completed attempt.
	base := mustSim(t, combatFixtures[2].lines)

	sim := base.Clone()
	sim.SetPower(Elf, 3)
	sim.OnKill(func(v Unit) error {
		if v.Faction == Elf {
			return ErrProtectedLoss
		}
		return nil
	})
	_, err := sim.Run()
	require.ErrorIs(t, err, ErrProtectedLoss)
}

func TestFindMinPowerLeavesBaseUntouched(t *testing.T) {
	base := mustSim(t, combatFixtures[0].lines)
	before := snapshot(base)

	_, err := FindMinPower(base, Elf, 4)
	require.NoError(t, err)

	assert.Equal(t, before, snapshot(base))
	for _, u := range base.Units() {
		assert.Equal(t, DefaultHP, u.HP)
		assert.Equal(t, DefaultPower, u.Power)
	}
}

func TestFindMinPowerNoSolution(t *testing.T) {
	// Both goblins act before the elf and together land 6 damage in the
	// first round, so a 4-HP elf dies before its own power ever
	// matters. No candidate can satisfy the constraint.
	base, err := New([]string{
		"#####",
		"#GG.#",
		"#.E.#",
		"#####",
	}, Options{HP: 4})
	require.NoError(t, err)

	_, err = FindMinPower(base, Elf, 4)
	require.ErrorIs(t, err, ErrNoSolution)
}
