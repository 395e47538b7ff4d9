package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogAndReadAttempts(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	rows := []Attempt{
		{Scenario: "corridor01", Power: 4, Completed: false},
		{Scenario: "corridor01", Power: 5, Completed: true, Rounds: 29, HPLeft: 172, Score: 4988},
		{Scenario: "other", Power: 4, Completed: true, Rounds: 10, HPLeft: 100, Score: 1000},
	}
	for _, r := range rows {
		require.NoError(t, s.LogAttempt(r))
	}

	got, err := s.Attempts("corridor01")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, rows[0], got[0])
	assert.Equal(t, rows[1], got[1])

	none, err := s.Attempts("unknown")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestOpenCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attempts.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.LogAttempt(Attempt{Scenario: "x", Power: 4}))
	require.NoError(t, s.Close())

	// Reopen and read back.
	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Attempts("x")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
