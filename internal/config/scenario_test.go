package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadScenario(t *testing.T) {
	path := writeScenario(t, `
id: duel
note: smallest possible fight
map: |
  ####
  #EG#
  ####
hp: 20
attack: 5
search:
  protected: G
  min_power: 2
`)

	sc, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "duel", sc.ID)
	assert.Equal(t, 20, sc.HP)
	assert.Equal(t, 5, sc.Attack)
	assert.Equal(t, "G", sc.Search.Protected)
	assert.Equal(t, 2, sc.Search.MinPower)
	assert.Equal(t, []string{"####", "#EG#", "####"}, sc.MapLines())
}

func TestLoadScenarioDefaults(t *testing.T) {
	path := writeScenario(t, `
id: defaults
map: |
  ####
  #EG#
  ####
`)

	sc, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, 200, sc.HP)
	assert.Equal(t, 3, sc.Attack)
	assert.Equal(t, "E", sc.Search.Protected)
	assert.Equal(t, 4, sc.Search.MinPower)
}

func TestLoadScenarioErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("empty map", func(t *testing.T) {
		_, err := LoadScenario(writeScenario(t, "id: broken\n"))
		require.ErrorContains(t, err, "empty map")
	})

	t.Run("bad protected faction", func(t *testing.T) {
		_, err := LoadScenario(writeScenario(t, `
map: |
  #EG#
search:
  protected: X
`))
		require.ErrorContains(t, err, "protected faction")
	})

	t.Run("bad yaml", func(t *testing.T) {
		_, err := LoadScenario(writeScenario(t, "map: [unclosed"))
		require.Error(t, err)
	})
}
