package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scenario is one battle setup: the map text plus the unit stats and
// search parameters to apply to it.
type Scenario struct {
	ID     string `yaml:"id"`
	Note   string `yaml:"note"`
	Map    string `yaml:"map"`
	HP     int    `yaml:"hp"`
	Attack int    `yaml:"attack"`
	Search Search `yaml:"search"`
}

// Search configures the minimum-power search for a scenario.
type Search struct {
	Protected string `yaml:"protected"` // faction rune that must take no losses
	MinPower  int    `yaml:"min_power"`
	Note      string `yaml:"note"`
}

// MapLines splits the map block into rows, dropping blank edges the
// yaml block scalar leaves behind.
func (s *Scenario) MapLines() []string {
	lines := strings.Split(strings.Trim(s.Map, "\n"), "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t")
	}
	return lines
}

// LoadScenario reads and validates one scenario file, filling defaults
// for unset stats.
func LoadScenario(path string) (*Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(b, &sc); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	if strings.TrimSpace(sc.Map) == "" {
		return nil, fmt.Errorf("scenario %s: empty map", path)
	}
	if sc.HP == 0 {
		sc.HP = 200
	}
	if sc.Attack == 0 {
		sc.Attack = 3
	}
	if sc.Search.Protected == "" {
		sc.Search.Protected = "E"
	}
	if len(sc.Search.Protected) != 1 || (sc.Search.Protected != "E" && sc.Search.Protected != "G") {
		return nil, fmt.Errorf("scenario %s: protected faction must be E or G, got %q", path, sc.Search.Protected)
	}
	if sc.Search.MinPower == 0 {
		sc.Search.MinPower = 4
	}
	return &sc, nil
}
