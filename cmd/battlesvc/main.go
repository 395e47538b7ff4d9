package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"battlesim/internal/battle"
	"battlesim/internal/config"
	"battlesim/internal/store"
)

func main() {
	var scenarioPath, out, dbPath string
	var search, trace bool
	flag.StringVar(&scenarioPath, "scenario", "assets/scenario.yaml", "scenario yaml file")
	flag.StringVar(&out, "out", "out.json", "result output file")
	flag.BoolVar(&search, "search", false, "search the minimal no-losses attack power instead of a single battle")
	flag.StringVar(&dbPath, "db", "", "optional sqlite attempt log (search mode)")
	flag.BoolVar(&trace, "trace", false, "record the full event log into the result")
	flag.Parse()

	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(log, scenarioPath, out, dbPath, search, trace); err != nil {
		log.Fatal("battlesvc failed", zap.Error(err))
	}
}

type report struct {
	Scenario string               `json:"scenario"`
	Note     string               `json:"note,omitempty"`
	Outcome  *battle.Outcome      `json:"outcome,omitempty"`
	Search   *battle.SearchResult `json:"search,omitempty"`
	Events   []battle.Event       `json:"events,omitempty"`
	FinalMap string               `json:"final_map"`
}

func run(log *zap.Logger, scenarioPath, out, dbPath string, search, trace bool) error {
	sc, err := config.LoadScenario(scenarioPath)
	if err != nil {
		return err
	}
	log.Info("scenario loaded",
		zap.String("id", sc.ID), zap.Int("hp", sc.HP), zap.Int("attack", sc.Attack))

	base, err := battle.New(sc.MapLines(), battle.Options{HP: sc.HP, Power: sc.Attack})
	if err != nil {
		return err
	}

	rep := report{Scenario: sc.ID, Note: sc.Note}

	if search {
		protected := battle.Faction(sc.Search.Protected[0])
		res, err := battle.FindMinPower(base, protected, sc.Search.MinPower)
		if err != nil {
			return err
		}
		rep.Search = &res

		if dbPath != "" {
			if err := logAttempts(dbPath, sc.ID, res.Attempts); err != nil {
				return err
			}
			log.Info("attempts written", zap.String("db", dbPath), zap.Int("count", len(res.Attempts)))
		}

		// Re-run the winning power against a clone for the final map
		// (and the event log when asked for).
		final := base.Clone()
		final.SetPower(protected, res.Power)
		if trace {
			final.Record(func(ev battle.Event) { rep.Events = append(rep.Events, ev) })
		}
		if _, err := final.Run(); err != nil {
			return err
		}
		rep.FinalMap = final.Render()

		log.Info("search finished",
			zap.Int("power", res.Power),
			zap.Int("rounds", res.Outcome.Rounds),
			zap.Int("hp_left", res.Outcome.HPLeft),
			zap.Int("score", res.Outcome.Score),
			zap.Int("attempts", len(res.Attempts)))
		fmt.Printf("power=%d rounds=%d hp=%d outcome=%d -> %s\n",
			res.Power, res.Outcome.Rounds, res.Outcome.HPLeft, res.Outcome.Score, out)
	} else {
		sim := base.Clone()
		if trace {
			sim.Record(func(ev battle.Event) { rep.Events = append(rep.Events, ev) })
		}
		outc, err := sim.Run()
		if err != nil {
			return err
		}
		rep.Outcome = &outc
		rep.FinalMap = sim.Render()

		log.Info("battle finished",
			zap.String("winner", outc.Winner.String()),
			zap.Int("rounds", outc.Rounds),
			zap.Int("hp_left", outc.HPLeft),
			zap.Int("score", outc.Score))
		fmt.Printf("winner=%s rounds=%d hp=%d outcome=%d -> %s\n",
			outc.Winner, outc.Rounds, outc.HPLeft, outc.Score, out)
	}

	return os.WriteFile(out, battle.MarshalPretty(rep), 0644)
}

func logAttempts(dbPath, scenario string, attempts []battle.Attempt) error {
	db, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	for _, a := range attempts {
		row := store.Attempt{
			Scenario:  scenario,
			Power:     a.Power,
			Completed: a.Completed,
			Rounds:    a.Outcome.Rounds,
			HPLeft:    a.Outcome.HPLeft,
			Score:     a.Outcome.Score,
		}
		if err := db.LogAttempt(row); err != nil {
			return err
		}
	}
	return nil
}
