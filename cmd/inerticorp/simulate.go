package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/justinbroadbent/inerticorp/internal/config"
	"github.com/justinbroadbent/inerticorp/internal/content"
	"github.com/justinbroadbent/inerticorp/internal/platform/tui"
	"github.com/justinbroadbent/inerticorp/internal/rng"
	"github.com/justinbroadbent/inerticorp/internal/sim"
)

var (
	flagSimQuarters   int
	flagSimDifficulty string
	flagSimVerbose    bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run headless quarters under a scripted policy",
	Long: `Run the simulation without a UI. A simple scripted CEO plays one
affordable project per quarter and takes the first affordable crisis
response. Useful for balancing tuning tables and for reproducible runs.

The same seed, difficulty, and catalog always produce the same run.

Examples:
  inerticorp simulate --quarters 40
  inerticorp simulate --quarters 100 --difficulty hard --seed 7
  inerticorp simulate --seed 7 -v`,
	Run: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimQuarters, "quarters", 40, "Maximum quarters to simulate")
	simulateCmd.Flags().StringVar(&flagSimDifficulty, "difficulty", "normal", "Difficulty preset: easy, normal, hard")
	simulateCmd.Flags().BoolVarP(&flagSimVerbose, "verbose", "v", false, "Log every event, not just quarter results")
}

func runSimulate(cmd *cobra.Command, args []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Prefix:          "simulate",
	})

	tiers, err := config.Load(flagConfig)
	if err != nil {
		logger.Fatal("cannot load difficulty config", "error", err)
	}
	catalog, err := content.Load(flagContent)
	if err != nil {
		logger.Fatal("cannot load catalog", "error", err)
	}

	preset := config.Preset(flagSimDifficulty)
	if !preset.Valid() {
		logger.Fatal("unknown difficulty", "difficulty", flagSimDifficulty)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	tun := tiers.ForPreset(preset)
	engine := sim.NewEngine(catalog, tun)
	src := rng.New(seed)
	st := sim.NewState(tun)

	logger.Info("starting run", "difficulty", preset, "seed", seed, "max_quarters", flagSimQuarters)

	for !st.Terminal() && st.Quarter <= flagSimQuarters {
		in := policyInput(engine, st)
		next, entries, err := engine.Advance(st, in, src)
		if err != nil {
			logger.Fatal("engine rejected input", "phase", st.Phase, "error", err)
		}
		st = next
		for _, e := range entries {
			if flagSimVerbose {
				logger.Info(tui.Describe(e, catalog))
			} else if e.Code == sim.CodeQuarterResult {
				logger.Info("quarter closed",
					"quarter", e.Quarter,
					"profit", e.Amount,
					"favor", st.Tenure.Favor,
					"capital", st.Capital,
				)
			}
		}
	}

	reason := "still standing"
	if st.Tenure.Ousted {
		reason = "ousted"
	} else if st.Tenure.Retired {
		reason = "retired"
	}

	logger.Info("run finished",
		"reason", reason,
		"quarters", st.Tenure.QuartersSurvived,
		"total_profit", st.Tenure.TotalProfit,
		"evil", st.Tenure.EvilScore,
		"parachute", sim.Parachute(st.Tenure),
	)
	fmt.Printf("%s after %d quarters, $%dM lifetime profit, $%dM parachute\n",
		reason, st.Tenure.QuartersSurvived, st.Tenure.TotalProfit, sim.Parachute(st.Tenure))
}

// policyInput is the scripted CEO: one affordable project per quarter, the
// first affordable crisis response, never defers, never trades meters.
func policyInput(engine *sim.Engine, st sim.State) sim.Input {
	switch st.Phase {
	case sim.PhasePlayCards:
		if st.CardsPlayed == 0 {
			for _, id := range st.Hand {
				if engine.CanPlay(st, id) {
					return sim.PlayCard(id)
				}
			}
		}
		return sim.Input{Kind: sim.InputEndPhase}
	case sim.PhaseCrisis:
		if st.PendingCrisis == "" {
			return sim.Advance()
		}
		if crisis, ok := engine.Catalog().Crisis(st.PendingCrisis); ok {
			for _, c := range crisis.Choices {
				if engine.CanChoose(st, c.ID) {
					return sim.Choose(c.ID)
				}
			}
		}
		return sim.Advance()
	default:
		return sim.Advance()
	}
}
