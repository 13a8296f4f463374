// inerticorp is a corporate-survival simulation played in the terminal.
// You are the CEO; the board is the final boss.
//
// Usage:
//
//	inerticorp play              - Start an interactive run
//	inerticorp simulate          - Run headless quarters under a scripted policy
//	inerticorp scores            - Show the hall of fame
//	inerticorp list              - List difficulty presets
//	inerticorp serve             - Start SSH server for remote play
//
// Global flags:
//
//	--seed <value>    - RNG seed for reproducible runs (0 = time-based)
//	--db <path>       - Database path (default: ~/.inerticorp/inerticorp.db)
//	--config <path>   - Custom difficulty tiers YAML
//	--content <path>  - Custom card/crisis catalog YAML
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagContent string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "inerticorp",
	Short: "InertiCorp - Survive the boardroom in your terminal",
	Long: `InertiCorp is a turn-based survival simulation. Each quarter you
receive a profit directive, greenlight projects, weather crises, and face
a board vote. Stay favorable or get walked out.

Available commands:
  play      - Start an interactive run
  simulate  - Run headless quarters under a scripted policy
  scores    - View the hall of fame
  list      - Show difficulty presets
  serve     - Start SSH server for remote play

Examples:
  inerticorp play
  inerticorp simulate --quarters 40 --seed 7
  inerticorp simulate --difficulty hard -v
  inerticorp scores
  inerticorp serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.inerticorp/inerticorp.db", "Path to database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom difficulty tiers YAML")
	rootCmd.PersistentFlags().StringVar(&flagContent, "content", "", "Path to custom catalog YAML")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(serveCmd)
}
