package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/justinbroadbent/inerticorp/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the hall of fame",
	Long: `Display the longest tenures recorded on this machine, ranked by
quarters survived, then lifetime profit.

Examples:
  inerticorp scores
  inerticorp scores --limit 25`,
	Run: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "How many tenures to show")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	runs, err := store.TopRuns(flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Hall of Fame")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No tenures recorded yet.")
		fmt.Println()
		fmt.Println("Run 'inerticorp play' to start your first one.")
		return
	}

	fmt.Printf("  %-4s  %-8s  %-10s  %-10s  %-5s  %-10s  %-8s  %s\n",
		"Rank", "Quarters", "Profit", "Parachute", "Evil", "Difficulty", "Exit", "Date")
	fmt.Printf("  %-4s  %-8s  %-10s  %-10s  %-5s  %-10s  %-8s  %s\n",
		"----", "--------", "------", "---------", "----", "----------", "----", "----")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-8d  $%-9s  $%-9s  %-5d  %-10s  %-8s  %s\n",
			i+1, r.Quarters,
			fmt.Sprintf("%dM", r.TotalProfit),
			fmt.Sprintf("%dM", r.Parachute),
			r.EvilScore, r.Difficulty, r.EndReason,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetRunStats(); err == nil && stats.RunsCount > 0 {
		fmt.Println()
		fmt.Printf("%d tenures, best %d quarters, avg %.1f, %d retirements\n",
			stats.RunsCount, stats.BestQuarters, stats.AvgQuarters, stats.Retirements)
	}
}
