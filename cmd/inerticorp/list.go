package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/justinbroadbent/inerticorp/internal/config"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List difficulty presets",
	Long:  `Shows each difficulty preset with its key tuning numbers.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	tiers, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading difficulty config: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Difficulty presets:")
	fmt.Println()
	fmt.Printf("  %-8s  %-6s  %-7s  %-8s  %-7s  %-7s  %s\n",
		"Preset", "Favor", "Meters", "Capital", "Crisis%", "Target", "Retire@")
	fmt.Printf("  %-8s  %-6s  %-7s  %-8s  %-7s  %-7s  %s\n",
		"------", "-----", "------", "-------", "-------", "------", "-------")

	for _, p := range config.Presets() {
		t := tiers.ForPreset(p)
		fmt.Printf("  %-8s  %-6d  %-7d  %-8d  %-7d  %-7d  %d\n",
			p, t.StartFavor, t.StartMeters, t.StartCapital,
			t.CrisisChance, t.DirectiveFloor, t.RetirementThreshold)
	}

	fmt.Println()
	fmt.Println("Run 'inerticorp play' and pick one from the menu.")
}
