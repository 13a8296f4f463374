package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/justinbroadbent/inerticorp/internal/config"
	"github.com/justinbroadbent/inerticorp/internal/content"
	"github.com/justinbroadbent/inerticorp/internal/platform/tui"
	"github.com/justinbroadbent/inerticorp/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start an interactive run",
	Long: `Start the game. The menu offers a fresh run at any difficulty, or
resuming the autosave if one exists.

Controls:
  1-9        - Greenlight a project / pick a crisis response
  t          - Trade a meter for political capital
  f          - Defer a crisis (when allowed)
  Enter      - Advance the phase
  Q/Ctrl+C   - Quit (progress autosaves at each quarter)

Examples:
  inerticorp play
  inerticorp play --config ./my-tiers.yaml
  inerticorp play --content ./my-catalog.yaml`,
	Run: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	tiers, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading difficulty config: %v\n", err)
		os.Exit(1)
	}

	catalog, err := content.Load(flagContent)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		// Continue without persistence - the run still works
		store = nil
	}

	session := tui.NewSessionModel(store, tiers, catalog, width, height)
	p := tea.NewProgram(session, tea.WithAltScreen())
	_, runErr := p.Run()

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
