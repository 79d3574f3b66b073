package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-physics/internal/core"
	"github.com/vovakirdan/tui-physics/internal/platform/tui"
	"github.com/vovakirdan/tui-physics/internal/registry"
	"github.com/vovakirdan/tui-physics/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <scene>",
	Short: "Run a scene",
	Long: `Start the specified scene in the terminal.

Controls:
  Left/Right, A/D  - Push body
  Space/Up         - Jump or kick
  P                - Pause
  R                - Restart the scene
  Ctrl+S           - Save a screenshot to ~/.physbox/screenshots
  Q/Ctrl+C         - Quit

Each run is recorded in the runs database when the scene is left.

Examples:
  physbox play platformer
  physbox play bouncer --fps 30
  physbox play cannon --config ./heavy.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

// terminalConfig returns a runtime config sized to the current terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

func runPlay(_ *cobra.Command, args []string) error {
	sceneID := args[0]
	if !registry.Exists(sceneID) {
		return fmt.Errorf("unknown scene %q, run 'physbox list' to see available scenes", sceneID)
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	physbox, err := loadConfig(logger)
	if err != nil {
		return err
	}

	scene, err := registry.CreateTuned(sceneID, physbox, logger)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(scene, store, terminalConfig(), logger); err != nil {
		return fmt.Errorf("error running scene: %w", err)
	}
	return nil
}
