package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-physics/internal/platform/tui"
	"github.com/vovakirdan/tui-physics/internal/registry"
	"github.com/vovakirdan/tui-physics/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the sandbox with a scene picker menu",
	Long: `Start the sandbox in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to start a scene and Tab
to browse recorded runs. Leaving a scene returns to the menu.

Examples:
  physbox menu
  physbox menu --fps 30
  physbox menu --db ./runs.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	physbox, err := loadConfig(logger)
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

	cfg := terminalConfig()
	for {
		result, err := tui.RunMenu(cfg)
		if err != nil {
			return err
		}
		cfg = result.Config

		if result.Quit {
			return nil
		}

		if result.WantsRunBoard {
			goBack, err := tui.RunRunBoard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
			continue
		}

		scene, err := registry.CreateTuned(result.SceneID, physbox, logger)
		if err != nil {
			logger.Error("cannot create scene", "scene", result.SceneID, "err", err)
			continue
		}

		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		if err := tui.Run(scene, store, cfg, logger); err != nil {
			return fmt.Errorf("error running scene: %w", err)
		}
	}
}
