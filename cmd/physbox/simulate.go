package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-physics/internal/core"
	"github.com/vovakirdan/tui-physics/internal/registry"
	"github.com/vovakirdan/tui-physics/internal/storage"
)

var (
	flagTicks  int
	flagHold   []string
	flagWidth  int
	flagHeight int
	flagRecord bool
	flagRender bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <scene>",
	Short: "Advance a scene without a terminal UI",
	Long: `Run a scene for a fixed number of ticks and print its counters.

Contacts are traced per tick at debug level. Held actions are applied
on every tick, which is enough to walk a body into a wall or keep a
ball kicked.

Examples:
  physbox simulate cannon --ticks 600
  physbox simulate platformer --hold right --log-level debug
  physbox simulate bouncer --seed 42 --record --render`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagTicks, "ticks", 600, "Number of ticks to advance")
	simulateCmd.Flags().StringSliceVar(&flagHold, "hold", nil, "Actions held every tick: left, right, jump, down")
	simulateCmd.Flags().IntVar(&flagWidth, "width", 80, "Scene width in cells")
	simulateCmd.Flags().IntVar(&flagHeight, "height", 24, "Scene height in cells")
	simulateCmd.Flags().BoolVar(&flagRecord, "record", false, "Save the run to the runs database")
	simulateCmd.Flags().BoolVar(&flagRender, "render", false, "Print the final frame")
}

// parseActions maps action names to scene actions.
func parseActions(names []string) ([]core.Action, error) {
	actions := make([]core.Action, 0, len(names))
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "left":
			actions = append(actions, core.ActionLeft)
		case "right":
			actions = append(actions, core.ActionRight)
		case "jump", "up":
			actions = append(actions, core.ActionJump)
		case "down":
			actions = append(actions, core.ActionDown)
		default:
			return nil, fmt.Errorf("unknown action %q", name)
		}
	}
	return actions, nil
}

func runSimulate(_ *cobra.Command, args []string) error {
	sceneID := args[0]
	if !registry.Exists(sceneID) {
		return fmt.Errorf("unknown scene %q, run 'physbox list' to see available scenes", sceneID)
	}
	if flagTicks < 1 {
		return fmt.Errorf("--ticks must be at least 1, got %d", flagTicks)
	}

	held, err := parseActions(flagHold)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(false)
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

	seed := flagSeed
	if seed == 0 {
		seed = 1
	}
	rc := core.RuntimeConfig{
		ScreenW:  flagWidth,
		ScreenH:  flagHeight,
		TickRate: flagFPS,
		Seed:     seed,
	}
	scene.Reset(rc)

	input := core.NewInputFrame()
	prev := scene.State()
	for range flagTicks {
		input.Clear()
		for _, a := range held {
			input.Set(a)
		}

		st := scene.Step(input).State
		if st.Contacts != prev.Contacts {
			logger.Debug("contacts",
				"tick", st.Ticks,
				"new", st.Contacts-prev.Contacts,
				"top", st.Top-prev.Top,
				"bottom", st.Bottom-prev.Bottom,
				"left", st.Left-prev.Left,
				"right", st.Right-prev.Right,
			)
		}
		prev = st
		if st.Done {
			logger.Info("scene finished", "tick", st.Ticks)
			break
		}
	}

	st := scene.State()
	fmt.Printf("Scene:    %s\n", scene.Title())
	fmt.Printf("Ticks:    %d (%.2fs at %d fps)\n", st.Ticks, float64(st.Ticks)*rc.Dt(), rc.TickRate)
	fmt.Printf("Contacts: %d (top %d, bottom %d, left %d, right %d)\n", st.Contacts, st.Top, st.Bottom, st.Left, st.Right)
	fmt.Printf("Grounded: %d ticks\n", st.GroundedTicks)
	fmt.Printf("Max speed: %.2f m/s\n", st.MaxSpeed)

	if flagRender {
		screen := core.NewScreen(rc.ScreenW, rc.ScreenH)
		scene.Render(screen)
		fmt.Println()
		fmt.Println(screen.String())
	}

	if flagRecord {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		id, err := store.SaveRun(sceneID, st)
		if err != nil {
			return err
		}
		fmt.Printf("Recorded run #%d\n", id)
	}

	return nil
}
