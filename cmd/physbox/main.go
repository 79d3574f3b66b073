// physbox is a terminal sandbox for a small 2D rigid-body physics engine.
//
// Usage:
//
//	physbox list               - List available scenes
//	physbox play <scene>       - Run a scene interactively
//	physbox menu               - Pick scenes from a menu
//	physbox simulate <scene>   - Advance a scene headless and report contacts
//	physbox runs [scene]       - Show recorded runs
//	physbox serve              - Start SSH server for remote sessions
//
// Global flags:
//
//	--fps <rate>         - Ticks per second; each tick advances 1/fps seconds (default: 60)
//	--seed <value>       - RNG seed for reproducible scenes
//	--db <path>          - Runs database (default: ~/.physbox/runs.db)
//	--config <path>      - Physics config YAML
//	--log-level <level>  - debug, info, warn or error (default: info)
//	--log-file <path>    - Write logs to a file (interactive commands discard logs otherwise)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-physics/internal/config"

	// Import scenes to register them
	_ "github.com/vovakirdan/tui-physics/internal/scenes/bouncer"
	_ "github.com/vovakirdan/tui-physics/internal/scenes/cannon"
	_ "github.com/vovakirdan/tui-physics/internal/scenes/platformer"
)

var (
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "physbox",
	Short: "Physbox - 2D physics sandbox in your terminal",
	Long: `Physbox runs small scenes on a fixed-step 2D physics engine:
gravity, friction, restitution and swept collision against static walls.

Available commands:
  list      - Show all available scenes
  play      - Run a specific scene
  menu      - Interactive scene picker
  simulate  - Advance a scene without a terminal UI
  runs      - View recorded runs
  serve     - Start SSH server for remote sessions

Examples:
  physbox list
  physbox play bouncer
  physbox simulate cannon --ticks 600 --log-level debug
  physbox runs platformer`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.physbox/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to physics config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the command logger. Interactive commands pass quiet so
// log lines never land on the alternate screen unless --log-file is set.
// The returned func closes the log file, if any.
func newLogger(quiet bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case quiet:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "physbox",
		Level:           level,
	})
	return logger, closeFn, nil
}

// loadConfig reads the physics config and warns about clamped values.
// Warnings go to stderr as well so they are seen before a TUI starts.
func loadConfig(logger *log.Logger) (config.PhysboxConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	for _, w := range cfg.Normalize() {
		logger.Warn("config adjusted", "change", w)
		fmt.Fprintf(os.Stderr, "Warning: config: %s\n", w)
	}
	return cfg, nil
}
