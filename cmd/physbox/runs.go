package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-physics/internal/registry"
	"github.com/vovakirdan/tui-physics/internal/storage"
)

var (
	flagRunsLimit int
	flagClear     bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [scene]",
	Short: "Show recorded runs",
	Long: `Display recorded runs. With a scene, shows its stats and most recent
runs; without one, shows a summary line per scene.

Examples:
  physbox runs
  physbox runs bouncer --limit 20
  physbox runs cannon --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of recent runs to show")
	runsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete recorded runs (all scenes when none is given)")
}

func runRuns(_ *cobra.Command, args []string) error {
	sceneID := ""
	if len(args) == 1 {
		sceneID = args[0]
		if !registry.Exists(sceneID) {
			return fmt.Errorf("unknown scene %q, run 'physbox list' to see available scenes", sceneID)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening runs database: %w", err)
	}
	defer store.Close()

	if flagClear {
		n, err := store.ClearRuns(sceneID)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d runs.\n", n)
		return nil
	}

	if sceneID == "" {
		return printSummary(store)
	}
	return printScene(store, sceneID)
}

func printSummary(store *storage.Store) error {
	all, err := store.AllSceneStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-12s  %-5s  %-8s  %-9s  %-8s  %s\n", "Scene", "Runs", "Ticks", "Contacts", "Vmax", "Last run")
	fmt.Printf("  %-12s  %-5s  %-8s  %-9s  %-8s  %s\n", "-----", "----", "-----", "--------", "----", "--------")
	for _, id := range ids {
		st := all[id]
		fmt.Printf("  %-12s  %-5d  %-8d  %-9d  %-8.1f  %s\n",
			id, st.Runs, st.TotalTicks, st.TotalContacts, st.MaxSpeed, st.LastRun.Format("2006-01-02 15:04"))
	}
	return nil
}

func printScene(store *storage.Store, sceneID string) error {
	stats, err := store.SceneStats(sceneID)
	if err != nil {
		return err
	}
	runs, err := store.RecentRuns(sceneID, flagRunsLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Runs - %s\n\n", sceneID)
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'physbox play %s' to record one.\n", sceneID)
		return nil
	}

	fmt.Printf("  %-6s  %-6s  %-8s  %-15s  %-6s  %-6s  %s\n", "Run", "Ticks", "Contacts", "T/B/L/R", "Ground", "Vmax", "Date")
	fmt.Printf("  %-6s  %-6s  %-8s  %-15s  %-6s  %-6s  %s\n", "---", "-----", "--------", "-------", "------", "----", "----")
	for _, r := range runs {
		sides := fmt.Sprintf("%d/%d/%d/%d", r.Top, r.Bottom, r.Left, r.Right)
		fmt.Printf("  %-6d  %-6d  %-8d  %-15s  %-6d  %-6.1f  %s\n",
			r.ID, r.Ticks, r.Contacts, sides, r.GroundedTicks, r.MaxSpeed, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Printf("Total: %d runs, %d ticks, %.1f contacts per run, best %.1f m/s\n",
		stats.Runs, stats.TotalTicks, stats.AvgContacts, stats.MaxSpeed)
	return nil
}
