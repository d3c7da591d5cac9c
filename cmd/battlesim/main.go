package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"strings"

	"bunnylords/internal/adapter/catalog/yamlcatalog"
	"bunnylords/internal/domain/combat"
	"bunnylords/internal/domain/keep"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// battlesim resolves a campaign stage offline, repeatedly, so catalog
// authors can check a stage's difficulty before shipping it.
func main() {
	var (
		catalogDir string
		stageID    string
		armyPairs  []string
		runs       int
		seed       int64
	)

	rootCmd := &cobra.Command{
		Use:   "battlesim",
		Short: "Resolve campaign battles against a catalog without a running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			army, err := parseArmy(armyPairs)
			if err != nil {
				return err
			}
			if runs < 1 {
				return fmt.Errorf("--runs must be at least 1, got %d", runs)
			}

			catalog, err := yamlcatalog.New(catalogDir).Load(context.Background())
			if err != nil {
				return fmt.Errorf("load catalog from %s: %w", catalogDir, err)
			}
			stage, ok := catalog.Stages[stageID]
			if !ok {
				return fmt.Errorf("unknown stage %q", stageID)
			}
			for troopID := range army {
				if _, ok := catalog.Troops[troopID]; !ok {
					return fmt.Errorf("unknown troop %q", troopID)
				}
			}

			summary := simulate(catalog, stage, army, runs, seed)
			printSummary(cmd.OutOrStdout(), stage, runs, summary)
			return nil
		},
	}

	rootCmd.Flags().StringVar(&catalogDir, "catalogs", "./catalogs", "catalog directory")
	rootCmd.Flags().StringVar(&stageID, "stage", "", "stage id to fight")
	rootCmd.Flags().StringArrayVar(&armyPairs, "army", nil, "troop counts, e.g. --army warrior_bunny=10")
	rootCmd.Flags().IntVar(&runs, "runs", 100, "number of battles to resolve")
	rootCmd.Flags().Int64Var(&seed, "seed", 1, "base RNG seed; run i uses seed+i")
	_ = rootCmd.MarkFlagRequired("stage")
	_ = rootCmd.MarkFlagRequired("army")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseArmy(pairs []string) (map[string]int, error) {
	army := map[string]int{}
	for _, pair := range pairs {
		kv := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("bad --army value %q, want troop_id=count", pair)
		}
		troopID := strings.TrimSpace(kv[0])
		count, err := strconv.Atoi(strings.TrimSpace(kv[1]))
		if err != nil || troopID == "" || count < 1 {
			return nil, fmt.Errorf("bad --army value %q, want troop_id=count", pair)
		}
		army[troopID] += count
	}
	if len(army) == 0 {
		return nil, fmt.Errorf("at least one --army pair is required")
	}
	return army, nil
}

type runSummary struct {
	victories  int
	totalTicks int
	losses     map[string]int
	sample     combat.Result
}

func simulate(catalog *keep.Catalog, stage *keep.StageDef, army map[string]int, runs int, seed int64) runSummary {
	summary := runSummary{losses: map[string]int{}}
	for i := 0; i < runs; i++ {
		engine := combat.Engine{
			Troops: catalog.Troops,
			Rand:   rand.New(rand.NewSource(seed + int64(i))),
		}
		result := engine.Resolve(army, stage.Enemies)
		if result.Victory {
			summary.victories++
		}
		summary.totalTicks += result.Ticks
		for troopID, n := range result.PlayerLosses {
			summary.losses[troopID] += n
		}
		if i == 0 {
			summary.sample = result
		}
	}
	return summary
}

func printSummary(w io.Writer, stage *keep.StageDef, runs int, summary runSummary) {
	fmt.Fprintf(w, "stage %s (%s), required power %d, %d runs\n",
		stage.ID, stage.Name, stage.RequiredPower, runs)
	fmt.Fprintf(w, "victories: %d/%d (%.0f%%), avg ticks: %.1f\n\n",
		summary.victories, runs,
		100*float64(summary.victories)/float64(runs),
		float64(summary.totalTicks)/float64(runs))

	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Troop", "Avg Losses Per Run"}),
	)
	for _, troopID := range sortedKeys(summary.losses) {
		table.Append([]string{
			troopID,
			fmt.Sprintf("%.2f", float64(summary.losses[troopID])/float64(runs)),
		})
	}
	table.Render()

	fmt.Fprintf(w, "\nfirst run: victory=%v ticks=%d log entries=%d\n",
		summary.sample.Victory, summary.sample.Ticks, len(summary.sample.Log))
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
