package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vbagdi/ResearchCode/db"
	"github.com/vbagdi/ResearchCode/domain"
)

var (
	RunsLimit  = 10
	RunsJSON   bool
	PurgeCache bool
)

func newRunsCmd() *cobra.Command {
	runsCmd := &cobra.Command{
		Use:     "runs",
		Aliases: []string{"history", "r"},
		Short:   "Discovery run history",
		Long:    "Lists the most recent archived discovery runs",
		PreRun: func(_ *cobra.Command, _ []string) {
			initLogging()
		},
		Run: func(cmd *cobra.Command, args []string) {
			if err := db.WithClient(db.NewBoltConfig(DBFile), func(dbClient *db.Client) error {
				runs, err := dbClient.LatestRuns(RunsLimit)
				if err != nil {
					return err
				}
				if RunsJSON {
					return emitJSON(runs)
				}
				printRuns(runs)

				if total, err := dbClient.RunsLen(); err == nil && total > len(runs) {
					fmt.Printf("Showing %v of %v archived runs\n", len(runs), total)
				}

				var lastRun time.Time
				if err := dbClient.Meta(db.MetaLastRun, &lastRun); err == nil {
					fmt.Printf("\nLast run finished %v ago\n", time.Since(lastRun).Round(time.Second))
				}
				return nil
			}); err != nil {
				log.Fatalf("main: %s", err)
			}
		},
	}

	runsCmd.Flags().IntVarP(&RunsLimit, "limit", "l", RunsLimit, "Maximum number of runs to list")
	runsCmd.Flags().BoolVarP(&RunsJSON, "json", "j", RunsJSON, "Emit JSON instead of a table")

	runsCmd.AddCommand(
		newRunsStatsCmd(),
		newRunsPurgeCmd(),
	)

	return runsCmd
}

func newRunsStatsCmd() *cobra.Command {
	runsStatsCmd := &cobra.Command{
		Use:   "stats",
		Short: "DB table-entry counts",
		Long:  "Displays entry counts of each run history and cache table",
		PreRun: func(_ *cobra.Command, _ []string) {
			initLogging()
		},
		Run: func(cmd *cobra.Command, args []string) {
			if err := db.WithClient(db.NewBoltConfig(DBFile), func(dbClient *db.Client) error {
				stats, err := collectRunsStats(dbClient)
				if err != nil {
					return err
				}
				return emitJSON(stats)
			}); err != nil {
				log.Fatalf("main: %s", err)
			}
		},
	}
	return runsStatsCmd
}

func newRunsPurgeCmd() *cobra.Command {
	runsPurgeCmd := &cobra.Command{
		Use:     "purge",
		Aliases: []string{"clear"},
		Short:   "Delete archived runs",
		Long:    "Deletes the run archive and the last-run marker, and optionally the package index lookup cache",
		PreRun: func(_ *cobra.Command, _ []string) {
			initLogging()
		},
		Run: func(cmd *cobra.Command, args []string) {
			if err := db.WithClient(db.NewBoltConfig(DBFile), func(dbClient *db.Client) error {
				return purgeRuns(dbClient, PurgeCache)
			}); err != nil {
				log.Fatalf("main: %s", err)
			}
			log.WithField("cache", PurgeCache).Info("Purged run history")
		},
	}

	runsPurgeCmd.Flags().BoolVarP(&PurgeCache, "cache", "c", PurgeCache, "Also purge the package index lookup cache")

	return runsPurgeCmd
}

type runsStats struct {
	Tables     map[string]int `json:"tables"`
	Runs       int            `json:"runs"`
	FailedRuns int            `json:"failed-runs"`
}

func collectRunsStats(dbClient *db.Client) (*runsStats, error) {
	stats := &runsStats{
		Tables: map[string]int{},
	}
	for _, table := range db.Tables() {
		l, err := dbClient.Backend().Len(table)
		if err != nil {
			return nil, fmt.Errorf("getting len(%v): %s", table, err)
		}
		stats.Tables[table] = l
	}

	n, err := dbClient.RunsLen()
	if err != nil {
		return nil, err
	}
	stats.Runs = n

	if err := dbClient.EachRun(func(run *domain.RunSummary) {
		if run.Err != "" {
			stats.FailedRuns++
		}
	}); err != nil {
		return nil, err
	}
	return stats, nil
}

func purgeRuns(dbClient *db.Client, cache bool) error {
	tables := []string{db.TableRuns}
	if cache {
		tables = append(tables, db.TableIndexLookup)
	}
	if err := dbClient.Purge(tables...); err != nil {
		return err
	}
	if err := dbClient.MetaDelete(db.MetaLastRun); err != nil {
		return fmt.Errorf("deleting %v marker: %s", db.MetaLastRun, err)
	}
	return nil
}

func printRuns(runs []*domain.RunSummary) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Run", "Started", "Duration", "Tools", "Top", "Error"})
	table.SetAutoFormatHeaders(false)
	for _, run := range runs {
		top := ""
		if len(run.TopTools) > 0 {
			top = strings.Join(run.TopTools[:min(3, len(run.TopTools))], ", ")
		}
		table.Append([]string{
			shortID(run.RunID),
			run.StartedAt.Format(time.RFC3339),
			run.Duration().Round(time.Second).String(),
			fmt.Sprint(run.TotalTools),
			top,
			run.Err,
		})
	}
	table.Render()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
