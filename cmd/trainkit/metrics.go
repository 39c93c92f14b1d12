package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sarchlab/trainkit/recording"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Inspect recorded metrics databases.",
}

var metricsTablesCmd = &cobra.Command{
	Use:   "tables [db]",
	Short: "List the tables in a metrics database.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		db, err := sql.Open("sqlite3", args[0])
		if err != nil {
			log.Fatalf("Error opening %s: %v", args[0], err)
		}
		defer db.Close()

		rows, err := db.Query(
			"SELECT name FROM sqlite_master WHERE type='table' ORDER BY name")
		if err != nil {
			log.Fatalf("Error listing tables: %v", err)
		}
		defer rows.Close()

		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				log.Fatalf("Error scanning table name: %v", err)
			}

			fmt.Println(name)
		}

		if err := rows.Err(); err != nil {
			log.Fatalf("Error listing tables: %v", err)
		}
	},
}

var metricsDumpCmd = &cobra.Command{
	Use:   "dump [db]",
	Short: "Dump metric samples out of a metrics database.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		metric, _ := cmd.Flags().GetString("metric")
		mode, _ := cmd.Flags().GetString("mode")
		limit, _ := cmd.Flags().GetInt("limit")

		reader := recording.NewReader(args[0])
		defer reader.Close()

		reader.MapTable(recording.MetricsTable, recording.MetricSample{})

		params := recording.QueryParams{
			OrderBy: "Iter",
			Limit:   limit,
		}

		switch {
		case metric != "" && mode != "":
			params.Where = "Metric = ? AND Mode = ?"
			params.Args = []any{metric, mode}
		case metric != "":
			params.Where = "Metric = ?"
			params.Args = []any{metric}
		case mode != "":
			params.Where = "Mode = ?"
			params.Args = []any{mode}
		}

		results, total, err := reader.Query(
			context.Background(), recording.MetricsTable, params)
		if err != nil {
			log.Fatalf("Error querying metrics: %v", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "EPOCH\tITER\tMODE\tMETRIC\tVALUE\t")

		for _, row := range results {
			s := row.(*recording.MetricSample)
			fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%g\t\n",
				s.Epoch, s.Iter, s.Mode, s.Metric, s.Value)
		}

		w.Flush()

		fmt.Printf("%d of %d samples\n", len(results), total)
	},
}

func init() {
	rootCmd.AddCommand(metricsCmd)
	metricsCmd.AddCommand(metricsTablesCmd)
	metricsCmd.AddCommand(metricsDumpCmd)

	metricsDumpCmd.Flags().String("metric", "", "Only dump the named metric")
	metricsDumpCmd.Flags().String("mode", "", "Only dump samples of a mode")
	metricsDumpCmd.Flags().Int("limit", 50, "Maximum number of samples")
}
