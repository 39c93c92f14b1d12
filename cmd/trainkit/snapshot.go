package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sarchlab/trainkit/checkpoint"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Inspect checkpoint snapshots.",
}

var snapshotLsCmd = &cobra.Command{
	Use:   "ls [dir]",
	Short: "List the checkpoints in a directory.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := args[0]

		entries, err := os.ReadDir(dir)
		if err != nil {
			log.Fatalf("Error reading %s: %v", dir, err)
		}

		reader := checkpoint.NewCheckpointer(dir, nil)
		latest := ""

		if reader.HasCheckpoint() {
			latest, err = reader.LastCheckpoint()
			if err != nil {
				log.Fatalf("Error reading marker: %v", err)
			}
		}

		names := make([]string, 0, len(entries))
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
				names = append(names, e.Name())
			}
		}

		sort.Strings(names)

		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "TAG\tTIME\tEPOCH\tITER\tHOOKS\t")

		for _, name := range names {
			path := filepath.Join(dir, name)

			p, err := reader.Read(path)
			if err != nil {
				log.Fatalf("Error reading %s: %v", path, err)
			}

			marker := ""
			if path == latest {
				marker = " (latest)"
			}

			fmt.Fprintf(w, "%s%s\t%s\t%d\t%d\t%d\t\n",
				p.Tag, marker,
				p.Time.Format("2006-01-02 15:04:05"),
				p.Runner.Epoch,
				p.Runner.Iter,
				len(p.Runner.Hooks))
		}

		w.Flush()
	},
}

var snapshotShowCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Print one checkpoint in full.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		reader := checkpoint.NewCheckpointer(filepath.Dir(args[0]), nil)

		p, err := reader.Read(args[0])
		if err != nil {
			log.Fatalf("Error reading %s: %v", args[0], err)
		}

		out, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			log.Fatalf("Error encoding payload: %v", err)
		}

		fmt.Println(string(out))
	},
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.AddCommand(snapshotLsCmd)
	snapshotCmd.AddCommand(snapshotShowCmd)
}
