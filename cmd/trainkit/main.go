// Trainkit is a command-line tool for inspecting training runs: checkpoint
// snapshots, recorded metrics, and run configurations.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use: "trainkit",
	Short: "Trainkit CLI tool can inspect the artifacts of training runs: " +
		"checkpoints, recorded metrics, and run configurations.",
	Long: `Trainkit CLI tool can inspect the artifacts of training runs. ` +
		`It reads checkpoint snapshots and their counters, dumps recorded ` +
		`metrics out of a metrics database, and validates run configuration ` +
		`files.`,
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
