package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/sarchlab/trainkit/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Work with run configuration files.",
}

var configCheckCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Validate a run configuration file.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := config.Load(args[0])
		if err != nil {
			log.Fatalf("Invalid configuration: %v", err)
		}

		fmt.Printf("OK: %s runner", c.Type())

		switch {
		case c.MaxEpochs > 0:
			fmt.Printf(", %d epochs", c.MaxEpochs)
		case c.MaxIters > 0:
			fmt.Printf(", %d iters", c.MaxIters)
		default:
			fmt.Printf(", unbounded")
		}

		fmt.Printf(", %d workflow phases, %d hooks\n",
			len(c.Workflow), len(c.Hooks))
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configCheckCmd)
}
