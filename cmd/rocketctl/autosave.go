package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// autosaveCmd represents the autosave command
var autosaveCmd = &cobra.Command{
	Use:   "autosave",
	Short: "Automatically commit work-tree changes",
	Long:  `Automatically commit (and optionally push) changes in a git work tree.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'autosave' requires a subcommand (run, watch)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(autosaveCmd)
}
