package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"leadfinder-engine/internal/search"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <partial-query>",
	Short: "Print search suggestions for a partial query",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, s := range search.Suggestions(args[0]) {
			fmt.Println(s)
		}
	},
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}
