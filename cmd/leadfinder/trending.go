package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"leadfinder-engine/internal/search"
)

var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "Print currently popular searches",
	Run: func(cmd *cobra.Command, args []string) {
		for _, s := range search.Trending() {
			fmt.Println(s)
		}
	},
}

func init() {
	rootCmd.AddCommand(trendingCmd)
}
