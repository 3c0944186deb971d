package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"leadfinder-engine/internal/config"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "leadfinder",
	Short: "Search job boards from the terminal",
	Long:  "Leadfinder queries multiple job boards in parallel and merges the results.",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: LEADFINDER_CONFIG env var or ./config/config.yml)")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > LEADFINDER_CONFIG env var > ./config/config.yml
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		if env := os.Getenv("LEADFINDER_CONFIG"); env != "" {
			path = env
		} else {
			path = filepath.Join("config", "config.yml")
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	normalized, _ := config.NormalizeAndValidate(cfg)
	return normalized, nil
}
