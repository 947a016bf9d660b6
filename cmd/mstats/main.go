package main

import (
	"fmt"
	"os"

	"github.com/moodmelody/melodystats/internal/config"
	"github.com/moodmelody/melodystats/internal/scan"
	"github.com/spf13/cobra"
)

var version = "dev"

var cfgFile string

func main() {
	rootCmd := &cobra.Command{
		Use:          "mstats",
		Short:        "MoodMelody repo stats - line counts per language and mood sample summaries",
		Version:      version,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default ~/.config/mstats/config.toml)")

	rootCmd.AddCommand(langstatsCmd())
	rootCmd.AddCommand(filesCmd())
	rootCmd.AddCommand(openCmd())
	rootCmd.AddCommand(moodCmd())
	rootCmd.AddCommand(numCmd())
	rootCmd.AddCommand(doctorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func filterFor(cfg *config.Config) scan.Filter {
	return scan.Filter{
		ExcludeDirs:  cfg.ExcludeDirs,
		ExcludeGlobs: cfg.ExcludeGlobs,
		Extensions:   cfg.Extensions,
	}
}
