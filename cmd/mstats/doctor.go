package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/moodmelody/melodystats/internal/scan"
	"github.com/moodmelody/melodystats/internal/store"
	"github.com/spf13/cobra"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify root, extensions and the cache database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			fmt.Println("=== Config ===")
			checkDir("Root", cfg.Root)
			fmt.Printf("  Extensions:    %s\n", strings.Join(cfg.Extensions, " "))
			fmt.Printf("  Exclude dirs:  %s\n", strings.Join(cfg.ExcludeDirs, " "))
			if len(cfg.ExcludeGlobs) > 0 {
				fmt.Printf("  Exclude globs: %s\n", strings.Join(cfg.ExcludeGlobs, " "))
			}
			fmt.Printf("  Report:        %s\n", cfg.ReportPath)
			fmt.Printf("  Summary:       %s\n", cfg.SummaryPath)

			fmt.Println("\n=== File Scan ===")
			files, err := scan.Walk(cfg.Root, filterFor(cfg))
			if err != nil {
				fmt.Printf("  scan error: %v\n", err)
			} else {
				perExt := make(map[string]int)
				for _, f := range files {
					perExt[f.Ext]++
				}
				for _, ext := range cfg.Extensions {
					fmt.Printf("  %-6s %d files\n", ext, perExt[ext])
				}
			}

			fmt.Println("\n=== Database ===")
			fmt.Printf("  Path: %s\n", cfg.DBPath)
			if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
				fmt.Println("  Status: NOT FOUND (run 'mstats langstats' first)")
				return nil
			}

			db, err := store.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			root, err := filepath.Abs(cfg.Root)
			if err != nil {
				return err
			}
			cached, err := db.FileCount(root)
			if err != nil {
				return fmt.Errorf("count files: %w", err)
			}
			runs, err := db.MoodRunCount()
			if err != nil {
				return fmt.Errorf("count runs: %w", err)
			}
			fmt.Printf("  Cached files: %d\n", cached)
			fmt.Printf("  Mood runs:    %d\n", runs)
			if files != nil && cached != len(files) {
				fmt.Printf("  Status: STALE (scan=%d, cache=%d)\n", len(files), cached)
			} else {
				fmt.Println("  Status: OK")
			}

			if info, err := os.Stat(cfg.DBPath); err == nil {
				fmt.Printf("\n=== DB Size: %s ===\n", humanize.Bytes(uint64(info.Size())))
			}
			return nil
		},
	}
}

func checkDir(name, path string) {
	if info, err := os.Stat(path); err != nil {
		fmt.Printf("  %s: %s (NOT FOUND)\n", name, path)
	} else if !info.IsDir() {
		fmt.Printf("  %s: %s (NOT A DIRECTORY)\n", name, path)
	} else {
		fmt.Printf("  %s: %s (OK)\n", name, path)
	}
}
