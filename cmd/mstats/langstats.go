package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/moodmelody/melodystats/internal/config"
	"github.com/moodmelody/melodystats/internal/langstats"
	"github.com/moodmelody/melodystats/internal/render"
	"github.com/moodmelody/melodystats/internal/store"
	"github.com/moodmelody/melodystats/internal/watch"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func langstatsCmd() *cobra.Command {
	var root, out string
	var noCache, watchMode, quiet bool

	cmd := &cobra.Command{
		Use:     "langstats",
		Aliases: []string{"lines"},
		Short:   "Count non-blank lines per file and per extension and write a JSON report",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if root != "" {
				cfg.Root = root
			}
			if out != "" {
				cfg.ReportPath = out
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			opts := langstats.Options{
				Root:   cfg.Root,
				Filter: filterFor(cfg),
				Warn:   os.Stderr,
			}
			if !noCache {
				db, err := store.OpenDB(cfg.DBPath)
				if err != nil {
					return fmt.Errorf("open db: %w", err)
				}
				defer db.Close()
				opts.Cache = db
			}

			run := func() error {
				return writeReport(ctx, cfg, opts, quiet)
			}
			if err := run(); err != nil {
				return err
			}
			if !watchMode {
				return nil
			}

			w, err := watch.New(cfg.Root, opts.Filter)
			if err != nil {
				return fmt.Errorf("watch: %w", err)
			}
			w.Warn = os.Stderr
			fmt.Fprintf(os.Stderr, "Watching %s for changes (Ctrl-C to stop)...\n", cfg.Root)
			return w.Run(ctx, run)
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "Directory to scan (default from config)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Report path (default reports/language_stats.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Recount every file instead of using the line-count cache")
	cmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "Rewrite the report whenever a source file changes")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Skip the per-extension table")

	return cmd
}

func writeReport(ctx context.Context, cfg *config.Config, opts langstats.Options, quiet bool) error {
	report, stats, err := langstats.Build(ctx, opts)
	if err != nil {
		return err
	}
	if err := langstats.Write(cfg.ReportPath, report); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Done. %s\n", stats)
	fmt.Printf("Report written to %s\n", cfg.ReportPath)
	if !quiet {
		fmt.Print(render.LanguageTable(report, render.Options{Color: term.IsTerminal(int(os.Stdout.Fd()))}))
	}
	return nil
}
