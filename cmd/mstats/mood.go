package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/moodmelody/melodystats/internal/mood"
	"github.com/moodmelody/melodystats/internal/render"
	"github.com/moodmelody/melodystats/internal/store"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func moodCmd() *cobra.Command {
	var n, window int
	var out string
	var seed int64
	var noHistory bool

	cmd := &cobra.Command{
		Use:   "mood",
		Short: "Generate synthetic mood samples, summarize them and save the summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("samples") {
				n = cfg.SampleCount
			}
			if out == "" {
				out = cfg.SummaryPath
			}
			if n < 0 {
				return fmt.Errorf("sample count must not be negative: %d", n)
			}

			samples := mood.NewGenerator(seed).Samples(n)
			mood.Normalize(samples)
			sum := mood.Summarize(samples)

			if err := mood.SaveSummary(out, sum); err != nil {
				return fmt.Errorf("save summary: %w", err)
			}
			fmt.Print(render.MoodDigest(sum))
			if window > 0 && len(samples) > 0 {
				fmt.Print(render.Trend(mood.MovingAverage(intensitiesByTime(samples), window), window))
			}
			fmt.Fprintf(os.Stderr, "Summary written to %s\n", out)

			if noHistory {
				return nil
			}
			return recordRun(cfg.DBPath, sum, out)
		},
	}

	cmd.Flags().IntVarP(&n, "samples", "n", 180, "Number of samples to generate")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Summary path (default scripts/sample_summary.json)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (0 = time based)")
	cmd.Flags().IntVar(&window, "window", 0, "Also print a moving average of intensity over this many samples")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record this run")

	cmd.AddCommand(moodHistoryCmd())
	return cmd
}

// intensitiesByTime orders intensities oldest first.
func intensitiesByTime(samples []mood.Sample) []float64 {
	sorted := make([]mood.Sample, len(samples))
	copy(sorted, samples)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Timestamp < sorted[j].Timestamp })
	values := make([]float64, len(sorted))
	for i, s := range sorted {
		values[i] = s.Intensity
	}
	return values
}

func recordRun(dbPath string, sum mood.Summary, summaryPath string) error {
	db, err := store.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	raw, err := mood.MarshalSummary(sum)
	if err != nil {
		return err
	}
	top := ""
	if tm := mood.TopMoods(sum, 1); len(tm) > 0 {
		top = tm[0].Mood
	}
	id, err := db.AddMoodRun(store.MoodRun{
		Samples:      sum.Total,
		AvgIntensity: sum.AvgIntensity,
		TopMood:      top,
		SummaryPath:  summaryPath,
		SummaryJSON:  string(raw),
	})
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Run %s recorded\n", id)
	return nil
}

func moodHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded mood runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := store.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			runs, err := db.MoodRuns(limit)
			if err != nil {
				return err
			}
			fmt.Print(render.RunHistory(runs, time.Now(), render.Options{
				Color: term.IsTerminal(int(os.Stdout.Fd())),
			}))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Max runs to show (0 = all)")
	return cmd
}
