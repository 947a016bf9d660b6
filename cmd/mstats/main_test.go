package main

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/moodmelody/melodystats/internal/config"
	"github.com/moodmelody/melodystats/internal/langstats"
	"github.com/moodmelody/melodystats/internal/mood"
)

func TestWriteReportEndToEnd(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "dist"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for name, body := range map[string]string{
		"App.tsx":        "a\n\nb\n",
		"types.ts":       "c\n",
		"dist/bundle.js": "ignored\n",
	} {
		if err := os.WriteFile(filepath.Join(root, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	cfg := config.Default(t.TempDir())
	cfg.Root = root
	cfg.ReportPath = filepath.Join(t.TempDir(), "reports", "language_stats.json")

	opts := langstats.Options{Root: cfg.Root, Filter: filterFor(cfg)}
	if err := writeReport(context.Background(), cfg, opts, true); err != nil {
		t.Fatalf("writeReport: %v", err)
	}

	report, err := langstats.Read(cfg.ReportPath)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if report.TotalLines != 3 || len(report.Files) != 2 {
		t.Fatalf("report=%+v", report)
	}
	if report.ByExtension[".tsx"].Percent != 67 || report.ByExtension[".ts"].Percent != 33 {
		t.Fatalf("by_extension=%+v", report.ByExtension)
	}
}

func TestIntensitiesByTime(t *testing.T) {
	samples := []mood.Sample{
		{ID: 1, Timestamp: 30, Intensity: 0.3},
		{ID: 2, Timestamp: 10, Intensity: 0.1},
		{ID: 3, Timestamp: 20, Intensity: 0.2},
	}
	got := intensitiesByTime(samples)
	if !reflect.DeepEqual(got, []float64{0.1, 0.2, 0.3}) {
		t.Fatalf("got %v", got)
	}
	if samples[0].ID != 1 {
		t.Fatalf("input was reordered")
	}
}
