package mood

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Summary aggregates a fixed sample set.
type Summary struct {
	Total        int                `json:"total"`
	MoodCounts   map[string]int     `json:"mood_counts"`
	ColorCounts  map[string]int     `json:"color_counts"`
	AvgIntensity float64            `json:"avg_intensity"`
	Distribution map[string]float64 `json:"distribution"`
}

func Summarize(samples []Sample) Summary {
	sum := Summary{
		Total:        len(samples),
		MoodCounts:   make(map[string]int),
		ColorCounts:  make(map[string]int),
		Distribution: make(map[string]float64),
	}
	var acc Accumulator
	for _, s := range samples {
		sum.MoodCounts[s.Mood]++
		sum.ColorCounts[s.Color]++
		acc.Add(s.Intensity)
	}
	sum.AvgIntensity = round3(acc.Mean())
	for m, n := range sum.MoodCounts {
		sum.Distribution[m] = round3(float64(n) / float64(sum.Total))
	}
	return sum
}

type MoodCount struct {
	Mood  string
	Count int
}

// TopMoods returns up to n moods by count, highest first. Equal counts are
// ordered by name.
func TopMoods(sum Summary, n int) []MoodCount {
	out := make([]MoodCount, 0, len(sum.MoodCounts))
	for m, c := range sum.MoodCounts {
		out = append(out, MoodCount{Mood: m, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Mood < out[j].Mood
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// MarshalSummary encodes sum the way SaveSummary writes it.
func MarshalSummary(sum Summary) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sum); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func SaveSummary(path string, sum Summary) error {
	b, err := MarshalSummary(sum)
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create summary dir: %w", err)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
