package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/moodmelody/melodystats/internal/mood"
	"github.com/moodmelody/melodystats/internal/store"
)

// DigestTopMoods is how many moods MoodDigest lists.
const DigestTopMoods = 5

// MoodDigest renders the short human-readable summary.
func MoodDigest(sum mood.Summary) string {
	var b strings.Builder
	b.WriteString("Summary:\n")
	fmt.Fprintf(&b, "  Total samples: %d\n", sum.Total)
	fmt.Fprintf(&b, "  Avg intensity: %s\n", formatFloat(sum.AvgIntensity))
	b.WriteString("  Top moods:\n")
	for _, mc := range mood.TopMoods(sum, DigestTopMoods) {
		fmt.Fprintf(&b, "    - %s: %d\n", mc.Mood, mc.Count)
	}
	return b.String()
}

// Trend renders a moving average series on one line.
func Trend(values []float64, window int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatFloat(v)
	}
	return fmt.Sprintf("  Intensity trend (window %d): %s\n", window, strings.Join(parts, " "))
}

// RunHistory renders past mood runs, newest first.
func RunHistory(runs []store.MoodRun, now time.Time, opts Options) string {
	w := &lineWriter{width: opts.Width}
	if len(runs) == 0 {
		w.writeLine(opts.paint(colorDim, "(no runs recorded)"))
		return w.String()
	}
	w.writeLine(opts.paint(colorHeader, fmt.Sprintf("%s  %s  %s  %s  %s",
		padRight("RUN", 8), padRight("WHEN", 14), padLeft("N", 5), padLeft("AVG", 5), "TOP")))
	for _, r := range runs {
		id := r.RunID
		if len(id) > 8 {
			id = id[:8]
		}
		w.writeLine(fmt.Sprintf("%s  %s  %s  %s  %s",
			padRight(id, 8),
			opts.paint(colorDim, padRight(humanize.RelTime(r.CreatedAt, now, "ago", "from now"), 14)),
			padLeft(fmt.Sprint(r.Samples), 5),
			padLeft(fmt.Sprintf("%.3f", r.AvgIntensity), 5),
			r.TopMood,
		))
	}
	return w.String()
}

// formatFloat prints the shortest representation, keeping a trailing .0
// for whole numbers.
func formatFloat(v float64) string {
	s := fmt.Sprintf("%g", v)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
