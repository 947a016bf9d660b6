// Package mood generates synthetic mood samples and summarizes them.
package mood

import (
	"math"
	"math/rand"
	"time"
)

// Moods lists every mood a sample can carry.
var Moods = []string{
	"happy",
	"sad",
	"energetic",
	"calm",
	"melancholic",
	"dreamy",
	"focused",
	"anxious",
}

// Colors are the mood palette hex values used by the app.
var Colors = []string{
	"#F59E0B",
	"#3B82F6",
	"#1E293B",
	"#EF4444",
	"#10B981",
	"#8B5CF6",
	"#64748B",
	"#14B8A6",
}

// maxAge bounds how far back a sample timestamp may fall.
const maxAge = 7 * 24 * time.Hour

// Sample is one synthetic mood reading.
type Sample struct {
	ID        int     `json:"id"`
	Timestamp float64 `json:"timestamp"` // unix seconds
	Mood      string  `json:"mood"`
	Intensity float64 `json:"intensity"`
	Color     string  `json:"color"`
}

// Generator draws samples from Rand relative to Now.
type Generator struct {
	Rand *rand.Rand
	Now  func() time.Time
}

// NewGenerator seeds a generator. A zero seed uses the current time.
func NewGenerator(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{Rand: rand.New(rand.NewSource(seed)), Now: time.Now}
}

// Sample draws one sample with the given id and a timestamp within the
// last week.
func (g *Generator) Sample(id int) Sample {
	mood := Moods[g.Rand.Intn(len(Moods))]
	color := Colors[g.Rand.Intn(len(Colors))]
	intensity := round3(g.Rand.Float64())
	back := g.Rand.Int63n(int64(maxAge/time.Second) + 1)
	now := float64(g.Now().UnixNano()) / float64(time.Second)
	return Sample{
		ID:        id,
		Timestamp: now - float64(back),
		Mood:      mood,
		Intensity: intensity,
		Color:     color,
	}
}

// Samples returns n samples with ids 1..n.
func (g *Generator) Samples(n int) []Sample {
	samples := make([]Sample, 0, max(n, 0))
	for i := 0; i < n; i++ {
		samples = append(samples, g.Sample(i+1))
	}
	return samples
}

// Normalize rescales intensities in place so they span [0,1]. When every
// intensity is equal the range falls back to 1 and all map to 0.
func Normalize(samples []Sample) []Sample {
	if len(samples) == 0 {
		return samples
	}
	lo, hi := samples[0].Intensity, samples[0].Intensity
	for _, s := range samples[1:] {
		lo = math.Min(lo, s.Intensity)
		hi = math.Max(hi, s.Intensity)
	}
	rng := 1.0
	if hi > lo {
		rng = hi - lo
	}
	for i := range samples {
		samples[i].Intensity = round3((samples[i].Intensity - lo) / rng)
	}
	return samples
}

// BucketByMood groups samples by mood, keeping their order.
func BucketByMood(samples []Sample) map[string][]Sample {
	buckets := make(map[string][]Sample)
	for _, s := range samples {
		buckets[s.Mood] = append(buckets[s.Mood], s)
	}
	return buckets
}

// round3 rounds to 3 places, ties to even.
func round3(x float64) float64 {
	return math.RoundToEven(x*1000) / 1000
}
