package mood

import "math/rand"

// Accumulator keeps a running count and total.
type Accumulator struct {
	Count int
	Total float64
}

func (a *Accumulator) Add(v float64) {
	a.Count++
	a.Total += v
}

func (a *Accumulator) Mean() float64 {
	if a.Count == 0 {
		return 0
	}
	return a.Total / float64(a.Count)
}

// MovingAverage returns the trailing mean over window values at each
// position; the first window-1 entries average what is available.
// A non-positive window returns values unchanged.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 0 {
		return values
	}
	res := make([]float64, 0, len(values))
	acc := 0.0
	for i, v := range values {
		acc += v
		if i >= window {
			acc -= values[i-window]
		}
		res = append(res, round3(acc/float64(min(i+1, window))))
	}
	return res
}

func GroupCounts(items []string) map[string]int {
	res := make(map[string]int)
	for _, it := range items {
		res[it]++
	}
	return res
}

type Weighted struct {
	Value  string
	Weight float64
}

// WeightedChoice picks a value with probability proportional to its weight.
// If the weights do not sum to a positive number the first value wins.
func WeightedChoice(r *rand.Rand, items []Weighted) string {
	if len(items) == 0 {
		return ""
	}
	total := 0.0
	for _, it := range items {
		total += it.Weight
	}
	if total <= 0 {
		return items[0].Value
	}
	target := r.Float64() * total
	upto := 0.0
	for _, it := range items {
		upto += it.Weight
		if upto >= target {
			return it.Value
		}
	}
	return items[len(items)-1].Value
}

func Clamp(x, lo, hi float64) float64 {
	return max(lo, min(hi, x))
}
