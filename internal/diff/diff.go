// Package diff compares a simulated emission vector against the baseline
// and buckets each cell's relative change for rendering.
package diff

import (
	"math"

	"github.com/rotisserie/eris"
)

// bucketCount is the number of severity buckets a cell's relative change is
// quantized into.
const bucketCount = 10

// CellDiff is the per-cell comparison between baseline and simulation.
type CellDiff struct {
	Baseline  float64 `json:"baseline"`
	Simulated float64 `json:"simulated"`
	Delta     float64 `json:"delta"`
	Percent   float64 `json:"percent"`
	Bucket    int     `json:"bucket"`
}

// Result holds the full comparison plus the value ranges of both vectors.
type Result struct {
	Cells        []CellDiff `json:"cells"`
	BaselineMin  float64    `json:"baseline_min"`
	BaselineMax  float64    `json:"baseline_max"`
	SimulatedMin float64    `json:"simulated_min"`
	SimulatedMax float64    `json:"simulated_max"`
	MaxAbsDelta  float64    `json:"max_abs_delta"`
}

// Compute diffs simulated against baseline cell by cell. The two vectors
// must be the same length and in the same grid order.
func Compute(baseline, simulated []float64) (*Result, error) {
	if len(baseline) != len(simulated) {
		return nil, eris.Errorf("diff: length mismatch: baseline %d, simulated %d",
			len(baseline), len(simulated))
	}
	if len(baseline) == 0 {
		return nil, eris.New("diff: empty vectors")
	}

	r := &Result{
		Cells:        make([]CellDiff, len(baseline)),
		BaselineMin:  baseline[0],
		BaselineMax:  baseline[0],
		SimulatedMin: simulated[0],
		SimulatedMax: simulated[0],
	}

	for i := range baseline {
		b, s := baseline[i], simulated[i]
		d := s - b

		pct := 0.0
		if b != 0 {
			pct = d / b * 100
		}

		r.Cells[i] = CellDiff{
			Baseline:  b,
			Simulated: s,
			Delta:     d,
			Percent:   pct,
			Bucket:    bucket(pct),
		}

		r.BaselineMin = math.Min(r.BaselineMin, b)
		r.BaselineMax = math.Max(r.BaselineMax, b)
		r.SimulatedMin = math.Min(r.SimulatedMin, s)
		r.SimulatedMax = math.Max(r.SimulatedMax, s)
		r.MaxAbsDelta = math.Max(r.MaxAbsDelta, math.Abs(d))
	}

	return r, nil
}

// bucket quantizes a percentage change into [0, bucketCount). Bucket 4-5
// straddle "no change"; 0 is a deep cut, 9 a steep rise. The mapping is
// linear over [-100%, +100%] and saturates beyond.
func bucket(pct float64) int {
	clamped := math.Max(-100, math.Min(100, pct))
	b := int(math.Floor((clamped + 100) / 200 * bucketCount))
	if b >= bucketCount {
		b = bucketCount - 1
	}
	if b < 0 {
		b = 0
	}
	return b
}
