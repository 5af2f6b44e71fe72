// Package grid provides the fixed NYC emissions grid: the cell geometry and
// the synthetic baseline loaded once at process start. The grid is immutable
// after construction and safe for unsynchronized concurrent reads.
package grid

import (
	"time"

	"github.com/carboniq/carboniq/internal/geography"
)

// Cell is one fixed spatial unit of the grid. Cells are immutable once the
// baseline is built; simulated values live alongside the grid, never in it.
type Cell struct {
	Index    int
	Lat      float64
	Lon      float64
	Borough  geography.Borough
	Baseline float64

	// Zones holds the per-class proximity vector at the cell center.
	Zones map[geography.ZoneClass]float64

	// SectorWeights holds the precomputed per-sector zone weight.
	SectorWeights map[geography.Sector]float64
}

// Grid is the fixed ordered collection of cells. Ordering is row-major over
// the generating lattice and never changes; downstream diffing relies on
// positional correspondence.
type Grid struct {
	cells       []Cell
	resolution  int
	cellAreaKM2 float64
	loadedAt    time.Time
}

// Cells returns the ordered cell slice. Callers must not mutate it.
func (g *Grid) Cells() []Cell { return g.cells }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// Resolution returns the lattice resolution per dimension.
func (g *Grid) Resolution() int { return g.resolution }

// CellAreaKM2 returns the area of one cell in km².
func (g *Grid) CellAreaKM2() float64 { return g.cellAreaKM2 }

// LoadedAt returns the baseline load timestamp.
func (g *Grid) LoadedAt() time.Time { return g.loadedAt }

// Values returns a fresh copy of the baseline values in grid order.
func (g *Grid) Values() []float64 {
	out := make([]float64, len(g.cells))
	for i, c := range g.cells {
		out[i] = c.Baseline
	}
	return out
}

// Stats summarizes a value vector over the grid geometry for response
// metadata. Intensities are tonnes CO₂/km²/day.
type Stats struct {
	Datapoints   int
	CellAreaKM2  float64
	CoverageKM2  float64
	AvgIntensity float64
	TotalPerDay  float64
	AnnualTonnes float64
	MinIntensity float64
	MaxIntensity float64
}

// StatsFor computes summary statistics for values on this grid's geometry.
func (g *Grid) StatsFor(values []float64) Stats {
	s := Stats{
		Datapoints:  len(values),
		CellAreaKM2: g.cellAreaKM2,
		CoverageKM2: float64(len(values)) * g.cellAreaKM2,
	}
	if len(values) == 0 {
		return s
	}
	s.MinIntensity = values[0]
	s.MaxIntensity = values[0]
	total := 0.0
	for _, v := range values {
		total += v
		if v < s.MinIntensity {
			s.MinIntensity = v
		}
		if v > s.MaxIntensity {
			s.MaxIntensity = v
		}
	}
	s.AvgIntensity = total / float64(len(values))
	s.TotalPerDay = total * g.cellAreaKM2
	s.AnnualTonnes = s.TotalPerDay * 365
	return s
}
