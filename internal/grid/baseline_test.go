package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carboniq/carboniq/internal/geography"
)

func loadBaseline(t *testing.T) *Grid {
	t.Helper()
	ref, err := geography.Load()
	require.NoError(t, err)
	g, err := NewBaseline(ref, 0)
	require.NoError(t, err)
	return g
}

func TestDefaultResolution(t *testing.T) {
	assert.Equal(t, 48, DefaultResolution())
}

func TestNewBaseline(t *testing.T) {
	g := loadBaseline(t)

	assert.Equal(t, 48, g.Resolution())
	assert.Greater(t, g.Len(), 100, "a usable share of the lattice falls inside NYC")
	assert.InDelta(t, 0.9, g.CellAreaKM2(), 0.3, "cells are roughly 1 km²")
	assert.False(t, g.LoadedAt().IsZero())
}

func TestNewBaselineRequiresGeography(t *testing.T) {
	_, err := NewBaseline(nil, 48)
	assert.Error(t, err)
}

func TestBaselineCellInvariants(t *testing.T) {
	ref, err := geography.Load()
	require.NoError(t, err)
	g, err := NewBaseline(ref, 0)
	require.NoError(t, err)

	prevLat, prevLon := -90.0, -180.0
	for i, c := range g.Cells() {
		assert.Equal(t, i, c.Index, "indices are dense and ordered")
		assert.GreaterOrEqual(t, c.Baseline, 5.0, "intensity floor")
		assert.NotEqual(t, geography.BoroughAll, c.Borough, "every cell belongs to a borough")
		assert.NotEmpty(t, c.Zones)
		assert.NotEmpty(t, c.SectorWeights)

		// Row-major ordering: latitude non-decreasing, longitude increasing
		// within a row.
		if c.Lat == prevLat {
			assert.Greater(t, c.Lon, prevLon)
		} else {
			assert.Greater(t, c.Lat, prevLat)
		}
		prevLat, prevLon = c.Lat, c.Lon
	}
}

func TestBaselineAirportHotspot(t *testing.T) {
	g := loadBaseline(t)

	// The cell nearest JFK carries far more intensity than the citywide
	// average: airports are the strongest hotspots in the synthetic model.
	var jfkValue float64
	bestDist := 1e9
	for _, c := range g.Cells() {
		d := approxDistanceKM(c.Lat, c.Lon, 40.6413, -73.7781)
		if d < bestDist {
			bestDist = d
			jfkValue = c.Baseline
		}
	}
	stats := g.StatsFor(g.Values())
	assert.Greater(t, jfkValue, 5*stats.AvgIntensity)
}

func TestBaselineDeterministic(t *testing.T) {
	ref, err := geography.Load()
	require.NoError(t, err)

	a, err := NewBaseline(ref, 48)
	require.NoError(t, err)
	b, err := NewBaseline(ref, 48)
	require.NoError(t, err)

	require.Equal(t, a.Len(), b.Len())
	for i := range a.Cells() {
		assert.Equal(t, a.Cells()[i].Baseline, b.Cells()[i].Baseline)
		assert.Equal(t, a.Cells()[i].Lat, b.Cells()[i].Lat)
		assert.Equal(t, a.Cells()[i].Lon, b.Cells()[i].Lon)
	}
}

func TestStatsFor(t *testing.T) {
	g := loadBaseline(t)

	stats := g.StatsFor(g.Values())
	assert.Equal(t, g.Len(), stats.Datapoints)
	assert.Greater(t, stats.TotalPerDay, 0.0)
	assert.Equal(t, stats.TotalPerDay*365, stats.AnnualTonnes)
	assert.GreaterOrEqual(t, stats.MinIntensity, 5.0)
	assert.LessOrEqual(t, stats.AvgIntensity, stats.MaxIntensity)

	empty := g.StatsFor(nil)
	assert.Equal(t, 0, empty.Datapoints)
	assert.Equal(t, 0.0, empty.TotalPerDay)
}
