// Package sim composes intent extraction, pattern generation, and diffing
// into the two operations the API serves: baseline and simulate.
package sim

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/carboniq/carboniq/internal/diff"
	"github.com/carboniq/carboniq/internal/geography"
	"github.com/carboniq/carboniq/internal/grid"
	"github.com/carboniq/carboniq/internal/intent"
	"github.com/carboniq/carboniq/internal/pattern"
)

// ErrEmptyPrompt rejects simulation requests with a blank prompt.
var ErrEmptyPrompt = eris.New("sim: prompt is empty")

// lowConfidenceThreshold marks extractions the client should present with a
// caveat.
const lowConfidenceThreshold = 0.5

// GridPoint is one cell of a response grid.
type GridPoint struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Value float64 `json:"value"`
}

// Bounds is the fixed NYC bounding box echoed in response metadata.
type Bounds struct {
	South float64 `json:"south"`
	North float64 `json:"north"`
	West  float64 `json:"west"`
	East  float64 `json:"east"`
}

// Metadata describes the grid a response carries.
type Metadata struct {
	City                     string    `json:"city"`
	Unit                     string    `json:"unit"`
	Source                   string    `json:"source"`
	Bounds                   Bounds    `json:"bounds"`
	Timestamp                time.Time `json:"timestamp"`
	Datapoints               int       `json:"datapoints"`
	CoverageAreaKM2          float64   `json:"coverage_area_km2"`
	CellAreaKM2              float64   `json:"cell_area_km2"`
	AverageEmissionIntensity float64   `json:"average_emission_intensity"`
	TotalEmissionsPerDay     float64   `json:"total_emissions_per_day"`
	AnnualEmissionsTonnes    float64   `json:"annual_emissions_tonnes"`
	Description              string    `json:"description"`
}

// IntentInfo is the extracted intent as presented to clients.
type IntentInfo struct {
	Sector        geography.Sector  `json:"sector"`
	Borough       geography.Borough `json:"borough"`
	Magnitude     float64           `json:"magnitude"`
	Keywords      []string          `json:"keywords,omitempty"`
	Source        intent.Source     `json:"source"`
	Confidence    float64           `json:"confidence"`
	LowConfidence bool              `json:"low_confidence"`
	Summary       string            `json:"summary,omitempty"`
}

// Statistics compares total emissions between baseline and simulation.
type Statistics struct {
	BaselineTonnesPerDay  float64 `json:"baseline_tonnes_per_day"`
	SimulatedTonnesPerDay float64 `json:"simulated_tonnes_per_day"`
	DeltaTonnesPerDay     float64 `json:"delta_tonnes_per_day"`
	PercentChange         float64 `json:"percent_change"`
}

// BaselineResponse is the payload of GET /api/baseline.
type BaselineResponse struct {
	Grid     []GridPoint `json:"grid"`
	Metadata Metadata    `json:"metadata"`
}

// SimulationResponse is the payload of POST /api/simulate.
type SimulationResponse struct {
	RequestID  string       `json:"request_id"`
	Grid       []GridPoint  `json:"grid"`
	Intent     IntentInfo   `json:"intent"`
	Diff       *diff.Result `json:"diff"`
	Metadata   Metadata     `json:"metadata"`
	Statistics *Statistics  `json:"statistics"`
}

// Service runs simulations over an immutable baseline grid.
type Service struct {
	extractor intent.Extractor
	grid      *grid.Grid
}

// New builds a Service. The extractor decides how prompts are interpreted;
// the grid is the fixed baseline every simulation diffs against.
func New(extractor intent.Extractor, g *grid.Grid) (*Service, error) {
	if extractor == nil {
		return nil, eris.New("sim: extractor is required")
	}
	if g == nil || g.Len() == 0 {
		return nil, eris.New("sim: baseline grid is required")
	}
	return &Service{extractor: extractor, grid: g}, nil
}

// Baseline returns the fixed emission grid with its metadata.
func (s *Service) Baseline() *BaselineResponse {
	values := s.grid.Values()
	return &BaselineResponse{
		Grid: s.gridPoints(values),
		Metadata: s.metadata(values,
			"Calibrated synthetic NYC emission surface", s.grid.LoadedAt()),
	}
}

// Simulate interprets prompt, generates the what-if grid, and diffs it
// against the baseline.
func (s *Service) Simulate(ctx context.Context, prompt string) (*SimulationResponse, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}

	requestID := uuid.NewString()
	started := time.Now()

	in, err := s.extractor.Extract(ctx, prompt)
	if err != nil {
		// Extractor chains never error, but a bare extractor can.
		return nil, eris.Wrap(err, "sim: extract intent")
	}

	simulated, err := pattern.Generate(in, s.grid)
	if err != nil {
		return nil, eris.Wrap(err, "sim: generate pattern")
	}

	baseline := s.grid.Values()
	d, err := diff.Compute(baseline, simulated)
	if err != nil {
		return nil, eris.Wrap(err, "sim: diff")
	}

	resp := &SimulationResponse{
		RequestID: requestID,
		Grid:      s.gridPoints(simulated),
		Intent: IntentInfo{
			Sector:        in.Sector,
			Borough:       in.Borough,
			Magnitude:     in.Magnitude,
			Keywords:      in.Keywords,
			Source:        in.Source,
			Confidence:    in.Confidence,
			LowConfidence: in.Confidence < lowConfidenceThreshold,
			Summary:       in.Summary,
		},
		Diff:       d,
		Metadata:   s.metadata(simulated, "Simulated (NYC boundaries only)", time.Now().UTC()),
		Statistics: s.statistics(baseline, simulated),
	}

	zap.L().Info("simulation complete",
		zap.String("request_id", requestID),
		zap.String("intent", in.String()),
		zap.String("source", string(in.Source)),
		zap.Float64("confidence", in.Confidence),
		zap.Duration("duration", time.Since(started)),
	)
	return resp, nil
}

func (s *Service) gridPoints(values []float64) []GridPoint {
	cells := s.grid.Cells()
	points := make([]GridPoint, len(cells))
	for i, c := range cells {
		points[i] = GridPoint{Lat: c.Lat, Lon: c.Lon, Value: values[i]}
	}
	return points
}

func (s *Service) metadata(values []float64, source string, ts time.Time) Metadata {
	st := s.grid.StatsFor(values)
	return Metadata{
		City:   "New York City",
		Unit:   "tonnes CO₂/km²/day",
		Source: source,
		Bounds: Bounds{
			South: geography.BoundsSouth,
			North: geography.BoundsNorth,
			West:  geography.BoundsWest,
			East:  geography.BoundsEast,
		},
		Timestamp:                ts,
		Datapoints:               st.Datapoints,
		CoverageAreaKM2:          round(st.CoverageKM2, 1),
		CellAreaKM2:              round(st.CellAreaKM2, 4),
		AverageEmissionIntensity: round(st.AvgIntensity, 2),
		TotalEmissionsPerDay:     round(st.TotalPerDay, 0),
		AnnualEmissionsTonnes:    round(st.AnnualTonnes, 0),
		Description: fmt.Sprintf(
			"Each datapoint represents ~%.2f km² of NYC. Total coverage: %.0f km² (NYC land + water)",
			st.CellAreaKM2, st.CoverageKM2),
	}
}

func (s *Service) statistics(baseline, simulated []float64) *Statistics {
	bs := s.grid.StatsFor(baseline)
	ss := s.grid.StatsFor(simulated)
	st := &Statistics{
		BaselineTonnesPerDay:  round(bs.TotalPerDay, 1),
		SimulatedTonnesPerDay: round(ss.TotalPerDay, 1),
		DeltaTonnesPerDay:     round(ss.TotalPerDay-bs.TotalPerDay, 1),
	}
	if bs.TotalPerDay != 0 {
		st.PercentChange = round((ss.TotalPerDay-bs.TotalPerDay)/bs.TotalPerDay*100, 2)
	}
	return st
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
