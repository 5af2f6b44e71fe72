package sim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carboniq/carboniq/internal/geography"
	"github.com/carboniq/carboniq/internal/grid"
	"github.com/carboniq/carboniq/internal/intent"
)

func testService(t *testing.T) *Service {
	t.Helper()
	ref, err := geography.Load()
	require.NoError(t, err)
	g, err := grid.NewBaseline(ref, 0)
	require.NoError(t, err)
	svc, err := New(intent.NewChain(intent.NewRuleExtractor()), g)
	require.NoError(t, err)
	return svc
}

func TestService_Baseline(t *testing.T) {
	svc := testService(t)

	resp := svc.Baseline()
	require.NotEmpty(t, resp.Grid)
	assert.Equal(t, len(resp.Grid), resp.Metadata.Datapoints)
	assert.Equal(t, "New York City", resp.Metadata.City)
	assert.InDelta(t, 40.49, resp.Metadata.Bounds.South, 0.001)
	assert.InDelta(t, -73.70, resp.Metadata.Bounds.East, 0.001)
	assert.Positive(t, resp.Metadata.TotalEmissionsPerDay)
	assert.Positive(t, resp.Metadata.AnnualEmissionsTonnes)

	for _, p := range resp.Grid {
		assert.GreaterOrEqual(t, p.Value, 5.0, "baseline floor")
	}
}

func TestService_Simulate_ReduceManhattan(t *testing.T) {
	svc := testService(t)

	resp, err := svc.Simulate(context.Background(), "Reduce traffic emissions in Manhattan by 20%")
	require.NoError(t, err)

	assert.NotEmpty(t, resp.RequestID)
	assert.Equal(t, geography.SectorTransport, resp.Intent.Sector)
	assert.Equal(t, geography.BoroughManhattan, resp.Intent.Borough)
	assert.InDelta(t, -20, resp.Intent.Magnitude, 0.001)
	assert.False(t, resp.Intent.LowConfidence)

	require.Len(t, resp.Grid, len(resp.Diff.Cells))
	assert.Negative(t, resp.Statistics.DeltaTonnesPerDay)
	assert.Negative(t, resp.Statistics.PercentChange)

	// Mean relative change inside Manhattan tracks the magnitude.
	baseline := svc.Baseline()
	var sum float64
	var n int
	for i, c := range svc.grid.Cells() {
		if c.Borough != geography.BoroughManhattan {
			continue
		}
		sum += (resp.Grid[i].Value - baseline.Grid[i].Value) / baseline.Grid[i].Value
		n++
	}
	require.Positive(t, n)
	assert.InDelta(t, -0.20, sum/float64(n), 0.02)
}

func TestService_Simulate_GenericEmissionsPrompt(t *testing.T) {
	svc := testService(t)

	// No sector named, only the generic emission term.
	resp, err := svc.Simulate(context.Background(), "Reduce emissions in Manhattan by 20%")
	require.NoError(t, err)

	assert.Equal(t, geography.BoroughManhattan, resp.Intent.Borough)
	assert.InDelta(t, -20, resp.Intent.Magnitude, 0.001)
	assert.Negative(t, resp.Statistics.DeltaTonnesPerDay)
}

func TestService_Simulate_UnrelatedPromptIsIdentity(t *testing.T) {
	svc := testService(t)

	resp, err := svc.Simulate(context.Background(), "What's the weather like today?")
	require.NoError(t, err)

	assert.Equal(t, intent.SourceDefault, resp.Intent.Source)
	assert.True(t, resp.Intent.LowConfidence)
	assert.Zero(t, resp.Statistics.DeltaTonnesPerDay)

	baseline := svc.Baseline()
	for i := range resp.Grid {
		assert.Equal(t, baseline.Grid[i].Value, resp.Grid[i].Value)
	}
}

func TestService_Simulate_EmptyPrompt(t *testing.T) {
	svc := testService(t)

	_, err := svc.Simulate(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestService_Simulate_Deterministic(t *testing.T) {
	svc := testService(t)
	prompt := "Cut aviation emissions at JFK in half"

	a, err := svc.Simulate(context.Background(), prompt)
	require.NoError(t, err)
	b, err := svc.Simulate(context.Background(), prompt)
	require.NoError(t, err)

	require.Len(t, b.Grid, len(a.Grid))
	for i := range a.Grid {
		assert.Equal(t, a.Grid[i].Value, b.Grid[i].Value, "cell %d", i)
	}
}

func TestNew_Validation(t *testing.T) {
	ref, err := geography.Load()
	require.NoError(t, err)
	g, err := grid.NewBaseline(ref, 0)
	require.NoError(t, err)

	_, err = New(nil, g)
	assert.Error(t, err)

	_, err = New(intent.NewRuleExtractor(), nil)
	assert.Error(t, err)
}
