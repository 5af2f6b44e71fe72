package intent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carboniq/carboniq/internal/geography"
	"github.com/carboniq/carboniq/pkg/anthropic"
)

// mockAnthropicClient implements anthropic.Client for testing.
type mockAnthropicClient struct {
	mock.Mock
}

func (m *mockAnthropicClient) Analyze(ctx context.Context, req anthropic.AnalysisRequest) (*anthropic.AnalysisResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*anthropic.AnalysisResponse), args.Error(1)
}

func TestClaudeExtractor_Extract(t *testing.T) {
	mc := new(mockAnthropicClient)
	mc.On("Analyze", mock.Anything, mock.MatchedBy(func(req anthropic.AnalysisRequest) bool {
		return req.Temperature != nil && *req.Temperature == 0 && req.System != ""
	})).Return(&anthropic.AnalysisResponse{
		ID:   "msg_1",
		Text: `{"related": true, "sector": "transport", "borough": "manhattan", "direction": "decrease", "percent": 20, "confidence": 0.92}`,
	}, nil)

	e := NewClaudeExtractor(mc, ClaudeConfig{})
	in, err := e.Extract(context.Background(), "Reduce traffic in Manhattan by 20%")
	require.NoError(t, err)
	assert.Equal(t, geography.SectorTransport, in.Sector)
	assert.Equal(t, geography.BoroughManhattan, in.Borough)
	assert.InDelta(t, -20, in.Magnitude, 0.001)
	assert.Equal(t, SourceClaude, in.Source)

	mc.AssertExpectations(t)
}

func TestClaudeExtractor_APIError(t *testing.T) {
	mc := new(mockAnthropicClient)
	mc.On("Analyze", mock.Anything, mock.Anything).
		Return(nil, errors.New("invalid_request_error: bad key"))

	e := NewClaudeExtractor(mc, ClaudeConfig{MaxRetries: 1})
	_, err := e.Extract(context.Background(), "Reduce traffic in Manhattan")
	assert.Error(t, err)
}

func TestClaudeExtractor_UnparseableResponse(t *testing.T) {
	mc := new(mockAnthropicClient)
	mc.On("Analyze", mock.Anything, mock.Anything).Return(&anthropic.AnalysisResponse{
		ID:   "msg_2",
		Text: "Sorry, I can't help with that.",
	}, nil)

	e := NewClaudeExtractor(mc, ClaudeConfig{})
	_, err := e.Extract(context.Background(), "Reduce traffic in Manhattan")
	assert.Error(t, err)
}

func TestChain_FallsThroughToRules(t *testing.T) {
	mc := new(mockAnthropicClient)
	mc.On("Analyze", mock.Anything, mock.Anything).
		Return(nil, errors.New("authentication_error"))

	chain := NewChain(
		NewClaudeExtractor(mc, ClaudeConfig{MaxRetries: 0}),
		NewRuleExtractor(),
	)

	in, err := chain.Extract(context.Background(), "Reduce traffic emissions in Manhattan by 20%")
	require.NoError(t, err)
	assert.Equal(t, SourceRules, in.Source)
	assert.Equal(t, geography.BoroughManhattan, in.Borough)
	assert.InDelta(t, -20, in.Magnitude, 0.001)
}

func TestChain_SkipsNilLayers(t *testing.T) {
	chain := NewChain(nil, NewRuleExtractor())

	in, err := chain.Extract(context.Background(), "Reduce traffic by 10%")
	require.NoError(t, err)
	assert.Equal(t, SourceRules, in.Source)
}

func TestChain_AllLayersFail_ReturnsDefault(t *testing.T) {
	mc := new(mockAnthropicClient)
	mc.On("Analyze", mock.Anything, mock.Anything).
		Return(nil, errors.New("authentication_error"))

	chain := NewChain(NewClaudeExtractor(mc, ClaudeConfig{MaxRetries: 0}))

	in, err := chain.Extract(context.Background(), "anything at all")
	require.NoError(t, err)
	assert.Equal(t, Default(), in)
}
