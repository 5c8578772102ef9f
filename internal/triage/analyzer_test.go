package triage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/triage-service/internal/domain"
)

func TestAnalyzeParsesClassifierReply(t *testing.T) {
	model := &fakeModel{reply: `{
		"category": "shipping",
		"priority": "high",
		"sentiment": -0.5,
		"tags": ["shipping", "delay"],
		"urgencyKeywords": ["never arrived"]
	}`}
	analyzer := NewAnalyzer(model, testLogger(), testMetrics())

	analysis := analyzer.Analyze(context.Background(), "Package never arrived", "It has been 3 weeks")

	assert.Equal(t, domain.CategoryShipping, analysis.Category)
	assert.Equal(t, domain.TicketPriorityHigh, analysis.Priority)
	assert.InDelta(t, -0.5, analysis.Sentiment, 1e-9)
	assert.Equal(t, []string{"shipping", "delay"}, analysis.Tags)
	assert.Equal(t, []string{"never arrived"}, analysis.UrgencyKeywords)
}

func TestAnalyzePromptCarriesTicketText(t *testing.T) {
	model := &fakeModel{reply: `{"category":"other","priority":"low","sentiment":0,"tags":[],"urgencyKeywords":[]}`}
	analyzer := NewAnalyzer(model, testLogger(), testMetrics())

	analyzer.Analyze(context.Background(), "Broken login", "Cannot sign in since yesterday")

	require.Len(t, model.prompts, 1)
	assert.Contains(t, model.prompts[0], "Subject: Broken login")
	assert.Contains(t, model.prompts[0], "Description: Cannot sign in since yesterday")
}

func TestAnalyzeFallbackOnMalformedJSON(t *testing.T) {
	model := &fakeModel{reply: "I think this is about shipping, priority high."}
	analyzer := NewAnalyzer(model, testLogger(), testMetrics())

	analysis := analyzer.Analyze(context.Background(), "subject", "description")

	assert.Equal(t, domain.FallbackAnalysis(), analysis)
}

func TestAnalyzeFallbackOnModelError(t *testing.T) {
	model := &fakeModel{err: errors.New("model unavailable")}
	analyzer := NewAnalyzer(model, testLogger(), testMetrics())

	analysis := analyzer.Analyze(context.Background(), "subject", "description")

	assert.Equal(t, domain.FallbackAnalysis(), analysis)
}

func TestAnalyzeFallbackOnUnknownCategory(t *testing.T) {
	model := &fakeModel{reply: `{"category":"billing","priority":"low","sentiment":0,"tags":[],"urgencyKeywords":[]}`}
	analyzer := NewAnalyzer(model, testLogger(), testMetrics())

	analysis := analyzer.Analyze(context.Background(), "subject", "description")

	assert.Equal(t, domain.FallbackAnalysis(), analysis)
}

func TestAnalyzeFallbackOnUnknownPriority(t *testing.T) {
	model := &fakeModel{reply: `{"category":"shipping","priority":"critical","sentiment":0,"tags":[],"urgencyKeywords":[]}`}
	analyzer := NewAnalyzer(model, testLogger(), testMetrics())

	analysis := analyzer.Analyze(context.Background(), "subject", "description")

	assert.Equal(t, domain.FallbackAnalysis(), analysis)
}

func TestAnalyzeFallbackOnWrongTypes(t *testing.T) {
	model := &fakeModel{reply: `{"category":"shipping","priority":"low","sentiment":"very negative","tags":[],"urgencyKeywords":[]}`}
	analyzer := NewAnalyzer(model, testLogger(), testMetrics())

	analysis := analyzer.Analyze(context.Background(), "subject", "description")

	assert.Equal(t, domain.FallbackAnalysis(), analysis)
}

func TestAnalyzeClampsSentiment(t *testing.T) {
	model := &fakeModel{reply: `{"category":"returns","priority":"low","sentiment":-3.2,"tags":[],"urgencyKeywords":[]}`}
	analyzer := NewAnalyzer(model, testLogger(), testMetrics())

	analysis := analyzer.Analyze(context.Background(), "subject", "description")

	assert.Equal(t, domain.CategoryReturns, analysis.Category)
	assert.InDelta(t, -1.0, analysis.Sentiment, 1e-9)

	model.reply = `{"category":"returns","priority":"low","sentiment":2.5,"tags":[],"urgencyKeywords":[]}`
	analysis = analyzer.Analyze(context.Background(), "subject", "description")
	assert.InDelta(t, 1.0, analysis.Sentiment, 1e-9)
}

func TestAnalyzeStripsCodeFence(t *testing.T) {
	model := &fakeModel{reply: "```json\n{\"category\":\"payment\",\"priority\":\"medium\",\"sentiment\":0.2,\"tags\":[\"refund\"],\"urgencyKeywords\":[]}\n```"}
	analyzer := NewAnalyzer(model, testLogger(), testMetrics())

	analysis := analyzer.Analyze(context.Background(), "subject", "description")

	assert.Equal(t, domain.CategoryPayment, analysis.Category)
	assert.Equal(t, []string{"refund"}, analysis.Tags)
}

func TestAnalyzeNormalizesMissingCollections(t *testing.T) {
	model := &fakeModel{reply: `{"category":"account","priority":"low","sentiment":0.1}`}
	analyzer := NewAnalyzer(model, testLogger(), testMetrics())

	analysis := analyzer.Analyze(context.Background(), "subject", "description")

	require.NotNil(t, analysis.Tags)
	require.NotNil(t, analysis.UrgencyKeywords)
	assert.Empty(t, analysis.Tags)
	assert.Empty(t, analysis.UrgencyKeywords)
}
