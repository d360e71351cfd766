package tasks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_MetricNameValuePairs(t *testing.T) {
	analyzer := NewAnalyzer(DefaultPolicy())

	snapshot := analyzer.Extract("CTR: 0.9, Conversion: 1.4, Cancellation Rate: 2.1, Return Rate: 3.5")

	require.Len(t, snapshot.Metrics, 4)
	assert.Equal(t, 0.9, snapshot.Metrics["CTR"])
	assert.Equal(t, 1.4, snapshot.Metrics["Conversion"])
	assert.Equal(t, 2.1, snapshot.Metrics["Cancellation Rate"])
	assert.Equal(t, 3.5, snapshot.Metrics["Return Rate"])
}

func TestExtract_SynonymsAndCase(t *testing.T) {
	analyzer := NewAnalyzer(DefaultPolicy())

	tests := []struct {
		name   string
		text   string
		metric string
		want   float64
	}{
		{name: "click through rate", text: "click through rate 0.7 today", metric: "CTR", want: 0.7},
		{name: "uppercase ctr", text: "Amazon CTR: 0.9", metric: "CTR", want: 0.9},
		{name: "cvr", text: "CVR = 2.4", metric: "Conversion", want: 2.4},
		{name: "cancellations", text: "cancellations at 6.5%", metric: "Cancellation Rate", want: 6.5},
		{name: "rto", text: "RTO: 12", metric: "Return Rate", want: 12},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			snapshot := analyzer.Extract(tc.text)
			assert.Equal(t, tc.want, snapshot.Metrics[tc.metric])
		})
	}
}

func TestExtract_PercentSignTolerated(t *testing.T) {
	analyzer := NewAnalyzer(DefaultPolicy())
	snapshot := analyzer.Extract("CTR: 1.2%")
	assert.Equal(t, 1.2, snapshot.Metrics["CTR"])
}

func TestExtract_UnrecognizedText(t *testing.T) {
	analyzer := NewAnalyzer(DefaultPolicy())

	snapshot := analyzer.Extract("all good today")

	assert.Empty(t, snapshot.Metrics)
	assert.Contains(t, snapshot.Narrative, "No recognizable metrics")
}

func TestExtract_AbsentMetricsNotZeroed(t *testing.T) {
	analyzer := NewAnalyzer(DefaultPolicy())

	snapshot := analyzer.Extract("CTR: 2.5")

	require.Len(t, snapshot.Metrics, 1)
	assert.NotContains(t, snapshot.Metrics, "Conversion")
	assert.NotContains(t, snapshot.Metrics, "Return Rate")
}

func TestExtract_NarrativeHealthy(t *testing.T) {
	analyzer := NewAnalyzer(DefaultPolicy())

	snapshot := analyzer.Extract("CTR: 2.5, Conversion: 3.0")
	assert.Equal(t, "All 2 reported metrics are within healthy range.", snapshot.Narrative)
}

func TestExtract_NarrativeAtRisk(t *testing.T) {
	analyzer := NewAnalyzer(DefaultPolicy())

	snapshot := analyzer.Extract("CTR: 0.4, Conversion: 3.0, Cancellation Rate: 9.5")
	assert.Equal(t, "2 of 3 reported metrics need attention: CTR, Cancellation Rate.", snapshot.Narrative)
}

func TestSetThreshold(t *testing.T) {
	policy := DefaultPolicy()
	policy.SetThreshold("CTR", 2.0)
	policy.SetThreshold("CTR", -1) // ignored
	policy.SetThreshold("Nope", 5) // ignored

	analyzer := NewAnalyzer(policy)
	snapshot := analyzer.Extract("CTR: 1.5")
	assert.Contains(t, snapshot.Narrative, "1 of 1")
}
