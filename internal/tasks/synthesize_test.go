package tasks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellerops/commercedesk/internal/models"
)

func TestSynthesize_CancellationBreach(t *testing.T) {
	analyzer := NewAnalyzer(DefaultPolicy())

	snapshot := analyzer.Extract("Cancellation Rate: 9.5")
	recs := analyzer.Synthesize(snapshot)

	require.Len(t, recs, 1)
	task := recs[0]
	assert.Equal(t, "cancellation-rate-above-ceiling", task.ID)
	assert.Equal(t, models.PriorityHigh, task.Priority)
	assert.Equal(t, models.TaskPending, task.Status)
	assert.Contains(t, task.Tags, "operations")
	assert.Equal(t, map[string]float64{"Cancellation Rate": 9.5}, task.MetricImpact)

	// Identical input maps to the identical id.
	again := analyzer.Synthesize(analyzer.Extract("Cancellation Rate: 9.5"))
	require.Len(t, again, 1)
	assert.Equal(t, task.ID, again[0].ID)
}

func TestSynthesize_HealthyMetricsProduceNothing(t *testing.T) {
	analyzer := NewAnalyzer(DefaultPolicy())

	recs := analyzer.Synthesize(analyzer.Extract("CTR: 2.5, Conversion: 4.0, Cancellation Rate: 1.0"))
	assert.Empty(t, recs)
}

func TestSynthesize_EmptySnapshot(t *testing.T) {
	analyzer := NewAnalyzer(DefaultPolicy())
	assert.Empty(t, analyzer.Synthesize(models.PerformanceSnapshot{}))
}

func TestSynthesize_PriorityTiers(t *testing.T) {
	analyzer := NewAnalyzer(DefaultPolicy())

	tests := []struct {
		name string
		text string
		want models.TaskPriority
	}{
		{name: "ctr severe", text: "CTR: 0.3", want: models.PriorityHigh},     // <= 50% of floor 1.0
		{name: "ctr moderate", text: "CTR: 0.7", want: models.PriorityMedium}, // <= 80% of floor
		{name: "ctr mild", text: "CTR: 0.9", want: models.PriorityLow},
		{name: "returns severe", text: "Return Rate: 18", want: models.PriorityHigh},    // >= 175% of ceiling 10
		{name: "returns moderate", text: "Return Rate: 13", want: models.PriorityMedium}, // >= 125%
		{name: "returns mild", text: "Return Rate: 11", want: models.PriorityLow},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recs := analyzer.Synthesize(analyzer.Extract(tc.text))
			require.Len(t, recs, 1)
			assert.Equal(t, tc.want, recs[0].Priority)
		})
	}
}

func TestSynthesize_MultipleBreachesOnePerMetric(t *testing.T) {
	analyzer := NewAnalyzer(DefaultPolicy())

	recs := analyzer.Synthesize(analyzer.Extract("CTR: 0.2, Conversion: 0.5, Cancellation Rate: 12, Return Rate: 20"))
	require.Len(t, recs, 4)

	seen := map[string]bool{}
	for _, task := range recs {
		assert.False(t, seen[task.ID], "duplicate id %s", task.ID)
		seen[task.ID] = true
	}
}

func TestSynthesize_DescriptionNamesThreshold(t *testing.T) {
	analyzer := NewAnalyzer(DefaultPolicy())

	recs := analyzer.Synthesize(analyzer.Extract("CTR: 0.4"))
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0].Description, "0.40")
	assert.Contains(t, recs[0].Description, "1.00")
}
