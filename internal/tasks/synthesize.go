package tasks

import (
	"fmt"

	"github.com/sellerops/commercedesk/internal/models"
)

// Synthesize converts threshold violations in a snapshot into task
// recommendations. Each violated rule yields exactly one task whose id
// is derived from the metric and the breached bound, so the same
// condition maps to the same id across runs. Healthy metrics yield
// nothing; no violations yields an empty slice.
func (a *Analyzer) Synthesize(snapshot models.PerformanceSnapshot) []models.TaskRecommendation {
	recs := []models.TaskRecommendation{}

	for _, rule := range a.policy.Rules {
		value, reported := snapshot.Metrics[rule.Name]
		if !reported || !rule.violated(value) {
			continue
		}

		recs = append(recs, models.TaskRecommendation{
			ID:           taskID(rule),
			Title:        rule.TaskTitle,
			Description:  describe(rule, value),
			Priority:     priorityFor(rule, value),
			Status:       models.TaskPending,
			Tags:         append([]string{}, rule.Tags...),
			MetricImpact: map[string]float64{rule.Name: value},
		})
	}

	return recs
}

// taskID is stable and order-independent: metric slug plus the breached
// bound tier.
func taskID(rule MetricRule) string {
	if rule.Bound == BoundFloor {
		return rule.Slug + "-below-floor"
	}
	return rule.Slug + "-above-ceiling"
}

func describe(rule MetricRule, value float64) string {
	if rule.Bound == BoundFloor {
		return fmt.Sprintf("%s is at %.2f, below the healthy floor of %.2f. %s", rule.Name, value, rule.Threshold, rule.ActionHint)
	}
	return fmt.Sprintf("%s is at %.2f, above the ceiling of %.2f. %s", rule.Name, value, rule.Threshold, rule.ActionHint)
}

// priorityFor grades how far the value deviates from its threshold.
// Floors: at or below half the floor is high, within 80% is medium.
// Ceilings: 175% of the ceiling or more is high, 125% or more is medium.
func priorityFor(rule MetricRule, value float64) models.TaskPriority {
	if rule.Bound == BoundFloor {
		switch {
		case value <= rule.Threshold*0.5:
			return models.PriorityHigh
		case value <= rule.Threshold*0.8:
			return models.PriorityMedium
		default:
			return models.PriorityLow
		}
	}
	switch {
	case value >= rule.Threshold*1.75:
		return models.PriorityHigh
	case value >= rule.Threshold*1.25:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}
