package tasks

// Bound says which side of the threshold is healthy.
type Bound string

const (
	// BoundFloor flags values below the threshold.
	BoundFloor Bound = "floor"
	// BoundCeiling flags values above the threshold.
	BoundCeiling Bound = "ceiling"
)

// MetricRule defines one tracked metric: how it is recognized in free
// text, when it signals a problem, and the task it should raise.
type MetricRule struct {
	Name       string   // canonical metric name, e.g. "CTR"
	Slug       string   // stable id fragment, e.g. "ctr"
	Synonyms   []string // lowercased aliases recognized in snapshots
	Bound      Bound
	Threshold  float64
	TaskTitle  string
	ActionHint string
	Tags       []string
}

// Policy is the threshold table driving extraction and task synthesis.
// Thresholds are operator policy, not fixed truths, so they are
// overridable via configuration.
type Policy struct {
	Rules []MetricRule
}

// DefaultPolicy returns the stock threshold table. All values are
// percentages as reported in marketplace seller dashboards.
func DefaultPolicy() Policy {
	return Policy{Rules: []MetricRule{
		{
			Name:       "CTR",
			Slug:       "ctr",
			Synonyms:   []string{"click-through rate", "click through rate", "clickthrough", "ctr"},
			Bound:      BoundFloor,
			Threshold:  1.0,
			TaskTitle:  "Revive click-through rate",
			ActionHint: "Refresh hero images, tighten titles, and test new primary keywords.",
			Tags:       []string{"ads", "content"},
		},
		{
			Name:       "Conversion",
			Slug:       "conversion",
			Synonyms:   []string{"conversion rate", "conversion", "cvr"},
			Bound:      BoundFloor,
			Threshold:  2.0,
			TaskTitle:  "Improve conversion rate",
			ActionHint: "Review pricing against competitors and strengthen bullets, images, and reviews.",
			Tags:       []string{"pricing", "content"},
		},
		{
			Name:       "Cancellation Rate",
			Slug:       "cancellation-rate",
			Synonyms:   []string{"cancellation rate", "cancellations", "cancellation", "cancel rate"},
			Bound:      BoundCeiling,
			Threshold:  5.0,
			TaskTitle:  "Reduce order cancellations",
			ActionHint: "Audit stock sync and dispatch SLAs before marketplace penalties kick in.",
			Tags:       []string{"operations", "inventory"},
		},
		{
			Name:       "Return Rate",
			Slug:       "return-rate",
			Synonyms:   []string{"return rate", "returns", "return", "rto"},
			Bound:      BoundCeiling,
			Threshold:  10.0,
			TaskTitle:  "Cut down returns",
			ActionHint: "Check size charts, packaging, and photos against the shipped product.",
			Tags:       []string{"quality", "logistics"},
		},
	}}
}

// SetThreshold overrides the threshold for a metric by canonical name.
// Unknown names and non-positive values are ignored.
func (p *Policy) SetThreshold(name string, threshold float64) {
	if threshold <= 0 {
		return
	}
	for i := range p.Rules {
		if p.Rules[i].Name == name {
			p.Rules[i].Threshold = threshold
			return
		}
	}
}

// violated reports whether the observed value breaches the rule.
func (r MetricRule) violated(value float64) bool {
	if r.Bound == BoundFloor {
		return value < r.Threshold
	}
	return value > r.Threshold
}
