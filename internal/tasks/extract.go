package tasks

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sellerops/commercedesk/internal/models"
)

// Analyzer turns free-text performance snapshots into structured
// metrics and task recommendations under a threshold policy. Stateless
// after construction and safe for concurrent use.
type Analyzer struct {
	policy   Policy
	patterns []*regexp.Regexp // one per policy rule, same order
}

// NewAnalyzer compiles recognition patterns for every metric in the
// policy. Synonyms are matched case-insensitively, longest alias first,
// followed by a numeric value with an optional percent sign.
func NewAnalyzer(policy Policy) *Analyzer {
	a := &Analyzer{policy: policy}
	for _, rule := range policy.Rules {
		quoted := make([]string, 0, len(rule.Synonyms))
		for _, syn := range rule.Synonyms {
			quoted = append(quoted, regexp.QuoteMeta(syn))
		}
		expr := fmt.Sprintf(`(?i)\b(?:%s)\b\s*(?:at|is)?\s*[:=-]?\s*(\d+(?:\.\d+)?)\s*%%?`, strings.Join(quoted, "|"))
		a.patterns = append(a.patterns, regexp.MustCompile(expr))
	}
	return a
}

// Extract parses one free-text snapshot. Metrics absent from the text
// are absent from the result, never zeroed. Text with nothing
// recognizable yields an empty mapping and an explanatory narrative,
// not an error.
func (a *Analyzer) Extract(text string) models.PerformanceSnapshot {
	metrics := map[string]float64{}
	atRisk := []string{}

	for i, rule := range a.policy.Rules {
		match := a.patterns[i].FindStringSubmatch(text)
		if match == nil {
			continue
		}
		value, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			continue
		}
		metrics[rule.Name] = value
		if rule.violated(value) {
			atRisk = append(atRisk, rule.Name)
		}
	}

	return models.PerformanceSnapshot{
		Metrics:   metrics,
		Narrative: narrative(len(metrics), atRisk),
	}
}

func narrative(recognized int, atRisk []string) string {
	switch {
	case recognized == 0:
		return "No recognizable metrics in this snapshot. Mention metrics like CTR, Conversion, Cancellation Rate, or Return Rate with their values."
	case len(atRisk) == 0:
		return fmt.Sprintf("All %d reported metrics are within healthy range.", recognized)
	default:
		return fmt.Sprintf("%d of %d reported metrics need attention: %s.", len(atRisk), recognized, strings.Join(atRisk, ", "))
	}
}
