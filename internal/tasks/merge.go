package tasks

import "github.com/sellerops/commercedesk/internal/models"

// Merge folds freshly synthesized recommendations into an existing list.
// A task with a known id is updated in place (priority, description,
// tags, metric impact) but keeps its status, so an operator's done mark
// survives re-analysis. Unknown ids append as pending. Existing tasks
// absent from the new batch are kept untouched; recommendations are
// additive, never auto-deleted. Idempotent: merging the same batch twice
// equals merging it once. Inputs are not mutated.
func Merge(existing, incoming []models.TaskRecommendation) []models.TaskRecommendation {
	merged := make([]models.TaskRecommendation, len(existing))
	copy(merged, existing)

	index := make(map[string]int, len(merged))
	for i, task := range merged {
		index[task.ID] = i
	}

	for _, task := range incoming {
		if i, ok := index[task.ID]; ok {
			status := merged[i].Status
			merged[i] = task
			merged[i].Status = status
			continue
		}
		task.Status = models.TaskPending
		index[task.ID] = len(merged)
		merged = append(merged, task)
	}

	return merged
}
