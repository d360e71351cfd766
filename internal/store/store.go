// Package store holds all session state the core engine deliberately
// does not own: normalized rows, the current dataset, the task list,
// and the conversation log. Everything lives in memory for the lifetime
// of the process; the engine itself stays pure.
package store

import (
	"sync"

	"github.com/sellerops/commercedesk/internal/agent"
	"github.com/sellerops/commercedesk/internal/models"
	"github.com/sellerops/commercedesk/internal/tasks"
)

type Store struct {
	mu          sync.RWMutex
	rows        []models.CatalogRow
	skippedRows int
	dataset     *models.CatalogDataset
	tasks       []models.TaskRecommendation
	log         agent.ConversationLog
}

func New() *Store {
	return &Store{}
}

// ReplaceRows swaps in a freshly ingested batch. The previous rows and
// any generated dataset are discarded; a new sheet starts a new cycle.
func (s *Store) ReplaceRows(rows []models.CatalogRow, skipped int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = rows
	s.skippedRows = skipped
	s.dataset = nil
}

// Rows returns the current row batch and the count filtered out during
// normalization.
func (s *Store) Rows() ([]models.CatalogRow, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.CatalogRow, len(s.rows))
	copy(out, s.rows)
	return out, s.skippedRows
}

// ReplaceDataset swaps the generated dataset wholesale.
func (s *Store) ReplaceDataset(dataset models.CatalogDataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dataset = &dataset
}

// Dataset returns the current dataset, or nil before the first
// generation.
func (s *Store) Dataset() *models.CatalogDataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset
}

// MergeTasks folds a synthesized batch into the task list and returns
// the merged result.
func (s *Store) MergeTasks(incoming []models.TaskRecommendation) []models.TaskRecommendation {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = tasks.Merge(s.tasks, incoming)
	out := make([]models.TaskRecommendation, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Tasks returns a copy of the current task list.
func (s *Store) Tasks() []models.TaskRecommendation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.TaskRecommendation, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// SetTaskStatus toggles one task's status. Returns false for an unknown
// id.
func (s *Store) SetTaskStatus(id string, status models.TaskStatus) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Status = status
			return true
		}
	}
	return false
}

// AppendMessage adds a message to the conversation log and returns it
// with its log-assigned id.
func (s *Store) AppendMessage(role models.MessageRole, text string) models.AgentMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.Append(role, text)
}

// Conversation returns the message history in append order.
func (s *Store) Conversation() []models.AgentMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.log.Messages()
}
