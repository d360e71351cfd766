package agent

import (
	"fmt"
	"time"

	"github.com/sellerops/commercedesk/internal/models"
)

// ConversationLog is the append-only message history for one session.
// Message ids come from the next log index, so the log itself owns id
// assignment. Not safe for concurrent use; callers serialize access.
type ConversationLog struct {
	messages []models.AgentMessage
}

// Append records a message and returns it with its assigned id.
func (l *ConversationLog) Append(role models.MessageRole, text string) models.AgentMessage {
	msg := models.AgentMessage{
		ID:        fmt.Sprintf("%s-%d", role, len(l.messages)+1),
		Role:      role,
		Text:      text,
		Timestamp: time.Now().UTC(),
	}
	l.messages = append(l.messages, msg)
	return msg
}

// Messages returns a copy of the log in append order.
func (l *ConversationLog) Messages() []models.AgentMessage {
	out := make([]models.AgentMessage, len(l.messages))
	copy(out, l.messages)
	return out
}

// Len reports how many messages the log holds.
func (l *ConversationLog) Len() int {
	return len(l.messages)
}
