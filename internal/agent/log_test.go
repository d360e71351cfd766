package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellerops/commercedesk/internal/models"
)

func TestConversationLog_AppendAssignsIndexIDs(t *testing.T) {
	var log ConversationLog

	first := log.Append(models.RoleUser, "hello")
	second := log.Append(models.RoleAgent, "hi there")
	third := log.Append(models.RoleUser, "status")

	assert.Equal(t, "user-1", first.ID)
	assert.Equal(t, "agent-2", second.ID)
	assert.Equal(t, "user-3", third.ID)
	assert.Equal(t, 3, log.Len())
}

func TestConversationLog_MessagesReturnsCopy(t *testing.T) {
	var log ConversationLog
	log.Append(models.RoleUser, "hello")

	messages := log.Messages()
	require.Len(t, messages, 1)
	messages[0].Text = "mutated"

	assert.Equal(t, "hello", log.Messages()[0].Text)
}
