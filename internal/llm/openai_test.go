package llm

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/notetutor/notetutor/store"
)

func TestMessageType(t *testing.T) {
	require.Equal(t, llms.ChatMessageTypeSystem, messageType(store.RoleSystem))
	require.Equal(t, llms.ChatMessageTypeHuman, messageType(store.RoleUser))
	require.Equal(t, llms.ChatMessageTypeAI, messageType(store.RoleAssistant))
}
