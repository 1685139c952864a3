package ws

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReactionLog_AppendsWithoutDedup(t *testing.T) {
	l := NewReactionLog()

	l.Add("msg-1", "👍")
	l.Add("msg-1", "👍")
	l.Add("msg-1", "🎉")

	require.Equal(t, []string{"👍", "👍", "🎉"}, l.Reactions("msg-1"))
	require.Empty(t, l.Reactions("msg-2"))
}

func TestReactionLog_ReturnsCopy(t *testing.T) {
	l := NewReactionLog()
	l.Add("msg-1", "👍")

	seq := l.Reactions("msg-1")
	seq[0] = "💥"

	require.Equal(t, []string{"👍"}, l.Reactions("msg-1"))
}
