package handlers

import (
	"testing"

	"github.com/parley-chat/parley/internal/wire"
	"github.com/stretchr/testify/require"
)

func TestReactionAdd_RepeatedReactionsAccumulate(t *testing.T) {
	reactions := &fakeReactions{}
	deps := NewDeps(nil, nil, nil, nil, reactions, fixedNow)
	conn := NewConnContext("alice", "conn-1")
	req := wire.ReactionPayload{MessageID: "msg-1", Emoji: "👍"}

	first := ReactionAdd(deps, conn, req)
	second := ReactionAdd(deps, conn, req)

	// No dedup: two appends, two broadcast events.
	require.Equal(t, []string{"msg-1/👍", "msg-1/👍"}, reactions.added)
	for _, res := range []EventResult{first, second} {
		require.Len(t, res.Emits(), 1)
		emit := res.Emits()[0]
		require.True(t, emit.IsBroadcast())
		require.Equal(t, wire.EventReactionAdded, emit.Event())
		payload := emit.Payload().(wire.ReactionAddedPayload)
		require.Equal(t, "msg-1", payload.MessageID)
		require.Equal(t, "👍", payload.Emoji)
	}
}

func TestReactionAdd_MissingFields(t *testing.T) {
	reactions := &fakeReactions{}
	deps := NewDeps(nil, nil, nil, nil, reactions, fixedNow)

	res := ReactionAdd(deps, NewConnContext("alice", "conn-1"), wire.ReactionPayload{Emoji: "👍"})

	require.Empty(t, res.Emits())
	require.Empty(t, reactions.added)
}
