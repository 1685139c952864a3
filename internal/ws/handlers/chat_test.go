package handlers

import (
	"context"
	"fmt"
	"testing"

	"github.com/parley-chat/parley/internal/store"
	"github.com/parley-chat/parley/internal/wire"
	"github.com/stretchr/testify/require"
)

func TestChatSend_PersistsThenBroadcasts(t *testing.T) {
	var saved store.SaveMessageParams
	messages := fakeMessageQueries{
		save: func(ctx context.Context, arg store.SaveMessageParams) (store.Message, error) {
			saved = arg
			return store.Message{
				ID:        "msg-1",
				Sender:    arg.Sender,
				Content:   arg.Content,
				ImageID:   arg.ImageID,
				CreatedAt: arg.CreatedAt,
			}, nil
		},
	}
	deps := NewDeps(messages, nil, nil, nil, nil, fixedNow)

	res := ChatSend(context.Background(), deps, NewConnContext("alice", "conn-1"), wire.ChatSendPayload{
		Sender:  "alice",
		Content: "hello",
	})

	require.Equal(t, "alice", saved.Sender)
	require.Equal(t, fixedNow(), saved.CreatedAt)

	require.Len(t, res.Emits(), 1)
	emit := res.Emits()[0]
	require.True(t, emit.IsBroadcast())
	require.Equal(t, wire.EventMessage, emit.Event())

	payload, ok := emit.Payload().(wire.MessagePayload)
	require.True(t, ok)
	require.Equal(t, "msg-1", payload.ID)
	require.Equal(t, "hello", payload.Content)
	require.Equal(t, fixedNow().UnixMilli(), payload.CreatedAt)
}

func TestChatSend_StoreFailureRepliesToSenderOnly(t *testing.T) {
	messages := fakeMessageQueries{
		save: func(ctx context.Context, arg store.SaveMessageParams) (store.Message, error) {
			return store.Message{}, fmt.Errorf("disk full")
		},
	}
	deps := NewDeps(messages, nil, nil, nil, nil, fixedNow)

	res := ChatSend(context.Background(), deps, NewConnContext("alice", "conn-1"), wire.ChatSendPayload{
		Sender:  "alice",
		Content: "hello",
	})

	require.Len(t, res.Emits(), 1)
	emit := res.Emits()[0]
	require.True(t, emit.IsReply())
	require.Equal(t, wire.EventError, emit.Event())
}

func TestChatSend_MissingContent(t *testing.T) {
	deps := NewDeps(fakeMessageQueries{}, nil, nil, nil, nil, fixedNow)

	res := ChatSend(context.Background(), deps, NewConnContext("alice", "conn-1"), wire.ChatSendPayload{
		Sender: "alice",
	})

	require.Len(t, res.Emits(), 1)
	require.True(t, res.Emits()[0].IsReply())
	require.Equal(t, wire.EventError, res.Emits()[0].Event())
}

func TestChatSend_SenderDefaultsToRegisteredUser(t *testing.T) {
	messages := fakeMessageQueries{
		save: func(ctx context.Context, arg store.SaveMessageParams) (store.Message, error) {
			return store.Message{ID: "msg-2", Sender: arg.Sender, Content: arg.Content, CreatedAt: arg.CreatedAt}, nil
		},
	}
	deps := NewDeps(messages, nil, nil, nil, nil, fixedNow)

	res := ChatSend(context.Background(), deps, NewConnContext("alice", "conn-1"), wire.ChatSendPayload{
		Content: "hi there",
	})

	payload := res.Emits()[0].Payload().(wire.MessagePayload)
	require.Equal(t, "alice", payload.Sender)
}

func TestMessageRead_BroadcastsReceipt(t *testing.T) {
	deps := NewDeps(nil, nil, nil, nil, nil, fixedNow)

	res := MessageRead(deps, NewConnContext("bob", "conn-2"), wire.MessageReadPayload{
		MessageID: "msg-1",
	})

	require.Len(t, res.Emits(), 1)
	emit := res.Emits()[0]
	require.True(t, emit.IsBroadcast())
	require.Equal(t, wire.EventReadReceipt, emit.Event())
	payload := emit.Payload().(wire.ReadReceiptPayload)
	require.Equal(t, "msg-1", payload.MessageID)
	require.Equal(t, "bob", payload.UserID)
}

func TestMessageRead_MissingMessageID(t *testing.T) {
	deps := NewDeps(nil, nil, nil, nil, nil, fixedNow)

	res := MessageRead(deps, NewConnContext("bob", "conn-2"), wire.MessageReadPayload{})

	require.Empty(t, res.Emits())
}
