package handlers

import (
	"context"
	"time"

	"github.com/parley-chat/parley/internal/store"
)

// MessageQueries is the subset of message persistence used by ws handlers.
type MessageQueries interface {
	SaveMessage(ctx context.Context, arg store.SaveMessageParams) (store.Message, error)
}

// CallQueries is the subset of call-history persistence used by ws handlers.
type CallQueries interface {
	SaveCallRecord(ctx context.Context, arg store.SaveCallRecordParams) error
}

// PeerLocator provides read-only lookup of the connection currently bound to a
// user. Absence means the target is offline.
type PeerLocator interface {
	Lookup(userID string) (connID string, ok bool)
}

// TypingState mutates the shared typing set and returns the resulting full
// set.
type TypingState interface {
	MarkTyping(userID string) []string
	ClearTyping(userID string) []string
}

// ReactionAppender appends to the shared in-memory reaction log.
type ReactionAppender interface {
	Add(messageID, emoji string)
}

// Deps holds the narrow dependencies required by ws handlers.
type Deps struct {
	messages  MessageQueries
	calls     CallQueries
	peers     PeerLocator
	typing    TypingState
	reactions ReactionAppender
	now       func() time.Time
}

// NewDeps builds a dependency bundle for handler calls.
func NewDeps(
	messages MessageQueries,
	calls CallQueries,
	peers PeerLocator,
	typing TypingState,
	reactions ReactionAppender,
	now func() time.Time,
) Deps {
	return Deps{
		messages:  messages,
		calls:     calls,
		peers:     peers,
		typing:    typing,
		reactions: reactions,
		now:       now,
	}
}

func (d Deps) Messages() MessageQueries    { return d.messages }
func (d Deps) Calls() CallQueries          { return d.calls }
func (d Deps) Peers() PeerLocator          { return d.peers }
func (d Deps) Typing() TypingState         { return d.typing }
func (d Deps) Reactions() ReactionAppender { return d.reactions }
func (d Deps) Now() time.Time {
	if d.now != nil {
		return d.now()
	}
	return time.Now()
}
