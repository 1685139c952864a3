package handlers

import "github.com/parley-chat/parley/internal/wire"

// Typing flags a user as typing and broadcasts the full typing set. The full
// set (rather than a diff) keeps clients self-healing: one that missed an
// intermediate event converges on the next broadcast.
func Typing(deps Deps, conn ConnContext, req wire.TypingPayload) EventResult {
	userID := typingUser(conn, req)
	if userID == "" {
		return NewEventResult()
	}
	set := deps.Typing().MarkTyping(userID)
	return NewEventResult(newBroadcast(wire.EventTypingSet, wire.TypingSetPayload{Users: set}))
}

// StopTyping clears a user's typing flag and broadcasts the full typing set.
func StopTyping(deps Deps, conn ConnContext, req wire.TypingPayload) EventResult {
	userID := typingUser(conn, req)
	if userID == "" {
		return NewEventResult()
	}
	set := deps.Typing().ClearTyping(userID)
	return NewEventResult(newBroadcast(wire.EventTypingSet, wire.TypingSetPayload{Users: set}))
}

func typingUser(conn ConnContext, req wire.TypingPayload) string {
	if req.UserID != "" {
		return req.UserID
	}
	return conn.UserID()
}
