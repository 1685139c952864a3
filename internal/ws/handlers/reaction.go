package handlers

import "github.com/parley-chat/parley/internal/wire"

// ReactionAdd appends one emoji reaction and broadcasts the single addition
// (not the whole history). Repeated identical reactions accumulate.
func ReactionAdd(deps Deps, conn ConnContext, req wire.ReactionPayload) EventResult {
	if req.MessageID == "" || req.Emoji == "" {
		return NewEventResult()
	}
	deps.Reactions().Add(req.MessageID, req.Emoji)
	return NewEventResult(newBroadcast(wire.EventReactionAdded, wire.ReactionAddedPayload{
		MessageID: req.MessageID,
		Emoji:     req.Emoji,
	}))
}
