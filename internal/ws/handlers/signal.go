package handlers

import (
	"context"

	"github.com/parley-chat/parley/internal/logger"
	"github.com/parley-chat/parley/internal/store"
	"github.com/parley-chat/parley/internal/wire"
)

// All four signal kinds follow the identical shape: look up the single
// connection bound to the target user and forward there, or tell the sender
// (and only the sender) that the target is unreachable. Signals are never
// queued or retried; the caller's client owns any retry or call-abort UI.

// CallOffer routes a call offer and records one call-history row.
func CallOffer(ctx context.Context, deps Deps, conn ConnContext, req wire.CallOfferPayload) EventResult {
	from := senderID(conn, req.From)
	result := routeSignal(deps, req.To, wire.EventIncomingCall, wire.IncomingCallPayload{
		From:  from,
		Offer: req.Offer,
	})

	// Call history is best effort; a store failure never blocks signaling.
	if err := deps.Calls().SaveCallRecord(ctx, store.SaveCallRecordParams{
		Caller:    from,
		Callee:    req.To,
		StartedAt: deps.Now(),
	}); err != nil {
		logger.Warnf("Failed to save call record %s -> %s: %v", from, req.To, err)
	}

	return result
}

// CallAnswer routes a call answer back to the offering peer.
func CallAnswer(deps Deps, conn ConnContext, req wire.CallAnswerPayload) EventResult {
	from := senderID(conn, req.From)
	return routeSignal(deps, req.To, wire.EventCallAccepted, wire.CallAcceptedPayload{
		From:   from,
		Answer: req.Answer,
	})
}

// IceCandidate routes one ICE candidate to the call peer.
func IceCandidate(deps Deps, conn ConnContext, req wire.IceCandidatePayload) EventResult {
	from := senderID(conn, req.From)
	return routeSignal(deps, req.To, wire.EventIceCandidate, wire.RemoteCandidatePayload{
		From:      from,
		Candidate: req.Candidate,
	})
}

// CallEnd routes a hang-up notice to the call peer.
func CallEnd(deps Deps, conn ConnContext, req wire.CallEndPayload) EventResult {
	from := senderID(conn, req.From)
	return routeSignal(deps, req.To, wire.EventCallEnded, wire.CallEndedPayload{From: from})
}

// routeSignal delivers a signal to at most one connection: the one currently
// bound to the target user. An offline target yields exactly one unreachable
// notice to the sender and nothing anywhere else.
func routeSignal(deps Deps, to, event string, payload any) EventResult {
	if to == "" {
		return NewEventResult(newReply(wire.EventError, wire.ErrorPayload{Message: "target user is required"}))
	}
	connID, ok := deps.Peers().Lookup(to)
	if !ok {
		return NewEventResult(newReply(wire.EventTargetUnreachable, wire.TargetUnreachablePayload{To: to}))
	}
	return NewEventResult(newDirect(connID, event, payload))
}

// senderID prefers the connection's registered identity over the
// client-supplied from field.
func senderID(conn ConnContext, claimed string) string {
	if conn.UserID() != "" {
		return conn.UserID()
	}
	return claimed
}
