package handlers

import (
	"context"
	"database/sql"

	"github.com/parley-chat/parley/internal/logger"
	"github.com/parley-chat/parley/internal/store"
	"github.com/parley-chat/parley/internal/wire"
)

// ChatSend persists an outbound chat message and broadcasts the
// store-confirmed form. Persistence is synchronous: nobody sees a message the
// store did not accept; a store failure is reported to the sender only.
func ChatSend(ctx context.Context, deps Deps, conn ConnContext, req wire.ChatSendPayload) EventResult {
	sender := req.Sender
	if sender == "" {
		sender = conn.UserID()
	}
	if sender == "" || req.Content == "" {
		return NewEventResult(newReply(wire.EventError, wire.ErrorPayload{Message: "sender and content are required"}))
	}

	var imageID sql.NullString
	if req.ImageID != "" {
		imageID = sql.NullString{String: req.ImageID, Valid: true}
	}

	msg, err := deps.Messages().SaveMessage(ctx, store.SaveMessageParams{
		Sender:    sender,
		Content:   req.Content,
		ImageID:   imageID,
		CreatedAt: deps.Now(),
	})
	if err != nil {
		logger.Warnf("Failed to save message from %s: %v", sender, err)
		return NewEventResult(newReply(wire.EventError, wire.ErrorPayload{Message: "failed to save message"}))
	}

	payload := wire.MessagePayload{
		ID:        msg.ID,
		Sender:    msg.Sender,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt.UnixMilli(),
	}
	if msg.ImageID.Valid {
		payload.ImageID = msg.ImageID.String
	}
	return NewEventResult(newBroadcast(wire.EventMessage, payload))
}

// MessageRead broadcasts a read receipt.
func MessageRead(deps Deps, conn ConnContext, req wire.MessageReadPayload) EventResult {
	userID := req.UserID
	if userID == "" {
		userID = conn.UserID()
	}
	if req.MessageID == "" || userID == "" {
		return NewEventResult()
	}
	return NewEventResult(newBroadcast(wire.EventReadReceipt, wire.ReadReceiptPayload{
		MessageID: req.MessageID,
		UserID:    userID,
	}))
}
