package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/parley-chat/parley/internal/logger"
	"github.com/parley-chat/parley/internal/store"
	"github.com/parley-chat/parley/internal/wire"
)

// Broadcaster pushes an event to every open relay connection.
type Broadcaster interface {
	Broadcast(event string, payload any)
}

// MessageHandler serves chat history and message deletion.
type MessageHandler struct {
	queries *store.Queries
	relay   Broadcaster
}

func NewMessageHandler(queries *store.Queries, relay Broadcaster) *MessageHandler {
	return &MessageHandler{queries: queries, relay: relay}
}

// ListMessages returns all messages ordered by creation time ascending.
func (h *MessageHandler) ListMessages(c *gin.Context) {
	messages, err := h.queries.ListMessages(c.Request.Context())
	if err != nil {
		logger.Errorf("Failed to list messages: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list messages"})
		return
	}

	response := make([]wire.MessagePayload, 0, len(messages))
	for _, m := range messages {
		payload := wire.MessagePayload{
			ID:        m.ID,
			Sender:    m.Sender,
			Content:   m.Content,
			CreatedAt: m.CreatedAt.UnixMilli(),
		}
		if m.ImageID.Valid {
			payload.ImageID = m.ImageID.String
		}
		response = append(response, payload)
	}

	c.JSON(http.StatusOK, gin.H{"messages": response})
}

// DeleteMessage deletes a message and broadcasts the deletion notice. The
// delete is idempotent: a missing id still produces the notice, since clients
// treat deletions idempotently anyway.
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	id := c.Param("id")

	err := h.queries.DeleteMessage(c.Request.Context(), id)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		logger.Errorf("Failed to delete message %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete message"})
		return
	}

	h.relay.Broadcast(wire.EventMessageDeleted, wire.MessageDeletedPayload{MessageID: id})
	c.JSON(http.StatusOK, gin.H{"success": true})
}
