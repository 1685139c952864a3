package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/parley-chat/parley/internal/api/middleware"
	"github.com/parley-chat/parley/internal/logger"
	"github.com/parley-chat/parley/internal/store"
)

// CallHandler serves call history.
type CallHandler struct {
	queries *store.Queries
}

func NewCallHandler(queries *store.Queries) *CallHandler {
	return &CallHandler{queries: queries}
}

type callRecordResponse struct {
	ID        string `json:"id"`
	Caller    string `json:"caller"`
	Callee    string `json:"callee"`
	StartedAt int64  `json:"startedAt"`
}

// ListCalls returns the call history of the authenticated user.
func (h *CallHandler) ListCalls(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	records, err := h.queries.ListCallRecords(c.Request.Context(), userID)
	if err != nil {
		logger.Errorf("Failed to list call records for %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list call records"})
		return
	}

	response := make([]callRecordResponse, 0, len(records))
	for _, r := range records {
		response = append(response, callRecordResponse{
			ID:        r.ID,
			Caller:    r.Caller,
			Callee:    r.Callee,
			StartedAt: r.StartedAt.UnixMilli(),
		})
	}

	c.JSON(http.StatusOK, gin.H{"calls": response})
}
