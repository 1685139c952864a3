package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/parley-chat/parley/internal/crypto"
)

const tokenTTL = 30 * 24 * time.Hour

// AuthHandler issues the bearer tokens used by the HTTP API and the websocket
// endpoint. Tokens assert an application identity; there is no credential
// check behind them.
type AuthHandler struct {
	tokens *crypto.TokenManager
}

func NewAuthHandler(tokens *crypto.TokenManager) *AuthHandler {
	return &AuthHandler{tokens: tokens}
}

type authRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// PostAuth exchanges a user id for a signed token.
func (h *AuthHandler) PostAuth(c *gin.Context) {
	var req authRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	token, err := h.tokens.IssueToken(req.UserID, tokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"userId": req.UserID,
	})
}
