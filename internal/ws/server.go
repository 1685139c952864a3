package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/parley-chat/parley/internal/crypto"
	"github.com/parley-chat/parley/internal/logger"
	"github.com/parley-chat/parley/internal/notify"
	"github.com/parley-chat/parley/internal/store"
	"github.com/parley-chat/parley/internal/ws/handlers"
	"github.com/parley-chat/parley/internal/wire"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for now
	},
}

// Server is the websocket relay: it owns the roster and reaction log, accepts
// connections, dispatches inbound events to handlers, and applies the emit
// instructions they return.
type Server struct {
	roster    *Roster
	reactions *ReactionLog
	deps      handlers.Deps
	tokens    *crypto.TokenManager
	notifier  notify.Notifier

	mu      sync.Mutex
	clients map[string]*Client // connID -> client, every open connection
}

// NewServer creates a relay server. A nil token manager disables connection
// authentication; a nil notifier disables notifications.
func NewServer(queries *store.Queries, tokens *crypto.TokenManager, notifier notify.Notifier) *Server {
	if notifier == nil {
		notifier = notify.NopNotifier{}
	}
	roster := NewRoster()
	reactions := NewReactionLog()
	return &Server{
		roster:    roster,
		reactions: reactions,
		deps:      handlers.NewDeps(queries, queries, roster, roster, reactions, time.Now),
		tokens:    tokens,
		notifier:  notifier,
		clients:   make(map[string]*Client),
	}
}

// HandleWebSocket upgrades the connection and runs its read loop until the
// transport closes.
func (s *Server) HandleWebSocket(c *gin.Context) {
	subject, err := s.authenticate(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warnf("WebSocket upgrade error: %v", err)
		return
	}

	client := newClient(conn)
	s.mu.Lock()
	s.clients[client.ID] = client
	s.mu.Unlock()
	go client.writePump()

	logger.Infof("Connection %s opened", client.ID)
	s.readLoop(client, subject)
	s.disconnect(client)
}

// authenticate verifies the bearer token when a token manager is configured
// and returns the token subject.
func (s *Server) authenticate(c *gin.Context) (string, error) {
	if s.tokens == nil {
		return "", nil
	}
	token := c.Query("token")
	if token == "" {
		if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
			token = strings.TrimPrefix(header, "Bearer ")
		}
	}
	if token == "" {
		return "", fmt.Errorf("missing token")
	}
	claims, err := s.tokens.VerifyToken(token)
	if err != nil {
		return "", fmt.Errorf("invalid token")
	}
	return claims.Subject, nil
}

func (s *Server) readLoop(client *Client, tokenSubject string) {
	for {
		_, data, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				logger.Debugf("Read error on connection %s: %v", client.ID, err)
			}
			return
		}
		var env wire.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			logger.Warnf("Malformed frame on connection %s: %v", client.ID, err)
			continue
		}
		s.handleEvent(client, tokenSubject, env)
	}
}

// handleEvent dispatches one inbound event. A malformed payload fails this
// invocation only; registry and presence state are untouched and the read
// loop keeps running.
func (s *Server) handleEvent(client *Client, tokenSubject string, env wire.Envelope) {
	conn := handlers.NewConnContext(client.userID, client.ID)

	switch env.Type {
	case wire.EventRegister:
		var req wire.RegisterPayload
		if !s.decode(client, env, &req) {
			return
		}
		s.register(client, tokenSubject, req)

	case wire.EventChatSend:
		var req wire.ChatSendPayload
		if !s.decode(client, env, &req) {
			return
		}
		s.apply(client, handlers.ChatSend(context.Background(), s.deps, conn, req))

	case wire.EventMessageRead:
		var req wire.MessageReadPayload
		if !s.decode(client, env, &req) {
			return
		}
		s.apply(client, handlers.MessageRead(s.deps, conn, req))

	case wire.EventTyping:
		var req wire.TypingPayload
		if !s.decode(client, env, &req) {
			return
		}
		s.apply(client, handlers.Typing(s.deps, conn, req))

	case wire.EventStopTyping:
		var req wire.TypingPayload
		if !s.decode(client, env, &req) {
			return
		}
		s.apply(client, handlers.StopTyping(s.deps, conn, req))

	case wire.EventReaction:
		var req wire.ReactionPayload
		if !s.decode(client, env, &req) {
			return
		}
		s.apply(client, handlers.ReactionAdd(s.deps, conn, req))

	case wire.EventCallOffer:
		var req wire.CallOfferPayload
		if !s.decode(client, env, &req) {
			return
		}
		s.apply(client, handlers.CallOffer(context.Background(), s.deps, conn, req))

	case wire.EventCallAnswer:
		var req wire.CallAnswerPayload
		if !s.decode(client, env, &req) {
			return
		}
		s.apply(client, handlers.CallAnswer(s.deps, conn, req))

	case wire.EventIceCandidate:
		var req wire.IceCandidatePayload
		if !s.decode(client, env, &req) {
			return
		}
		s.apply(client, handlers.IceCandidate(s.deps, conn, req))

	case wire.EventCallEnd:
		var req wire.CallEndPayload
		if !s.decode(client, env, &req) {
			return
		}
		s.apply(client, handlers.CallEnd(s.deps, conn, req))

	default:
		logger.Debugf("Unknown event type %q on connection %s", env.Type, client.ID)
	}
}

func (s *Server) decode(client *Client, env wire.Envelope, out any) bool {
	if len(env.Data) == 0 {
		logger.Warnf("Missing payload for %q on connection %s", env.Type, client.ID)
		return false
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		logger.Warnf("Payload decode error for %q on connection %s: %v", env.Type, client.ID, err)
		return false
	}
	return true
}

// register runs the Connected -> Registered transition: bind in the roster,
// refresh last-seen, broadcast the new presence snapshot.
func (s *Server) register(client *Client, tokenSubject string, req wire.RegisterPayload) {
	if req.UserID == "" {
		s.sendTo(client, wire.EventError, wire.ErrorPayload{Message: "userId is required"})
		return
	}
	if tokenSubject != "" && req.UserID != tokenSubject {
		s.sendTo(client, wire.EventError, wire.ErrorPayload{Message: "userId does not match token"})
		return
	}

	snap := s.roster.Register(req.UserID, client.ID, time.Now())
	client.userID = req.UserID
	logger.Infof("User %s registered on connection %s", req.UserID, client.ID)

	s.broadcastPresence(snap)
	go s.notifier.Notify("User connected", fmt.Sprintf("%s is now online", req.UserID))
}

// disconnect runs the terminal transition for a closing connection, clean or
// abrupt alike: unbind, clear typing, refresh last-seen, broadcast.
func (s *Server) disconnect(client *Client) {
	userID, snap, wasTyping := s.roster.Unbind(client.ID, time.Now())

	s.mu.Lock()
	delete(s.clients, client.ID)
	s.mu.Unlock()
	client.close()

	logger.Infof("Connection %s closed (user %q)", client.ID, userID)

	if wasTyping {
		s.Broadcast(wire.EventTypingSet, wire.TypingSetPayload{Users: s.roster.TypingUsers()})
	}
	s.broadcastPresence(snap)
	if userID != "" {
		s.Broadcast(wire.EventUserStatus, wire.UserStatusPayload{Status: "a user disconnected"})
		go s.notifier.Notify("User disconnected", fmt.Sprintf("%s went offline", userID))
	}
}

// apply delivers the emissions requested by a handler.
func (s *Server) apply(sender *Client, result handlers.EventResult) {
	for _, emit := range result.Emits() {
		switch {
		case emit.IsBroadcast():
			s.Broadcast(emit.Event(), emit.Payload())
		case emit.IsReply():
			s.sendTo(sender, emit.Event(), emit.Payload())
		case emit.IsDirect():
			s.mu.Lock()
			target := s.clients[emit.ConnID()]
			s.mu.Unlock()
			if target == nil {
				// Target vanished between lookup and delivery; the
				// signal is dropped, not rerouted.
				logger.Debugf("Connection %s gone, dropping %q", emit.ConnID(), emit.Event())
				continue
			}
			s.sendTo(target, emit.Event(), emit.Payload())
		}
	}
}

// Broadcast emits an event to every open connection, registered or not.
func (s *Server) Broadcast(event string, payload any) {
	data, err := json.Marshal(wire.Event{Type: event, Data: payload})
	if err != nil {
		logger.Errorf("Failed to marshal %q broadcast: %v", event, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, client := range s.clients {
		client.enqueue(data)
	}
}

// broadcastPresence emits the online count and last-seen map derived from one
// consistent snapshot.
func (s *Server) broadcastPresence(snap Snapshot) {
	lastSeen := make(map[string]int64, len(snap.LastSeen))
	for user, t := range snap.LastSeen {
		lastSeen[user] = t.UnixMilli()
	}
	s.Broadcast(wire.EventOnlineCount, wire.OnlineCountPayload{Count: snap.OnlineCount})
	s.Broadcast(wire.EventLastSeen, wire.LastSeenPayload{LastSeen: lastSeen})
}

func (s *Server) sendTo(client *Client, event string, payload any) {
	data, err := json.Marshal(wire.Event{Type: event, Data: payload})
	if err != nil {
		logger.Errorf("Failed to marshal %q event: %v", event, err)
		return
	}
	client.enqueue(data)
}
