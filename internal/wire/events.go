package wire

import "encoding/json"

// Event names received from clients.
const (
	EventRegister     = "register"
	EventChatSend     = "chat-send"
	EventMessageRead  = "message-read"
	EventTyping       = "typing"
	EventStopTyping   = "stop-typing"
	EventReaction     = "reaction"
	EventCallOffer    = "call-offer"
	EventCallAnswer   = "call-answer"
	EventIceCandidate = "ice-candidate"
	EventCallEnd      = "call-end"
)

// Event names emitted to clients.
const (
	EventOnlineCount       = "online-count"
	EventLastSeen          = "last-seen"
	EventUserStatus        = "user-status"
	EventTypingSet         = "typing-set"
	EventMessage           = "message"
	EventMessageDeleted    = "message-deleted"
	EventReactionAdded     = "reaction-added"
	EventReadReceipt       = "read-receipt"
	EventIncomingCall      = "incoming-call"
	EventCallAccepted      = "call-accepted"
	EventCallEnded         = "call-ended"
	EventTargetUnreachable = "target-unreachable"
	EventError             = "error"
)

// Envelope is the websocket frame wrapper. Every frame in either direction is a
// JSON object with a `type` discriminator and a typed `data` payload.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Event is the outbound counterpart of Envelope, built before encoding.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Inbound payloads.

// RegisterPayload binds the connection to an application user id.
type RegisterPayload struct {
	UserID string `json:"userId"`
}

// ChatSendPayload carries a new outbound chat message.
type ChatSendPayload struct {
	Sender  string `json:"sender"`
	Content string `json:"content"`
	// ImageID optionally references a previously uploaded file.
	ImageID string `json:"imageId,omitempty"`
}

type MessageReadPayload struct {
	MessageID string `json:"messageId"`
	UserID    string `json:"userId"`
}

type TypingPayload struct {
	UserID string `json:"userId"`
}

type ReactionPayload struct {
	MessageID string `json:"messageId"`
	Emoji     string `json:"emoji"`
}

// CallOfferPayload starts call negotiation with another user. Offer is the
// opaque SDP blob produced by the caller and is never inspected by the server.
type CallOfferPayload struct {
	To    string          `json:"to"`
	From  string          `json:"from"`
	Offer json.RawMessage `json:"offer"`
}

type CallAnswerPayload struct {
	To     string          `json:"to"`
	From   string          `json:"from"`
	Answer json.RawMessage `json:"answer"`
}

type IceCandidatePayload struct {
	To        string          `json:"to"`
	From      string          `json:"from,omitempty"`
	Candidate json.RawMessage `json:"candidate"`
}

type CallEndPayload struct {
	To   string `json:"to"`
	From string `json:"from"`
}

// Outbound payloads.

// OnlineCountPayload carries the number of currently registered users. It is
// always emitted back to back with a LastSeenPayload taken from the same
// presence snapshot.
type OnlineCountPayload struct {
	Count int `json:"count"`
}

// LastSeenPayload maps user ids to the time of their most recent connect or
// disconnect, in milliseconds since epoch.
type LastSeenPayload struct {
	LastSeen map[string]int64 `json:"lastSeen"`
}

type UserStatusPayload struct {
	Status string `json:"status"`
}

// TypingSetPayload carries the full set of currently typing users, not a diff.
type TypingSetPayload struct {
	Users []string `json:"users"`
}

// MessagePayload is a store-confirmed chat message.
type MessagePayload struct {
	ID      string `json:"id"`
	Sender  string `json:"sender"`
	Content string `json:"content"`
	ImageID string `json:"imageId,omitempty"`
	// CreatedAt is milliseconds since epoch.
	CreatedAt int64 `json:"createdAt"`
}

type MessageDeletedPayload struct {
	MessageID string `json:"messageId"`
}

type ReactionAddedPayload struct {
	MessageID string `json:"messageId"`
	Emoji     string `json:"emoji"`
}

type ReadReceiptPayload struct {
	MessageID string `json:"messageId"`
	UserID    string `json:"userId"`
}

type IncomingCallPayload struct {
	From  string          `json:"from"`
	Offer json.RawMessage `json:"offer"`
}

type CallAcceptedPayload struct {
	From   string          `json:"from"`
	Answer json.RawMessage `json:"answer"`
}

// RemoteCandidatePayload forwards an ICE candidate to the call peer.
type RemoteCandidatePayload struct {
	From      string          `json:"from"`
	Candidate json.RawMessage `json:"candidate"`
}

type CallEndedPayload struct {
	From string `json:"from"`
}

// TargetUnreachablePayload is sent to the caller only, never broadcast.
type TargetUnreachablePayload struct {
	To string `json:"to"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
