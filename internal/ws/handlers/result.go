package handlers

// EmitScope describes where an emission should be delivered.
type EmitScope int

const (
	emitScopeUnknown EmitScope = iota
	emitScopeBroadcast
	emitScopeConn
	emitScopeSender
)

// EmitInstruction describes a single outbound emission produced by a handler
// call. The transport adapter applies it; handlers never touch sockets.
type EmitInstruction struct {
	scope   EmitScope
	connID  string
	event   string
	payload any
}

func newBroadcast(event string, payload any) EmitInstruction {
	return EmitInstruction{scope: emitScopeBroadcast, event: event, payload: payload}
}

func newDirect(connID, event string, payload any) EmitInstruction {
	return EmitInstruction{scope: emitScopeConn, connID: connID, event: event, payload: payload}
}

func newReply(event string, payload any) EmitInstruction {
	return EmitInstruction{scope: emitScopeSender, event: event, payload: payload}
}

// IsBroadcast reports whether the emission goes to every open connection.
func (e EmitInstruction) IsBroadcast() bool { return e.scope == emitScopeBroadcast }

// IsDirect reports whether the emission goes to exactly one connection.
func (e EmitInstruction) IsDirect() bool { return e.scope == emitScopeConn }

// IsReply reports whether the emission goes back to the calling connection
// only.
func (e EmitInstruction) IsReply() bool { return e.scope == emitScopeSender }

// ConnID returns the target connection id for direct emissions.
func (e EmitInstruction) ConnID() string { return e.connID }

// Event returns the outbound event name.
func (e EmitInstruction) Event() string { return e.event }

// Payload returns the outbound payload.
func (e EmitInstruction) Payload() any { return e.payload }

// EventResult is the output of a handler invocation.
type EventResult struct {
	emits []EmitInstruction
}

// NewEventResult constructs a handler result from emit instructions.
func NewEventResult(emits ...EmitInstruction) EventResult {
	return EventResult{emits: emits}
}

// Emits returns the emissions requested by the handler.
func (r EventResult) Emits() []EmitInstruction { return r.emits }
