package handlers

// ConnContext carries the identity of the connection that produced an event
// into handler functions. It intentionally excludes transport-specific types.
type ConnContext struct {
	userID string
	connID string
}

// NewConnContext constructs a ConnContext for a single event.
func NewConnContext(userID, connID string) ConnContext {
	return ConnContext{userID: userID, connID: connID}
}

// UserID returns the user id the connection registered as, or "" before
// registration.
func (c ConnContext) UserID() string {
	return c.userID
}

// ConnID returns the transient connection id.
func (c ConnContext) ConnID() string {
	return c.connID
}
