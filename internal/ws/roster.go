package ws

import (
	"sort"
	"sync"
	"time"
)

// Snapshot is a consistent view of presence state. Online count and the
// last-seen map are always taken together under the same lock so observers can
// never reconstruct a torn view.
type Snapshot struct {
	OnlineCount int
	LastSeen    map[string]time.Time
}

// Roster is the single owner of the user/connection bindings, the last-seen
// map, and the typing set. Every mutation and every derived read happens under
// one mutex; this is the only place where a race would be visible as a wrong
// online count or a phantom user.
type Roster struct {
	mu       sync.Mutex
	byUser   map[string]string // userID -> connID
	byConn   map[string]string // connID -> userID
	lastSeen map[string]time.Time
	typing   map[string]struct{}
}

// NewRoster creates an empty roster.
func NewRoster() *Roster {
	return &Roster{
		byUser:   make(map[string]string),
		byConn:   make(map[string]string),
		lastSeen: make(map[string]time.Time),
		typing:   make(map[string]struct{}),
	}
}

// Register binds userID to connID, replacing any prior binding for either
// side. Last registration wins; a reconnect displaces the old session.
func (r *Roster) Register(userID, connID string, at time.Time) Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	if oldConn, ok := r.byUser[userID]; ok {
		delete(r.byConn, oldConn)
	}
	if oldUser, ok := r.byConn[connID]; ok {
		delete(r.byUser, oldUser)
		delete(r.typing, oldUser)
	}
	r.byUser[userID] = connID
	r.byConn[connID] = userID
	r.lastSeen[userID] = at

	return r.snapshotLocked()
}

// Lookup returns the connection currently bound to userID. Absence means the
// target is offline.
func (r *Roster) Lookup(userID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	connID, ok := r.byUser[userID]
	return connID, ok
}

// Unbind removes whatever user is bound to connID, clearing its typing flag in
// the same critical section so a concurrent Lookup can never observe the user
// online with stale typing state. It returns the departing user id ("" if the
// connection never registered), the refreshed presence snapshot, and whether
// the typing set changed.
func (r *Roster) Unbind(connID string, at time.Time) (string, Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	userID, ok := r.byConn[connID]
	if !ok {
		return "", r.snapshotLocked(), false
	}
	delete(r.byConn, connID)
	delete(r.byUser, userID)
	_, wasTyping := r.typing[userID]
	delete(r.typing, userID)
	r.lastSeen[userID] = at

	return userID, r.snapshotLocked(), wasTyping
}

// MarkTyping flags userID as typing and returns the full current typing set.
func (r *Roster) MarkTyping(userID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.typing[userID] = struct{}{}
	return r.typingLocked()
}

// ClearTyping removes userID's typing flag and returns the full current typing
// set.
func (r *Roster) ClearTyping(userID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.typing, userID)
	return r.typingLocked()
}

// TypingUsers returns the full current typing set.
func (r *Roster) TypingUsers() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.typingLocked()
}

// OnlineCount returns the number of currently bound users.
func (r *Roster) OnlineCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byUser)
}

// PresenceSnapshot returns the current presence view.
func (r *Roster) PresenceSnapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Roster) snapshotLocked() Snapshot {
	seen := make(map[string]time.Time, len(r.lastSeen))
	for user, t := range r.lastSeen {
		seen[user] = t
	}
	return Snapshot{
		OnlineCount: len(r.byUser),
		LastSeen:    seen,
	}
}

func (r *Roster) typingLocked() []string {
	users := make([]string, 0, len(r.typing))
	for user := range r.typing {
		users = append(users, user)
	}
	sort.Strings(users)
	return users
}
