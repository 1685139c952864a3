package ws

import "sync"

// ReactionLog accumulates emoji reactions per message for the lifetime of the
// process. Append-only; identical reactions are not deduplicated.
type ReactionLog struct {
	mu        sync.Mutex
	byMessage map[string][]string
}

// NewReactionLog creates an empty reaction log.
func NewReactionLog() *ReactionLog {
	return &ReactionLog{byMessage: make(map[string][]string)}
}

// Add appends emoji to the ordered reaction sequence for messageID.
func (l *ReactionLog) Add(messageID, emoji string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.byMessage[messageID] = append(l.byMessage[messageID], emoji)
}

// Reactions returns a copy of the reaction sequence for messageID.
func (l *ReactionLog) Reactions(messageID string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	seq := l.byMessage[messageID]
	out := make([]string, len(seq))
	copy(out, seq)
	return out
}
