package handlers

import (
	"context"
	"sort"
	"time"

	"github.com/parley-chat/parley/internal/store"
)

type fakeMessageQueries struct {
	save func(ctx context.Context, arg store.SaveMessageParams) (store.Message, error)
}

func (f fakeMessageQueries) SaveMessage(ctx context.Context, arg store.SaveMessageParams) (store.Message, error) {
	return f.save(ctx, arg)
}

type fakeCallQueries struct {
	save func(ctx context.Context, arg store.SaveCallRecordParams) error
}

func (f fakeCallQueries) SaveCallRecord(ctx context.Context, arg store.SaveCallRecordParams) error {
	if f.save == nil {
		return nil
	}
	return f.save(ctx, arg)
}

type fakePeers struct {
	conns map[string]string
}

func (f fakePeers) Lookup(userID string) (string, bool) {
	connID, ok := f.conns[userID]
	return connID, ok
}

type fakeTyping struct {
	set map[string]struct{}
}

func newFakeTyping() *fakeTyping {
	return &fakeTyping{set: make(map[string]struct{})}
}

func (f *fakeTyping) MarkTyping(userID string) []string {
	f.set[userID] = struct{}{}
	return f.users()
}

func (f *fakeTyping) ClearTyping(userID string) []string {
	delete(f.set, userID)
	return f.users()
}

func (f *fakeTyping) users() []string {
	users := make([]string, 0, len(f.set))
	for user := range f.set {
		users = append(users, user)
	}
	sort.Strings(users)
	return users
}

type fakeReactions struct {
	added []string
}

func (f *fakeReactions) Add(messageID, emoji string) {
	f.added = append(f.added, messageID+"/"+emoji)
}

func fixedNow() time.Time {
	return time.UnixMilli(1700000000000)
}
