package reducer

import (
	"github.com/killallgit/scribe/pkg/chat"
	"github.com/killallgit/scribe/pkg/session"
)

// Snapshot is a read-only copy of reducer state. Consumers may hold it
// as long as they like; it never aliases live state.
type Snapshot struct {
	SessionID  string
	Lifecycle  session.Lifecycle
	Items      []chat.Item
	Streaming  *chat.Message
	Responding bool
}

// Snapshot returns the current state as a defensive copy.
func (r *Reducer) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap := Snapshot{
		SessionID:  r.gate.SessionID(),
		Lifecycle:  r.gate.Lifecycle(),
		Items:      r.store.Items(),
		Responding: r.responding,
	}
	if msg, ok := r.asm.Snapshot(); ok {
		snap.Streaming = &msg
	}
	return snap
}

// Items returns a copy of the transcript.
func (r *Reducer) Items() []chat.Item {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.store.Items()
}

func (r *Reducer) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.store.Len()
}

// LastItem returns the newest transcript item of any kind.
func (r *Reducer) LastItem() (chat.Item, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.store.Last()
}

// LastMessage returns the newest conversational turn.
func (r *Reducer) LastMessage() (chat.Message, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return chat.LastMessage(r.store.Items())
}

// MessagesByRole filters conversational turns by role in transcript order.
func (r *Reducer) MessagesByRole(role string) []chat.Message {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return chat.MessagesByRole(r.store.Items(), role)
}

// Responding reports whether the agent currently holds the turn.
func (r *Reducer) Responding() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.responding
}

// Clear empties the transcript, drops any in-flight streaming turn, and
// resets the responding flag. Purely local; nothing goes to the wire.
func (r *Reducer) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store.Clear()
	r.asm.Clear()
	r.responding = false
}

// SetMaxMessages updates the transcript cap. Takes effect on the next
// mutation; existing overflow is not trimmed.
func (r *Reducer) SetMaxMessages(limit int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store.SetLimit(limit)
}
