package chat

import "time"

// Assembler holds the single in-flight assistant reply for the current
// streaming turn. Streaming payloads are cumulative snapshots, so each
// delta replaces the buffer rather than appending to it. Only one stream
// is tracked at a time: a delta for a different stream id discards the
// previous buffer (last writer wins).
type Assembler struct {
	ids *IDGenerator

	active   bool
	streamID string
	content  string
	role     string
}

func NewAssembler(ids *IDGenerator) *Assembler {
	return &Assembler{ids: ids}
}

// OnDelta records a streaming snapshot for streamID.
func (a *Assembler) OnDelta(streamID, content, role string) {
	if !a.active || a.streamID != streamID {
		a.streamID = streamID
		a.active = true
	}
	a.content = content
	if role != "" {
		a.role = role
	}
}

// OnComplete finalizes the streaming turn into a Message item and clears
// the buffer. A completion with no prior delta is valid; the final payload
// is authoritative either way. When the payload carries no id, one is
// minted so the item stays addressable for the reducer's lifetime.
func (a *Assembler) OnComplete(final Message) Message {
	a.Clear()

	if final.Role == "" {
		final.Role = RoleAssistant
	}
	if final.ID == "" {
		final.ID = a.ids.Next(final.Role)
	}
	if final.Timestamp.IsZero() {
		final.Timestamp = time.Now()
	}
	return final
}

// Clear drops any in-flight buffer without producing an item. Session
// transitions use this: content from an abandoned turn is intentionally
// lost.
func (a *Assembler) Clear() {
	a.active = false
	a.streamID = ""
	a.content = ""
	a.role = ""
}

// Active reports whether a streaming turn is in flight.
func (a *Assembler) Active() bool {
	return a.active
}

// Snapshot returns the in-flight reply as a display message.
func (a *Assembler) Snapshot() (Message, bool) {
	if !a.active {
		return Message{}, false
	}
	role := a.role
	if role == "" {
		role = RoleAssistant
	}
	return Message{
		ID:      a.streamID,
		Role:    role,
		Content: a.content,
	}, true
}

// StreamID returns the id of the in-flight stream, empty when idle.
func (a *Assembler) StreamID() string {
	return a.streamID
}
