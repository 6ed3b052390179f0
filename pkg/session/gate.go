package session

import (
	"github.com/killallgit/scribe/pkg/events"
)

// Lifecycle tracks where the active session is in its load cycle.
type Lifecycle int

const (
	// Idle means no session has been selected yet. Events are applied
	// normally and simply accumulate.
	Idle Lifecycle = iota
	// Loading means a session switch is in progress; transcript-mutating
	// events are blocked (not queued) until the load lands.
	Loading
	// Ready means the session's history has been applied.
	Ready
)

func (l Lifecycle) String() string {
	switch l {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// Gate owns the session lifecycle and decides whether inbound events may
// touch the transcript. Its identity check on messages-loaded is the
// anti-race invariant: history addressed to an abandoned session must
// never reach the transcript, no matter how late it arrives.
type Gate struct {
	sessionID  string
	hasSession bool
	lifecycle  Lifecycle
}

func NewGate() *Gate {
	return &Gate{lifecycle: Idle}
}

// SessionChanged records newSessionID as the expected session and moves
// to Loading. The caller clears transcript and streaming state in the
// same step.
func (g *Gate) SessionChanged(newSessionID string) {
	g.sessionID = newSessionID
	g.hasSession = true
	g.lifecycle = Loading
}

// AcceptLoad decides whether a messages-loaded event applies. An event
// that echoes a session id must match the expected one; an event without
// one comes from the per-session emitter and is trusted implicitly.
// Acceptance moves the lifecycle to Ready.
func (g *Gate) AcceptLoad(sessionID string, hasSessionID bool) bool {
	if hasSessionID && g.hasSession && sessionID != g.sessionID {
		return false
	}
	g.lifecycle = Ready
	return true
}

// Admissible reports whether an event of the given kind may mutate the
// transcript right now. Only transcript-mutating kinds are ever blocked,
// and only while a load is in flight.
func (g *Gate) Admissible(kind events.Kind) bool {
	if g.lifecycle == Loading && events.Mutating(kind) {
		return false
	}
	return true
}

// SessionID returns the expected session id, empty before any switch.
func (g *Gate) SessionID() string {
	return g.sessionID
}

func (g *Gate) Lifecycle() Lifecycle {
	return g.lifecycle
}
