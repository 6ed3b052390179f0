package events

import (
	"github.com/killallgit/scribe/pkg/chat"
)

// Wire names of the inbound events. The service emits these on both the
// primary transport and the per-session emitter.
const (
	NameSessionChanged   = "session-changed"
	NameMessagesLoaded   = "session-messages-loaded"
	NameMessagesLoadedV1 = "messages-loaded" // older emitter builds
	NameMessageAdded     = "message-added"
	NameMessageStreaming = "message-streaming"
	NameMessageComplete  = "message-complete"
	NameSubSessionStart  = "subsession-started"
	NameSubSessionEnd    = "subsession-ended"
	NameMediaAdded       = "media-added"
	NameSystemMessage    = "system_message"
	NameTurnStart        = "turn-start"
	NameTurnEnd          = "turn-end"
)

// Kind discriminates the closed set of event variants.
type Kind int

const (
	KindSessionChanged Kind = iota
	KindMessagesLoaded
	KindMessageAdded
	KindMessageStreaming
	KindMessageComplete
	KindSubSessionStarted
	KindSubSessionEnded
	KindMediaAdded
	KindSystemMessage
	KindTurnStarted
	KindTurnEnded
	KindMalformed
)

// Event is the closed union of everything the reducer consumes. Unknown
// or structurally broken payloads decode to Malformed rather than being
// coerced into a near-miss variant.
type Event interface {
	Kind() Kind
}

// SessionChanged announces a switch to a new session. HasSession is false
// when the payload carried no session reference; such events are tolerated
// no-ops. Messages carries the legacy embedded-history path: when
// non-empty it is applied as an implicit messages-loaded.
type SessionChanged struct {
	SessionID  string
	HasSession bool
	PreviousID string
	Messages   []chat.Message
}

// MessagesLoaded delivers the full history for a session. HasSessionID is
// false when the emitter did not echo session identity; those events are
// trusted implicitly.
type MessagesLoaded struct {
	SessionID    string
	HasSessionID bool
	Messages     []chat.Message
}

type MessageAdded struct {
	SessionID string
	Message   chat.Message
}

// MessageStreaming carries a cumulative snapshot of the in-flight
// assistant reply. StreamID is the message id shared by every snapshot of
// one turn.
type MessageStreaming struct {
	SessionID string
	StreamID  string
	Message   chat.Message
}

type MessageComplete struct {
	SessionID string
	StreamID  string
	Message   chat.Message
}

type SubSessionStarted struct {
	SubSessionType string
	SubAgentType   string
	PrimeAgentKey  string
	SubAgentKey    string
}

type SubSessionEnded struct{}

type MediaAdded struct {
	SessionID string
	ID        string
	MimeType  string
	Payload   string
	URL       string
	Metadata  map[string]any
}

// SystemMessage is an out-of-band notice. Content is nil when the payload
// omitted it; downstream consumers handle the absence.
type SystemMessage struct {
	Content  *string
	Severity string
}

type TurnStarted struct{}

type TurnEnded struct{}

// Malformed stands in for any payload the decoder could not classify. The
// router maps it to a no-op.
type Malformed struct {
	Name   string
	Reason string
}

func (SessionChanged) Kind() Kind    { return KindSessionChanged }
func (MessagesLoaded) Kind() Kind    { return KindMessagesLoaded }
func (MessageAdded) Kind() Kind      { return KindMessageAdded }
func (MessageStreaming) Kind() Kind  { return KindMessageStreaming }
func (MessageComplete) Kind() Kind   { return KindMessageComplete }
func (SubSessionStarted) Kind() Kind { return KindSubSessionStarted }
func (SubSessionEnded) Kind() Kind   { return KindSubSessionEnded }
func (MediaAdded) Kind() Kind        { return KindMediaAdded }
func (SystemMessage) Kind() Kind     { return KindSystemMessage }
func (TurnStarted) Kind() Kind       { return KindTurnStarted }
func (TurnEnded) Kind() Kind         { return KindTurnEnded }
func (Malformed) Kind() Kind         { return KindMalformed }

// Mutating reports whether the event writes to the transcript. The
// session gate blocks these while a session load is in flight.
func Mutating(k Kind) bool {
	switch k {
	case KindMessageAdded, KindMessageStreaming, KindMessageComplete,
		KindSubSessionStarted, KindSubSessionEnded, KindMediaAdded, KindSystemMessage:
		return true
	default:
		return false
	}
}
