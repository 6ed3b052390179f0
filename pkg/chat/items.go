package chat

import (
	"strings"
	"time"
)

// Item is a single entry of the display transcript. Exactly one of
// Message, SystemAlert, Divider, or Media implements it.
type Item interface {
	ItemID() string
	ItemTime() time.Time
	transcriptItem()
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleThought   = "thought"
	RoleSystem    = "system"
)

// ContentBlock is one element of a structured message body.
type ContentBlock struct {
	Type string         `json:"type"`
	Text string         `json:"text,omitempty"`
	Data map[string]any `json:"data,omitempty"`
}

// Message is a conversational turn attributed to a role. Content holds the
// plain-text body; Blocks carries structured content when the service sends
// it. Either may be empty, never both for a finalized assistant turn.
type Message struct {
	ID        string         `json:"id"`
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	Blocks    []ContentBlock `json:"blocks,omitempty"`
	Format    string         `json:"format,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// SystemAlert is an out-of-band notice from the service. Content is nil
// when the originating event carried none; the presentation layer decides
// how to render that.
type SystemAlert struct {
	ID        string    `json:"id"`
	Content   *string   `json:"content,omitempty"`
	Severity  string    `json:"severity"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

const (
	DividerStart = "start"
	DividerEnd   = "end"
)

// Divider marks the boundary of a nested sub-conversation, e.g. a
// delegated tool-use sub-agent.
type Divider struct {
	ID             string    `json:"id"`
	DividerType    string    `json:"divider_type"`
	SubSessionType string    `json:"sub_session_type,omitempty"`
	SubAgentType   string    `json:"sub_agent_type,omitempty"`
	PrimeAgentKey  string    `json:"prime_agent_key,omitempty"`
	SubAgentKey    string    `json:"sub_agent_key,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// Media is a non-text artifact attached to the session. Payload holds
// inline content; URL points at remote content. One of the two is set.
type Media struct {
	ID         string         `json:"id"`
	SessionRef string         `json:"session_ref,omitempty"`
	MimeType   string         `json:"mime_type"`
	Payload    string         `json:"payload,omitempty"`
	URL        string         `json:"url,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}

func (m Message) ItemID() string      { return m.ID }
func (m Message) ItemTime() time.Time { return m.Timestamp }
func (m Message) transcriptItem()     {}

func (a SystemAlert) ItemID() string      { return a.ID }
func (a SystemAlert) ItemTime() time.Time { return a.Timestamp }
func (a SystemAlert) transcriptItem()     {}

func (d Divider) ItemID() string      { return d.ID }
func (d Divider) ItemTime() time.Time { return d.Timestamp }
func (d Divider) transcriptItem()     {}

func (m Media) ItemID() string      { return m.ID }
func (m Media) ItemTime() time.Time { return m.Timestamp }
func (m Media) transcriptItem()     {}

func NewUserMessage(content string) Message {
	return Message{
		Role:      RoleUser,
		Content:   strings.TrimSpace(content),
		Timestamp: time.Now(),
	}
}

func NewAssistantMessage(content string) Message {
	return Message{
		Role:      RoleAssistant,
		Content:   content,
		Timestamp: time.Now(),
	}
}

func (m Message) IsUser() bool {
	return m.Role == RoleUser
}

func (m Message) IsAssistant() bool {
	return m.Role == RoleAssistant
}

func (m Message) IsThought() bool {
	return m.Role == RoleThought
}

func (m Message) IsSystem() bool {
	return m.Role == RoleSystem
}

func (m Message) IsEmpty() bool {
	return strings.TrimSpace(m.Content) == "" && len(m.Blocks) == 0
}

func (m Message) WithTimestamp(t time.Time) Message {
	m.Timestamp = t
	return m
}

func (m Message) WithID(id string) Message {
	m.ID = id
	return m
}
