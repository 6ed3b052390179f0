package events

import (
	"encoding/json"
	"time"

	"github.com/killallgit/scribe/pkg/chat"
)

// wireMessage mirrors the message object the service puts on the wire.
// content arrives either as a plain string or as an array of blocks.
type wireMessage struct {
	ID        string          `json:"id"`
	Role      string          `json:"role"`
	Content   json.RawMessage `json:"content"`
	Format    string          `json:"format"`
	Timestamp *time.Time      `json:"timestamp"`
}

type wireSessionRef struct {
	SessionID string        `json:"sessionId"`
	Messages  []wireMessage `json:"messages"`
}

type wireMedia struct {
	ID          string         `json:"id"`
	Content     string         `json:"content"`
	URL         string         `json:"url"`
	ContentType string         `json:"contentType"`
	Metadata    map[string]any `json:"metadata"`
}

func (w wireMessage) toMessage() chat.Message {
	msg := chat.Message{
		ID:     w.ID,
		Role:   w.Role,
		Format: w.Format,
	}
	if w.Timestamp != nil {
		msg.Timestamp = *w.Timestamp
	}
	if len(w.Content) > 0 {
		var text string
		if err := json.Unmarshal(w.Content, &text); err == nil {
			msg.Content = text
		} else {
			var blocks []chat.ContentBlock
			if err := json.Unmarshal(w.Content, &blocks); err == nil {
				msg.Blocks = blocks
			}
		}
	}
	return msg
}

func toMessages(wire []wireMessage) []chat.Message {
	if len(wire) == 0 {
		return nil
	}
	out := make([]chat.Message, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.toMessage())
	}
	return out
}

// Decode classifies a named payload into the event union. It never fails:
// anything it cannot make sense of becomes a Malformed event, which the
// router treats as a no-op. The event stream is unverified input, so the
// decoder is the last place a shape error can be absorbed.
func Decode(name string, payload []byte) Event {
	switch name {
	case NameSessionChanged:
		return decodeSessionChanged(payload)
	case NameMessagesLoaded, NameMessagesLoadedV1:
		return decodeMessagesLoaded(payload)
	case NameMessageAdded:
		return decodeMessageAdded(payload)
	case NameMessageStreaming:
		return decodeMessageStreaming(payload)
	case NameMessageComplete:
		return decodeMessageComplete(payload)
	case NameSubSessionStart:
		return decodeSubSessionStarted(payload)
	case NameSubSessionEnd:
		return SubSessionEnded{}
	case NameMediaAdded:
		return decodeMediaAdded(payload)
	case NameSystemMessage:
		return decodeSystemMessage(payload)
	case NameTurnStart:
		return TurnStarted{}
	case NameTurnEnd:
		return TurnEnded{}
	default:
		return Malformed{Name: name, Reason: "unknown event name"}
	}
}

func decodeSessionChanged(payload []byte) Event {
	var body struct {
		CurrentSession  *wireSessionRef `json:"currentSession"`
		PreviousSession *wireSessionRef `json:"previousSession"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return Malformed{Name: NameSessionChanged, Reason: "invalid json"}
	}

	ev := SessionChanged{}
	if body.CurrentSession != nil && body.CurrentSession.SessionID != "" {
		ev.SessionID = body.CurrentSession.SessionID
		ev.HasSession = true
		ev.Messages = toMessages(body.CurrentSession.Messages)
	}
	if body.PreviousSession != nil {
		ev.PreviousID = body.PreviousSession.SessionID
	}
	return ev
}

func decodeMessagesLoaded(payload []byte) Event {
	var body struct {
		SessionID *string       `json:"sessionId"`
		Messages  []wireMessage `json:"messages"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return Malformed{Name: NameMessagesLoaded, Reason: "invalid json"}
	}

	ev := MessagesLoaded{Messages: toMessages(body.Messages)}
	if body.SessionID != nil {
		ev.SessionID = *body.SessionID
		ev.HasSessionID = true
	}
	return ev
}

func decodeMessageAdded(payload []byte) Event {
	sessionID, msg, ok := decodeMessageEnvelope(payload)
	if !ok {
		return Malformed{Name: NameMessageAdded, Reason: "missing message object"}
	}
	return MessageAdded{SessionID: sessionID, Message: msg.toMessage()}
}

func decodeMessageStreaming(payload []byte) Event {
	sessionID, msg, ok := decodeMessageEnvelope(payload)
	if !ok {
		return Malformed{Name: NameMessageStreaming, Reason: "missing message object"}
	}
	return MessageStreaming{
		SessionID: sessionID,
		StreamID:  msg.ID,
		Message:   msg.toMessage(),
	}
}

func decodeMessageComplete(payload []byte) Event {
	sessionID, msg, ok := decodeMessageEnvelope(payload)
	if !ok {
		return Malformed{Name: NameMessageComplete, Reason: "missing message object"}
	}
	return MessageComplete{
		SessionID: sessionID,
		StreamID:  msg.ID,
		Message:   msg.toMessage(),
	}
}

func decodeMessageEnvelope(payload []byte) (string, wireMessage, bool) {
	var body struct {
		SessionID string       `json:"sessionId"`
		Message   *wireMessage `json:"message"`
	}
	if err := json.Unmarshal(payload, &body); err != nil || body.Message == nil {
		return "", wireMessage{}, false
	}
	return body.SessionID, *body.Message, true
}

func decodeSubSessionStarted(payload []byte) Event {
	var body struct {
		SubSessionType string `json:"subSessionType"`
		SubAgentType   string `json:"subAgentType"`
		PrimeAgentKey  string `json:"primeAgentKey"`
		SubAgentKey    string `json:"subAgentKey"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return Malformed{Name: NameSubSessionStart, Reason: "invalid json"}
	}
	return SubSessionStarted{
		SubSessionType: body.SubSessionType,
		SubAgentType:   body.SubAgentType,
		PrimeAgentKey:  body.PrimeAgentKey,
		SubAgentKey:    body.SubAgentKey,
	}
}

func decodeMediaAdded(payload []byte) Event {
	var body struct {
		SessionID string     `json:"sessionId"`
		Media     *wireMedia `json:"media"`
	}
	if err := json.Unmarshal(payload, &body); err != nil || body.Media == nil {
		return Malformed{Name: NameMediaAdded, Reason: "missing media object"}
	}
	return MediaAdded{
		SessionID: body.SessionID,
		ID:        body.Media.ID,
		MimeType:  body.Media.ContentType,
		Payload:   body.Media.Content,
		URL:       body.Media.URL,
		Metadata:  body.Media.Metadata,
	}
}

func decodeSystemMessage(payload []byte) Event {
	var body struct {
		Content  *string `json:"content"`
		Severity string  `json:"severity"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return Malformed{Name: NameSystemMessage, Reason: "invalid json"}
	}

	ev := SystemMessage{Content: body.Content, Severity: body.Severity}
	if ev.Severity == "" {
		ev.Severity = chat.SeverityInfo
	}
	return ev
}
