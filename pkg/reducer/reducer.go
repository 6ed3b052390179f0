package reducer

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/killallgit/scribe/pkg/chat"
	"github.com/killallgit/scribe/pkg/events"
	"github.com/killallgit/scribe/pkg/logger"
	"github.com/killallgit/scribe/pkg/session"
)

// Reducer turns the unordered event stream into a single consistent,
// bounded transcript. All mutations funnel through Apply, which the
// coordinator calls from one goroutine, so every handler runs to
// completion before the next event is looked at. The lock only guards
// the snapshot reads issued by the presentation layer.
type Reducer struct {
	mu  sync.RWMutex
	log zerolog.Logger

	gate  *session.Gate
	store *chat.Store
	asm   *chat.Assembler
	ids   *chat.IDGenerator

	responding bool

	onItem func(chat.Item)
}

func New(maxMessages int) *Reducer {
	ids := chat.NewIDGenerator()
	return &Reducer{
		log:   logger.WithComponent("reducer"),
		gate:  session.NewGate(),
		store: chat.NewStore(maxMessages),
		asm:   chat.NewAssembler(ids),
		ids:   ids,
	}
}

// SetItemListener registers a callback invoked (outside the lock) for
// every item that enters the transcript.
func (r *Reducer) SetItemListener(fn func(chat.Item)) {
	r.mu.Lock()
	r.onItem = fn
	r.mu.Unlock()
}

// Apply routes one event. It never returns an error and never panics on
// event-stream input: anomalies degrade to no-ops because the source is
// untrusted.
func (r *Reducer) Apply(ev events.Event) {
	r.mu.Lock()

	var entered []chat.Item

	switch e := ev.(type) {
	case events.SessionChanged:
		r.applySessionChanged(e)
	case events.MessagesLoaded:
		entered = r.applyMessagesLoaded(e)
	case events.MessageAdded:
		entered = r.applyIfAdmissible(e.Kind(), func() []chat.Item {
			return r.appendItem(r.normalizeMessage(e.Message))
		})
	case events.MessageStreaming:
		entered = r.applyIfAdmissible(e.Kind(), func() []chat.Item {
			r.asm.OnDelta(e.StreamID, e.Message.Content, e.Message.Role)
			r.responding = true
			return nil
		})
	case events.MessageComplete:
		entered = r.applyIfAdmissible(e.Kind(), func() []chat.Item {
			final := r.asm.OnComplete(e.Message)
			r.responding = false
			return r.appendItem(final)
		})
	case events.SubSessionStarted:
		entered = r.applyIfAdmissible(e.Kind(), func() []chat.Item {
			return r.appendItem(chat.Divider{
				ID:             r.ids.NextDivider(chat.DividerStart),
				DividerType:    chat.DividerStart,
				SubSessionType: e.SubSessionType,
				SubAgentType:   e.SubAgentType,
				PrimeAgentKey:  e.PrimeAgentKey,
				SubAgentKey:    e.SubAgentKey,
				Timestamp:      time.Now(),
			})
		})
	case events.SubSessionEnded:
		entered = r.applyIfAdmissible(e.Kind(), func() []chat.Item {
			return r.appendItem(chat.Divider{
				ID:          r.ids.NextDivider(chat.DividerEnd),
				DividerType: chat.DividerEnd,
				Timestamp:   time.Now(),
			})
		})
	case events.MediaAdded:
		entered = r.applyIfAdmissible(e.Kind(), func() []chat.Item {
			id := e.ID
			if id == "" {
				id = r.ids.Next("media")
			}
			return r.appendItem(chat.Media{
				ID:         id,
				SessionRef: e.SessionID,
				MimeType:   e.MimeType,
				Payload:    e.Payload,
				URL:        e.URL,
				Metadata:   e.Metadata,
				Timestamp:  time.Now(),
			})
		})
	case events.SystemMessage:
		entered = r.applyIfAdmissible(e.Kind(), func() []chat.Item {
			return r.appendItem(chat.SystemAlert{
				ID:        r.ids.Next("system"),
				Content:   e.Content,
				Severity:  e.Severity,
				Timestamp: time.Now(),
			})
		})
	case events.TurnStarted:
		r.responding = false
	case events.TurnEnded:
		r.responding = true
	case events.Malformed:
		r.log.Debug().Str("event", e.Name).Str("reason", e.Reason).Msg("dropping malformed event")
	}

	onItem := r.onItem
	r.mu.Unlock()

	if onItem != nil {
		for _, item := range entered {
			onItem(item)
		}
	}
}

// applySessionChanged clears all session-scoped state synchronously and
// begins the load window. A payload without a session reference is a
// tolerated no-op. The legacy embedded-history path (messages carried on
// the event itself) is applied as an implicit messages-loaded.
func (r *Reducer) applySessionChanged(e events.SessionChanged) {
	if !e.HasSession {
		r.log.Debug().Msg("session-changed without session reference, ignoring")
		return
	}

	r.store.Clear()
	r.asm.Clear()
	r.responding = false
	r.gate.SessionChanged(e.SessionID)

	r.log.Info().
		Str("session_id", e.SessionID).
		Str("previous", e.PreviousID).
		Msg("session changed")

	if len(e.Messages) > 0 {
		r.gate.AcceptLoad(e.SessionID, true)
		r.store.ReplaceAll(r.normalizeMessages(e.Messages))
	}
}

func (r *Reducer) applyMessagesLoaded(e events.MessagesLoaded) []chat.Item {
	if !r.gate.AcceptLoad(e.SessionID, e.HasSessionID) {
		r.log.Debug().
			Str("session_id", e.SessionID).
			Str("expected", r.gate.SessionID()).
			Msg("dropping messages-loaded for stale session")
		return nil
	}

	items := r.normalizeMessages(e.Messages)
	r.store.ReplaceAll(items)
	return r.store.Items()
}

func (r *Reducer) applyIfAdmissible(kind events.Kind, fn func() []chat.Item) []chat.Item {
	if !r.gate.Admissible(kind) {
		r.log.Debug().
			Stringer("lifecycle", r.gate.Lifecycle()).
			Msg("dropping event while session load in flight")
		return nil
	}
	return fn()
}

func (r *Reducer) appendItem(item chat.Item) []chat.Item {
	r.store.Append(item)
	return []chat.Item{item}
}

func (r *Reducer) normalizeMessage(msg chat.Message) chat.Message {
	if msg.ID == "" {
		category := msg.Role
		if category == "" {
			category = "message"
		}
		msg.ID = r.ids.Next(category)
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	return msg
}

func (r *Reducer) normalizeMessages(msgs []chat.Message) []chat.Item {
	items := make([]chat.Item, 0, len(msgs))
	for _, msg := range msgs {
		items = append(items, r.normalizeMessage(msg))
	}
	return items
}
