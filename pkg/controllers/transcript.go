package controllers

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/killallgit/scribe/pkg/chat"
	"github.com/killallgit/scribe/pkg/logger"
	"github.com/killallgit/scribe/pkg/reducer"
	"github.com/killallgit/scribe/pkg/transport"
)

var (
	// ErrEmptyMessage means the text was empty or whitespace-only.
	ErrEmptyMessage = errors.New("message content cannot be empty")
	// ErrNoTransport means the controller was built without a client.
	ErrNoTransport = errors.New("no transport configured")
	// ErrNotConnected means the client exists but the connection is down.
	ErrNotConnected = errors.New("not connected")
)

// TranscriptController is the command and query surface over the reduced
// transcript. Commands go to the transport; the transcript itself only
// changes when the resulting events come back, so a sent message does
// not appear until the server echoes it.
type TranscriptController struct {
	reducer *reducer.Reducer
	client  transport.Client
	log     zerolog.Logger
}

func NewTranscriptController(r *reducer.Reducer, client transport.Client) *TranscriptController {
	return &TranscriptController{
		reducer: r,
		client:  client,
		log:     logger.WithComponent("controller"),
	}
}

// SendMessage validates and submits user text. Nothing is appended
// locally on success or failure.
func (tc *TranscriptController) SendMessage(ctx context.Context, text string, fileIDs []string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}
	if tc.client == nil {
		return ErrNoTransport
	}
	if !tc.client.Connected() {
		return ErrNotConnected
	}

	if err := tc.client.SendText(ctx, text, fileIDs); err != nil {
		tc.log.Warn().Err(err).Msg("send failed")
		return errors.Wrap(err, "sending message")
	}
	return nil
}

// Clear empties the local transcript. The server's history is untouched.
func (tc *TranscriptController) Clear() {
	tc.reducer.Clear()
	tc.log.Info().Msg("transcript cleared")
}

// SetMaxMessages adjusts the transcript cap for subsequent mutations.
func (tc *TranscriptController) SetMaxMessages(limit int) {
	tc.reducer.SetMaxMessages(limit)
}

func (tc *TranscriptController) Snapshot() reducer.Snapshot {
	return tc.reducer.Snapshot()
}

func (tc *TranscriptController) Items() []chat.Item {
	return tc.reducer.Items()
}

func (tc *TranscriptController) LastMessage() (chat.Message, bool) {
	return tc.reducer.LastMessage()
}

func (tc *TranscriptController) LastItem() (chat.Item, bool) {
	return tc.reducer.LastItem()
}

func (tc *TranscriptController) MessagesByRole(role string) []chat.Message {
	return tc.reducer.MessagesByRole(role)
}

func (tc *TranscriptController) Responding() bool {
	return tc.reducer.Responding()
}
