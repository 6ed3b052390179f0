package testutil

import (
	"context"
	"sync"

	"github.com/killallgit/scribe/pkg/transport"
)

// SentText records one SendText call.
type SentText struct {
	Text    string
	FileIDs []string
}

// FakeTransport implements transport.Client for testing. It records every
// send and can be flipped between connected and disconnected.
type FakeTransport struct {
	mu        sync.Mutex
	connected bool
	sendErr   error
	sent      []SentText
}

// NewFakeTransport returns a connected fake.
func NewFakeTransport() *FakeTransport {
	return &FakeTransport{connected: true}
}

func (f *FakeTransport) Connected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

func (f *FakeTransport) SetConnected(connected bool) {
	f.mu.Lock()
	f.connected = connected
	f.mu.Unlock()
}

// FailSendsWith makes every subsequent SendText return err.
func (f *FakeTransport) FailSendsWith(err error) {
	f.mu.Lock()
	f.sendErr = err
	f.mu.Unlock()
}

func (f *FakeTransport) SendText(_ context.Context, text string, fileIDs []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, SentText{Text: text, FileIDs: fileIDs})
	return nil
}

// Sent returns a copy of everything sent so far.
func (f *FakeTransport) Sent() []SentText {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]SentText, len(f.sent))
	copy(out, f.sent)
	return out
}

func (f *FakeTransport) Close() error {
	f.SetConnected(false)
	return nil
}

var _ transport.Client = (*FakeTransport)(nil)
