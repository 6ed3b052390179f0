package transport

import (
	"context"
)

// Client is the outbound half of the wire: the reducer never touches it,
// only the command surface does. Inbound traffic arrives through the
// watermill topic the client publishes to, never through this interface.
type Client interface {
	// Connected reports whether the underlying connection is usable.
	Connected() bool

	// SendText submits a user message, optionally referencing previously
	// uploaded file ids. It does not wait for the server to echo the
	// message back; the echo arrives as a message-added event.
	SendText(ctx context.Context, text string, fileIDs []string) error

	// Close tears the connection down.
	Close() error
}
