package transport

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/killallgit/scribe/pkg/logger"
	"github.com/killallgit/scribe/pkg/reducer"
)

// wireFrame is the envelope both directions use: an event name plus an
// opaque JSON payload.
type wireFrame struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

type outboundMessage struct {
	Content string   `json:"content"`
	FileIDs []string `json:"fileIds,omitempty"`
}

// WSClient holds one websocket to the agent service. Every inbound frame
// is republished on a watermill topic so the coordinator can treat the
// socket like any other event source. The read loop ends on the first
// read error; reconnection is the caller's concern.
type WSClient struct {
	url       string
	topic     string
	publisher message.Publisher
	log       zerolog.Logger

	mu        sync.Mutex
	conn      *websocket.Conn
	connected bool

	done chan struct{}
}

func NewWSClient(url, topic string, publisher message.Publisher) *WSClient {
	return &WSClient{
		url:       url,
		topic:     topic,
		publisher: publisher,
		log:       logger.WithComponent("transport"),
		done:      make(chan struct{}),
	}
}

// Connect dials the server and starts the read loop.
func (c *WSClient) Connect(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return errors.Wrapf(err, "dialing %s", c.url)
	}

	c.mu.Lock()
	c.conn = conn
	c.connected = true
	c.mu.Unlock()

	c.log.Info().Str("url", c.url).Msg("connected")
	go c.readLoop(conn)
	return nil
}

func (c *WSClient) readLoop(conn *websocket.Conn) {
	defer close(c.done)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.log.Info().Err(err).Msg("read loop ended")
			c.markDisconnected()
			return
		}

		var frame wireFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			c.log.Debug().Err(err).Msg("dropping unparseable frame")
			continue
		}

		msg := message.NewMessage(uuid.NewString(), []byte(frame.Payload))
		msg.Metadata.Set(reducer.MetadataEventName, frame.Event)
		if err := c.publisher.Publish(c.topic, msg); err != nil {
			c.log.Warn().Err(err).Str("event", frame.Event).Msg("publish failed")
		}
	}
}

func (c *WSClient) markDisconnected() {
	c.mu.Lock()
	c.connected = false
	c.mu.Unlock()
}

func (c *WSClient) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// SendText writes a message-send frame. The server echoes the accepted
// message back as a message-added event; nothing is appended locally.
func (c *WSClient) SendText(ctx context.Context, text string, fileIDs []string) error {
	c.mu.Lock()
	conn := c.conn
	connected := c.connected
	c.mu.Unlock()

	if !connected || conn == nil {
		return errors.New("not connected")
	}

	payload, err := json.Marshal(outboundMessage{Content: text, FileIDs: fileIDs})
	if err != nil {
		return errors.Wrap(err, "encoding message")
	}
	frame, err := json.Marshal(wireFrame{Event: "message-send", Payload: payload})
	if err != nil {
		return errors.Wrap(err, "encoding frame")
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetWriteDeadline(deadline)
	}
	if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		c.markDisconnected()
		return errors.Wrap(err, "writing message")
	}
	return nil
}

// Done is closed when the read loop exits.
func (c *WSClient) Done() <-chan struct{} {
	return c.done
}

func (c *WSClient) Close() error {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.connected = false
	c.mu.Unlock()

	if conn == nil {
		return nil
	}
	deadline := time.Now().Add(time.Second)
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	return conn.Close()
}

var _ Client = (*WSClient)(nil)
