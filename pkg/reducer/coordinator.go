package reducer

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/killallgit/scribe/pkg/events"
	"github.com/killallgit/scribe/pkg/logger"
)

// MetadataEventName is the watermill message metadata key carrying the
// wire event name; the payload is the event's JSON body.
const MetadataEventName = "event"

// Source is one inbound event channel: a watermill subscription on a
// topic. The primary transport and the per-session emitter each provide
// one.
type Source struct {
	Name       string
	Subscriber message.Subscriber
	Topic      string
}

// Coordinator merges the inbound sources into one internal queue and
// drains it from a single goroutine, so reducer mutations are serialized.
// Order within each source is preserved; no ordering holds across
// sources, which is exactly why the session gate exists.
type Coordinator struct {
	reducer *Reducer
	sources []Source
	log     zerolog.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	running bool
	drained chan struct{}
}

func NewCoordinator(r *Reducer, sources ...Source) *Coordinator {
	return &Coordinator{
		reducer: r,
		sources: sources,
		log:     logger.WithComponent("coordinator"),
	}
}

// Start subscribes to every source and begins applying events. Calling
// Start on a running coordinator is a no-op.
func (c *Coordinator) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return nil
	}
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.running = true
	c.drained = make(chan struct{})
	c.mu.Unlock()

	queue := make(chan events.Event, 1024)

	var forwarders sync.WaitGroup
	for _, src := range c.sources {
		ch, err := src.Subscriber.Subscribe(runCtx, src.Topic)
		if err != nil {
			cancel()
			c.mu.Lock()
			c.running = false
			c.cancel = nil
			c.mu.Unlock()
			return err
		}
		forwarders.Add(1)
		go c.forward(src, ch, queue, &forwarders)
	}

	go func() {
		forwarders.Wait()
		close(queue)
	}()
	go c.consume(queue)

	c.log.Info().Int("sources", len(c.sources)).Msg("coordinator started")
	return nil
}

// forward drains one subscription in receipt order into the shared queue.
func (c *Coordinator) forward(src Source, ch <-chan *message.Message, queue chan<- events.Event, wg *sync.WaitGroup) {
	defer wg.Done()
	for msg := range ch {
		name := msg.Metadata.Get(MetadataEventName)
		ev := events.Decode(name, msg.Payload)
		if m, ok := ev.(events.Malformed); ok {
			c.log.Debug().
				Str("source", src.Name).
				Str("event", m.Name).
				Str("reason", m.Reason).
				Msg("forwarding malformed event")
		}
		queue <- ev
		msg.Ack()
	}
	c.log.Info().Str("source", src.Name).Msg("source closed")
}

func (c *Coordinator) consume(queue <-chan events.Event) {
	for ev := range queue {
		c.reducer.Apply(ev)
	}
	c.mu.Lock()
	c.running = false
	c.cancel = nil
	drained := c.drained
	c.mu.Unlock()
	if drained != nil {
		close(drained)
	}
	c.log.Info().Msg("coordinator stopped")
}

// Stop cancels the subscriptions and waits for already-queued events to
// finish applying.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	cancel := c.cancel
	drained := c.drained
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if drained != nil {
		<-drained
	}
}

// IsRunning reports whether the consume loop is active.
func (c *Coordinator) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}
