package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/ghuser/homebook/pkg/logger"
)

// LocalBus is an in-process pub/sub on Watermill's GoChannel. Messages are
// lost on exit, so it only carries signals that matter while the process runs.
// Every subscriber receives every message.
type LocalBus struct {
	pubsub *gochannel.GoChannel
	log    logger.Logger
	wg     sync.WaitGroup
}

// NewLocalBus returns a LocalBus whose subscribers buffer up to buffer messages.
func NewLocalBus(buffer int64, log logger.Logger) *LocalBus {
	return &LocalBus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: buffer}, &slogAdapter{log: log}),
		log:    log,
	}
}

// Publish sends msgs to topic with ctx's trace context attached.
func (b *LocalBus) Publish(ctx context.Context, topic string, msgs ...*message.Message) error {
	injectTrace(ctx, msgs)
	if err := b.pubsub.Publish(topic, msgs...); err != nil { //nolint:contextcheck
		return fmt.Errorf("events: publish to %s: %w", topic, err)
	}
	return nil
}

// Subscribe runs handler for every message on topic with the same retry
// policy as EventBus.Subscribe. Drain the returned channel.
func (b *LocalBus) Subscribe(ctx context.Context, topic string, handler Handler) (<-chan error, error) {
	ch, err := b.pubsub.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("events: subscribe to %s: %w", topic, err)
	}
	return consume(ctx, topic, ch, handler, &b.wg, b.log), nil
}

// Close stops delivery and waits for running handlers.
func (b *LocalBus) Close() error {
	if err := b.pubsub.Close(); err != nil {
		return fmt.Errorf("events: close local bus: %w", err)
	}
	b.wg.Wait()
	return nil
}
