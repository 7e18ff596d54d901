package consumer

import (
	"context"
	"sync"
	"time"

	"github.com/Shopify/sarama"
	"github.com/pkg/errors"
	"gopkg.in/retry.v1"

	"github.com/ventoux/partita/common"
	"github.com/ventoux/partita/handler"
	"github.com/ventoux/partita/message"
)

// Consumer delivers records from a Kafka consumer group to registered
// handlers. Build one with New, register handlers with Handle, then
// call Serve.
type Consumer struct {
	cfg  Config
	quit chan struct{}

	mu      sync.Mutex
	h       handler.Handler[[]byte, []byte]
	serving bool
	closed  bool
}

// New returns a consumer for the given configuration. It does not
// connect to the brokers; that happens when Serve is called.
func New(cfg Config) (*Consumer, error) {
	if cfg.Config == nil {
		return nil, errors.New("invalid configuration: missing sarama configuration, use NewConfig")
	}
	if len(cfg.KafkaAddrs) == 0 {
		return nil, errors.New("invalid configuration: no broker addresses")
	}
	if cfg.Logger == nil {
		cfg.Logger = common.Discard
	}
	if cfg.MaxRetryInterval <= 0 {
		cfg.MaxRetryInterval = 5 * time.Second
	}
	if cfg.retryStrategy == nil {
		cfg.retryStrategy = retry.Exponential{
			Initial:  time.Millisecond,
			Factor:   2,
			MaxDelay: cfg.MaxRetryInterval,
			Jitter:   true,
		}
	}
	return &Consumer{
		cfg:  cfg,
		quit: make(chan struct{}),
	}, nil
}

// Handle registers h with the consumer. The topics h claims join the
// group subscription. Registering several handlers folds them
// together with handler.Combine, so handlers sharing a topic all see
// its records.
//
// Handle must be called before Serve; later calls have no effect.
func (c *Consumer) Handle(h handler.Handler[[]byte, []byte]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.serving {
		c.cfg.Logger.Printf("handler registered after Serve was called, ignoring it. topics=%v", h.Topics())
		return
	}
	if c.h == nil {
		c.h = h
		return
	}
	c.h = handler.Combine(c.h, h)
}

// Serve joins the consumer group and delivers records to the
// registered handlers until Close is called or ctx ends, in which
// case it returns nil. The subscription is fixed when Serve starts;
// it is the union of the registered handlers' topics.
//
// When a group session fails, Serve rejoins with an exponential
// backoff capped at Config.MaxRetryInterval.
func (c *Consumer) Serve(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	if c.serving {
		c.mu.Unlock()
		return errors.New("consumer is already serving")
	}
	if c.h == nil {
		c.mu.Unlock()
		return errors.New("no handler registered")
	}
	c.serving = true
	h := c.h
	c.mu.Unlock()

	topics := h.Topics()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-c.quit:
			cancel()
		case <-ctx.Done():
		}
	}()

	group, err := sarama.NewConsumerGroup(c.cfg.KafkaAddrs, c.cfg.ClientID, c.cfg.Config)
	if err != nil {
		return errors.Wrap(err, "failed to join consumer group")
	}
	defer func() {
		if err := group.Close(); err != nil {
			c.cfg.Logger.Printf("failed to close consumer group: %v", err)
		}
	}()

	go func() {
		for err := range group.Errors() {
			c.cfg.Logger.Printf("consumer group error: %v", err)
		}
	}()

	c.cfg.Logger.Printf("joining consumer group. group=%q topics=%v", c.cfg.ClientID, topics)
	gh := &groupHandler{consumer: c, handler: h}
	for a := retry.StartWithCancel(c.cfg.retryStrategy, nil, c.quit); ; {
		err := group.Consume(ctx, topics, gh)
		if ctx.Err() != nil || c.isClosed() {
			return nil
		}
		switch {
		case err == nil:
			// The session ended with a rebalance; rejoin right away
			// with a fresh backoff.
			a = retry.StartWithCancel(c.cfg.retryStrategy, nil, c.quit)
		case errors.Is(err, sarama.ErrClosedConsumerGroup):
			return nil
		default:
			c.cfg.Logger.Printf("consumer group session failed, rejoining: %v", err)
			if !a.Next() {
				if a.Stopped() {
					return nil
				}
				return errors.Wrap(err, "failed to rejoin consumer group")
			}
		}
	}
}

// Close stops the consumer and unblocks Serve, which returns nil. It
// cancels the context passed to running handlers. Close is safe to
// call more than once and before Serve.
func (c *Consumer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	close(c.quit)
	return nil
}

func (c *Consumer) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// discarded decides whether a record that failed handling should be
// marked consumed regardless.
func (c *Consumer) discarded(ctx context.Context, rec *message.RawRecord, err error) bool {
	if c.cfg.Discarded != nil {
		return c.cfg.Discarded(ctx, rec, err)
	}
	c.cfg.Logger.Printf("discarding record after handler failure. topic=%q partition=%d offset=%d: %v", rec.Topic, rec.Partition, rec.Offset, err)
	return true
}

// groupHandler adapts the registered handlers to the sarama consumer
// group contract.
type groupHandler struct {
	consumer *Consumer
	handler  handler.Handler[[]byte, []byte]
}

// Setup implements sarama.ConsumerGroupHandler.
func (gh *groupHandler) Setup(sess sarama.ConsumerGroupSession) error {
	gh.consumer.cfg.Logger.Printf("consumer group session started. claims=%v", sess.Claims())
	return nil
}

// Cleanup implements sarama.ConsumerGroupHandler.
func (gh *groupHandler) Cleanup(sess sarama.ConsumerGroupSession) error {
	gh.consumer.cfg.Logger.Printf("consumer group session ended")
	return nil
}

// ConsumeClaim implements sarama.ConsumerGroupHandler. It runs in its
// own goroutine for every claimed partition.
func (gh *groupHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		gh.consumeMessage(sess, msg)
	}
	return nil
}

func (gh *groupHandler) consumeMessage(sess sarama.ConsumerGroupSession, msg *sarama.ConsumerMessage) {
	rec := FromConsumerMessage(msg)
	if err := gh.handler.Handle(sess.Context(), rec); err != nil {
		if sess.Context().Err() != nil {
			// Shutting down; leave the record unmarked so it is
			// delivered again.
			return
		}
		if !gh.consumer.discarded(sess.Context(), rec, err) {
			return
		}
	}
	sess.MarkMessage(msg, "")
}
