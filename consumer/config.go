package consumer

import (
	"context"
	"time"

	"github.com/Shopify/sarama"
	"gopkg.in/retry.v1"

	"github.com/ventoux/partita/common"
	"github.com/ventoux/partita/message"
)

// Config is used to configure the Consumer.
type Config struct {
	*sarama.Config

	// KafkaAddrs holds kafka brokers addresses. There must be at least
	// one entry in the slice.
	// Default to localhost:9092.
	KafkaAddrs []string

	// Logger traces the consumer's activity. If you wish to provide a
	// different value you must do this prior to calling Consumer.Serve.
	// Default to a logger that discards everything.
	Logger common.StdLogger

	// Discarded is called when a record handler returns an error.
	// Returning true marks the record consumed anyway; returning false
	// leaves its offset unmarked, so the record is delivered again
	// after the next rebalance. When nil, failed records are logged
	// and marked.
	Discarded func(ctx context.Context, rec *message.RawRecord, err error) bool

	// MaxRetryInterval controls the maximum length of time the
	// consumer will wait before trying to rejoin its group after a
	// failed session.
	// Default to 5 seconds.
	MaxRetryInterval time.Duration

	retryStrategy retry.Strategy
}

// NewConfig creates a config with sane defaults. The client id also
// names the consumer group the consumer joins.
func NewConfig(clientID string, addrs ...string) Config {
	var c Config

	c.Config = sarama.NewConfig()
	c.ClientID = clientID
	c.Consumer.Return.Errors = true
	// Specify that we are using at least Kafka v1.0, headers are not
	// supported before that.
	c.Version = sarama.V1_0_0_0
	// Distribute load across instances using round robin strategy
	c.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{
		sarama.NewBalanceStrategyRoundRobin(),
	}

	c.KafkaAddrs = addrs
	if c.KafkaAddrs == nil {
		c.KafkaAddrs = []string{"localhost:9092"}
	}

	c.Logger = common.Discard
	c.MaxRetryInterval = 5 * time.Second

	// Note: the rejoin logic in Serve assumes that this does not
	// terminate; be aware of that when changing this strategy.
	c.retryStrategy = retry.Exponential{
		Initial:  time.Millisecond,
		Factor:   2,
		MaxDelay: c.MaxRetryInterval,
		Jitter:   true,
	}

	return c
}
