package retry

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ventoux/partita/common"
	"github.com/ventoux/partita/handler"
	"github.com/ventoux/partita/message"
)

// A Producer publishes records on behalf of the router.
// *producer.Producer implements it.
type Producer interface {
	Produce(ctx context.Context, rec *message.RawRecord) error
}

// ProduceError reports that a record which failed handling could not
// be moved to its retry topic either. Receiving one means the record
// was not rerouted and needs redelivery on its current topic. Match
// it with errors.As.
type ProduceError struct {
	// Topic is the retry topic the production was aimed at.
	Topic string

	// Cause is the producer's error.
	Cause error
}

func (e *ProduceError) Error() string {
	return fmt.Sprintf("failed to produce retry record. topic=%q: %v", e.Topic, e.Cause)
}

func (e *ProduceError) Unwrap() error { return e.Cause }

// A WrapOption configures the router returned by Wrap.
type WrapOption func(*wrapOptions)

type wrapOptions struct {
	logger common.StdLogger
}

// WithLogger makes the router trace its routing decisions on l. The
// default discards them.
func WithLogger(l common.StdLogger) WrapOption {
	return func(o *wrapOptions) {
		o.logger = l
	}
}

// Wrap returns a handler that moves records h fails on through the
// policy's retry topics instead of surfacing the errors.
//
// The returned handler consumes h's topics plus every retry topic the
// policy serves them with, so subscribing it brings the rerouted
// records back. When a delivery is a retry attempt, handling pauses
// for the attempt's backoff first; the pause honours ctx and blocks
// only the calling goroutine, one pool worker when running under
// handler.Parallel.
//
// After the pause h runs as usual. When it fails, the policy builds
// the record for the next attempt and exactly that one record is
// produced; Handle then reports success, since the failure now lives
// in the retry chain. Once the policy is exhausted h's error surfaces
// unchanged. When the production itself fails Handle returns a
// *ProduceError and the record stays where it is.
func Wrap(h handler.Handler[[]byte, []byte], policy Policy, producer Producer, opts ...WrapOption) handler.Handler[[]byte, []byte] {
	o := wrapOptions{logger: common.Discard}
	for _, opt := range opts {
		opt(&o)
	}

	origins := h.Topics()
	topics := make([]string, 0, 2*len(origins))
	topics = append(topics, origins...)
	for _, t := range origins {
		topics = append(topics, policy.RetryTopics(t)...)
	}

	return &router{
		h:        h,
		topics:   sortedUnique(topics),
		policy:   policy,
		producer: producer,
		logger:   o.logger,
		sleep:    sleepContext,
	}
}

type router struct {
	h        handler.Handler[[]byte, []byte]
	topics   []string
	policy   Policy
	producer Producer
	logger   common.StdLogger
	sleep    func(ctx context.Context, d time.Duration) error
}

func (r *router) Topics() []string {
	topics := make([]string, len(r.topics))
	copy(topics, r.topics)
	return topics
}

func (r *router) Handle(ctx context.Context, rec *message.RawRecord) error {
	att := r.policy.Attempt(rec)
	if att != nil && att.Backoff > 0 {
		if err := r.sleep(ctx, att.Backoff); err != nil {
			return err
		}
	}

	err := r.h.Handle(ctx, rec)
	if err == nil {
		return nil
	}

	next := r.policy.RetryRecord(att, rec, err)
	if next == nil {
		return err
	}

	if perr := r.producer.Produce(ctx, next); perr != nil {
		r.logger.Printf("failed to produce retry record. topic=%q error=%v handler_error=%v", next.Topic, perr, err)
		return &ProduceError{Topic: next.Topic, Cause: perr}
	}
	r.logger.Printf("routed failed record to retry topic. topic=%q from=%q: %v", next.Topic, rec.Topic, err)
	return nil
}

// sleepContext pauses for d unless ctx ends first.
func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func sortedUnique(topics []string) []string {
	seen := make(map[string]struct{}, len(topics))
	out := make([]string, 0, len(topics))
	for _, t := range topics {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
