package handler

import (
	"context"
	"sort"

	"github.com/ventoux/partita/message"
)

// Combine merges two handlers into one that consumes the union of
// their topics. The routing table is built once, when Combine is
// called.
//
// A topic claimed by a single handler routes straight to it. A topic
// claimed by both routes to both: they run concurrently on the same
// record, Handle waits for the two of them even when one fails, and
// returns the error that occurred first, if any. Records on topics
// claimed by neither handler succeed without any handler running, so
// a combined handler is safe to feed from a superset subscription.
//
// Combining combined handlers nests the routing, so any number of
// handlers can share a topic.
func Combine[K, V any](h1, h2 Handler[K, V]) Handler[K, V] {
	routes := make(map[string]Func[K, V])
	for _, t := range h1.Topics() {
		routes[t] = h1.Handle
	}
	for _, t := range h2.Topics() {
		if first, ok := routes[t]; ok {
			routes[t] = both(first, h2.Handle)
		} else {
			routes[t] = h2.Handle
		}
	}

	topics := make([]string, 0, len(routes))
	for t := range routes {
		topics = append(topics, t)
	}
	sort.Strings(topics)

	return &combined[K, V]{topics: topics, routes: routes}
}

type combined[K, V any] struct {
	topics []string
	routes map[string]Func[K, V]
}

func (c *combined[K, V]) Topics() []string {
	return copyTopics(c.topics)
}

func (c *combined[K, V]) Handle(ctx context.Context, rec *message.Record[K, V]) error {
	fn, ok := c.routes[rec.Topic]
	if !ok {
		return nil
	}
	return fn(ctx, rec)
}

// both runs two handler functions concurrently on the same record,
// waits for the two of them and keeps the error that arrived first.
func both[K, V any](fn1, fn2 Func[K, V]) Func[K, V] {
	return func(ctx context.Context, rec *message.Record[K, V]) error {
		errc := make(chan error, 2)
		go func() { errc <- fn1(ctx, rec) }()
		go func() { errc <- fn2(ctx, rec) }()

		var first error
		for i := 0; i < 2; i++ {
			if err := <-errc; err != nil && first == nil {
				first = err
			}
		}
		return first
	}
}
