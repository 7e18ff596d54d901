package handler

import (
	"context"
	"sort"

	"github.com/ventoux/partita/message"
)

// Handler is the interface for processing consumed records. You can
// either implement it by hand on some type, or make use of New and
// the Func type. Note that partita handlers receive partita Record
// types.
//
// Handlers are the unit of composition: the functions in this package
// and in the retry package all take handlers and return new ones.
// Implementations must keep the result of Topics stable, because
// combinators capture it once, at construction time.
type Handler[K, V any] interface {
	// Topics returns the topics the handler consumes. The result is
	// sorted, free of duplicates and safe for the caller to modify.
	Topics() []string

	// Handle processes a single record. It should abort as soon as
	// possible when the context is done.
	Handle(ctx context.Context, rec *message.Record[K, V]) error
}

// A Func is a function type that mimics the Handle method of the
// Handler interface. Passing one to New is the usual way of creating
// a leaf handler.
type Func[K, V any] func(ctx context.Context, rec *message.Record[K, V]) error

// New returns a Handler that consumes the given topics by calling fn
// for every record.
func New[K, V any](fn Func[K, V], topics ...string) Handler[K, V] {
	return &funcHandler[K, V]{topics: normalizeTopics(topics), fn: fn}
}

type funcHandler[K, V any] struct {
	topics []string
	fn     Func[K, V]
}

func (h *funcHandler[K, V]) Topics() []string {
	return copyTopics(h.topics)
}

func (h *funcHandler[K, V]) Handle(ctx context.Context, rec *message.Record[K, V]) error {
	return h.fn(ctx, rec)
}

// normalizeTopics sorts topics and drops duplicates.
func normalizeTopics(topics []string) []string {
	out := make([]string, 0, len(topics))
	seen := make(map[string]struct{}, len(topics))
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

func copyTopics(topics []string) []string {
	out := make([]string, len(topics))
	copy(out, topics)
	return out
}
