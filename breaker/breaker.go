// The breaker package guards handlers with a circuit breaker. When a
// handler keeps failing, say because a downstream dependency is gone,
// the breaker opens and records fail fast without reaching the handler
// at all, giving the dependency room to recover.
//
// Wrap the breaker with the retry package to route the fast failures
// to retry topics instead of discarding the records:
//
//	h = retry.Wrap(breaker.Wrap(h, settings), policy, producer)
package breaker

import (
	"context"

	"github.com/sony/gobreaker"

	"github.com/ventoux/partita/handler"
	"github.com/ventoux/partita/message"
)

// Wrap returns a handler running h through a circuit breaker built
// from settings. While the breaker is open, Handle fails fast with
// gobreaker.ErrOpenState without invoking h.
//
// The zero Settings value gives the gobreaker defaults: the breaker
// opens after five consecutive failures and probes again after a
// minute.
func Wrap[K, V any](h handler.Handler[K, V], settings gobreaker.Settings) handler.Handler[K, V] {
	return &breakerHandler[K, V]{
		h:      h,
		topics: h.Topics(),
		cb:     gobreaker.NewCircuitBreaker(settings),
	}
}

type breakerHandler[K, V any] struct {
	h      handler.Handler[K, V]
	topics []string
	cb     *gobreaker.CircuitBreaker
}

func (b *breakerHandler[K, V]) Topics() []string {
	out := make([]string, len(b.topics))
	copy(out, b.topics)
	return out
}

func (b *breakerHandler[K, V]) Handle(ctx context.Context, rec *message.Record[K, V]) error {
	_, err := b.cb.Execute(func() (any, error) {
		return nil, b.h.Handle(ctx, rec)
	})
	return err
}
