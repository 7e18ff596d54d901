package handler

import (
	"context"

	"github.com/ventoux/partita/message"
)

// MapError returns a handler that passes every error returned by h
// through f. Successful results are untouched and f never sees a nil
// error.
func MapError[K, V any](h Handler[K, V], f func(error) error) Handler[K, V] {
	return New(func(ctx context.Context, rec *message.Record[K, V]) error {
		if err := h.Handle(ctx, rec); err != nil {
			return f(err)
		}
		return nil
	}, h.Topics()...)
}

// Convert returns a handler for one record shape that feeds another.
// Incoming records are passed through conv and the result is handed
// to h. When conv fails its error is returned as is and h is never
// invoked. The returned handler consumes h's topics.
//
// Convert is how typed handlers plug into the raw pipeline, see
// Deserialize.
func Convert[K, V, K2, V2 any](h Handler[K2, V2], conv func(ctx context.Context, rec *message.Record[K, V]) (*message.Record[K2, V2], error)) Handler[K, V] {
	return New(func(ctx context.Context, rec *message.Record[K, V]) error {
		out, err := conv(ctx, rec)
		if err != nil {
			return err
		}
		return h.Handle(ctx, out)
	}, h.Topics()...)
}

// Catch returns a handler that delegates every failure of h to f,
// together with the record that failed. The result of f replaces the
// original error, so returning nil swallows the failure.
func Catch[K, V any](h Handler[K, V], f func(ctx context.Context, rec *message.Record[K, V], err error) error) Handler[K, V] {
	return New(func(ctx context.Context, rec *message.Record[K, V]) error {
		if err := h.Handle(ctx, rec); err != nil {
			return f(ctx, rec, err)
		}
		return nil
	}, h.Topics()...)
}

// Ignore returns a handler that succeeds no matter what h returns.
func Ignore[K, V any](h Handler[K, V]) Handler[K, V] {
	return New(func(ctx context.Context, rec *message.Record[K, V]) error {
		_ = h.Handle(ctx, rec)
		return nil
	}, h.Topics()...)
}

// Then returns a handler that runs fn after h on every record,
// whether or not h failed. When h failed its error is what the
// combined handler returns; when h succeeded the combined handler
// returns whatever fn returned.
func Then[K, V any](h Handler[K, V], fn Func[K, V]) Handler[K, V] {
	return New(func(ctx context.Context, rec *message.Record[K, V]) error {
		err := h.Handle(ctx, rec)
		if ferr := fn(ctx, rec); err == nil {
			return ferr
		}
		return err
	}, h.Topics()...)
}
