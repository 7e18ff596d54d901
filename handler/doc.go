// The handler package defines how consumed records are processed, and
// how processing pipelines are put together from small pieces.
//
// The Handler interface is the signature every piece shares. A
// handler knows the topics it consumes, via the Topics method, and
// processes one record at a time, via Handle. The most common way to
// obtain one is the New function:
//
//	h := handler.New(func(ctx context.Context, rec *message.Record[string, Order]) error {
//		return bill(ctx, rec.Value)
//	}, "orders")
//
// Everything else in the package takes handlers and returns new ones,
// so pipelines are built by wrapping:
//
//   - Deserialize turns a typed handler into a raw one, decoding keys
//     and values with the codec package and isolating decode failures
//     as *SerializationError.
//   - Combine merges two handlers into one consuming the union of
//     their topics. When both claim a topic, both run.
//   - Parallel spreads records over a fixed number of workers with
//     bounded queues, keeping records of the same partition in order.
//   - MapError, Convert, Catch, Ignore and Then adjust error and
//     record flow around an existing handler.
//
// A typical pipeline wires a typed handler to the consumer package
// like so:
//
//	typed := handler.New(handleOrder, "orders")
//	raw := handler.Deserialize(typed, codec.As[string](codec.String()), codec.As[Order](codec.JSON()))
//	pool, err := handler.Parallel(retry.Wrap(raw, policy, prod), 8)
//
// Handlers built by this package hold no state of their own besides
// the wiring above, and each Handle call is independent: ordering and
// delivery guarantees come from the consumer feeding the pipeline,
// not from the handlers themselves.
package handler
