// The consumer package reads records from a Kafka consumer group and
// delivers them to handlers.
//
// You construct a Consumer from a configuration created by NewConfig,
// which fills in sane defaults and names the consumer group after the
// client id:
//
//	cfg := consumer.NewConfig("billing", "broker-1:9092", "broker-2:9092")
//	cs, err := consumer.New(cfg)
//
// Once you have a consumer you must register handlers on it with the
// Handle method. A handler declares the topics it wants through its
// Topics method, so registering it is all that is needed to grow the
// group subscription. Registering several handlers folds them into
// one with handler.Combine: handlers claiming the same topic all
// receive its records.
//
//	cs.Handle(handler.New(func(ctx context.Context, rec *message.RawRecord) error {
//		// Do something of your choice here!
//		return nil // .. or return an actual error.
//	}, "invoice"))
//
// Once your handlers are registered you may call Serve. Serve joins
// the consumer group and blocks, delivering records until Close is
// called, and rejoining the group with a backoff whenever a session
// fails. The subscription is fixed at this point; calls to Handle
// after Serve have no effect.
//
// A record's offset is marked once its handler returns nil. When the
// handler returns an error the record goes through the Discarded
// hook of the configuration, which decides whether to mark it anyway;
// by default it is logged and marked. Note that a handler that only
// enqueues work, such as one wrapped with handler.Parallel, returns
// before the record is fully processed, and its offset may therefore
// be marked early. Keep such wrappers innermost when that matters.
package consumer
