// The message package contains the Record type exchanged between all
// the other partita packages. When you consume, your handlers receive
// records; when you produce, a record is what you hand to the
// producer, and what you get back once the broker has placed it.
//
// A Record carries the payload and key of a single Kafka message
// together with its position (topic, partition and offset) and its
// headers. Unlike a map, record headers are an ordered sequence that
// may repeat keys, exactly as Kafka transports them.
//
// Record is parameterized by its key and value types. The consumer
// package delivers RawRecord values, where both sides are byte
// slices:
//
//	rec.Key   // []byte, nil when the message had no key
//	rec.Value // []byte
//
// Typed records, such as a *message.Record[string, Order], are
// obtained by wrapping a handler with handler.Deserialize and the
// codecs of your choice.
//
// Records published through the producer package always carry two
// headers:
//
//   - Record-Id : a universally unique id for the record
//   - Produced-At : the production time in UTC, RFC 3339 format
package message
