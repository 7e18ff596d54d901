package handler

import (
	"context"
	"fmt"

	"github.com/ventoux/partita/codec"
	"github.com/ventoux/partita/message"
)

// SerializationError is returned by a handler built with Deserialize
// when the key or value of a record cannot be decoded. The wrapped
// handler is never invoked for such records.
//
// Match it with errors.As to tell decode failures apart from business
// errors:
//
//	var serr *handler.SerializationError
//	if errors.As(err, &serr) {
//		// quarantine the record, fix the producer...
//	}
type SerializationError struct {
	// Topic, Partition and Offset locate the undecodable record.
	Topic     string
	Partition int32
	Offset    int64

	// Key is true when the record key failed to decode, false when
	// it was the value.
	Key bool

	// Cause is the error returned by the deserializer.
	Cause error
}

func (e *SerializationError) Error() string {
	side := "value"
	if e.Key {
		side = "key"
	}
	return fmt.Sprintf("failed to decode record %s. topic=%q partition=%d offset=%d: %v", side, e.Topic, e.Partition, e.Offset, e.Cause)
}

// Unwrap returns the deserializer error.
func (e *SerializationError) Unwrap() error { return e.Cause }

// Deserialize returns a raw handler that decodes records before
// handing them to h. The record key is decoded with keyDec only when
// the record has one; keyless records reach h with the zero value of
// K. When either side fails to decode, Handle returns a
// *SerializationError and h is not invoked.
//
// The returned handler consumes h's topics.
func Deserialize[K, V any](h Handler[K, V], keyDec codec.Deserializer[K], valDec codec.Deserializer[V]) Handler[[]byte, []byte] {
	return Convert(h, func(ctx context.Context, rec *message.RawRecord) (*message.Record[K, V], error) {
		out := &message.Record[K, V]{
			Topic:      rec.Topic,
			Partition:  rec.Partition,
			Offset:     rec.Offset,
			Headers:    rec.Headers,
			ProducedAt: rec.ProducedAt,
			ID:         rec.ID,
		}

		if rec.Key != nil {
			key, err := keyDec.Deserialize(rec.Topic, rec.Headers, rec.Key)
			if err != nil {
				return nil, &SerializationError{
					Topic:     rec.Topic,
					Partition: rec.Partition,
					Offset:    rec.Offset,
					Key:       true,
					Cause:     err,
				}
			}
			out.Key = key
		}

		val, err := valDec.Deserialize(rec.Topic, rec.Headers, rec.Value)
		if err != nil {
			return nil, &SerializationError{
				Topic:     rec.Topic,
				Partition: rec.Partition,
				Offset:    rec.Offset,
				Cause:     err,
			}
		}
		out.Value = val

		return out, nil
	})
}
