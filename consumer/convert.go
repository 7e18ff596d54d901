package consumer

import (
	"github.com/Shopify/sarama"

	"github.com/ventoux/partita/message"
)

// FromConsumerMessage converts a message received from Kafka into a
// raw record. Header order is preserved. The record id is recovered
// from the Record-Id header when the producer stamped one.
func FromConsumerMessage(msg *sarama.ConsumerMessage) *message.RawRecord {
	rec := &message.RawRecord{
		Topic:      msg.Topic,
		Partition:  msg.Partition,
		Offset:     msg.Offset,
		Key:        msg.Key,
		Value:      msg.Value,
		ProducedAt: msg.Timestamp,
	}
	if len(msg.Headers) > 0 {
		rec.Headers = make([]message.Header, len(msg.Headers))
		for i, h := range msg.Headers {
			rec.Headers[i] = message.Header{Key: string(h.Key), Value: h.Value}
		}
	}
	if id, ok := rec.HeaderValue(message.IDHeader); ok {
		rec.ID = string(id)
	}
	return rec
}
