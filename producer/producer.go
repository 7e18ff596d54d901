package producer

import (
	"context"
	"time"

	"github.com/Shopify/sarama"
	"github.com/pkg/errors"
	"github.com/rogpeppe/fastuuid"

	"github.com/ventoux/partita/message"
)

var uuids = fastuuid.MustNewGenerator()

// Producer sends records to Kafka.
// It embeds the sarama.SyncProducer type and shadows its methods to
// work with records.
type Producer struct {
	sarama.SyncProducer

	config Config
}

// New creates a Producer.
// This Producer is synchronous, this means that it will wait for all the
// in-sync replicas to acknowledge the record.
func New(config Config, addrs ...string) (*Producer, error) {
	p, err := sarama.NewSyncProducer(addrs, &config.Config)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create a producer")
	}

	return NewFrom(p, config), nil
}

// NewFrom creates a producer using the given SyncProducer. Useful when
// wanting to create multiple producers with different configurations but
// sharing the same underlying connection.
func NewFrom(producer sarama.SyncProducer, config Config) *Producer {
	return &Producer{SyncProducer: producer, config: config}
}

// Produce sends rec to Kafka synchronously. The record is stamped with
// a unique id and its production time, carried in the Record-Id and
// Produced-At headers so consumers can recover them; its Partition and
// Offset fields are filled in from the broker response.
//
// The context is checked before sending. Sarama's synchronous producer
// cannot abort a send already in flight.
func (p *Producer) Produce(ctx context.Context, rec *message.RawRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if rec.ID == "" {
		rec.ID = uuids.Hex128()
	}
	if rec.ProducedAt.IsZero() {
		rec.ProducedAt = time.Now()
	}

	pmsg := &sarama.ProducerMessage{
		Topic:     rec.Topic,
		Value:     sarama.ByteEncoder(rec.Value),
		Timestamp: rec.ProducedAt,
	}
	if rec.Key != nil {
		pmsg.Key = sarama.ByteEncoder(rec.Key)
	}
	pmsg.Headers = make([]sarama.RecordHeader, 0, len(rec.Headers)+2)
	for _, h := range rec.Headers {
		if h.Key == message.IDHeader || h.Key == message.ProducedAtHeader {
			continue
		}
		pmsg.Headers = append(pmsg.Headers, sarama.RecordHeader{
			Key:   []byte(h.Key),
			Value: h.Value,
		})
	}
	pmsg.Headers = append(pmsg.Headers,
		sarama.RecordHeader{
			Key:   []byte(message.IDHeader),
			Value: []byte(rec.ID),
		},
		sarama.RecordHeader{
			Key:   []byte(message.ProducedAtHeader),
			Value: []byte(rec.ProducedAt.UTC().Format(time.RFC3339Nano)),
		},
	)

	var err error
	rec.Partition, rec.Offset, err = p.SyncProducer.SendMessage(pmsg)

	return errors.Wrap(err, "failed to produce record")
}

// Send encodes value with the configured value codec and produces it
// to the given topic. It returns the record sent to the brokers.
func (p *Producer) Send(ctx context.Context, topic string, value any, opts ...Option) (*message.RawRecord, error) {
	body, err := p.config.ValueCodec.Encode(value)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode record value")
	}

	rec := &message.RawRecord{
		Topic: topic,
		Value: body,
	}
	for _, opt := range opts {
		if err := opt(rec); err != nil {
			return nil, err
		}
	}

	if err := p.Produce(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}
