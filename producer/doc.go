// Package producer sends records to Kafka topics.
//
// A Producer is created with a Config, obtained from NewConfig:
//
//	config := producer.NewConfig("client-id")
//	p, err := producer.New(config, "localhost:9092")
//
// The Send method encodes a value with the configured value codec and
// produces it:
//
//	rec, err := p.Send(ctx, "invoice", invoice, producer.StrKey(invoice.CustomerID))
//
// Values are encoded as JSON unless the ValueCodec field of the Config
// is changed. Options set the record key, add headers or override the
// generated record id. Records with the same key always land on the
// same partition.
//
// Produce sends an already encoded record. The retry package uses it
// to route failed records to retry topics:
//
//	err := p.Produce(ctx, rec)
//
// Both methods are synchronous and wait for all in-sync replicas to
// acknowledge the record. Each produced record is stamped with a
// unique id and its production time, carried in headers alongside the
// record so consumers can recover them.
//
// The default partitioner agrees with the JVM Kafka clients on where
// keyed records land, so Go and JVM producers can safely share topics.
package producer
