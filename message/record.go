package message

import (
	"time"
)

// Names of the headers stamped by the producer on every record it
// publishes.
const (
	// IDHeader carries the unique id assigned to the record at
	// production time.
	IDHeader = "Record-Id"

	// ProducedAtHeader carries the production time in UTC, formatted
	// as RFC 3339.
	ProducedAtHeader = "Produced-At"
)

// Header is a single key/value pair carried by a record. The headers
// of a record form an ordered sequence and may repeat keys.
type Header struct {
	Key   string
	Value []byte
}

// Record is a single unit of data read from or written to a Kafka
// topic.
//
// K and V are the types of the record key and value. Records delivered
// by the broker start out raw, with byte slices on both sides (see
// RawRecord), and acquire concrete types when they cross a
// deserializing handler boundary (see the handler package).
//
// Once constructed, a record is treated as read-only: code that needs
// a record of a different shape builds a new one rather than modifying
// it in place.
type Record[K, V any] struct {
	// Topic the record was read from, or will be written to.
	Topic string

	// Partition within the topic. It is set by the broker on delivery
	// and filled in by the producer after a successful write.
	Partition int32

	// Offset of the record within its partition. Like Partition, it
	// is only meaningful once the record has been through the broker.
	Offset int64

	// Key determines partition placement for produced records.
	// It is the zero value of K when the record carries no key.
	Key K

	// Value is the record payload.
	Value V

	// Headers carried by the record, in wire order.
	Headers []Header

	// ProducedAt is the time the record was produced.
	ProducedAt time.Time

	// ID is the unique id assigned by the producer, recovered from
	// the Record-Id header on consumption. Records produced by other
	// clients may not have one.
	ID string
}

// RawRecord is a record as delivered by the broker, before any
// deserialization has taken place.
type RawRecord = Record[[]byte, []byte]

// HeaderValue returns the value of the last header with the given key.
// It reports false when the record has no such header.
func (r *Record[K, V]) HeaderValue(key string) ([]byte, bool) {
	for i := len(r.Headers) - 1; i >= 0; i-- {
		if r.Headers[i].Key == key {
			return r.Headers[i].Value, true
		}
	}
	return nil, false
}
