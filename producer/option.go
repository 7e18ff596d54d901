package producer

import (
	"github.com/pkg/errors"

	"github.com/ventoux/partita/codec"
	"github.com/ventoux/partita/message"
)

// An Option configures a record before it is produced.
type Option func(*message.RawRecord) error

// Header adds a header to the record. Headers are sent in the order
// they are added.
func Header(k, v string) Option {
	return func(rec *message.RawRecord) error {
		rec.Headers = append(rec.Headers, message.Header{
			Key:   k,
			Value: []byte(v),
		})
		return nil
	}
}

// Key sets the record key. Records sharing a key land on the same
// partition and are therefore delivered in order.
func Key(enc codec.Encoder) Option {
	return func(rec *message.RawRecord) error {
		k, err := enc.Encode()
		if err != nil {
			return errors.Wrap(err, "failed to encode record key")
		}
		rec.Key = k
		return nil
	}
}

// StrKey sets the record key from a string.
func StrKey(k string) Option {
	return Key(codec.StringEncoder(k))
}

// Int64Key sets the record key from an int64.
func Int64Key(k int64) Option {
	return Key(codec.Int64Encoder(k))
}

// Float64Key sets the record key from a float64.
func Float64Key(k float64) Option {
	return Key(codec.Float64Encoder(k))
}

// ID overrides the generated record id.
func ID(id string) Option {
	return func(rec *message.RawRecord) error {
		rec.ID = id
		return nil
	}
}
