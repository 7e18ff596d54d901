package codec

import (
	"github.com/ventoux/partita/message"
)

// A Deserializer turns the raw bytes of a record key or value into a
// value of type T. Implementations receive the record topic and
// headers so that decoding can depend on them, as schema-registry
// setups require. The codec backed deserializers ignore both.
type Deserializer[T any] interface {
	Deserialize(topic string, headers []message.Header, data []byte) (T, error)
}

// DeserializerFunc is a function adapter for the Deserializer
// interface.
type DeserializerFunc[T any] func(topic string, headers []message.Header, data []byte) (T, error)

// Deserialize calls f.
func (f DeserializerFunc[T]) Deserialize(topic string, headers []message.Header, data []byte) (T, error) {
	return f(topic, headers, data)
}

// As returns a Deserializer that decodes into a T using the given
// codec:
//
//	codec.As[string](codec.String())
//	codec.As[Order](codec.JSON())
func As[T any](c Codec) Deserializer[T] {
	return DeserializerFunc[T](func(topic string, headers []message.Header, data []byte) (T, error) {
		var v T
		if err := c.Decode(data, &v); err != nil {
			var zero T
			return zero, err
		}
		return v, nil
	})
}

// Bytes returns a Deserializer that hands the raw bytes through
// untouched.
func Bytes() Deserializer[[]byte] {
	return DeserializerFunc[[]byte](func(topic string, headers []message.Header, data []byte) ([]byte, error) {
		return data, nil
	})
}
