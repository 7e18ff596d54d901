package codec_test

import (
	"testing"

	"github.com/hamba/avro/v2"
	"github.com/stretchr/testify/require"
	"github.com/ventoux/partita/codec"
)

const orderSchema = `{
	"type": "record",
	"name": "order",
	"fields": [
		{"name": "id", "type": "string"},
		{"name": "amount", "type": "double"}
	]
}`

type order struct {
	ID     string  `avro:"id"`
	Amount float64 `avro:"amount"`
}

func TestAvroRoundTrip(t *testing.T) {
	c := codec.Avro(avro.MustParse(orderSchema))

	data, err := c.Encode(order{ID: "o-1", Amount: 9.5})
	require.NoError(t, err)

	var got order
	err = c.Decode(data, &got)
	require.NoError(t, err)
	require.Equal(t, order{ID: "o-1", Amount: 9.5}, got)
}

func TestAvroEncodeMismatch(t *testing.T) {
	c := codec.Avro(avro.MustParse(orderSchema))

	_, err := c.Encode(42)
	require.Error(t, err)
}
