package codec

import (
	"github.com/hamba/avro/v2"
)

// Avro returns a Codec that encodes and decodes values against the
// given Avro schema. Values are mapped to the schema following the
// hamba/avro conventions, so struct fields may carry avro tags:
//
//	type Order struct {
//		ID     string  `avro:"id"`
//		Amount float64 `avro:"amount"`
//	}
//
//	c := codec.Avro(avro.MustParse(orderSchema))
func Avro(schema avro.Schema) Codec {
	return &codecFunc{
		func(v any) ([]byte, error) {
			return avro.Marshal(schema, v)
		},
		func(data []byte, target any) error {
			return avro.Unmarshal(schema, data, target)
		},
	}
}
