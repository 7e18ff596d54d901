package codec_test

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/ventoux/partita/codec"
	"github.com/ventoux/partita/message"
)

func TestAsDecodesWithCodec(t *testing.T) {
	c := qt.New(t)

	d := codec.As[string](codec.String())
	v, err := d.Deserialize("greetings", nil, []byte("hello"))
	c.Assert(err, qt.IsNil)
	c.Assert(v, qt.Equals, "hello")
}

func TestAsReturnsZeroValueOnError(t *testing.T) {
	c := qt.New(t)

	d := codec.As[int64](codec.Int64())
	v, err := d.Deserialize("counts", nil, []byte("not a number"))
	c.Assert(err, qt.IsNotNil)
	c.Assert(v, qt.Equals, int64(0))
}

func TestBytesPassesDataThrough(t *testing.T) {
	c := qt.New(t)

	data := []byte{0x1, 0x2, 0x3}
	v, err := codec.Bytes().Deserialize("raw", nil, data)
	c.Assert(err, qt.IsNil)
	c.Assert(v, qt.DeepEquals, data)
}

func TestDeserializerFuncSeesTopicAndHeaders(t *testing.T) {
	c := qt.New(t)

	var gotTopic string
	var gotHeaders []message.Header
	d := codec.DeserializerFunc[string](func(topic string, headers []message.Header, data []byte) (string, error) {
		gotTopic = topic
		gotHeaders = headers
		return string(data), nil
	})

	v, err := d.Deserialize("orders", []message.Header{{Key: "Schema-Id", Value: []byte("7")}}, []byte("x"))
	c.Assert(err, qt.IsNil)
	c.Assert(v, qt.Equals, "x")
	c.Assert(gotTopic, qt.Equals, "orders")
	c.Assert(gotHeaders, qt.DeepEquals, []message.Header{{Key: "Schema-Id", Value: []byte("7")}})
}
