package handler_test

import (
	"context"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/pkg/errors"
	"github.com/ventoux/partita/codec"
	"github.com/ventoux/partita/handler"
	"github.com/ventoux/partita/message"
)

type payment struct {
	Account string `json:"account"`
	Cents   int64  `json:"cents"`
}

func TestDeserializeTypedRecord(t *testing.T) {
	c := qt.New(t)
	c.Parallel()

	var got *message.Record[string, payment]
	typed := handler.New(func(ctx context.Context, rec *message.Record[string, payment]) error {
		got = rec
		return nil
	}, "payments")

	h := handler.Deserialize(typed, codec.As[string](codec.String()), codec.As[payment](codec.JSON()))
	c.Assert(h.Topics(), qt.DeepEquals, []string{"payments"})

	producedAt := time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC)
	raw := &message.RawRecord{
		Topic:      "payments",
		Partition:  3,
		Offset:     9182,
		Key:        []byte("ACC-1"),
		Value:      []byte(`{"account":"ACC-1","cents":1250}`),
		Headers:    []message.Header{{Key: message.IDHeader, Value: []byte("id-1")}},
		ProducedAt: producedAt,
		ID:         "id-1",
	}
	c.Assert(h.Handle(context.Background(), raw), qt.IsNil)

	c.Assert(got.Key, qt.Equals, "ACC-1")
	c.Assert(got.Value, qt.DeepEquals, payment{Account: "ACC-1", Cents: 1250})
	c.Assert(got.Topic, qt.Equals, "payments")
	c.Assert(got.Partition, qt.Equals, int32(3))
	c.Assert(got.Offset, qt.Equals, int64(9182))
	c.Assert(got.Headers, qt.DeepEquals, raw.Headers)
	c.Assert(got.ProducedAt.Equal(producedAt), qt.IsTrue)
	c.Assert(got.ID, qt.Equals, "id-1")
}

func TestDeserializeKeylessRecord(t *testing.T) {
	c := qt.New(t)
	c.Parallel()

	keyDec := codec.DeserializerFunc[string](func(topic string, headers []message.Header, data []byte) (string, error) {
		c.Error("key deserializer invoked for a keyless record")
		return "", nil
	})

	var got *message.Record[string, payment]
	typed := handler.New(func(ctx context.Context, rec *message.Record[string, payment]) error {
		got = rec
		return nil
	}, "payments")

	h := handler.Deserialize(typed, keyDec, codec.As[payment](codec.JSON()))
	err := h.Handle(context.Background(), &message.RawRecord{
		Topic: "payments",
		Value: []byte(`{"account":"ACC-2","cents":5}`),
	})
	c.Assert(err, qt.IsNil)
	c.Assert(got.Key, qt.Equals, "")
	c.Assert(got.Value, qt.DeepEquals, payment{Account: "ACC-2", Cents: 5})
}

func TestDeserializeValueFailure(t *testing.T) {
	c := qt.New(t)
	c.Parallel()

	invoked := false
	typed := handler.New(func(ctx context.Context, rec *message.Record[string, payment]) error {
		invoked = true
		return nil
	}, "payments")

	h := handler.Deserialize(typed, codec.As[string](codec.String()), codec.As[payment](codec.JSON()))
	err := h.Handle(context.Background(), &message.RawRecord{
		Topic:     "payments",
		Partition: 1,
		Offset:    77,
		Value:     []byte("not json"),
	})

	var serr *handler.SerializationError
	c.Assert(errors.As(err, &serr), qt.IsTrue)
	c.Assert(serr.Topic, qt.Equals, "payments")
	c.Assert(serr.Partition, qt.Equals, int32(1))
	c.Assert(serr.Offset, qt.Equals, int64(77))
	c.Assert(serr.Key, qt.IsFalse)
	c.Assert(serr.Cause, qt.IsNotNil)
	c.Assert(invoked, qt.IsFalse)
}

func TestDeserializeKeyFailure(t *testing.T) {
	c := qt.New(t)
	c.Parallel()

	valInvoked := false
	valDec := codec.DeserializerFunc[payment](func(topic string, headers []message.Header, data []byte) (payment, error) {
		valInvoked = true
		return payment{}, nil
	})

	invoked := false
	typed := handler.New(func(ctx context.Context, rec *message.Record[int64, payment]) error {
		invoked = true
		return nil
	}, "payments")

	h := handler.Deserialize(typed, codec.As[int64](codec.Int64()), valDec)
	err := h.Handle(context.Background(), &message.RawRecord{
		Topic: "payments",
		Key:   []byte("zap"),
		Value: []byte("{}"),
	})

	var serr *handler.SerializationError
	c.Assert(errors.As(err, &serr), qt.IsTrue)
	c.Assert(serr.Key, qt.IsTrue)
	c.Assert(invoked, qt.IsFalse)
	c.Assert(valInvoked, qt.IsFalse)
}

func TestSerializationErrorMessage(t *testing.T) {
	c := qt.New(t)
	c.Parallel()

	err := &handler.SerializationError{
		Topic:     "payments",
		Partition: 2,
		Offset:    11,
		Key:       true,
		Cause:     errors.New("bad utf8"),
	}
	c.Assert(err, qt.ErrorMatches, `failed to decode record key\. topic="payments" partition=2 offset=11: bad utf8`)
}
