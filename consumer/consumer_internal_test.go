package consumer

import (
	"context"
	"testing"
	"time"

	"github.com/Shopify/sarama"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/ventoux/partita/common"
	"github.com/ventoux/partita/handler"
	"github.com/ventoux/partita/message"
)

func nopRaw(ctx context.Context, rec *message.RawRecord) error {
	return nil
}

func failRaw(ctx context.Context, rec *message.RawRecord) error {
	return errors.New("boom")
}

func TestNewValidatesConfig(t *testing.T) {
	_, err := New(Config{})
	require.EqualError(t, err, "invalid configuration: missing sarama configuration, use NewConfig")

	cfg := NewConfig("some-id")
	cfg.KafkaAddrs = nil
	_, err = New(cfg)
	require.EqualError(t, err, "invalid configuration: no broker addresses")
}

func TestHandleFoldsHandlers(t *testing.T) {
	c := &Consumer{}
	c.Handle(handler.New(nopRaw, "orders"))
	require.NotNil(t, c.h)
	require.Equal(t, []string{"orders"}, c.h.Topics())

	c.Handle(handler.New(nopRaw, "payments"))
	require.Equal(t, []string{"orders", "payments"}, c.h.Topics())
}

func TestHandleAfterServeIsIgnored(t *testing.T) {
	c := &Consumer{cfg: Config{Logger: common.Discard}}
	c.Handle(handler.New(nopRaw, "orders"))
	c.serving = true
	c.Handle(handler.New(nopRaw, "payments"))
	require.Equal(t, []string{"orders"}, c.h.Topics())
}

func TestConsumeClaimDeliversRecords(t *testing.T) {
	var recs []*message.RawRecord
	h := handler.New(func(ctx context.Context, rec *message.RawRecord) error {
		recs = append(recs, rec)
		return nil
	}, "orders")

	cs, err := New(NewConfig("some-id"))
	require.NoError(t, err)

	gh := &groupHandler{consumer: cs, handler: h}
	sess := &consumerGroupSession{}
	claim := consumerGroupClaim{topic: "orders", ch: make(chan *sarama.ConsumerMessage, 2)}

	t0 := time.Now()
	claim.ch <- &sarama.ConsumerMessage{
		Topic:     "orders",
		Partition: 3,
		Offset:    42,
		Key:       []byte("k"),
		Value:     []byte("v"),
		Timestamp: t0,
		Headers: []*sarama.RecordHeader{
			{Key: []byte("header1"), Value: []byte("value1")},
			{Key: []byte(message.IDHeader), Value: []byte("id-123")},
		},
	}
	claim.ch <- &sarama.ConsumerMessage{Topic: "orders", Offset: 43, Timestamp: t0}
	close(claim.ch)

	require.NoError(t, gh.ConsumeClaim(sess, claim))
	require.Len(t, recs, 2)
	require.Equal(t, &message.RawRecord{
		Topic:     "orders",
		Partition: 3,
		Offset:    42,
		Key:       []byte("k"),
		Value:     []byte("v"),
		Headers: []message.Header{
			{Key: "header1", Value: []byte("value1")},
			{Key: message.IDHeader, Value: []byte("id-123")},
		},
		ProducedAt: t0,
		ID:         "id-123",
	}, recs[0])
	require.Len(t, sess.marked, 2)
}

func TestConsumeMessageDiscardedDecidesMarking(t *testing.T) {
	for _, tt := range []struct {
		name string
		mark bool
	}{
		{name: "mark", mark: true},
		{name: "leave unmarked", mark: false},
	} {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			cfg := NewConfig("some-id")
			cfg.Discarded = func(ctx context.Context, rec *message.RawRecord, err error) bool {
				calls++
				require.Equal(t, "orders", rec.Topic)
				require.EqualError(t, err, "boom")
				return tt.mark
			}
			cs, err := New(cfg)
			require.NoError(t, err)

			gh := &groupHandler{consumer: cs, handler: handler.New(failRaw, "orders")}
			sess := &consumerGroupSession{}
			gh.consumeMessage(sess, &sarama.ConsumerMessage{Topic: "orders", Offset: 7})

			require.Equal(t, 1, calls)
			if tt.mark {
				require.Len(t, sess.marked, 1)
			} else {
				require.Empty(t, sess.marked)
			}
		})
	}
}

func TestConsumeMessageDefaultDiscardLogsAndMarks(t *testing.T) {
	tl := common.NewTestLogger(t)
	cfg := NewConfig("some-id")
	cfg.Logger = tl
	cs, err := New(cfg)
	require.NoError(t, err)

	gh := &groupHandler{consumer: cs, handler: handler.New(failRaw, "orders")}
	sess := &consumerGroupSession{}
	gh.consumeMessage(sess, &sarama.ConsumerMessage{Topic: "orders", Partition: 1, Offset: 7})

	require.Len(t, sess.marked, 1)
	tl.LogLineMatches(`discarding record after handler failure\. topic="orders" partition=1 offset=7: boom`)
}

func TestConsumeMessageShutdownSkipsDiscard(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	cfg := NewConfig("some-id")
	cfg.Discarded = func(ctx context.Context, rec *message.RawRecord, err error) bool {
		called = true
		return true
	}
	cs, err := New(cfg)
	require.NoError(t, err)

	h := handler.New(func(ctx context.Context, rec *message.RawRecord) error {
		return ctx.Err()
	}, "orders")
	gh := &groupHandler{consumer: cs, handler: h}
	sess := &consumerGroupSession{ctx: ctx}
	gh.consumeMessage(sess, &sarama.ConsumerMessage{Topic: "orders"})

	require.False(t, called)
	require.Empty(t, sess.marked)
}

func TestFromConsumerMessageWithoutHeaders(t *testing.T) {
	rec := FromConsumerMessage(&sarama.ConsumerMessage{Topic: "orders", Offset: 3})
	require.Nil(t, rec.Headers)
	require.Empty(t, rec.ID)
}
