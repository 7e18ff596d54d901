package consumer

import (
	"context"

	"github.com/Shopify/sarama"
)

// consumerGroupClaim implements sarama.ConsumerGroupClaim interface.
type consumerGroupClaim struct {
	ch    chan *sarama.ConsumerMessage
	topic string
}

func (c consumerGroupClaim) Topic() string {
	return c.topic
}

func (consumerGroupClaim) Partition() int32 {
	return int32(0)
}

func (consumerGroupClaim) InitialOffset() int64 {
	return int64(0)
}

func (consumerGroupClaim) HighWaterMarkOffset() int64 {
	return int64(1)
}

func (c consumerGroupClaim) Messages() <-chan *sarama.ConsumerMessage {
	return c.ch
}

// consumerGroupSession implements sarama.ConsumerGroupSession
// interface, recording the messages marked on it.
type consumerGroupSession struct {
	ctx    context.Context
	marked []*sarama.ConsumerMessage
}

func (*consumerGroupSession) Claims() map[string][]int32 {
	return nil
}

func (*consumerGroupSession) MemberID() string {
	return ""
}

func (*consumerGroupSession) GenerationID() int32 {
	return int32(0)
}

func (*consumerGroupSession) MarkOffset(topic string, partition int32, offset int64, metadata string) {
}

func (*consumerGroupSession) Commit() {}

func (*consumerGroupSession) ResetOffset(topic string, partition int32, offset int64, metadata string) {
}

func (s *consumerGroupSession) MarkMessage(msg *sarama.ConsumerMessage, metadata string) {
	s.marked = append(s.marked, msg)
}

func (s *consumerGroupSession) Context() context.Context {
	if s.ctx != nil {
		return s.ctx
	}
	return context.Background()
}
