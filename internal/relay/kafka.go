package relay

import (
	"context"

	"github.com/segmentio/kafka-go"
)

const SinkKafka = "kafka"

// kafkaWriter is the part of kafka.Writer the publisher needs.
type kafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes each reading keyed by session id, so one session's
// readings stay ordered within a partition.
type KafkaPublisher struct {
	w kafkaWriter
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{w: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}}
}

func (p *KafkaPublisher) Name() string { return SinkKafka }

func (p *KafkaPublisher) Publish(ctx context.Context, key string, payload []byte) error {
	return p.w.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: payload})
}

func (p *KafkaPublisher) Close() error { return p.w.Close() }
