package broker

import (
	"context"
	"log/slog"
	"time"

	"resource-hub/internal/pkg/config"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes outbox payloads to Kafka, one topic per event type.
type KafkaPublisher struct {
	writer messageWriter
	prefix string
}

func NewKafkaPublisher(cfg config.KafkaConfig) *KafkaPublisher {
	return newKafkaPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		WriteTimeout:           cfg.WriteTimeout,
		AllowAutoTopicCreation: true,
	}, cfg.TopicPrefix)
}

func newKafkaPublisher(w messageWriter, prefix string) *KafkaPublisher {
	return &KafkaPublisher{writer: w, prefix: prefix}
}

func (p *KafkaPublisher) Publish(ctx context.Context, topic string, key string, payload []byte) error {
	msg := kafka.Message{
		Topic: p.prefix + topic,
		Key:   []byte(key),
		Value: payload,
		Time:  time.Now().UTC(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return err
	}
	slog.DebugContext(ctx, "kafka message published",
		slog.String("topic", msg.Topic),
		slog.String("key", key))
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// LogPublisher stands in when no brokers are configured; jobs are marked
// sent after being logged.
type LogPublisher struct{}

func (LogPublisher) Publish(ctx context.Context, topic string, key string, payload []byte) error {
	slog.InfoContext(ctx, "kafka disabled, dropping notification",
		slog.String("topic", topic),
		slog.String("key", key),
		slog.Int("bytes", len(payload)))
	return nil
}

func (LogPublisher) Close() error { return nil }
