// Package kafka publishes load events to a Kafka topic so downstream
// consumers can react to graph changes without polling the database.
package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/Gobusters/ectologger"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/Ramsey-B/laurel/pkg/tracing"
)

// Config holds the producer settings.
type Config struct {
	Brokers      []string
	Topic        string
	BatchSize    int
	BatchTimeout time.Duration
	RequiredAcks int
	Compression  string
}

// Producer wraps a kafka-go writer with logging and tracing.
type Producer struct {
	writer *kafkago.Writer
	logger ectologger.Logger
}

// NewProducer creates a producer for the configured topic.
func NewProducer(cfg Config, logger ectologger.Logger) *Producer {
	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafkago.LeastBytes{},
		BatchSize:    cfg.BatchSize,
		BatchTimeout: cfg.BatchTimeout,
		RequiredAcks: kafkago.RequiredAcks(cfg.RequiredAcks),
		Compression:  compressionCodec(cfg.Compression),
	}

	return &Producer{
		writer: writer,
		logger: logger,
	}
}

// Publish writes a single keyed message to the topic.
func (p *Producer) Publish(ctx context.Context, key string, value []byte, headers map[string]string) error {
	ctx, span := tracing.StartSpan(ctx, "kafka.Producer.Publish")
	defer span.End()

	msg := kafkago.Message{
		Key:   []byte(key),
		Value: value,
	}
	for k, v := range headers {
		msg.Headers = append(msg.Headers, kafkago.Header{Key: k, Value: []byte(v)})
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write message to %s: %w", p.writer.Topic, err)
	}
	return nil
}

// Close flushes pending batches and releases the writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}

func compressionCodec(name string) kafkago.Compression {
	switch name {
	case "gzip":
		return kafkago.Gzip
	case "snappy":
		return kafkago.Snappy
	case "lz4":
		return kafkago.Lz4
	case "zstd":
		return kafkago.Zstd
	default:
		return 0
	}
}
