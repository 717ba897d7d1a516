package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaProducer publishes JSON messages, one writer per topic
type KafkaProducer struct {
	mu        sync.Mutex
	writers   map[string]messageWriter
	brokers   []string
	clientID  string
	newWriter func(topic string) messageWriter
	newRetry  func() backoff.BackOff
	logger    *zap.Logger
}

// NewKafkaProducer creates a producer. Failed writes are retried with
// exponential backoff for at most maxRetryPeriod.
func NewKafkaProducer(brokers []string, clientID string, maxRetryPeriod time.Duration, logger *zap.Logger) *KafkaProducer {
	p := &KafkaProducer{
		writers:  make(map[string]messageWriter),
		brokers:  brokers,
		clientID: clientID,
		logger:   logger,
	}
	p.newWriter = p.kafkaWriter
	p.newRetry = func() backoff.BackOff {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = 100 * time.Millisecond
		b.MaxElapsedTime = maxRetryPeriod
		return b
	}
	return p
}

func (p *KafkaProducer) kafkaWriter(topic string) messageWriter {
	return &kafka.Writer{
		Addr:         kafka.TCP(p.brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
		Transport: &kafka.Transport{
			ClientID: p.clientID,
		},
	}
}

// getWriter returns the writer for a topic, creating it on first use
func (p *KafkaProducer) getWriter(topic string) messageWriter {
	p.mu.Lock()
	defer p.mu.Unlock()

	if writer, exists := p.writers[topic]; exists {
		return writer
	}
	writer := p.newWriter(topic)
	p.writers[topic] = writer
	return writer
}

// Publish sends payload as JSON. An empty key is replaced by a random one.
func (p *KafkaProducer) Publish(ctx context.Context, topic, key string, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("Failed to marshal message",
			zap.String("topic", topic),
			zap.Error(err))
		return err
	}

	if key == "" {
		key = uuid.NewString()
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	}

	writer := p.getWriter(topic)
	operation := func() error {
		return writer.WriteMessages(ctx, msg)
	}
	notify := func(err error, wait time.Duration) {
		p.logger.Warn("Retrying publish",
			zap.String("topic", topic),
			zap.String("key", key),
			zap.Duration("wait", wait),
			zap.Error(err))
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(p.newRetry(), ctx), notify); err != nil {
		p.logger.Error("Failed to publish message",
			zap.String("topic", topic),
			zap.String("key", key),
			zap.Error(err))
		return err
	}

	p.logger.Debug("Message published",
		zap.String("topic", topic),
		zap.String("key", key))

	return nil
}

// Close closes all Kafka writers
func (p *KafkaProducer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for topic, writer := range p.writers {
		if err := writer.Close(); err != nil {
			p.logger.Error("Failed to close Kafka writer",
				zap.String("topic", topic),
				zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	p.writers = make(map[string]messageWriter)
	return firstErr
}
