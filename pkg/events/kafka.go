package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/segmentio/kafka-go"

	"github.com/umputun/signalist/pkg/domain"
)

// KafkaTransport publishes events to a kafka topic, keyed by event id
type KafkaTransport struct {
	writer *kafka.Writer
}

// NewKafkaTransport makes a transport writing to topic on brokers
func NewKafkaTransport(brokers []string, topic string) *KafkaTransport {
	return &KafkaTransport{writer: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		WriteTimeout: 10 * time.Second,
		BatchTimeout: 10 * time.Millisecond,
	}}
}

// Send writes the event as json
func (k *KafkaTransport) Send(ctx context.Context, e domain.Event) error {
	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := kafka.Message{
		Key:     []byte(e.ID),
		Value:   value,
		Headers: []kafka.Header{{Key: "event", Value: []byte(e.Name)}},
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write to kafka: %w", err)
	}
	return nil
}

// Close flushes pending writes
func (k *KafkaTransport) Close() error {
	return k.writer.Close()
}

// KafkaConsumer reads events from a kafka topic as a member of a consumer group
type KafkaConsumer struct {
	reader *kafka.Reader
}

// NewKafkaConsumer makes a consumer of topic in groupID
func NewKafkaConsumer(brokers []string, topic, groupID string) *KafkaConsumer {
	return &KafkaConsumer{reader: kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})}
}

// Run delivers consumed events to r until ctx is canceled. Every fetched message is committed,
// a failed delivery is logged only.
func (c *KafkaConsumer) Run(ctx context.Context, r Receiver) error {
	lgr.Printf("[INFO] kafka consumer started, topic %s", c.reader.Config().Topic)
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				lgr.Printf("[INFO] kafka consumer stopped")
				return nil
			}
			return fmt.Errorf("fetch kafka message: %w", err)
		}

		e, err := decodeEvent(msg.Value)
		if err != nil {
			lgr.Printf("[WARN] drop malformed event at offset %d: %v", msg.Offset, err)
			c.commit(ctx, msg)
			continue
		}

		if err := r.Deliver(ctx, e); err != nil {
			lgr.Printf("[WARN] event %s (%s) failed: %v", e.Name, e.ID, err)
		}
		c.commit(ctx, msg)
	}
}

func (c *KafkaConsumer) commit(ctx context.Context, msg kafka.Message) {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		lgr.Printf("[WARN] failed to commit offset %d: %v", msg.Offset, err)
	}
}

// Close leaves the consumer group
func (c *KafkaConsumer) Close() error {
	return c.reader.Close()
}

func decodeEvent(data []byte) (domain.Event, error) {
	var e domain.Event
	if err := json.Unmarshal(data, &e); err != nil {
		return domain.Event{}, fmt.Errorf("unmarshal event: %w", err)
	}
	if e.ID == "" || e.Name == "" {
		return domain.Event{}, errors.New("event without id or name")
	}
	return e, nil
}
