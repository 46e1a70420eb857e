package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"fastpay/internal/events"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes transfer events to a Kafka topic as JSON, keyed by sender
// so one sender's events stay in order within a partition.
type Publisher struct {
	writer messageWriter
}

// NewPublisher writes to topic on brokers, waiting for all in-sync replicas
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
		},
	}
}

// PublishTransferCompleted writes one JSON message per event
func (p *Publisher) PublishTransferCompleted(ctx context.Context, event events.TransferCompleted) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.SenderPaymentID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte("transfer.completed")},
		},
	})
	if err != nil {
		return fmt.Errorf("publish transfer event: %w", err)
	}
	return nil
}

// Close flushes pending messages and closes the writer
func (p *Publisher) Close() error {
	return p.writer.Close()
}

var _ events.Publisher = (*Publisher)(nil)
