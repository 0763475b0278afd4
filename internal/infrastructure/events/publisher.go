package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"storefront-backend/pkg/logger"
)

// CommissionCreatedEvent được publish sau khi order + commission đã commit
type CommissionCreatedEvent struct {
	CommissionID     string    `json:"commission_id"`
	InfluencerID     string    `json:"influencer_id"`
	OrderID          string    `json:"order_id"`
	OrderNumber      string    `json:"order_number"`
	CommissionAmount string    `json:"commission_amount"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

// Publisher là contract cho domain services, tránh phụ thuộc trực tiếp vào kafka
type Publisher interface {
	PublishCommissionCreated(ctx context.Context, event CommissionCreatedEvent) error
	Close() error
}

// KafkaPublisher ghi event vào một topic, key = influencer_id để giữ thứ tự theo influencer
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
	}
}

func (k *KafkaPublisher) PublishCommissionCreated(ctx context.Context, event CommissionCreatedEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal commission event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.InfluencerID),
		Value: value,
		Time:  time.Now(),
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish commission event: %w", err)
	}
	return nil
}

func (k *KafkaPublisher) Close() error {
	return k.writer.Close()
}

// NoopPublisher dùng khi KAFKA_BROKERS không được cấu hình
type NoopPublisher struct{}

func (NoopPublisher) PublishCommissionCreated(_ context.Context, event CommissionCreatedEvent) error {
	logger.Debug("[EVENTS] kafka disabled, dropping commission event", map[string]interface{}{
		"commission_id": event.CommissionID,
		"order_id":      event.OrderID,
	})
	return nil
}

func (NoopPublisher) Close() error { return nil }

// NewPublisher chọn implementation theo config
func NewPublisher(brokers []string, topic string) Publisher {
	if len(brokers) == 0 {
		return NoopPublisher{}
	}
	return NewKafkaPublisher(brokers, topic)
}
