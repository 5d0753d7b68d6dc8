package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/khoahotran/beehype-onboarding/internal/config"
	"github.com/khoahotran/beehype-onboarding/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const TopicOnboardingEvents = "onboarding.events"

type OnboardingEventType string

const (
	OnboardingEventCompleted OnboardingEventType = "onboarding.completed"
	OnboardingEventReset     OnboardingEventType = "onboarding.reset"
	OnboardingEventGmail     OnboardingEventType = "onboarding.gmail"
	OnboardingEventSkipped   OnboardingEventType = "onboarding.skipped"
)

type OnboardingEventPayload struct {
	EventType  OnboardingEventType `json:"event_type"`
	CreatorID  uuid.UUID           `json:"creator_id"`
	Connection string              `json:"connection,omitempty"`
	OccurredAt time.Time           `json:"occurred_at"`
}

type KafkaProducerClient struct {
	OnboardingEventsWriter *kafka.Writer
	logger                 logger.Logger
}

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  TopicOnboardingEvents,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}

	log.Info("Initialize Kafka Producer successfully.", zap.String("topic", TopicOnboardingEvents))

	return &KafkaProducerClient{
		OnboardingEventsWriter: writer,
		logger:                 log,
	}, nil
}

// PublishOnboardingEvent keys messages by creator so events of one creator
// stay ordered within a partition.
func (c *KafkaProducerClient) PublishOnboardingEvent(ctx context.Context, payload OnboardingEventPayload) error {
	if payload.OccurredAt.IsZero() {
		payload.OccurredAt = time.Now().UTC()
	}
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal onboarding event failed: %w", err)
	}
	err = c.OnboardingEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.CreatorID.String()),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("write onboarding event failed: %w", err)
	}
	c.logger.Debug("Published onboarding event",
		zap.String("event_type", string(payload.EventType)),
		zap.String("creator_id", payload.CreatorID.String()))
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.OnboardingEventsWriter != nil {
		if err := c.OnboardingEventsWriter.Close(); err != nil {
			c.logger.Error("Failed to close Kafka writer", err)
		}
	}
	c.logger.Info("Closed Kafka Producer")
}
