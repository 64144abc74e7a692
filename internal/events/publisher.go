package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
)

const userIDMetadataKey = "user_id"

// EventPublisher delivers progression events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

// KafkaEventPublisher publishes through watermill. Messages are keyed by
// user id so one learner's events stay on one partition, in order.
type KafkaEventPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
	topicName string
}

type PublisherConfig struct {
	KafkaBrokers []string
	TopicName    string
	Logger       *slog.Logger
}

func NewKafkaEventPublisher(config PublisherConfig) (*KafkaEventPublisher, error) {
	publisher, err := kafka.NewPublisher(kafka.PublisherConfig{
		Brokers: config.KafkaBrokers,
		Marshaler: kafka.NewWithPartitioningMarshaler(func(topic string, msg *message.Message) (string, error) {
			return msg.Metadata.Get(userIDMetadataKey), nil
		}),
	}, watermill.NewSlogLogger(config.Logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka publisher: %w", err)
	}

	return &KafkaEventPublisher{
		publisher: publisher,
		logger:    config.Logger,
		topicName: config.TopicName,
	}, nil
}

// NewMessage builds the watermill message for an event.
func NewMessage(event *Event) (*message.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.Metadata.Set("event_type", string(event.Type))
	msg.Metadata.Set("source", event.Source)
	msg.Metadata.Set("version", event.Version)
	msg.Metadata.Set("timestamp", event.Timestamp.Format(time.RFC3339))
	msg.Metadata.Set(userIDMetadataKey, event.UserID)
	return msg, nil
}

func (p *KafkaEventPublisher) Publish(ctx context.Context, event *Event) error {
	msg, err := NewMessage(event)
	if err != nil {
		return err
	}
	msg.SetContext(ctx)

	if err := p.publisher.Publish(p.topicName, msg); err != nil {
		p.logger.Error("Failed to publish event",
			"event_id", event.ID,
			"event_type", event.Type,
			"error", err)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug("Published event",
		"event_id", event.ID,
		"event_type", event.Type,
		"topic", p.topicName)
	return nil
}

func (p *KafkaEventPublisher) Close() error {
	return p.publisher.Close()
}

// MockEventPublisher keeps events in memory. Used when publishing is
// disabled and in tests.
type MockEventPublisher struct {
	mu     sync.Mutex
	events []Event
	logger *slog.Logger
}

func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	return &MockEventPublisher{
		events: make([]Event, 0),
		logger: logger,
	}
}

func (m *MockEventPublisher) Publish(ctx context.Context, event *Event) error {
	m.mu.Lock()
	m.events = append(m.events, *event)
	m.mu.Unlock()

	m.logger.Debug("Mock: published event",
		"event_id", event.ID,
		"event_type", event.Type)
	return nil
}

func (m *MockEventPublisher) Close() error {
	return nil
}

func (m *MockEventPublisher) GetPublishedEvents() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

// EventsOfType filters published events by type.
func (m *MockEventPublisher) EventsOfType(eventType EventType) []Event {
	var out []Event
	for _, event := range m.GetPublishedEvents() {
		if event.Type == eventType {
			out = append(out, event)
		}
	}
	return out
}

func (m *MockEventPublisher) ClearEvents() {
	m.mu.Lock()
	m.events = make([]Event, 0)
	m.mu.Unlock()
}
