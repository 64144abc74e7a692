package config

import (
	"log/slog"

	"github.com/SAP-F-2025/course-progress-service/internal/events"
)

// EventConfig selects where progression events go.
type EventConfig struct {
	Enabled       bool
	Publisher     string // kafka or mock
	KafkaBrokers  string
	ProgressTopic string
}

func (c *EventConfig) GetKafkaBrokers() []string {
	return splitList(c.KafkaBrokers)
}

// CreateEventPublisher falls back to the in-memory publisher when events are
// disabled or the publisher name is unknown.
func (c *EventConfig) CreateEventPublisher(logger *slog.Logger) (events.EventPublisher, error) {
	if !c.Enabled {
		logger.Info("Event publishing disabled, using mock publisher")
		return events.NewMockEventPublisher(logger), nil
	}

	switch c.Publisher {
	case "kafka":
		logger.Info("Creating Kafka event publisher",
			"brokers", c.KafkaBrokers,
			"topic", c.ProgressTopic)

		return events.NewKafkaEventPublisher(events.PublisherConfig{
			KafkaBrokers: c.GetKafkaBrokers(),
			TopicName:    c.ProgressTopic,
			Logger:       logger,
		})
	case "mock":
		logger.Info("Using mock event publisher")
		return events.NewMockEventPublisher(logger), nil
	default:
		logger.Warn("Unknown event publisher type, falling back to mock", "publisher", c.Publisher)
		return events.NewMockEventPublisher(logger), nil
	}
}
