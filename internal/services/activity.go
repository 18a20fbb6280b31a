package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"alfredoptarigan/job-tracker/internal/models"
	"alfredoptarigan/job-tracker/internal/repositories"
)

// Event is the message published for every recorded activity.
type Event struct {
	Type       string                 `json:"type"`
	EntityType string                 `json:"entity_type"`
	EntityID   string                 `json:"entity_id"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}

type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type noopPublisher struct{}

func NewNoopPublisher() EventPublisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, Event) error { return nil }
func (noopPublisher) Close() error                         { return nil }

type amqpPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	mu       sync.Mutex
}

// NewAMQPPublisher dials the broker and declares a durable topic exchange.
// Events are routed as "job.<type>".
func NewAMQPPublisher(url, exchange string) (EventPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &amqpPublisher{conn: conn, channel: ch, exchange: exchange}, nil
}

func (p *amqpPublisher) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.channel.Publish(
		p.exchange,
		"job."+event.Type,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Timestamp:   event.OccurredAt,
			Body:        body,
		},
	)
}

func (p *amqpPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.channel.Close(); err != nil {
		p.conn.Close()
		return fmt.Errorf("failed to close channel: %w", err)
	}
	return p.conn.Close()
}

type ActivityService interface {
	Record(ctx context.Context, activityType, entityType string, entityID uuid.UUID, description string, metadata map[string]interface{}) error
	History(entityID uuid.UUID, limit int) ([]models.ActivityLog, error)
}

type activityService struct {
	repo      repositories.ActivityRepository
	publisher EventPublisher
	log       *zap.Logger
}

func NewActivityService(repo repositories.ActivityRepository, publisher EventPublisher, log *zap.Logger) ActivityService {
	if publisher == nil {
		publisher = NewNoopPublisher()
	}
	return &activityService{repo: repo, publisher: publisher, log: log}
}

// Record stores the activity row and publishes it. Publishing is best effort.
func (s *activityService) Record(ctx context.Context, activityType, entityType string, entityID uuid.UUID, description string, metadata map[string]interface{}) error {
	entry := &models.ActivityLog{
		ActivityType: activityType,
		EntityType:   entityType,
		EntityID:     entityID,
		Description:  description,
		Metadata:     metadata,
	}
	if err := s.repo.Create(entry); err != nil {
		return err
	}

	event := Event{
		Type:       activityType,
		EntityType: entityType,
		EntityID:   entityID.String(),
		Metadata:   metadata,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("failed to publish activity event",
			zap.String("type", activityType),
			zap.String("entity_id", entityID.String()),
			zap.Error(err),
		)
	}
	return nil
}

func (s *activityService) History(entityID uuid.UUID, limit int) ([]models.ActivityLog, error) {
	return s.repo.ListForEntity(entityID, limit)
}
