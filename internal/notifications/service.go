package notifications

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"campus/internal/shared/config"

	"github.com/google/uuid"
)

// Service is the mail facade the rest of the application talks to.
// Verification and password-reset mail is delivered synchronously so a
// failed send surfaces to the caller; welcome mail rides the Kafka
// pipeline when the broker is enabled.
type Service interface {
	SendVerificationEmail(ctx context.Context, to, name, token string, expiresAt time.Time) error
	SendPasswordResetEmail(ctx context.Context, to, name, token string, expiresAt time.Time) error
	SendWelcomeEmail(ctx context.Context, userID uuid.UUID, email, name string) error

	Start(ctx context.Context) error
	Stop() error
	HealthCheck(ctx context.Context) error
}

type emailService struct {
	cfg      *config.Config
	sender   EmailService
	producer NotificationProducer
	consumer NotificationConsumer

	isRunning bool
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewService wires the SMTP sender and, when enabled, the Kafka
// producer/consumer pair. Without an SMTP host it falls back to the
// logging mock so local development works out of the box.
func NewService(cfg *config.Config) (Service, error) {
	var sender EmailService
	if cfg.Email.SMTPHost != "" {
		smtpSender, err := NewSMTPEmailService(NewSMTPConfig(cfg))
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP configuration: %w", err)
		}
		sender = smtpSender
	} else {
		log.Println("📧 SMTP_HOST not set, using mock email sender")
		sender = NewMockEmailService()
	}

	svc := &emailService{
		cfg:    cfg,
		sender: sender,
	}
	svc.ctx, svc.cancel = context.WithCancel(context.Background())

	if cfg.Kafka.Enabled {
		producerConfig := DefaultKafkaProducerConfig()
		producerConfig.Brokers = cfg.Kafka.Brokers
		producerConfig.NotificationTopic = cfg.Kafka.Topic

		producer, err := NewKafkaNotificationProducer(producerConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create notification producer: %w", err)
		}

		consumerConfig := DefaultConsumerConfig()
		consumerConfig.Brokers = cfg.Kafka.Brokers
		consumerConfig.Topics = []string{cfg.Kafka.Topic}
		consumerConfig.GroupID = cfg.Kafka.GroupID

		consumer, err := NewKafkaNotificationConsumer(consumerConfig, sender)
		if err != nil {
			producer.Close()
			return nil, fmt.Errorf("failed to create notification consumer: %w", err)
		}

		svc.producer = producer
		svc.consumer = consumer
	}

	return svc, nil
}

func (s *emailService) SendVerificationEmail(ctx context.Context, to, name, token string, expiresAt time.Time) error {
	notification := NewNotificationBuilder().
		WithType(NotificationTypeEmailVerification).
		WithRecipient(uuid.Nil, to, name).
		WithSubject("Verify your email address").
		WithTemplateData(map[string]interface{}{
			"token":      token,
			"expires_at": expiresAt.Format(time.RFC1123),
		}).
		WithExpiration(&expiresAt).
		Build()

	return s.sender.SendNotification(ctx, notification)
}

func (s *emailService) SendPasswordResetEmail(ctx context.Context, to, name, token string, expiresAt time.Time) error {
	notification := NewNotificationBuilder().
		WithType(NotificationTypePasswordReset).
		WithRecipient(uuid.Nil, to, name).
		WithSubject("Password reset request").
		WithTemplateData(map[string]interface{}{
			"token":      token,
			"expires_at": expiresAt.Format(time.RFC1123),
		}).
		WithExpiration(&expiresAt).
		Build()

	return s.sender.SendNotification(ctx, notification)
}

func (s *emailService) SendWelcomeEmail(ctx context.Context, userID uuid.UUID, email, name string) error {
	notification := NewNotificationBuilder().
		WithType(NotificationTypeWelcome).
		WithRecipient(userID, email, name).
		WithSubject("Welcome to Campus").
		Build()

	if s.producer != nil {
		return s.producer.PublishNotification(ctx, notification)
	}
	return s.sender.SendNotification(ctx, notification)
}

func (s *emailService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.consumer == nil {
		// Pure SMTP mode has no background workers.
		return nil
	}

	if s.isRunning {
		return fmt.Errorf("notification service is already running")
	}

	if err := s.consumer.StartConsumers(s.ctx, s.cfg.Kafka.Workers); err != nil {
		return fmt.Errorf("failed to start consumers: %w", err)
	}

	s.isRunning = true
	log.Println("✅ Notification service started")
	return nil
}

func (s *emailService) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancel()

	if s.consumer != nil {
		if err := s.consumer.Stop(); err != nil {
			log.Printf("Error stopping consumer: %v", err)
		}
	}

	if s.producer != nil {
		if err := s.producer.Close(); err != nil {
			log.Printf("Error closing producer: %v", err)
		}
	}

	s.isRunning = false
	return nil
}

func (s *emailService) HealthCheck(ctx context.Context) error {
	if s.producer != nil {
		if err := s.producer.HealthCheck(ctx); err != nil {
			return fmt.Errorf("producer health check failed: %w", err)
		}
	}

	if s.consumer != nil {
		if err := s.consumer.HealthCheck(ctx); err != nil {
			return fmt.Errorf("consumer health check failed: %w", err)
		}
	}

	return nil
}
