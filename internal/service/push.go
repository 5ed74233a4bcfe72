package service

import (
	"context"
	"fmt"

	"toolrental-backend/internal/logger"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// messageSender is the part of *messaging.Client we use.
type messageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

type pushService struct {
	client messageSender
	topic  string
}

// NewPushService sends admin notifications to an FCM topic. An empty credentials file
// yields a no-op service.
func NewPushService(ctx context.Context, credentialsFile, topic string) (PushService, error) {
	if credentialsFile == "" {
		return NewNoopPushService(), nil
	}
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase messaging: %w", err)
	}
	return newPushService(client, topic), nil
}

func newPushService(client messageSender, topic string) *pushService {
	return &pushService{client: client, topic: topic}
}

func (s *pushService) NotifyAdmins(ctx context.Context, title, body string, data map[string]string) error {
	msg := &messaging.Message{
		Topic: s.topic,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	logger.ExternalServiceCall("fcm", "send", "topic", s.topic)
	id, err := s.client.Send(ctx, msg)
	logger.ExternalServiceResult("fcm", "send", err, "message_id", id)
	if err != nil {
		return fmt.Errorf("failed to send push notification: %w", err)
	}
	return nil
}

type noopPushService struct{}

func NewNoopPushService() PushService {
	return noopPushService{}
}

func (noopPushService) NotifyAdmins(ctx context.Context, title, body string, data map[string]string) error {
	logger.DebugContext(ctx, "Push skipped, firebase not configured", "title", title)
	return nil
}
