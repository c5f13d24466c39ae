package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/lms-service/internal/config"
	"github.com/spec-kit/lms-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
	n.dispatcher.Subscribe(events.EventUserEnrolled, n.handleUserEnrolled)
	n.dispatcher.Subscribe(events.EventCourseCompleted, n.handleCourseCompleted)
	n.dispatcher.Subscribe(events.EventCourseDeleted, n.handleCourseDeleted)
}

func (n *NotificationService) handleUserRegistered(ctx context.Context, event events.Event) error {
	n.logger.Info("UserRegistered", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleUserEnrolled(ctx context.Context, event events.Event) error {
	n.logger.Info("UserEnrolled", zap.String("user_id", event.UserID), zap.String("course_id", event.CourseID))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleCourseCompleted(ctx context.Context, event events.Event) error {
	n.logger.Info("CourseCompleted", zap.String("user_id", event.UserID), zap.String("course_id", event.CourseID))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleCourseDeleted(ctx context.Context, event events.Event) error {
	n.logger.Info("CourseDeleted", zap.String("course_id", event.CourseID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("event_type", string(event.Type)),
		zap.String("user_id", event.UserID))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event_type", string(event.Type)),
		zap.String("course_id", event.CourseID))
}
