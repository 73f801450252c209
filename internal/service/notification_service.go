package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/roster-solver/internal/config"
	"github.com/spec-kit/roster-solver/internal/events"
)

// NotificationService handles emitting notifications for solve events.
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
	n.dispatcher.Subscribe(events.EventSolveCompleted, n.handleSolveCompleted)
	n.dispatcher.Subscribe(events.EventSolveFailed, n.handleSolveFailed)
	n.dispatcher.Subscribe(events.EventBottlenecksDetected, n.handleBottlenecksDetected)
}

func (n *NotificationService) handleSolveCompleted(ctx context.Context, event events.Event) error {
	n.logger.Info("SolveCompleted", zap.String("roster_id", event.RosterID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleSolveFailed(ctx context.Context, event events.Event) error {
	n.logger.Warn("SolveFailed", zap.String("roster_id", event.RosterID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleBottlenecksDetected(ctx context.Context, event events.Event) error {
	n.logger.Warn("BottlenecksDetected", zap.String("roster_id", event.RosterID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("roster_id", event.RosterID),
		zap.String("event_type", string(event.Type)))
}
