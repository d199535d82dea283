package notification

import (
	"context"

	"github.com/ratekeeper/ratekeeper/internal/application/notification/dto"
	"github.com/ratekeeper/ratekeeper/internal/application/notification/usecases"
	"github.com/ratekeeper/ratekeeper/internal/domain/notification"
	"github.com/ratekeeper/ratekeeper/internal/shared/logger"
)

// Service bundles the notification use cases behind one constructor for
// the HTTP layer.
type Service struct {
	sendNotification  *usecases.SendNotificationUseCase
	listNotifications *usecases.ListNotificationsUseCase
}

func NewService(repo notification.NotificationRepository, metrics usecases.MetricsRecorder, logger logger.Interface) *Service {
	return &Service{
		sendNotification:  usecases.NewSendNotificationUseCase(repo, metrics, logger),
		listNotifications: usecases.NewListNotificationsUseCase(repo, logger),
	}
}

func (s *Service) SendNotification(ctx context.Context, cmd usecases.SendNotificationCommand) (*dto.NotificationResponse, error) {
	return s.sendNotification.Execute(ctx, cmd)
}

func (s *Service) ListNotifications(ctx context.Context, query usecases.ListNotificationsQuery) (*dto.ListNotificationsResponse, error) {
	return s.listNotifications.Execute(ctx, query)
}
