package handlers

import (
	"context"

	"github.com/ratekeeper/ratekeeper/internal/application/notification/dto"
	"github.com/ratekeeper/ratekeeper/internal/application/notification/usecases"
)

// Service interface for NotificationHandler - enables unit testing with mocks.

type notificationService interface {
	SendNotification(ctx context.Context, cmd usecases.SendNotificationCommand) (*dto.NotificationResponse, error)
	ListNotifications(ctx context.Context, query usecases.ListNotificationsQuery) (*dto.ListNotificationsResponse, error)
}
