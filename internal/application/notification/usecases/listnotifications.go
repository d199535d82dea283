package usecases

import (
	"context"
	"fmt"

	"github.com/ratekeeper/ratekeeper/internal/application/notification/dto"
	"github.com/ratekeeper/ratekeeper/internal/domain/notification"
	"github.com/ratekeeper/ratekeeper/internal/shared/logger"
	"github.com/ratekeeper/ratekeeper/internal/shared/utils"
)

type ListNotificationsQuery struct {
	ClientID uint
	Page     int
	PageSize int
}

type ListNotificationsUseCase struct {
	repo   notification.NotificationRepository
	logger logger.Interface
}

func NewListNotificationsUseCase(repo notification.NotificationRepository, logger logger.Interface) *ListNotificationsUseCase {
	return &ListNotificationsUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *ListNotificationsUseCase) Execute(ctx context.Context, query ListNotificationsQuery) (*dto.ListNotificationsResponse, error) {
	pagination := utils.ValidatePagination(query.Page, query.PageSize)

	notifications, total, err := uc.repo.ListByClientID(ctx, query.ClientID, pagination.Page, pagination.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list notifications",
			"client_id", query.ClientID,
			"error", err)
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	return &dto.ListNotificationsResponse{
		Notifications: dto.ToNotificationRecords(notifications),
		Total:         total,
		Page:          pagination.Page,
		PageSize:      pagination.PageSize,
	}, nil
}
