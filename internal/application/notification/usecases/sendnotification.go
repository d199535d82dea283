package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/ratekeeper/ratekeeper/internal/application/notification/dto"
	"github.com/ratekeeper/ratekeeper/internal/domain/notification"
	"github.com/ratekeeper/ratekeeper/internal/shared/errors"
	"github.com/ratekeeper/ratekeeper/internal/shared/logger"
)

// SendNotificationCommand carries one accepted notification through the
// application layer. Admission holds the rate-limit facts observed when the
// request cleared the filter; they are persisted as record metadata.
type SendNotificationCommand struct {
	ClientID  uint
	Channel   notification.Channel
	Recipient string
	Message   string
	Admission map[string]any
}

type SendNotificationUseCase struct {
	repo    notification.NotificationRepository
	metrics MetricsRecorder
	logger  logger.Interface
}

func NewSendNotificationUseCase(repo notification.NotificationRepository, metrics MetricsRecorder, logger logger.Interface) *SendNotificationUseCase {
	return &SendNotificationUseCase{
		repo:    repo,
		metrics: metrics,
		logger:  logger,
	}
}

// Execute accepts the notification for delivery. Delivery itself is
// simulated: the message is logged and recorded, and the acknowledgement
// carries the generated message id.
func (uc *SendNotificationUseCase) Execute(ctx context.Context, cmd SendNotificationCommand) (*dto.NotificationResponse, error) {
	notif, err := notification.NewNotification(cmd.ClientID, cmd.Channel, cmd.Recipient, cmd.Message)
	if err != nil {
		uc.logger.Warnw("rejected malformed notification",
			"client_id", cmd.ClientID,
			"channel", cmd.Channel.String(),
			"error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	for k, v := range cmd.Admission {
		notif.SetMetadata(k, v)
	}

	if err := uc.repo.Create(ctx, notif); err != nil {
		uc.logger.Errorw("failed to persist notification record",
			"client_id", cmd.ClientID,
			"message_id", notif.MessageID(),
			"error", err)
		return nil, fmt.Errorf("failed to save notification: %w", err)
	}

	uc.metrics.RecordNotification(notif.Channel().String())
	uc.logger.Infow("notification accepted for delivery",
		"client_id", cmd.ClientID,
		"channel", notif.Channel().String(),
		"recipient", notif.Recipient(),
		"message_id", notif.MessageID(),
	)

	return &dto.NotificationResponse{
		Success:   true,
		ID:        notif.MessageID(),
		Channel:   notif.Channel().String(),
		Timestamp: notif.CreatedAt().Format(time.RFC3339),
		Message:   acceptanceMessage(notif.Channel()),
	}, nil
}

func acceptanceMessage(channel notification.Channel) string {
	if channel == notification.ChannelSMS {
		return "SMS accepted for delivery"
	}
	return "Email accepted for delivery"
}
