package notification

import "context"

type NotificationRepository interface {
	Create(ctx context.Context, notification *Notification) error
	GetByMessageID(ctx context.Context, messageID string) (*Notification, error)
	ListByClientID(ctx context.Context, clientID uint, page, pageSize int) ([]*Notification, int64, error)
}
