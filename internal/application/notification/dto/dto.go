package dto

import (
	"time"

	"github.com/ratekeeper/ratekeeper/internal/domain/notification"
)

// SendNotificationRequest is the body of POST /api/notify/{sms,email}.
type SendNotificationRequest struct {
	Recipient string `json:"recipient" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

// NotificationResponse acknowledges an accepted notification.
type NotificationResponse struct {
	Success   bool   `json:"success"`
	ID        string `json:"id"`
	Channel   string `json:"channel"`
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
}

// NotificationRecord is the persisted view of an accepted notification.
type NotificationRecord struct {
	ID        uint           `json:"id"`
	MessageID string         `json:"messageId"`
	ClientID  uint           `json:"clientId"`
	Channel   string         `json:"channel"`
	Recipient string         `json:"recipient"`
	Message   string         `json:"message"`
	Status    string         `json:"status"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt string         `json:"createdAt"`
}

// ListNotificationsResponse pages through a client's accepted notifications.
type ListNotificationsResponse struct {
	Notifications []*NotificationRecord `json:"notifications"`
	Total         int64                 `json:"total"`
	Page          int                   `json:"page"`
	PageSize      int                   `json:"pageSize"`
}

func ToNotificationRecord(n *notification.Notification) *NotificationRecord {
	return &NotificationRecord{
		ID:        n.ID(),
		MessageID: n.MessageID(),
		ClientID:  n.ClientID(),
		Channel:   n.Channel().String(),
		Recipient: n.Recipient(),
		Message:   n.Message(),
		Status:    string(n.Status()),
		Metadata:  n.Metadata(),
		CreatedAt: n.CreatedAt().Format(time.RFC3339),
	}
}

func ToNotificationRecords(notifications []*notification.Notification) []*NotificationRecord {
	records := make([]*NotificationRecord, len(notifications))
	for i, n := range notifications {
		records[i] = ToNotificationRecord(n)
	}
	return records
}
