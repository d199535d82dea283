package notification

import (
	"fmt"
	"time"

	"github.com/ratekeeper/ratekeeper/internal/shared/biztime"
	"github.com/ratekeeper/ratekeeper/internal/shared/id"
)

type Channel string

const (
	ChannelSMS   Channel = "sms"
	ChannelEmail Channel = "email"
)

func (c Channel) String() string {
	return string(c)
}

func (c Channel) IsValid() bool {
	return c == ChannelSMS || c == ChannelEmail
}

type Status string

const (
	StatusSent Status = "sent"
)

// Notification records one delivery accepted past the admission filter.
// Delivery itself is stubbed; the record is what the API returns and what
// usage reporting reads.
type Notification struct {
	id        uint
	messageID string
	clientID  uint
	channel   Channel
	recipient string
	message   string
	status    Status
	metadata  map[string]any
	createdAt time.Time
}

func NewNotification(clientID uint, channel Channel, recipient, message string) (*Notification, error) {
	if clientID == 0 {
		return nil, fmt.Errorf("client ID is required")
	}
	if !channel.IsValid() {
		return nil, fmt.Errorf("invalid channel: %s", channel)
	}
	if recipient == "" {
		return nil, fmt.Errorf("recipient is required")
	}
	if len(recipient) > 255 {
		return nil, fmt.Errorf("recipient exceeds maximum length of 255 characters")
	}
	if message == "" {
		return nil, fmt.Errorf("message is required")
	}
	if len(message) > 5000 {
		return nil, fmt.Errorf("message exceeds maximum length of 5000 characters")
	}

	return &Notification{
		messageID: id.NewMessageID(),
		clientID:  clientID,
		channel:   channel,
		recipient: recipient,
		message:   message,
		status:    StatusSent,
		metadata:  map[string]any{},
		createdAt: biztime.NowUTC(),
	}, nil
}

func ReconstructNotification(notificationID uint, messageID string, clientID uint, channel Channel,
	recipient, message string, status Status, metadata map[string]any, createdAt time.Time) (*Notification, error) {

	if notificationID == 0 {
		return nil, fmt.Errorf("notification ID cannot be zero")
	}
	if messageID == "" {
		return nil, fmt.Errorf("message ID is required")
	}
	if !channel.IsValid() {
		return nil, fmt.Errorf("invalid channel: %s", channel)
	}
	if metadata == nil {
		metadata = map[string]any{}
	}

	return &Notification{
		id:        notificationID,
		messageID: messageID,
		clientID:  clientID,
		channel:   channel,
		recipient: recipient,
		message:   message,
		status:    status,
		metadata:  metadata,
		createdAt: createdAt,
	}, nil
}

func (n *Notification) ID() uint {
	return n.id
}

func (n *Notification) SetID(notificationID uint) error {
	if n.id != 0 {
		return fmt.Errorf("notification ID is already set")
	}
	if notificationID == 0 {
		return fmt.Errorf("notification ID cannot be zero")
	}
	n.id = notificationID
	return nil
}

func (n *Notification) MessageID() string {
	return n.messageID
}

func (n *Notification) ClientID() uint {
	return n.clientID
}

func (n *Notification) Channel() Channel {
	return n.channel
}

func (n *Notification) Recipient() string {
	return n.recipient
}

func (n *Notification) Message() string {
	return n.message
}

func (n *Notification) Status() Status {
	return n.status
}

func (n *Notification) Metadata() map[string]any {
	return n.metadata
}

func (n *Notification) SetMetadata(key string, value any) {
	n.metadata[key] = value
}

func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}
