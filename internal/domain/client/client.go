package client

import (
	"fmt"
	"time"

	"github.com/ratekeeper/ratekeeper/internal/shared/biztime"
	"github.com/ratekeeper/ratekeeper/internal/shared/id"
)

// Client is an API consumer identified by an opaque key. Every client
// references exactly one subscription plan; the key is assigned at creation
// and never regenerated.
type Client struct {
	id        uint
	name      string
	apiKey    string
	planID    uint
	active    bool
	createdAt time.Time
	updatedAt time.Time
}

// NewClient creates a client with a freshly generated API key.
func NewClient(name string, planID uint) (*Client, error) {
	return NewClientWithKey(name, id.NewAPIKey(), planID)
}

func NewClientWithKey(name, apiKey string, planID uint) (*Client, error) {
	if name == "" {
		return nil, fmt.Errorf("client name is required")
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("client name too long (max 100 characters)")
	}
	if !id.IsAPIKey(apiKey) {
		return nil, ErrInvalidAPIKey
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}

	now := biztime.NowUTC()
	return &Client{
		name:      name,
		apiKey:    apiKey,
		planID:    planID,
		active:    true,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructClient(clientID uint, name, apiKey string, planID uint, active bool,
	createdAt, updatedAt time.Time) (*Client, error) {

	if clientID == 0 {
		return nil, fmt.Errorf("client ID cannot be zero")
	}
	if name == "" {
		return nil, fmt.Errorf("client name is required")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}

	return &Client{
		id:        clientID,
		name:      name,
		apiKey:    apiKey,
		planID:    planID,
		active:    active,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (c *Client) ID() uint {
	return c.id
}

func (c *Client) SetID(clientID uint) error {
	if c.id != 0 {
		return fmt.Errorf("client ID is already set")
	}
	if clientID == 0 {
		return fmt.Errorf("client ID cannot be zero")
	}
	c.id = clientID
	return nil
}

func (c *Client) Name() string {
	return c.name
}

func (c *Client) APIKey() string {
	return c.apiKey
}

func (c *Client) PlanID() uint {
	return c.planID
}

func (c *Client) Active() bool {
	return c.active
}

func (c *Client) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Client) UpdatedAt() time.Time {
	return c.updatedAt
}

// AssignPlan moves the client to another subscription plan. The caller is
// responsible for invalidating the cached snapshot and live counters.
func (c *Client) AssignPlan(planID uint) error {
	if planID == 0 {
		return fmt.Errorf("plan ID is required")
	}
	c.planID = planID
	c.updatedAt = biztime.NowUTC()
	return nil
}

func (c *Client) Activate() {
	if c.active {
		return
	}
	c.active = true
	c.updatedAt = biztime.NowUTC()
}

func (c *Client) Deactivate() {
	if !c.active {
		return
	}
	c.active = false
	c.updatedAt = biztime.NowUTC()
}
