package dto

import (
	"time"

	"github.com/ratekeeper/ratekeeper/internal/domain/client"
)

type CreateClientRequest struct {
	Name   string `json:"name" binding:"required,max=100"`
	PlanID uint   `json:"planId" binding:"required,gt=0"`
}

// ClientResponse carries the API key in full. The key is generated once at
// creation and never rotated, so callers must store it from this response.
type ClientResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	APIKey    string    `json:"apiKey"`
	PlanID    uint      `json:"planId"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ListClientsResponse struct {
	Clients  []*ClientResponse `json:"clients"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
}

func ToClientResponse(c *client.Client) *ClientResponse {
	return &ClientResponse{
		ID:        c.ID(),
		Name:      c.Name(),
		APIKey:    c.APIKey(),
		PlanID:    c.PlanID(),
		Active:    c.Active(),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
}

func ToClientResponses(clients []*client.Client) []*ClientResponse {
	responses := make([]*ClientResponse, len(clients))
	for i, c := range clients {
		responses[i] = ToClientResponse(c)
	}
	return responses
}
