package handlers

import (
	"context"

	"github.com/ratekeeper/ratekeeper/internal/application/client/dto"
	"github.com/ratekeeper/ratekeeper/internal/application/client/usecases"
)

// Service interface for ClientHandler - enables unit testing with mocks.

type clientService interface {
	CreateClient(ctx context.Context, req *dto.CreateClientRequest) (*dto.ClientResponse, error)
	GetClient(ctx context.Context, clientID uint) (*dto.ClientResponse, error)
	ListClients(ctx context.Context, query usecases.ListClientsQuery) (*dto.ListClientsResponse, error)
}
