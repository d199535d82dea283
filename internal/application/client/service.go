// Package client wires the client management use cases behind a single
// service facade consumed by the HTTP handlers.
package client

import (
	"context"

	"github.com/ratekeeper/ratekeeper/internal/application/client/dto"
	"github.com/ratekeeper/ratekeeper/internal/application/client/usecases"
	"github.com/ratekeeper/ratekeeper/internal/domain/client"
	"github.com/ratekeeper/ratekeeper/internal/domain/plan"
	"github.com/ratekeeper/ratekeeper/internal/shared/logger"
)

// Service exposes client management operations.
type Service struct {
	createClient *usecases.CreateClientUseCase
	getClient    *usecases.GetClientUseCase
	listClients  *usecases.ListClientsUseCase
}

func NewService(clientRepo client.ClientRepository, planRepo plan.PlanRepository, logger logger.Interface) *Service {
	return &Service{
		createClient: usecases.NewCreateClientUseCase(clientRepo, planRepo, logger),
		getClient:    usecases.NewGetClientUseCase(clientRepo),
		listClients:  usecases.NewListClientsUseCase(clientRepo),
	}
}

func (s *Service) CreateClient(ctx context.Context, req *dto.CreateClientRequest) (*dto.ClientResponse, error) {
	return s.createClient.Execute(ctx, req)
}

func (s *Service) GetClient(ctx context.Context, clientID uint) (*dto.ClientResponse, error) {
	return s.getClient.Execute(ctx, clientID)
}

func (s *Service) ListClients(ctx context.Context, query usecases.ListClientsQuery) (*dto.ListClientsResponse, error) {
	return s.listClients.Execute(ctx, query)
}
