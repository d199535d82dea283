package usecases

import (
	"context"
	"fmt"

	"github.com/ratekeeper/ratekeeper/internal/application/client/dto"
	"github.com/ratekeeper/ratekeeper/internal/domain/client"
	"github.com/ratekeeper/ratekeeper/internal/shared/utils"
)

// ListClientsUseCase lists clients with pagination and optional filters.
type ListClientsUseCase struct {
	clientRepo client.ClientRepository
}

func NewListClientsUseCase(clientRepo client.ClientRepository) *ListClientsUseCase {
	return &ListClientsUseCase{clientRepo: clientRepo}
}

type ListClientsQuery struct {
	PlanID   *uint
	Active   *bool
	Page     int
	PageSize int
}

func (uc *ListClientsUseCase) Execute(ctx context.Context, query ListClientsQuery) (*dto.ListClientsResponse, error) {
	pagination := utils.ValidatePagination(query.Page, query.PageSize)

	clients, total, err := uc.clientRepo.List(ctx, client.ClientFilter{
		PlanID:   query.PlanID,
		Active:   query.Active,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	return &dto.ListClientsResponse{
		Clients:  dto.ToClientResponses(clients),
		Total:    total,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}, nil
}
