package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/ratekeeper/ratekeeper/internal/application/client/dto"
	"github.com/ratekeeper/ratekeeper/internal/domain/client"
	apperrors "github.com/ratekeeper/ratekeeper/internal/shared/errors"
)

// GetClientUseCase fetches a single client by id.
type GetClientUseCase struct {
	clientRepo client.ClientRepository
}

func NewGetClientUseCase(clientRepo client.ClientRepository) *GetClientUseCase {
	return &GetClientUseCase{clientRepo: clientRepo}
}

func (uc *GetClientUseCase) Execute(ctx context.Context, clientID uint) (*dto.ClientResponse, error) {
	c, err := uc.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, client.ErrClientNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("Client not found: %d", clientID))
		}
		return nil, fmt.Errorf("failed to load client %d: %w", clientID, err)
	}
	return dto.ToClientResponse(c), nil
}
