package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/ratekeeper/ratekeeper/internal/application/client/dto"
	"github.com/ratekeeper/ratekeeper/internal/domain/client"
	"github.com/ratekeeper/ratekeeper/internal/domain/plan"
	apperrors "github.com/ratekeeper/ratekeeper/internal/shared/errors"
	"github.com/ratekeeper/ratekeeper/internal/shared/logger"
)

// CreateClientUseCase registers an API consumer on an existing plan and
// hands back the generated key. The key is shown only in this response.
type CreateClientUseCase struct {
	clientRepo client.ClientRepository
	planRepo   plan.PlanRepository
	logger     logger.Interface
}

func NewCreateClientUseCase(clientRepo client.ClientRepository, planRepo plan.PlanRepository, logger logger.Interface) *CreateClientUseCase {
	return &CreateClientUseCase{
		clientRepo: clientRepo,
		planRepo:   planRepo,
		logger:     logger,
	}
}

func (uc *CreateClientUseCase) Execute(ctx context.Context, req *dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if _, err := uc.planRepo.GetByID(ctx, req.PlanID); err != nil {
		if errors.Is(err, plan.ErrPlanNotFound) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("Plan not found: %d", req.PlanID))
		}
		return nil, fmt.Errorf("failed to load plan %d: %w", req.PlanID, err)
	}

	c, err := client.NewClient(req.Name, req.PlanID)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.clientRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	uc.logger.Infow("client created",
		"client_id", c.ID(),
		"name", c.Name(),
		"plan_id", c.PlanID())

	return dto.ToClientResponse(c), nil
}
