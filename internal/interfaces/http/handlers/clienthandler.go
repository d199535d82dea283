package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ratekeeper/ratekeeper/internal/application/client/dto"
	"github.com/ratekeeper/ratekeeper/internal/application/client/usecases"
	"github.com/ratekeeper/ratekeeper/internal/shared/errors"
	"github.com/ratekeeper/ratekeeper/internal/shared/logger"
	"github.com/ratekeeper/ratekeeper/internal/shared/utils"
)

// ClientHandler serves the API client management endpoints.
type ClientHandler struct {
	clientService clientService
	logger        logger.Interface
}

func NewClientHandler(clientService clientService, logger logger.Interface) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
		logger:        logger,
	}
}

// CreateClient registers an API client
// @Summary Register an API client
// @Description Register a client under a subscription plan. The generated API key is returned once in this response.
// @Tags Clients
// @Accept json
// @Produce json
// @Param request body dto.CreateClientRequest true "Client data"
// @Success 201 {object} utils.APIResponse{data=dto.ClientResponse}
// @Failure 400 {object} utils.APIResponse
// @Router /clients [post]
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create client", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
		return
	}

	result, err := h.clientService.CreateClient(c.Request.Context(), &req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Client created successfully")
}

// GetClient fetches one API client
// @Summary Get an API client
// @Tags Clients
// @Produce json
// @Param id path int true "Client ID"
// @Success 200 {object} utils.APIResponse{data=dto.ClientResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /clients/{id} [get]
func (h *ClientHandler) GetClient(c *gin.Context) {
	clientID, err := utils.ParseUintParam(c, "id", "client")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.clientService.GetClient(c.Request.Context(), clientID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListClients lists API clients
// @Summary List API clients
// @Tags Clients
// @Produce json
// @Param plan_id query int false "Filter by plan"
// @Param active query bool false "Filter by active flag"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Failure 400 {object} utils.APIResponse
// @Router /clients [get]
func (h *ClientHandler) ListClients(c *gin.Context) {
	planID, err := utils.ParseUintQuery(c, "plan_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	active, err := utils.ParseBoolQuery(c, "active")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	pagination := utils.ParsePagination(c)

	query := usecases.ListClientsQuery{
		PlanID:   planID,
		Active:   active,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}

	result, err := h.clientService.ListClients(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Clients, result.Total, result.Page, result.PageSize)
}
