package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ratekeeper/ratekeeper/internal/application/rule/dto"
	"github.com/ratekeeper/ratekeeper/internal/application/rule/usecases"
	"github.com/ratekeeper/ratekeeper/internal/shared/errors"
	"github.com/ratekeeper/ratekeeper/internal/shared/logger"
	"github.com/ratekeeper/ratekeeper/internal/shared/utils"
)

// RuleHandler serves the global rate limit rule endpoints.
type RuleHandler struct {
	ruleService ruleService
	logger      logger.Interface
}

func NewRuleHandler(ruleService ruleService, logger logger.Interface) *RuleHandler {
	return &RuleHandler{
		ruleService: ruleService,
		logger:      logger,
	}
}

// CreateRule creates a global rate limit rule
// @Summary Create a global rate limit rule
// @Description Create a GLOBAL rule counting all admitted traffic against one ceiling. A window_seconds of zero makes the rule monthly.
// @Tags Limits
// @Accept json
// @Produce json
// @Param request body dto.CreateRuleRequest true "Rule data"
// @Success 201 {object} utils.APIResponse{data=dto.RuleResponse}
// @Failure 400 {object} utils.APIResponse
// @Router /limits [post]
func (h *RuleHandler) CreateRule(c *gin.Context) {
	var req dto.CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create rule", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
		return
	}

	result, err := h.ruleService.CreateRule(c.Request.Context(), &req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Rate limit rule created successfully")
}

// GetRule fetches one global rate limit rule
// @Summary Get a global rate limit rule
// @Tags Limits
// @Produce json
// @Param id path int true "Rule ID"
// @Success 200 {object} utils.APIResponse{data=dto.RuleResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /limits/{id} [get]
func (h *RuleHandler) GetRule(c *gin.Context) {
	ruleID, err := utils.ParseUintParam(c, "id", "rule")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.ruleService.GetRule(c.Request.Context(), ruleID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateRule edits a global rate limit rule
// @Summary Update a global rate limit rule
// @Description Replace the rule's ceiling. A window_seconds of zero converts the rule to monthly. Live counters keep their current buckets.
// @Tags Limits
// @Accept json
// @Produce json
// @Param id path int true "Rule ID"
// @Param request body dto.UpdateRuleRequest true "Updated rule data"
// @Success 200 {object} utils.APIResponse{data=dto.RuleResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /limits/{id} [put]
func (h *RuleHandler) UpdateRule(c *gin.Context) {
	ruleID, err := utils.ParseUintParam(c, "id", "rule")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.UpdateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update rule",
			"rule_id", ruleID,
			"error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
		return
	}

	result, err := h.ruleService.UpdateRule(c.Request.Context(), ruleID, &req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Rate limit rule updated successfully", result)
}

// ListRules lists global rate limit rules
// @Summary List global rate limit rules
// @Tags Limits
// @Produce json
// @Param active query bool false "Filter by active flag"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Failure 400 {object} utils.APIResponse
// @Router /limits [get]
func (h *RuleHandler) ListRules(c *gin.Context) {
	active, err := utils.ParseBoolQuery(c, "active")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	pagination := utils.ParsePagination(c)

	query := usecases.ListRulesQuery{
		Active:   active,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}

	result, err := h.ruleService.ListRules(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Rules, result.Total, result.Page, result.PageSize)
}
