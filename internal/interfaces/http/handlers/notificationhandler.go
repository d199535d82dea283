package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ratekeeper/ratekeeper/internal/application/notification/dto"
	"github.com/ratekeeper/ratekeeper/internal/application/notification/usecases"
	"github.com/ratekeeper/ratekeeper/internal/domain/client"
	"github.com/ratekeeper/ratekeeper/internal/domain/notification"
	"github.com/ratekeeper/ratekeeper/internal/domain/ratelimit"
	"github.com/ratekeeper/ratekeeper/internal/shared/constants"
	"github.com/ratekeeper/ratekeeper/internal/shared/errors"
	"github.com/ratekeeper/ratekeeper/internal/shared/logger"
	"github.com/ratekeeper/ratekeeper/internal/shared/utils"
)

// NotificationHandler serves the rate-limited notification endpoints and
// the admin listing of accepted notifications.
type NotificationHandler struct {
	notificationService notificationService
	logger              logger.Interface
}

func NewNotificationHandler(notificationService notificationService, logger logger.Interface) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		logger:              logger,
	}
}

// SendSMS accepts an SMS notification
// @Summary Send an SMS notification
// @Description Accept an SMS notification for delivery. The request must carry a valid X-API-Key and pass rate limiting.
// @Tags Notifications
// @Accept json
// @Produce json
// @Param X-API-Key header string true "Client API key"
// @Param request body dto.SendNotificationRequest true "Notification payload"
// @Success 200 {object} dto.NotificationResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 429 {object} map[string]interface{}
// @Router /notify/sms [post]
func (h *NotificationHandler) SendSMS(c *gin.Context) {
	h.send(c, notification.ChannelSMS)
}

// SendEmail accepts an email notification
// @Summary Send an email notification
// @Description Accept an email notification for delivery. The request must carry a valid X-API-Key and pass rate limiting.
// @Tags Notifications
// @Accept json
// @Produce json
// @Param X-API-Key header string true "Client API key"
// @Param request body dto.SendNotificationRequest true "Notification payload"
// @Success 200 {object} dto.NotificationResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 429 {object} map[string]interface{}
// @Router /notify/email [post]
func (h *NotificationHandler) SendEmail(c *gin.Context) {
	h.send(c, notification.ChannelEmail)
}

func (h *NotificationHandler) send(c *gin.Context, channel notification.Channel) {
	var req dto.SendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid notification request body",
			"channel", channel.String(),
			"error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
		return
	}

	cl := clientFromContext(c)
	if cl == nil {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("Client not authenticated"))
		return
	}

	cmd := usecases.SendNotificationCommand{
		ClientID:  cl.ID(),
		Channel:   channel,
		Recipient: req.Recipient,
		Message:   req.Message,
		Admission: admissionMetadata(c),
	}

	result, err := h.notificationService.SendNotification(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	// The notify endpoints answer with the flat acknowledgement, not the
	// management envelope.
	c.JSON(http.StatusOK, result)
}

// ListNotifications lists accepted notifications for a client
// @Summary List notifications
// @Description List the accepted notifications of one client, newest first.
// @Tags Notifications
// @Accept json
// @Produce json
// @Param client_id query int true "Client ID"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Failure 400 {object} utils.APIResponse
// @Router /notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	clientID, err := utils.ParseUintQuery(c, "client_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if clientID == nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("client_id query parameter is required"))
		return
	}

	pagination := utils.ParsePagination(c)

	query := usecases.ListNotificationsQuery{
		ClientID: *clientID,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}

	result, err := h.notificationService.ListNotifications(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Notifications, result.Total, result.Page, result.PageSize)
}

// clientFromContext pulls the admitted client stored by the admission
// middleware. A nil return means the route was wired without it.
func clientFromContext(c *gin.Context) *client.Client {
	v, ok := c.Get(constants.ContextKeyClient)
	if !ok {
		return nil
	}
	cl, ok := v.(*client.Client)
	if !ok {
		return nil
	}
	return cl
}

// admissionMetadata folds the admission decision into the metadata stored
// with the notification record.
func admissionMetadata(c *gin.Context) map[string]any {
	v, ok := c.Get(constants.ContextKeyAdmission)
	if !ok {
		return nil
	}
	result, ok := v.(*ratelimit.Result)
	if !ok || result.Ceiling <= 0 {
		return nil
	}
	return map[string]any{
		"limit":     result.Ceiling,
		"remaining": result.Remaining,
	}
}
