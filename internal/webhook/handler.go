package webhook

import (
	"net/http"

	"moana_backoffice/platform/config"
	"moana_backoffice/platform/httpkit"
	"moana_backoffice/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles webhook HTTP requests.
type Handler struct {
	service *Service
	cfg     config.WebhookConfig
	log     *logger.Logger
}

// NewHandler creates a new webhook handler.
func NewHandler(service *Service, cfg config.WebhookConfig, log *logger.Logger) *Handler {
	return &Handler{service: service, cfg: cfg, log: log}
}

// LeadCreatedResponse is returned when a new lead was stored.
type LeadCreatedResponse struct {
	Success        bool      `json:"success"`
	LeadID         uuid.UUID `json:"lead_id"`
	BrokerAssigned bool      `json:"broker_assigned"`
	BrokerName     string    `json:"broker_name,omitempty"`
}

// DuplicateLeadResponse is returned when the external id was already known.
type DuplicateLeadResponse struct {
	Message string    `json:"message"`
	LeadID  uuid.UUID `json:"lead_id"`
}

// HandleYatcoLead processes an inbound Yatco LeadFlow delivery.
// POST /api/v1/webhook/yatco
func (h *Handler) HandleYatcoLead(c *gin.Context) {
	var payload LeadPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid payload", err.Error())
		return
	}

	result, err := h.service.ProcessLead(c.Request.Context(), &payload)
	if httpkit.HandleError(c, err) {
		return
	}

	switch result.Outcome {
	case OutcomeRejected:
		httpkit.Error(c, http.StatusBadRequest, "invalid payload", result.FieldErrors)
	case OutcomeDuplicate:
		c.JSON(http.StatusOK, DuplicateLeadResponse{
			Message: "Lead already exists",
			LeadID:  result.LeadID,
		})
	default:
		httpkit.Created(c, LeadCreatedResponse{
			Success:        true,
			LeadID:         result.LeadID,
			BrokerAssigned: result.BrokerAssigned,
			BrokerName:     result.BrokerName,
		})
	}
}

// HandleHealth returns a static health payload for the provider's monitoring.
// GET /api/v1/webhook/yatco
func (h *Handler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":                "ok",
		"endpoint":              "Yatco LeadFlow Webhook",
		"allowlisted_ips":       h.cfg.GetWebhookAllowedIPs(),
		"ip_allowlist_disabled": h.cfg.GetWebhookIPAllowlistDisabled(),
	})
}
