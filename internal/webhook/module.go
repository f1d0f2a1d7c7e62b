// Package webhook implements the inbound lead ingestion pipeline.
// It receives Yatco LeadFlow deliveries, validates and normalizes them,
// resolves the receiving broker and stores the lead.
package webhook

import (
	apphttp "moana_backoffice/internal/http"
	"moana_backoffice/platform/config"
	"moana_backoffice/platform/logger"
)

// Module bundles the webhook handler with its route registration.
type Module struct {
	handler *Handler
	cfg     config.WebhookConfig
	log     *logger.Logger
}

// NewModule wires the webhook bounded context.
func NewModule(service *Service, cfg config.WebhookConfig, log *logger.Logger) *Module {
	return &Module{
		handler: NewHandler(service, cfg, log),
		cfg:     cfg,
		log:     log,
	}
}

// Name identifies the module in logs.
func (m *Module) Name() string { return "webhook" }

// RegisterRoutes mounts the webhook endpoints. The POST route is the only
// unauthenticated write surface of the system, so it sits behind both the
// per-IP rate limiter and the source allowlist.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/webhook")
	group.Use(ctx.WebhookRateLimiter.RateLimit())
	group.Use(SourceIPAllowlist(m.cfg, m.log))

	group.POST("/yatco", m.handler.HandleYatcoLead)
	group.GET("/yatco", m.handler.HandleHealth)
}
