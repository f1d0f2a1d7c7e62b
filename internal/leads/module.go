// Package leads provides the lead dashboard bounded context.
package leads

import (
	"moana_backoffice/internal/events"
	apphttp "moana_backoffice/internal/http"
	"moana_backoffice/internal/leads/handler"
	"moana_backoffice/internal/leads/repository"
	"moana_backoffice/internal/leads/service"
	"moana_backoffice/platform/logger"
	"moana_backoffice/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the leads bounded context implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	store   *service.WebhookStore
}

// NewModule wires the leads bounded context.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, log)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
		store:   service.NewWebhookStore(repo),
	}
}

// Name identifies the module in logs.
func (m *Module) Name() string { return "leads" }

// WebhookStore exposes the ingestion-facing persistence seam.
func (m *Module) WebhookStore() *service.WebhookStore {
	return m.store
}

// RegisterRoutes mounts the lead dashboard endpoints.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/leads")
	group.GET("", m.handler.List)
	group.POST("", m.handler.Create)
	group.GET("/stats", m.handler.Stats)
	group.GET("/:id", m.handler.Get)
	group.PATCH("/:id/status", m.handler.UpdateStatus)
	group.PATCH("/:id/broker", m.handler.AssignBroker)
}
