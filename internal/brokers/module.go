package brokers

import (
	"moana_backoffice/internal/brokers/handler"
	"moana_backoffice/internal/brokers/repository"
	apphttp "moana_backoffice/internal/http"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module bundles the broker directory's repository and routes.
type Module struct {
	repo    *repository.Repo
	handler *handler.Handler
}

// NewModule wires the brokers bounded context.
func NewModule(pool *pgxpool.Pool) *Module {
	repo := repository.New(pool)
	return &Module{
		repo:    repo,
		handler: handler.New(repo),
	}
}

// Name identifies the module in logs.
func (m *Module) Name() string { return "brokers" }

// Directory exposes the resolver-facing lookup view.
func (m *Module) Directory() *Directory {
	return NewDirectory(m.repo)
}

// RegisterRoutes mounts the broker directory endpoints.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/brokers")
	group.GET("", m.handler.List)
	group.GET("/:id", m.handler.Get)
}
