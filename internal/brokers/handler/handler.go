// Package handler exposes the broker directory over HTTP.
package handler

import (
	"net/http"

	"moana_backoffice/internal/brokers/repository"
	"moana_backoffice/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler serves broker directory reads for the dashboard.
type Handler struct {
	repo repository.Repository
}

// New creates a new broker handler.
func New(repo repository.Repository) *Handler {
	return &Handler{repo: repo}
}

// List returns all active brokers ordered by name.
// GET /api/v1/brokers
func (h *Handler) List(c *gin.Context) {
	brokerList, err := h.repo.List(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"brokers": brokerList})
}

// Get returns a single broker by id.
// GET /api/v1/brokers/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid broker id", nil)
		return
	}

	broker, err := h.repo.GetByID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, broker)
}
