// Package service implements the lead dashboard operations.
package service

import (
	"context"
	"time"

	"moana_backoffice/internal/events"
	"moana_backoffice/internal/leads/repository"
	"moana_backoffice/internal/leads/transport"
	"moana_backoffice/platform/apperr"
	"moana_backoffice/platform/logger"

	"github.com/google/uuid"
)

const defaultPageSize = 25

// Service serves the back-office lead dashboard.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger
	now  func() time.Time
}

// New creates a new lead dashboard service.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log, now: time.Now}
}

// List returns a filtered, paginated page of leads, newest first.
func (s *Service) List(ctx context.Context, req transport.ListLeadsRequest) (transport.ListLeadsResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	params := repository.ListParams{
		Source: req.Source,
		Search: req.Search,
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	}
	if req.Status != nil {
		status := string(*req.Status)
		params.Status = &status
	}
	params.BrokerID = req.BrokerID

	leads, total, err := s.repo.List(ctx, params)
	if err != nil {
		return transport.ListLeadsResponse{}, err
	}

	resp := transport.ListLeadsResponse{
		Leads:    make([]transport.LeadResponse, 0, len(leads)),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	for _, l := range leads {
		resp.Leads = append(resp.Leads, toLeadResponse(l))
	}
	return resp, nil
}

// Get returns a single lead by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (transport.LeadResponse, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, err
	}
	return toLeadResponse(lead), nil
}

// UpdateStatus moves a lead to a new triage status and publishes the change.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req transport.UpdateLeadStatusRequest) (transport.LeadResponse, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	oldStatus := lead.Status
	if err := s.repo.UpdateStatus(ctx, id, string(req.Status)); err != nil {
		return transport.LeadResponse{}, err
	}

	if oldStatus != string(req.Status) {
		s.bus.Publish(ctx, events.LeadStatusChanged{
			BaseEvent: events.NewBaseEvent(),
			LeadID:    id,
			OldStatus: oldStatus,
			NewStatus: string(req.Status),
		})
	}

	return s.Get(ctx, id)
}

// AssignBroker assigns a lead to a broker, or clears the assignment.
func (s *Service) AssignBroker(ctx context.Context, id uuid.UUID, req transport.AssignBrokerRequest) (transport.LeadResponse, error) {
	if err := s.repo.AssignBroker(ctx, id, req.BrokerID); err != nil {
		return transport.LeadResponse{}, err
	}
	return s.Get(ctx, id)
}

// Create stores a manually entered lead. Manual leads carry no external id,
// so they never collide with webhook deliveries.
func (s *Service) Create(ctx context.Context, req transport.CreateLeadRequest) (transport.LeadResponse, error) {
	now := s.now()

	params := repository.InsertLeadParams{
		LeadDate:           now,
		Source:             req.Source,
		ContactDisplayName: req.ContactName,
		ContactEmail:       req.ContactEmail,
		ContactPhone:       req.ContactPhone,
		BoatMake:           req.BoatMake,
		BoatModel:          req.BoatModel,
		CustomerComments:   req.CustomerComments,
		BrokerID:           req.BrokerID,
		Status:             string(transport.LeadStatusNew),
	}
	if req.BrokerID != nil {
		processedAt := now
		params.ProcessedAt = &processedAt
	}

	id, err := s.repo.Insert(ctx, params)
	if err != nil {
		return transport.LeadResponse{}, apperr.Wrap(apperr.KindInternal, "failed to store lead", err)
	}

	s.log.Info("manual lead created", "leadId", id, "source", req.Source)

	return s.Get(ctx, id)
}

// Stats returns the dashboard summary widget payload.
func (s *Service) Stats(ctx context.Context) (transport.StatsResponse, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return transport.StatsResponse{}, err
	}
	return transport.StatsResponse{
		Total:      stats.Total,
		ByStatus:   stats.ByStatus,
		Unassigned: stats.Unassigned,
		Last7Days:  stats.Last7Days,
	}, nil
}

func toLeadResponse(l repository.Lead) transport.LeadResponse {
	resp := transport.LeadResponse{
		ID:                    l.ID,
		YatcoLeadID:           l.YatcoLeadID,
		LeadDate:              l.LeadDate,
		Source:                l.Source,
		DetailedSource:        l.DetailedSource,
		DetailedSourceSummary: l.DetailedSourceSummary,
		RequestType:           l.RequestType,
		Contact: transport.ContactResponse{
			DisplayName: l.ContactDisplayName,
			FirstName:   l.ContactFirstName,
			LastName:    l.ContactLastName,
			Email:       l.ContactEmail,
			Phone:       l.ContactPhone,
			Country:     l.ContactCountry,
		},
		CustomerComments:     l.CustomerComments,
		LeadComments:         l.LeadComments,
		RecipientOfficeName:  l.RecipientOfficeName,
		RecipientContactName: l.RecipientContactName,
		BrokerID:             l.BrokerID,
		BrokerName:           l.BrokerName,
		Status:               transport.LeadStatus(l.Status),
		ProcessedAt:          l.ProcessedAt,
		CreatedAt:            l.CreatedAt,
		UpdatedAt:            l.UpdatedAt,
	}

	if l.BoatMake != nil || l.BoatModel != nil || l.BoatYear != nil || l.BoatURL != nil {
		resp.Boat = &transport.BoatResponse{
			Make:          l.BoatMake,
			Model:         l.BoatModel,
			Year:          l.BoatYear,
			Condition:     l.BoatCondition,
			LengthValue:   l.BoatLengthValue,
			LengthUnits:   l.BoatLengthUnits,
			PriceAmount:   l.BoatPriceAmount,
			PriceCurrency: l.BoatPriceCurrency,
			URL:           l.BoatURL,
		}
	}

	return resp
}
