package webhook

import (
	"context"
	"time"

	"moana_backoffice/internal/events"
	"moana_backoffice/platform/apperr"
	"moana_backoffice/platform/logger"
	appvalidator "moana_backoffice/platform/validator"

	"github.com/google/uuid"
)

// Outcome is the terminal state of one ingestion run.
type Outcome string

const (
	// OutcomeCreated means a new lead was stored.
	OutcomeCreated Outcome = "created"
	// OutcomeDuplicate means the external id was already known; nothing was written.
	OutcomeDuplicate Outcome = "duplicate"
	// OutcomeRejected means schema validation failed; nothing was written.
	OutcomeRejected Outcome = "rejected"
)

// Result describes how an ingestion run ended.
type Result struct {
	Outcome        Outcome
	LeadID         uuid.UUID
	BrokerAssigned bool
	BrokerName     string
	FieldErrors    []FieldError
}

// LeadStore is the persistence seam for ingested leads.
// Satisfied by the leads service.
type LeadStore interface {
	// FindByExternalID returns the internal id of the lead carrying the
	// provider's lead identifier, if one exists.
	FindByExternalID(ctx context.Context, yatcoLeadID string) (uuid.UUID, bool, error)
	// Insert stores a new lead. The store enforces uniqueness on the
	// external id; a concurrent duplicate delivery fails here.
	Insert(ctx context.Context, rec LeadRecord) (uuid.UUID, error)
}

// Service is the ingestion orchestrator. It sequences validation, the
// duplicate guard, normalization, broker resolution and mapping, and
// produces the HTTP-facing outcome.
type Service struct {
	store    LeadStore
	resolver *BrokerResolver
	val      *appvalidator.Validator
	bus      events.Bus
	log      *logger.Logger
	now      func() time.Time
}

// NewService creates a new ingestion service.
func NewService(store LeadStore, resolver *BrokerResolver, val *appvalidator.Validator, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		store:    store,
		resolver: resolver,
		val:      val,
		bus:      bus,
		log:      log,
		now:      time.Now,
	}
}

// ProcessLead runs one delivery through the pipeline:
// received → validated → (duplicate | rejected | mapped) → stored.
// The chain is linear with no backtracking; once broker resolution
// completes (found or not) the lead is stored either way.
func (s *Service) ProcessLead(ctx context.Context, payload *LeadPayload) (Result, error) {
	if fieldErrs := ValidatePayload(s.val, payload); len(fieldErrs) > 0 {
		fields := make([]string, len(fieldErrs))
		for i, fe := range fieldErrs {
			fields[i] = fe.Field
		}
		s.log.Info("webhook: payload rejected", "errors", len(fieldErrs), "fields", fields)
		return Result{Outcome: OutcomeRejected, FieldErrors: fieldErrs}, nil
	}

	existingID, found, err := s.store.FindByExternalID(ctx, payload.Lead.ID)
	if err != nil {
		s.log.Error("webhook: duplicate check failed", "error", err, "yatcoLeadId", payload.Lead.ID)
		return Result{}, apperr.Wrap(apperr.KindInternal, "failed to check for existing lead", err).WithOp("webhook.ProcessLead")
	}
	if found {
		s.log.Info("webhook: duplicate lead detected", "yatcoLeadId", payload.Lead.ID, "leadId", existingID)
		return Result{Outcome: OutcomeDuplicate, LeadID: existingID}, nil
	}

	var name *ContactName
	if payload.Contact != nil {
		name = payload.Contact.Name
	}
	contact := NormalizeContact(name)

	recipientName := payload.recipientContactName()
	var broker *Broker
	if resolved, ok := s.resolver.Resolve(ctx, recipientName); ok {
		broker = &resolved
		s.log.Info("webhook: broker matched", "recipient", recipientName, "broker", resolved.Name)
	}

	rec := MapLead(payload, contact, broker, s.now())

	leadID, err := s.store.Insert(ctx, rec)
	if err != nil {
		// A unique violation here means a concurrent delivery of the same
		// external id won the race between the duplicate check and this
		// insert. That still surfaces as a storage failure so the provider
		// retries and operators see the collision.
		s.log.Error("webhook: lead insert failed", "error", err, "yatcoLeadId", payload.Lead.ID, "recipient", recipientName)
		return Result{}, apperr.Wrap(apperr.KindInternal, "failed to store lead", err).WithDetails(err.Error())
	}

	s.log.Info("webhook: lead created", "leadId", leadID, "yatcoLeadId", payload.Lead.ID, "brokerAssigned", broker != nil)

	event := events.LeadIngested{
		BaseEvent:   events.NewBaseEvent(),
		LeadID:      leadID,
		YatcoLeadID: payload.Lead.ID,
		ContactName: contact.DisplayName,
		Source:      payload.Lead.Source,
	}
	if broker != nil {
		id := broker.ID
		event.BrokerID = &id
		event.BrokerEmail = broker.Email
	}
	s.bus.Publish(ctx, event)

	result := Result{Outcome: OutcomeCreated, LeadID: leadID}
	if broker != nil {
		result.BrokerAssigned = true
		result.BrokerName = broker.Name
	}
	return result, nil
}
