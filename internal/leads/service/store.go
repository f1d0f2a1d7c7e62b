package service

import (
	"context"

	"moana_backoffice/internal/leads/repository"
	"moana_backoffice/internal/webhook"

	"github.com/google/uuid"
)

// WebhookStore adapts the lead repository to the persistence seam the
// ingestion pipeline consumes.
type WebhookStore struct {
	repo repository.Repository
}

// NewWebhookStore creates the ingestion-facing view of the lead repository.
func NewWebhookStore(repo repository.Repository) *WebhookStore {
	return &WebhookStore{repo: repo}
}

var _ webhook.LeadStore = (*WebhookStore)(nil)

// FindByExternalID returns the internal id of the lead carrying the
// provider's lead identifier.
func (s *WebhookStore) FindByExternalID(ctx context.Context, yatcoLeadID string) (uuid.UUID, bool, error) {
	return s.repo.FindByYatcoID(ctx, yatcoLeadID)
}

// Insert stores one ingested lead.
func (s *WebhookStore) Insert(ctx context.Context, rec webhook.LeadRecord) (uuid.UUID, error) {
	yatcoID := rec.YatcoLeadID
	officeName := rec.RecipientOfficeName
	officeID := rec.RecipientOfficeID

	return s.repo.Insert(ctx, repository.InsertLeadParams{
		YatcoLeadID:           &yatcoID,
		LeadDate:              rec.LeadDate,
		Source:                rec.Source,
		DetailedSource:        rec.DetailedSource,
		DetailedSourceSummary: rec.DetailedSourceSummary,
		RequestType:           rec.RequestType,
		ContactDisplayName:    rec.ContactDisplayName,
		ContactFirstName:      rec.ContactFirstName,
		ContactLastName:       rec.ContactLastName,
		ContactEmail:          rec.ContactEmail,
		ContactPhone:          rec.ContactPhone,
		ContactCountry:        rec.ContactCountry,
		BoatMake:              rec.BoatMake,
		BoatModel:             rec.BoatModel,
		BoatYear:              rec.BoatYear,
		BoatCondition:         rec.BoatCondition,
		BoatLengthValue:       rec.BoatLengthValue,
		BoatLengthUnits:       rec.BoatLengthUnits,
		BoatPriceAmount:       rec.BoatPriceAmount,
		BoatPriceCurrency:     rec.BoatPriceCurrency,
		BoatURL:               rec.BoatURL,
		CustomerComments:      rec.CustomerComments,
		LeadComments:          rec.LeadComments,
		RecipientOfficeName:   &officeName,
		RecipientOfficeID:     &officeID,
		RecipientContactName:  rec.RecipientContactName,
		BrokerID:              rec.BrokerID,
		Status:                rec.Status,
		RawPayload:            rec.RawPayload,
		ProcessedAt:           rec.ProcessedAt,
	})
}
