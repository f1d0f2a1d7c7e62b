package webhook

import (
	"encoding/json"
	"time"

	"moana_backoffice/platform/phone"

	"github.com/google/uuid"
)

// StatusNew is the fixed starting status of every ingested lead.
const StatusNew = "NEW"

// LeadRecord is the persisted lead shape produced by the field mapper.
// RawPayload retains the full validated input verbatim for audit/replay.
type LeadRecord struct {
	YatcoLeadID           string
	LeadDate              time.Time
	Source                string
	DetailedSource        *string
	DetailedSourceSummary *string
	RequestType           *string
	ContactDisplayName    string
	ContactFirstName      *string
	ContactLastName       *string
	ContactEmail          *string
	ContactPhone          *string
	ContactCountry        *string
	BoatMake              *string
	BoatModel             *string
	BoatYear              *string
	BoatCondition         *string
	BoatLengthValue       *string
	BoatLengthUnits       *string
	BoatPriceAmount       *string
	BoatPriceCurrency     *string
	BoatURL               *string
	CustomerComments      *string
	LeadComments          *string
	RecipientOfficeName   string
	RecipientOfficeID     string
	RecipientContactName  *string
	BrokerID              *uuid.UUID
	Status                string
	RawPayload            json.RawMessage
	ProcessedAt           *time.Time
}

// MapLead projects a validated payload into the persisted lead shape.
// A missing lead.date defaults to the ingestion time so every lead stays
// orderable by received time. ProcessedAt is set only when a broker was
// resolved; a nil value signals "awaiting triage" to the dashboard.
// No validation occurs here; input has already passed ValidatePayload.
func MapLead(payload *LeadPayload, contact NormalizedContact, broker *Broker, now time.Time) LeadRecord {
	rec := LeadRecord{
		YatcoLeadID:           payload.Lead.ID,
		LeadDate:              parseLeadDate(payload.Lead.Date, now),
		Source:                payload.Lead.Source,
		DetailedSource:        payload.Lead.DetailedSource,
		DetailedSourceSummary: payload.Lead.DetailedSourceSummary,
		RequestType:           payload.Lead.RequestType,
		ContactDisplayName:    contact.DisplayName,
		ContactFirstName:      contact.FirstName,
		ContactLastName:       contact.LastName,
		CustomerComments:      payload.CustomerComments,
		LeadComments:          payload.LeadComments,
		RecipientOfficeName:   payload.Recipient.OfficeName,
		RecipientOfficeID:     payload.Recipient.OfficeID,
		Status:                StatusNew,
	}

	if name := payload.recipientContactName(); name != "" {
		rec.RecipientContactName = &name
	}

	if c := payload.Contact; c != nil {
		rec.ContactEmail = c.Email
		rec.ContactCountry = c.Country
		if c.Phone != nil {
			normalized := phone.NormalizeE164(*c.Phone)
			rec.ContactPhone = &normalized
		}
	}

	if b := payload.Boat; b != nil {
		rec.BoatMake = b.Make
		rec.BoatModel = b.Model
		rec.BoatYear = b.Year
		rec.BoatCondition = b.Condition
		rec.BoatURL = b.URL
		if b.Length != nil {
			rec.BoatLengthValue = b.Length.Measure
			rec.BoatLengthUnits = b.Length.Units
		}
		if b.Price != nil {
			rec.BoatPriceAmount = b.Price.Amount
			rec.BoatPriceCurrency = b.Price.Currency
		}
	}

	if broker != nil {
		id := broker.ID
		rec.BrokerID = &id
		processedAt := now
		rec.ProcessedAt = &processedAt
	}

	// The payload passed binding, so marshaling it back cannot fail.
	rec.RawPayload, _ = json.Marshal(payload)

	return rec
}

func parseLeadDate(value *string, now time.Time) time.Time {
	if value == nil || *value == "" {
		return now
	}
	parsed, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		return now
	}
	return parsed
}
