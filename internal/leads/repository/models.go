package repository

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Lead is a stored lead row. BrokerName is joined from the broker
// directory when the lead is assigned.
type Lead struct {
	ID                    uuid.UUID
	YatcoLeadID           *string
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
	RecipientOfficeName   *string
	RecipientOfficeID     *string
	RecipientContactName  *string
	BrokerID              *uuid.UUID
	BrokerName            *string
	Status                string
	RawPayload            json.RawMessage
	ProcessedAt           *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// InsertLeadParams carries one new lead row. YatcoLeadID is nil for leads
// entered manually on the dashboard; the uniqueness constraint only covers
// non-null values.
type InsertLeadParams struct {
	YatcoLeadID           *string
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
	RecipientOfficeName   *string
	RecipientOfficeID     *string
	RecipientContactName  *string
	BrokerID              *uuid.UUID
	Status                string
	RawPayload            json.RawMessage
	ProcessedAt           *time.Time
}

// ListParams filters and paginates the dashboard lead list.
type ListParams struct {
	Status   *string
	BrokerID *uuid.UUID
	Source   string
	Search   string
	Limit    int
	Offset   int
}

// Stats summarizes the lead inbox for the dashboard.
type Stats struct {
	Total      int
	ByStatus   map[string]int
	Unassigned int
	Last7Days  int
}
