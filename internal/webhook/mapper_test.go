package webhook

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

func fullPayload() *LeadPayload {
	p := validPayload()
	p.Lead.Date = strPtr("2026-03-15T10:30:00Z")
	p.Lead.DetailedSource = strPtr("YachtWorld Search")
	p.Lead.RequestType = strPtr("More Information")
	p.Contact = &ContactInfo{
		Name:    &ContactName{Display: strPtr("Jean Dupont")},
		Email:   strPtr("jean@example.com"),
		Phone:   strPtr("06 12 34 56 78"),
		Country: strPtr("France"),
	}
	p.Boat = &BoatInfo{
		Make:      strPtr("Beneteau"),
		Model:     strPtr("Oceanis 46.1"),
		Year:      strPtr("2021"),
		Condition: strPtr("Used"),
		Length:    &BoatLength{Measure: strPtr("46"), Units: strPtr("ft")},
		Price:     &BoatPrice{Amount: strPtr("450000"), Currency: strPtr("EUR")},
		URL:       strPtr("https://example.com/boat/1"),
	}
	p.CustomerComments = strPtr("Interested in a sea trial")
	p.Recipient.ContactName = strPtr("Julien")
	return p
}

func TestMapLeadFullPayload(t *testing.T) {
	now := time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC)
	broker := Broker{ID: uuid.New(), Name: "Julien", Email: "julien@moana-yachting.com"}
	contact := NormalizeContact(fullPayload().Contact.Name)

	rec := MapLead(fullPayload(), contact, &broker, now)

	if rec.YatcoLeadID != "L-123" {
		t.Fatalf("YatcoLeadID = %q", rec.YatcoLeadID)
	}
	if !rec.LeadDate.Equal(time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)) {
		t.Fatalf("LeadDate = %v", rec.LeadDate)
	}
	if rec.ContactDisplayName != "Jean Dupont" {
		t.Fatalf("ContactDisplayName = %q", rec.ContactDisplayName)
	}
	if rec.ContactPhone == nil || *rec.ContactPhone != "+33612345678" {
		t.Fatalf("ContactPhone = %v, want normalized E.164", rec.ContactPhone)
	}
	if rec.BoatMake == nil || *rec.BoatMake != "Beneteau" {
		t.Fatalf("BoatMake = %v", rec.BoatMake)
	}
	if rec.BoatLengthValue == nil || *rec.BoatLengthValue != "46" {
		t.Fatalf("BoatLengthValue = %v", rec.BoatLengthValue)
	}
	if rec.Status != "NEW" {
		t.Fatalf("Status = %q", rec.Status)
	}
	if rec.BrokerID == nil || *rec.BrokerID != broker.ID {
		t.Fatalf("BrokerID = %v", rec.BrokerID)
	}
	if rec.ProcessedAt == nil || !rec.ProcessedAt.Equal(now) {
		t.Fatalf("ProcessedAt = %v, want ingestion time", rec.ProcessedAt)
	}
}

func TestMapLeadUnresolvedBroker(t *testing.T) {
	now := time.Now()
	rec := MapLead(validPayload(), NormalizeContact(nil), nil, now)

	if rec.BrokerID != nil {
		t.Fatalf("BrokerID = %v, want nil", rec.BrokerID)
	}
	if rec.ProcessedAt != nil {
		t.Fatalf("ProcessedAt = %v, want nil when no broker resolved", rec.ProcessedAt)
	}
	if rec.ContactDisplayName != "Unknown Contact" {
		t.Fatalf("ContactDisplayName = %q", rec.ContactDisplayName)
	}
	if rec.Status != "NEW" {
		t.Fatalf("Status = %q", rec.Status)
	}
}

func TestMapLeadDateFallsBackToNow(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	p := validPayload()
	rec := MapLead(p, NormalizeContact(nil), nil, now)
	if !rec.LeadDate.Equal(now) {
		t.Fatalf("missing date: LeadDate = %v, want now", rec.LeadDate)
	}

	p.Lead.Date = strPtr("not-a-date")
	rec = MapLead(p, NormalizeContact(nil), nil, now)
	if !rec.LeadDate.Equal(now) {
		t.Fatalf("unparseable date: LeadDate = %v, want now", rec.LeadDate)
	}
}

func TestMapLeadRawPayloadRoundTrips(t *testing.T) {
	payload := fullPayload()
	rec := MapLead(payload, NormalizeContact(payload.Contact.Name), nil, time.Now())

	var decoded LeadPayload
	if err := json.Unmarshal(rec.RawPayload, &decoded); err != nil {
		t.Fatalf("RawPayload is not valid JSON: %v", err)
	}
	if decoded.Lead.ID != payload.Lead.ID {
		t.Fatalf("RawPayload lead id = %q", decoded.Lead.ID)
	}
	if decoded.Contact == nil || decoded.Contact.Phone == nil || *decoded.Contact.Phone != "06 12 34 56 78" {
		t.Fatal("RawPayload must retain the original, unnormalized phone")
	}
}
