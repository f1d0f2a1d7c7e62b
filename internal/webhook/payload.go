// Package webhook provides the inbound lead ingestion bounded context.
// It receives Yatco LeadFlow webhook deliveries, validates and normalizes
// them, resolves the addressed broker and stores the lead exactly once.
package webhook

// LeadPayload is the inbound LeadFlow document. The provider's real-world
// payloads are inconsistent, so beyond a handful of identifiers every field
// is optional; strictness is deliberately minimized to avoid false rejections.
type LeadPayload struct {
	Lead             LeadInfo      `json:"lead"`
	Contact          *ContactInfo  `json:"contact,omitempty"`
	CustomerComments *string       `json:"customerComments,omitempty"`
	LeadComments     *string       `json:"leadComments,omitempty"`
	Boat             *BoatInfo     `json:"boat,omitempty"`
	Recipient        RecipientInfo `json:"recipient"`
	LeadSmart        *LeadSmart    `json:"leadSmart,omitempty"`
}

// LeadInfo identifies the lead at the provider. ID is the sole idempotency
// key; no two stored leads may share it.
type LeadInfo struct {
	ID                    string  `json:"id" validate:"required"`
	Date                  *string `json:"date,omitempty"` // ISO 8601, optional per LeadFlow doc
	Source                string  `json:"source" validate:"required"`
	DetailedSource        *string `json:"detailedSource,omitempty"`
	DetailedSourceSummary *string `json:"detailedSourceSummary,omitempty"`
	RequestType           *string `json:"requestType,omitempty"`
}

// ContactName may be partially or fully absent; minimal leads carry an
// empty name object. This is documented provider behavior, not an error.
type ContactName struct {
	Display *string `json:"display,omitempty"`
	First   *string `json:"first,omitempty"`
	Last    *string `json:"last,omitempty"`
}

// ContactInfo carries the inquirer's contact details.
type ContactInfo struct {
	Name       *ContactName `json:"name,omitempty"`
	Phone      *string      `json:"phone,omitempty"`
	Email      *string      `json:"email,omitempty"`
	Country    *string      `json:"country,omitempty"`
	PostalCode *string      `json:"postalCode,omitempty"` // US leads only
}

// BoatLength is the advertised length with its unit.
type BoatLength struct {
	Measure *string `json:"measure,omitempty"`
	Units   *string `json:"units,omitempty"`
}

// BoatLocation is where the boat is lying.
type BoatLocation struct {
	City          *string `json:"city,omitempty"`
	StateProvince *string `json:"stateProvince,omitempty"`
	Country       *string `json:"country,omitempty"`
	PostalCode    *string `json:"postalCode,omitempty"`
}

// BoatPrice is the advertised asking price.
type BoatPrice struct {
	Amount   *string `json:"amount,omitempty"`
	Currency *string `json:"currency,omitempty"`
}

// BoatInfo describes the listing the inquiry is about.
type BoatInfo struct {
	Make        *string       `json:"make,omitempty"`
	Model       *string       `json:"model,omitempty"`
	Year        *string       `json:"year,omitempty"`
	HIN         *string       `json:"hin,omitempty"`
	Condition   *string       `json:"condition,omitempty"`
	ClassCode   *string       `json:"classCode,omitempty"`
	Name        *string       `json:"name,omitempty"`
	StockNumber *string       `json:"stockNumber,omitempty"`
	IMTID       *string       `json:"imtId,omitempty"`
	Length      *BoatLength   `json:"length,omitempty"`
	Location    *BoatLocation `json:"location,omitempty"`
	Price       *BoatPrice    `json:"price,omitempty"`
	URL         *string       `json:"url,omitempty"`
}

// RecipientInfo is the provider's designation of which office/broker the
// lead was addressed to. ContactName is free text and optional.
type RecipientInfo struct {
	OfficeName  string  `json:"officeName" validate:"required"`
	OfficeID    string  `json:"officeId" validate:"required"`
	ContactName *string `json:"contactName,omitempty"`
}

// LeadSmart carries the contact's lead history at the provider.
type LeadSmart struct {
	LeadHistory []LeadHistoryEntry `json:"leadHistory,omitempty"`
}

// LeadHistoryEntry is a single prior inquiry by the same contact.
type LeadHistoryEntry struct {
	Make       *string       `json:"make,omitempty"`
	Model      *string       `json:"model,omitempty"`
	Year       *string       `json:"year,omitempty"`
	DateOfLead *string       `json:"dateOfLead,omitempty"`
	PortalName *string       `json:"portalName,omitempty"`
	Location   *BoatLocation `json:"location,omitempty"`
}

// recipientContactName returns the raw recipient contact name or "".
func (p *LeadPayload) recipientContactName() string {
	if p.Recipient.ContactName == nil {
		return ""
	}
	return *p.Recipient.ContactName
}
