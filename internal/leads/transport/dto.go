// Package transport defines the HTTP request and response shapes of the
// leads module.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// LeadStatus is the triage state a lead moves through on the dashboard.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "NEW"
	LeadStatusContacted LeadStatus = "CONTACTED"
	LeadStatusQualified LeadStatus = "QUALIFIED"
	LeadStatusConverted LeadStatus = "CONVERTED"
	LeadStatusLost      LeadStatus = "LOST"
)

// Request DTOs

type ListLeadsRequest struct {
	Status   *LeadStatus `form:"status" validate:"omitempty,oneof=NEW CONTACTED QUALIFIED CONVERTED LOST"`
	BrokerID *uuid.UUID  `form:"brokerId" validate:"omitempty"`
	Source   string      `form:"source" validate:"max=100"`
	Search   string      `form:"search" validate:"max=100"`
	Page     int         `form:"page" validate:"min=0"`
	PageSize int         `form:"pageSize" validate:"min=0,max=100"`
}

type UpdateLeadStatusRequest struct {
	Status LeadStatus `json:"status" validate:"required,oneof=NEW CONTACTED QUALIFIED CONVERTED LOST"`
}

type AssignBrokerRequest struct {
	BrokerID *uuid.UUID `json:"brokerId" validate:"omitempty"`
}

// CreateLeadRequest is the manual lead entry form for inquiries that arrive
// by phone or walk-in rather than through the webhook.
type CreateLeadRequest struct {
	ContactName      string     `json:"contactName" validate:"required,min=1,max=200"`
	ContactEmail     *string    `json:"contactEmail,omitempty" validate:"omitempty,email"`
	ContactPhone     *string    `json:"contactPhone,omitempty" validate:"omitempty,min=5,max=30"`
	Source           string     `json:"source" validate:"required,min=1,max=100"`
	BoatMake         *string    `json:"boatMake,omitempty" validate:"omitempty,max=100"`
	BoatModel        *string    `json:"boatModel,omitempty" validate:"omitempty,max=100"`
	CustomerComments *string    `json:"customerComments,omitempty" validate:"omitempty,max=5000"`
	BrokerID         *uuid.UUID `json:"brokerId,omitempty" validate:"omitempty"`
}

// Response DTOs

type ContactResponse struct {
	DisplayName string  `json:"displayName"`
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Country     *string `json:"country,omitempty"`
}

type BoatResponse struct {
	Make          *string `json:"make,omitempty"`
	Model         *string `json:"model,omitempty"`
	Year          *string `json:"year,omitempty"`
	Condition     *string `json:"condition,omitempty"`
	LengthValue   *string `json:"lengthValue,omitempty"`
	LengthUnits   *string `json:"lengthUnits,omitempty"`
	PriceAmount   *string `json:"priceAmount,omitempty"`
	PriceCurrency *string `json:"priceCurrency,omitempty"`
	URL           *string `json:"url,omitempty"`
}

type LeadResponse struct {
	ID                    uuid.UUID       `json:"id"`
	YatcoLeadID           *string         `json:"yatcoLeadId,omitempty"`
	LeadDate              time.Time       `json:"leadDate"`
	Source                string          `json:"source"`
	DetailedSource        *string         `json:"detailedSource,omitempty"`
	DetailedSourceSummary *string         `json:"detailedSourceSummary,omitempty"`
	RequestType           *string         `json:"requestType,omitempty"`
	Contact               ContactResponse `json:"contact"`
	Boat                  *BoatResponse   `json:"boat,omitempty"`
	CustomerComments      *string         `json:"customerComments,omitempty"`
	LeadComments          *string         `json:"leadComments,omitempty"`
	RecipientOfficeName   *string         `json:"recipientOfficeName,omitempty"`
	RecipientContactName  *string         `json:"recipientContactName,omitempty"`
	BrokerID              *uuid.UUID      `json:"brokerId,omitempty"`
	BrokerName            *string         `json:"brokerName,omitempty"`
	Status                LeadStatus      `json:"status"`
	ProcessedAt           *time.Time      `json:"processedAt,omitempty"`
	CreatedAt             time.Time       `json:"createdAt"`
	UpdatedAt             time.Time       `json:"updatedAt"`
}

type ListLeadsResponse struct {
	Leads    []LeadResponse `json:"leads"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
}

// StatsResponse is the dashboard summary widget payload.
type StatsResponse struct {
	Total      int            `json:"total"`
	ByStatus   map[string]int `json:"byStatus"`
	Unassigned int            `json:"unassigned"`
	Last7Days  int            `json:"last7Days"`
}
