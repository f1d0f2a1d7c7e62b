// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"moana_backoffice/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Lead Ingestion Events
// =============================================================================

// LeadIngested is published when a webhook lead has been stored.
// BrokerID is nil when broker resolution concluded "unresolved".
type LeadIngested struct {
	BaseEvent
	LeadID       uuid.UUID  `json:"leadId"`
	YatcoLeadID  string     `json:"yatcoLeadId"`
	BrokerID     *uuid.UUID `json:"brokerId,omitempty"`
	BrokerEmail  string     `json:"brokerEmail,omitempty"`
	ContactName  string     `json:"contactName"`
	Source       string     `json:"source"`
}

func (e LeadIngested) EventName() string { return "leads.lead.ingested" }

// LeadStatusChanged is published when a broker updates a lead's status
// from the dashboard.
type LeadStatusChanged struct {
	BaseEvent
	LeadID    uuid.UUID `json:"leadId"`
	OldStatus string    `json:"oldStatus"`
	NewStatus string    `json:"newStatus"`
}

func (e LeadStatusChanged) EventName() string { return "leads.status.changed" }
