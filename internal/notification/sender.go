// Package notification delivers broker-facing email notifications.
package notification

import (
	"context"

	"moana_backoffice/platform/logger"
)

// NewLeadEmailData carries everything the new-lead notification renders.
type NewLeadEmailData struct {
	BrokerName   string
	ContactName  string
	Source       string
	BoatSummary  string
	Comments     string
	DashboardURL string
}

// Sender delivers notification emails.
type Sender interface {
	SendNewLeadEmail(ctx context.Context, toEmail string, data NewLeadEmailData) error
}

// LogSender logs instead of sending. Used when SMTP is not configured so
// the worker keeps draining tasks in development.
type LogSender struct {
	log *logger.Logger
}

// NewLogSender creates a sender that only logs.
func NewLogSender(log *logger.Logger) *LogSender {
	return &LogSender{log: log}
}

var _ Sender = (*LogSender)(nil)

func (s *LogSender) SendNewLeadEmail(_ context.Context, toEmail string, data NewLeadEmailData) error {
	s.log.Info("email disabled, skipping new lead notification",
		"to", toEmail, "contact", data.ContactName, "source", data.Source)
	return nil
}
