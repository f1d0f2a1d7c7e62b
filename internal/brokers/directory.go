// Package brokers provides the broker directory bounded context.
// Brokers are managed outside this system; this module only reads them,
// for the dashboard and for webhook broker resolution.
package brokers

import (
	"context"

	"moana_backoffice/internal/brokers/repository"
	"moana_backoffice/internal/webhook"
)

// Directory adapts the broker repository to the lookup interface the
// webhook resolver consumes.
type Directory struct {
	repo repository.Repository
}

// NewDirectory creates a resolver-facing view of the broker repository.
func NewDirectory(repo repository.Repository) *Directory {
	return &Directory{repo: repo}
}

var _ webhook.BrokerDirectory = (*Directory)(nil)

// FindByEmails returns the broker matching any of the candidate emails.
func (d *Directory) FindByEmails(ctx context.Context, emails []string) (webhook.Broker, bool, error) {
	b, found, err := d.repo.FindByEmails(ctx, emails)
	if err != nil || !found {
		return webhook.Broker{}, false, err
	}
	return toResolverBroker(b), true, nil
}

// FindByName returns the broker whose display name matches case-insensitively.
func (d *Directory) FindByName(ctx context.Context, name string) (webhook.Broker, bool, error) {
	b, found, err := d.repo.FindByName(ctx, name)
	if err != nil || !found {
		return webhook.Broker{}, false, err
	}
	return toResolverBroker(b), true, nil
}

func toResolverBroker(b repository.Broker) webhook.Broker {
	return webhook.Broker{ID: b.ID, Name: b.BrokerName, Email: b.Email}
}
