package webhook

import (
	"context"
	"strings"

	"moana_backoffice/platform/logger"
	"moana_backoffice/platform/textkit"

	"github.com/google/uuid"
)

// Broker is an internal sales agent a lead may be assigned to.
// Looked up, never created by this pipeline.
type Broker struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// BrokerDirectory is the read-only broker lookup the resolver consumes.
// Satisfied by the brokers repository.
type BrokerDirectory interface {
	// FindByEmails returns the broker matching any of the candidate emails.
	FindByEmails(ctx context.Context, emails []string) (Broker, bool, error)
	// FindByName returns the broker whose display name matches
	// case-insensitively.
	FindByName(ctx context.Context, name string) (Broker, bool, error)
}

// BrokerResolver maps a raw recipient contact name to a broker, or
// explicitly concludes "unresolved". An unresolved broker is a valid
// terminal state of resolution, not a failure.
type BrokerResolver struct {
	directory BrokerDirectory
	aliases   AliasConfig
	log       *logger.Logger
}

// NewBrokerResolver creates a resolver over the given directory and alias table.
func NewBrokerResolver(directory BrokerDirectory, aliases AliasConfig, log *logger.Logger) *BrokerResolver {
	return &BrokerResolver{directory: directory, aliases: aliases, log: log}
}

// Resolve runs the ordered fallback chain, first match wins:
//
//  1. normalize the recipient name into a lookup key
//  2. alias-table lookup for a candidate email
//  3. no alias match: treat the raw recipient name as a literal candidate
//     email (some payloads already carry a real address in that field)
//  4. exact email lookup, expanded across interchangeable domain spellings
//  5. case-insensitive broker display-name lookup
//
// Directory errors are logged and treated as "no match at this step" so the
// chain continues rather than aborting ingestion.
func (r *BrokerResolver) Resolve(ctx context.Context, recipientContactName string) (Broker, bool) {
	trimmed := strings.TrimSpace(recipientContactName)
	key := textkit.NormalizeKey(recipientContactName)

	candidateEmail, ok := r.aliases.LookupEmail(key)
	if !ok {
		candidateEmail = trimmed
	}

	if candidateEmail != "" {
		candidates := r.aliases.ExpandEmail(candidateEmail)
		broker, found, err := r.directory.FindByEmails(ctx, candidates)
		if err != nil {
			r.log.Error("broker email lookup failed", "error", err, "candidates", candidates)
		} else if found {
			return broker, true
		}
	}

	if trimmed != "" {
		broker, found, err := r.directory.FindByName(ctx, trimmed)
		if err != nil {
			r.log.Error("broker name lookup failed", "error", err, "name", trimmed)
		} else if found {
			return broker, true
		}
	}

	r.log.Warn("broker not resolved", "recipient", trimmed, "candidateEmail", candidateEmail)
	return Broker{}, false
}
