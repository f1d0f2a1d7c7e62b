// Package repository provides PostgreSQL persistence for the broker directory.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"moana_backoffice/platform/apperr"
)

const brokerNotFoundMessage = "broker not found"

// Broker is a sales agent row from the directory.
type Broker struct {
	ID         uuid.UUID `json:"id"`
	BrokerName string    `json:"brokerName"`
	Email      string    `json:"email"`
	Active     bool      `json:"active"`
	CreatedAt  string    `json:"createdAt"`
	UpdatedAt  string    `json:"updatedAt"`
}

// Repository is the broker directory persistence interface.
type Repository interface {
	List(ctx context.Context) ([]Broker, error)
	GetByID(ctx context.Context, id uuid.UUID) (Broker, error)
	FindByEmails(ctx context.Context, emails []string) (Broker, bool, error)
	FindByName(ctx context.Context, name string) (Broker, bool, error)
}

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new broker repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// List retrieves all active brokers ordered by name.
func (r *Repo) List(ctx context.Context) ([]Broker, error) {
	query := `
		SELECT id, broker_name, email, active, created_at, updated_at
		FROM brokers
		WHERE active = true
		ORDER BY broker_name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list brokers: %w", err)
	}
	defer rows.Close()

	return scanBrokers(rows)
}

// GetByID retrieves a broker by its ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Broker, error) {
	query := `
		SELECT id, broker_name, email, active, created_at, updated_at
		FROM brokers
		WHERE id = $1`

	b, err := scanBroker(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Broker{}, apperr.NotFound(brokerNotFoundMessage)
		}
		return Broker{}, fmt.Errorf("get broker by id: %w", err)
	}

	return b, nil
}

// FindByEmails retrieves the broker matching any of the candidate emails,
// case-insensitively. The three-value return distinguishes "no match" from
// a query failure.
func (r *Repo) FindByEmails(ctx context.Context, emails []string) (Broker, bool, error) {
	if len(emails) == 0 {
		return Broker{}, false, nil
	}

	query := `
		SELECT id, broker_name, email, active, created_at, updated_at
		FROM brokers
		WHERE active = true AND LOWER(email) = ANY($1)
		LIMIT 1`

	lowered := make([]string, len(emails))
	for i, e := range emails {
		lowered[i] = strings.ToLower(e)
	}

	b, err := scanBroker(r.pool.QueryRow(ctx, query, lowered))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Broker{}, false, nil
		}
		return Broker{}, false, fmt.Errorf("find broker by emails: %w", err)
	}

	return b, true, nil
}

// FindByName retrieves a broker by display name, case-insensitively.
func (r *Repo) FindByName(ctx context.Context, name string) (Broker, bool, error) {
	query := `
		SELECT id, broker_name, email, active, created_at, updated_at
		FROM brokers
		WHERE active = true AND LOWER(broker_name) = LOWER($1)
		LIMIT 1`

	b, err := scanBroker(r.pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Broker{}, false, nil
		}
		return Broker{}, false, fmt.Errorf("find broker by name: %w", err)
	}

	return b, true, nil
}

func scanBroker(row pgx.Row) (Broker, error) {
	var b Broker
	var createdAt, updatedAt time.Time

	err := row.Scan(&b.ID, &b.BrokerName, &b.Email, &b.Active, &createdAt, &updatedAt)
	if err != nil {
		return Broker{}, err
	}

	b.CreatedAt = createdAt.Format(time.RFC3339)
	b.UpdatedAt = updatedAt.Format(time.RFC3339)

	return b, nil
}

func scanBrokers(rows pgx.Rows) ([]Broker, error) {
	var results []Broker

	for rows.Next() {
		var b Broker
		var createdAt, updatedAt time.Time

		err := rows.Scan(&b.ID, &b.BrokerName, &b.Email, &b.Active, &createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan broker: %w", err)
		}

		b.CreatedAt = createdAt.Format(time.RFC3339)
		b.UpdatedAt = updatedAt.Format(time.RFC3339)

		results = append(results, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate brokers: %w", err)
	}

	return results, nil
}
