// Package repository provides PostgreSQL persistence for leads.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"moana_backoffice/platform/apperr"
)

const leadNotFoundMessage = "lead not found"

// uniqueViolation is the PostgreSQL error code for a unique constraint hit.
const uniqueViolation = "23505"

const leadColumns = `
	l.id, l.yatco_lead_id, l.lead_date, l.source, l.detailed_source, l.detailed_source_summary, l.request_type,
	l.contact_display_name, l.contact_first_name, l.contact_last_name, l.contact_email, l.contact_phone, l.contact_country,
	l.boat_make, l.boat_model, l.boat_year, l.boat_condition, l.boat_length_value, l.boat_length_units,
	l.boat_price_amount, l.boat_price_currency, l.boat_url,
	l.customer_comments, l.lead_comments,
	l.recipient_office_name, l.recipient_office_id, l.recipient_contact_name,
	l.broker_id, b.broker_name, l.status, l.raw_payload, l.processed_at, l.created_at, l.updated_at`

// Repository is the lead persistence interface.
type Repository interface {
	Insert(ctx context.Context, params InsertLeadParams) (uuid.UUID, error)
	FindByYatcoID(ctx context.Context, yatcoLeadID string) (uuid.UUID, bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (Lead, error)
	List(ctx context.Context, params ListParams) ([]Lead, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	AssignBroker(ctx context.Context, id uuid.UUID, brokerID *uuid.UUID) error
	Stats(ctx context.Context) (Stats, error)
}

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new lead repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Insert stores a new lead and returns its id. A unique violation on the
// external lead id maps to a conflict error so the collision shows up as
// such in logs rather than as an opaque pg error.
func (r *Repo) Insert(ctx context.Context, params InsertLeadParams) (uuid.UUID, error) {
	query := `
		INSERT INTO leads (
			yatco_lead_id, lead_date, source, detailed_source, detailed_source_summary, request_type,
			contact_display_name, contact_first_name, contact_last_name, contact_email, contact_phone, contact_country,
			boat_make, boat_model, boat_year, boat_condition, boat_length_value, boat_length_units,
			boat_price_amount, boat_price_currency, boat_url,
			customer_comments, lead_comments,
			recipient_office_name, recipient_office_id, recipient_contact_name,
			broker_id, status, raw_payload, processed_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18,
			$19, $20, $21,
			$22, $23,
			$24, $25, $26,
			$27, $28, $29, $30
		)
		RETURNING id`

	var id uuid.UUID
	err := r.pool.QueryRow(ctx, query,
		params.YatcoLeadID, params.LeadDate, params.Source, params.DetailedSource, params.DetailedSourceSummary, params.RequestType,
		params.ContactDisplayName, params.ContactFirstName, params.ContactLastName, params.ContactEmail, params.ContactPhone, params.ContactCountry,
		params.BoatMake, params.BoatModel, params.BoatYear, params.BoatCondition, params.BoatLengthValue, params.BoatLengthUnits,
		params.BoatPriceAmount, params.BoatPriceCurrency, params.BoatURL,
		params.CustomerComments, params.LeadComments,
		params.RecipientOfficeName, params.RecipientOfficeID, params.RecipientContactName,
		params.BrokerID, params.Status, params.RawPayload, params.ProcessedAt,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return uuid.Nil, apperr.Conflict("lead already exists")
		}
		return uuid.Nil, fmt.Errorf("insert lead: %w", err)
	}

	return id, nil
}

// FindByYatcoID returns the id of the lead carrying the provider's lead
// identifier, if one exists.
func (r *Repo) FindByYatcoID(ctx context.Context, yatcoLeadID string) (uuid.UUID, bool, error) {
	query := `SELECT id FROM leads WHERE yatco_lead_id = $1`

	var id uuid.UUID
	err := r.pool.QueryRow(ctx, query, yatcoLeadID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, fmt.Errorf("find lead by yatco id: %w", err)
	}

	return id, true, nil
}

// GetByID retrieves a lead with its assigned broker's name.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	query := `
		SELECT ` + leadColumns + `
		FROM leads l
		LEFT JOIN brokers b ON b.id = l.broker_id
		WHERE l.id = $1`

	lead, err := scanLead(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return Lead{}, fmt.Errorf("get lead by id: %w", err)
	}

	return lead, nil
}

// List retrieves leads with filters and pagination, newest first.
func (r *Repo) List(ctx context.Context, params ListParams) ([]Lead, int, error) {
	var searchParam interface{}
	if params.Search != "" {
		searchParam = "%" + params.Search + "%"
	}
	var sourceParam interface{}
	if params.Source != "" {
		sourceParam = params.Source
	}
	var statusParam interface{}
	if params.Status != nil {
		statusParam = *params.Status
	}
	var brokerParam interface{}
	if params.BrokerID != nil {
		brokerParam = *params.BrokerID
	}

	where := `
		WHERE ($1::text IS NULL OR l.status = $1)
			AND ($2::uuid IS NULL OR l.broker_id = $2)
			AND ($3::text IS NULL OR l.source ILIKE $3)
			AND ($4::text IS NULL OR l.contact_display_name ILIKE $4
				OR l.contact_email ILIKE $4
				OR l.boat_make ILIKE $4
				OR l.boat_model ILIKE $4
				OR l.yatco_lead_id ILIKE $4)`

	args := []interface{}{statusParam, brokerParam, sourceParam, searchParam}

	countQuery := `SELECT COUNT(*) FROM leads l` + where

	query := `
		SELECT ` + leadColumns + `
		FROM leads l
		LEFT JOIN brokers b ON b.id = l.broker_id` + where + `
		ORDER BY l.lead_date DESC, l.created_at DESC
		LIMIT $5 OFFSET $6`

	// The count and the page are independent reads; run them on separate
	// pool connections.
	g, gctx := errgroup.WithContext(ctx)

	var total int
	g.Go(func() error {
		if err := r.pool.QueryRow(gctx, countQuery, args...).Scan(&total); err != nil {
			return fmt.Errorf("count leads: %w", err)
		}
		return nil
	})

	var leads []Lead
	g.Go(func() error {
		pageArgs := append(append([]interface{}{}, args...), params.Limit, params.Offset)
		rows, err := r.pool.Query(gctx, query, pageArgs...)
		if err != nil {
			return fmt.Errorf("list leads: %w", err)
		}
		defer rows.Close()

		leads, err = scanLeads(rows)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	return leads, total, nil
}

// UpdateStatus sets a lead's triage status.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE leads SET status = $2, updated_at = now() WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update lead status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound(leadNotFoundMessage)
	}

	return nil
}

// AssignBroker sets or clears a lead's broker. Assigning also stamps
// processed_at if the lead was still awaiting triage.
func (r *Repo) AssignBroker(ctx context.Context, id uuid.UUID, brokerID *uuid.UUID) error {
	query := `
		UPDATE leads
		SET broker_id = $2,
			processed_at = CASE WHEN $2::uuid IS NOT NULL AND processed_at IS NULL THEN now() ELSE processed_at END,
			updated_at = now()
		WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, brokerID)
	if err != nil {
		return fmt.Errorf("assign lead broker: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound(leadNotFoundMessage)
	}

	return nil
}

// Stats summarizes the lead inbox.
func (r *Repo) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{ByStatus: make(map[string]int)}

	summaryQuery := `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE broker_id IS NULL),
			COUNT(*) FILTER (WHERE lead_date >= now() - interval '7 days')
		FROM leads`

	err := r.pool.QueryRow(ctx, summaryQuery).Scan(&stats.Total, &stats.Unassigned, &stats.Last7Days)
	if err != nil {
		return Stats{}, fmt.Errorf("lead stats summary: %w", err)
	}

	statusQuery := `SELECT status, COUNT(*) FROM leads GROUP BY status`

	rows, err := r.pool.Query(ctx, statusQuery)
	if err != nil {
		return Stats{}, fmt.Errorf("lead stats by status: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return Stats{}, fmt.Errorf("scan lead stats: %w", err)
		}
		stats.ByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return Stats{}, fmt.Errorf("iterate lead stats: %w", err)
	}

	return stats, nil
}

func scanLead(row pgx.Row) (Lead, error) {
	var l Lead
	err := row.Scan(
		&l.ID, &l.YatcoLeadID, &l.LeadDate, &l.Source, &l.DetailedSource, &l.DetailedSourceSummary, &l.RequestType,
		&l.ContactDisplayName, &l.ContactFirstName, &l.ContactLastName, &l.ContactEmail, &l.ContactPhone, &l.ContactCountry,
		&l.BoatMake, &l.BoatModel, &l.BoatYear, &l.BoatCondition, &l.BoatLengthValue, &l.BoatLengthUnits,
		&l.BoatPriceAmount, &l.BoatPriceCurrency, &l.BoatURL,
		&l.CustomerComments, &l.LeadComments,
		&l.RecipientOfficeName, &l.RecipientOfficeID, &l.RecipientContactName,
		&l.BrokerID, &l.BrokerName, &l.Status, &l.RawPayload, &l.ProcessedAt, &l.CreatedAt, &l.UpdatedAt,
	)
	return l, err
}

func scanLeads(rows pgx.Rows) ([]Lead, error) {
	var results []Lead

	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		results = append(results, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}

	return results, nil
}
