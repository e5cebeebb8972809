package calls

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxPool is the subset of *pgxpool.Pool used by PostgresRepo.
// pgxmock pools satisfy it in tests.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PostgresRepo stores calls in the "calls" table and reads contacts from "Leads".
// It assumes ApplySchema has run.
type PostgresRepo struct {
	db PgxPool
}

func NewPostgresRepo(db PgxPool) *PostgresRepo { return &PostgresRepo{db: db} }

const qCallExists = `SELECT EXISTS (SELECT 1 FROM calls WHERE id = $1)`

func (r *PostgresRepo) Exists(ctx context.Context, id string) (bool, error) {
	var ok bool
	if err := r.db.QueryRow(ctx, qCallExists, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("calls: exists %s: %w", id, err)
	}
	return ok, nil
}

const qInsertCall = `
INSERT INTO calls (
  id, caller_name, phone, call_start, call_end, duration, transcript, summary,
  success_flag, cost, client_status, property_interest, lead_quality,
  follow_up_date, agent_notes, ultravox_call_id
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16
)
ON CONFLICT (id) DO NOTHING
`

// Insert returns false when a row with the same id already exists.
func (r *PostgresRepo) Insert(ctx context.Context, rec CallRecord) (bool, error) {
	if rec.ID == "" {
		return false, ErrInvalidRecord
	}
	providerID := rec.ProviderCallID
	if providerID == "" {
		providerID = rec.ID
	}
	tag, err := r.db.Exec(ctx, qInsertCall,
		rec.ID,
		rec.CallerName,
		rec.Phone,
		rec.CallStart.UTC(),
		rec.CallEnd.UTC(),
		rec.Duration,
		rec.Transcript,
		rec.Summary,
		rec.SuccessFlag,
		rec.Cost,
		string(rec.ClientStatus),
		rec.PropertyInterest,
		string(rec.LeadQuality),
		rec.FollowUpDate,
		rec.AgentNotes,
		providerID,
	)
	if err != nil {
		// a concurrent insert won the race
		if IsUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("calls: insert %s: %w", rec.ID, err)
	}
	return tag.RowsAffected() == 1, nil
}

const qListCalls = `
SELECT id, COALESCE(caller_name, ''), COALESCE(phone, ''), call_start, call_end, duration,
       COALESCE(transcript, ''), COALESCE(summary, ''), success_flag, cost::float8,
       COALESCE(client_status, ''), COALESCE(property_interest, ''), COALESCE(lead_quality, ''),
       follow_up_date, COALESCE(agent_notes, ''), COALESCE(ultravox_call_id, '')
FROM calls
ORDER BY call_start DESC
`

func (r *PostgresRepo) ListAll(ctx context.Context) ([]CallRecord, error) {
	rows, err := r.db.Query(ctx, qListCalls)
	if err != nil {
		return nil, fmt.Errorf("calls: list: %w", err)
	}
	defer rows.Close()

	out := make([]CallRecord, 0)
	for rows.Next() {
		var (
			c            CallRecord
			status       string
			quality      string
			success      *bool
			followUpDate *time.Time
		)
		if err := rows.Scan(
			&c.ID,
			&c.CallerName,
			&c.Phone,
			&c.CallStart,
			&c.CallEnd,
			&c.Duration,
			&c.Transcript,
			&c.Summary,
			&success,
			&c.Cost,
			&status,
			&c.PropertyInterest,
			&quality,
			&followUpDate,
			&c.AgentNotes,
			&c.ProviderCallID,
		); err != nil {
			return nil, fmt.Errorf("calls: scan: %w", err)
		}
		c.SuccessFlag = success
		c.FollowUpDate = followUpDate
		c.ClientStatus = ClientStatus(status)
		c.LeadQuality = LeadQuality(quality)
		out = append(out, withReadDefaults(c))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("calls: rows: %w", err)
	}
	return out, nil
}

const qListLeads = `SELECT "Owner Name", "Mobile No"::bigint FROM "Leads" ORDER BY "Owner Name" ASC`

func (r *PostgresRepo) ListLeads(ctx context.Context) ([]Lead, error) {
	rows, err := r.db.Query(ctx, qListLeads)
	if err != nil {
		return nil, fmt.Errorf("calls: list leads: %w", err)
	}
	defer rows.Close()

	out := make([]Lead, 0)
	for rows.Next() {
		var l Lead
		if err := rows.Scan(&l.OwnerName, &l.MobileNo); err != nil {
			return nil, fmt.Errorf("calls: scan lead: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("calls: lead rows: %w", err)
	}
	return out, nil
}

const qInsertLead = `INSERT INTO "Leads" ("Owner Name", "Mobile No") VALUES ($1, $2)`

func (r *PostgresRepo) AddLead(ctx context.Context, l Lead) error {
	if _, err := r.db.Exec(ctx, qInsertLead, l.OwnerName, l.MobileNo); err != nil {
		return fmt.Errorf("calls: insert lead: %w", err)
	}
	return nil
}

// withReadDefaults fills the values older rows may lack.
func withReadDefaults(c CallRecord) CallRecord {
	if c.CallerName == "" {
		c.CallerName = DefaultCallerName
	}
	if c.ClientStatus == "" {
		c.ClientStatus = ClientStatusUnknown
	}
	if c.LeadQuality == "" {
		c.LeadQuality = LeadQualityCold
	}
	if c.ProviderCallID == "" {
		c.ProviderCallID = c.ID
	}
	if c.Duration < 0 {
		c.Duration = 0
	}
	if c.Cost < 0 {
		c.Cost = 0
	}
	return c
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
