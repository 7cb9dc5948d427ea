package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MikeSquared-Agency/Advisory/internal/scoring"
)

const schema = `CREATE TABLE IF NOT EXISTS advisory_tenders (
	tender_id             UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	code                  TEXT NOT NULL DEFAULT '',
	title                 TEXT NOT NULL DEFAULT '',
	budget                DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (budget >= 0),
	deadline              TIMESTAMPTZ NOT NULL,
	duration_months       INTEGER NOT NULL DEFAULT 0 CHECK (duration_months >= 0),
	required_technologies TEXT[] NOT NULL DEFAULT '{}',
	risk_summary          TEXT NOT NULL DEFAULT '',
	similar_tenders       JSONB,
	status                TEXT NOT NULL DEFAULT 'open',
	go_no_go_score        INTEGER,
	decision              TEXT,
	criteria              JSONB,
	evaluated_at          TIMESTAMPTZ,
	created_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at            TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS advisory_tenders_status_deadline ON advisory_tenders (status, deadline);`

type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to databaseURL and makes sure the tender table exists.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const tenderColumns = `tender_id, code, title, budget, deadline, duration_months,
	required_technologies, risk_summary, similar_tenders,
	status, go_no_go_score, decision, criteria, evaluated_at,
	created_at, updated_at`

func (s *PostgresStore) CreateTender(ctx context.Context, t *Tender) error {
	if t.Status == "" {
		t.Status = StatusOpen
	}
	similarJSON, criteriaJSON := marshalJSONB(t)

	return s.pool.QueryRow(ctx, `
		INSERT INTO advisory_tenders (code, title, budget, deadline, duration_months,
			required_technologies, risk_summary, similar_tenders,
			status, go_no_go_score, decision, criteria, evaluated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING tender_id, created_at, updated_at`,
		t.Code, t.Title, t.Budget, t.Deadline, t.DurationMonths,
		nonNil(t.RequiredTechnologies), t.RiskSummary, similarJSON,
		t.Status, t.GoNoGoScore, nullDecision(t.Decision), criteriaJSON, t.EvaluatedAt,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (s *PostgresStore) GetTender(ctx context.Context, id uuid.UUID) (*Tender, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+tenderColumns+`
		FROM advisory_tenders WHERE tender_id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tenders, err := scanTenders(rows)
	if err != nil {
		return nil, err
	}
	if len(tenders) == 0 {
		return nil, nil
	}
	return tenders[0], nil
}

func (s *PostgresStore) ListTenders(ctx context.Context, filter TenderFilter) ([]*Tender, error) {
	query := `SELECT ` + tenderColumns + ` FROM advisory_tenders WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.Status != nil {
		n++
		query += fmt.Sprintf(" AND status = $%d", n)
		args = append(args, string(*filter.Status))
	}

	query += " ORDER BY created_at DESC, tender_id ASC"

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	n++
	query += fmt.Sprintf(" LIMIT $%d", n)
	args = append(args, limit)

	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTenders(rows)
}

func (s *PostgresStore) GetOpenTenders(ctx context.Context) ([]*Tender, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+tenderColumns+`
		FROM advisory_tenders WHERE status <> 'closed'
		ORDER BY deadline ASC, tender_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTenders(rows)
}

func (s *PostgresStore) UpdateTender(ctx context.Context, t *Tender) error {
	similarJSON, criteriaJSON := marshalJSONB(t)

	tag, err := s.pool.Exec(ctx, `
		UPDATE advisory_tenders SET
			code = $2, title = $3, budget = $4, deadline = $5, duration_months = $6,
			required_technologies = $7, risk_summary = $8, similar_tenders = $9,
			status = $10, go_no_go_score = $11, decision = $12, criteria = $13,
			evaluated_at = $14, updated_at = now()
		WHERE tender_id = $1 AND status <> 'closed'`,
		t.ID, t.Code, t.Title, t.Budget, t.Deadline, t.DurationMonths,
		nonNil(t.RequiredTechnologies), t.RiskSummary, similarJSON,
		t.Status, t.GoNoGoScore, nullDecision(t.Decision), criteriaJSON,
		t.EvaluatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var status TenderStatus
	err = s.pool.QueryRow(ctx, `SELECT status FROM advisory_tenders WHERE tender_id = $1`, t.ID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("tender %s not found", t.ID)
	}
	if err != nil {
		return err
	}
	return fmt.Errorf("tender %s: %w", t.ID, ErrTenderClosed)
}

func scanTenders(rows pgx.Rows) ([]*Tender, error) {
	var tenders []*Tender
	for rows.Next() {
		t := &Tender{}
		var similarJSON, criteriaJSON []byte
		var decision sql.NullString
		if err := rows.Scan(
			&t.ID, &t.Code, &t.Title, &t.Budget, &t.Deadline, &t.DurationMonths,
			&t.RequiredTechnologies, &t.RiskSummary, &similarJSON,
			&t.Status, &t.GoNoGoScore, &decision, &criteriaJSON, &t.EvaluatedAt,
			&t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if decision.Valid {
			t.Decision = scoring.Label(decision.String)
		}
		if similarJSON != nil {
			_ = json.Unmarshal(similarJSON, &t.SimilarTenders)
		}
		if criteriaJSON != nil {
			_ = json.Unmarshal(criteriaJSON, &t.Criteria)
		}
		tenders = append(tenders, t)
	}
	if err := rows.Err(); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	return tenders, nil
}

func marshalJSONB(t *Tender) (similar, criteria []byte) {
	if len(t.SimilarTenders) > 0 {
		similar, _ = json.Marshal(t.SimilarTenders)
	}
	if len(t.Criteria) > 0 {
		criteria, _ = json.Marshal(t.Criteria)
	}
	return similar, criteria
}

func nullDecision(l scoring.Label) sql.NullString {
	return sql.NullString{String: string(l), Valid: l != ""}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
