package templates

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ar-copilot/ar-copilot/internal/chase"
)

// ErrNotFound indicates no template exists for a (stage, tone) pair. The
// miss is surfaced to callers; there is no fallback to another tone or
// stage.
var ErrNotFound = errors.New("templates: not found")

// Repository provides PostgreSQL backed template reads.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns system templates plus the owner's, optionally filtered by
// stage and tone.
func (r *Repository) List(ctx context.Context, ownerID string, stage, tone string) ([]Template, error) {
	query := `
		SELECT id, owner_id, stage, tone, subject, body, is_system, created_at
		FROM templates
		WHERE (is_system = true OR owner_id = $1)`
	args := []any{ownerID}

	if stage != "" {
		args = append(args, stage)
		query += ` AND stage = $2`
	}
	if tone != "" {
		args = append(args, tone)
		if stage != "" {
			query += ` AND tone = $3`
		} else {
			query += ` AND tone = $2`
		}
	}
	query += ` ORDER BY stage, tone, is_system`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Template
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tpl)
	}
	return out, rows.Err()
}

// FindByStageTone returns the template for the exact (stage, tone) pair.
// A user-authored template shadows the system one; otherwise the oldest row
// wins so the result is deterministic.
func (r *Repository) FindByStageTone(ctx context.Context, ownerID string, stage chase.Stage, tone string) (*Template, error) {
	const query = `
		SELECT id, owner_id, stage, tone, subject, body, is_system, created_at
		FROM templates
		WHERE (is_system = true OR owner_id = $1) AND stage = $2 AND tone = $3
		ORDER BY is_system, created_at
		LIMIT 1`

	row := r.pool.QueryRow(ctx, query, ownerID, stage, tone)
	tpl, err := scanTemplate(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

func scanTemplate(row pgx.Row) (Template, error) {
	var tpl Template
	var ownerID pgtype.Text
	err := row.Scan(&tpl.ID, &ownerID, &tpl.Stage, &tpl.Tone, &tpl.Subject, &tpl.Body, &tpl.IsSystem, &tpl.CreatedAt)
	if err != nil {
		return Template{}, err
	}
	if ownerID.Valid {
		tpl.OwnerID = &ownerID.String
	}
	return tpl, nil
}
