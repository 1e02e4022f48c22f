package followups

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ar-copilot/ar-copilot/internal/chase"
	"github.com/ar-copilot/ar-copilot/internal/platform/db"
)

// Repository persists follow-up events in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Record writes the event and stamps the invoice in one transaction. The
// invoice update runs first so a missing or foreign invoice aborts before
// the insert.
func (r *Repository) Record(ctx context.Context, ev Event) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE invoices
			 SET last_followup_at = $1, last_followup_stage = $2
			 WHERE id = $3 AND owner_id = $4`,
			ev.SentAt, stageText(ev.Stage), ev.InvoiceID, ev.OwnerID,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrInvoiceNotFound
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO followup_events (id, owner_id, invoice_id, stage, channel, subject, body, notes, sent_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			ev.ID, ev.OwnerID, ev.InvoiceID, stageText(ev.Stage), string(ev.Channel),
			ev.Subject, ev.Body, ev.Notes, ev.SentAt,
		)
		return err
	})
}

func stageText(s *chase.Stage) *string {
	if s == nil {
		return nil
	}
	text := string(*s)
	return &text
}

// ListByInvoice returns the invoice's events newest first.
func (r *Repository) ListByInvoice(ctx context.Context, ownerID, invoiceID string) ([]Event, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, owner_id, invoice_id, stage, channel, subject, body, notes, sent_at
		 FROM followup_events
		 WHERE owner_id = $1 AND invoice_id = $2
		 ORDER BY sent_at DESC, id DESC`,
		ownerID, invoiceID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var ev Event
		var stage, subject, body, notes pgtype.Text
		if err := rows.Scan(
			&ev.ID, &ev.OwnerID, &ev.InvoiceID, &stage, &ev.Channel,
			&subject, &body, &notes, &ev.SentAt,
		); err != nil {
			return nil, err
		}
		if stage.Valid {
			st := chase.Stage(stage.String)
			ev.Stage = &st
		}
		if subject.Valid {
			ev.Subject = &subject.String
		}
		if body.Valid {
			ev.Body = &body.String
		}
		if notes.Valid {
			ev.Notes = &notes.String
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
