package invoices

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const invoiceColumns = `id, owner_id, client_id, invoice_number, description, currency, amount_cents,
	issue_date, due_date, paid_date, status, last_followup_at, last_followup_stage,
	created_at, updated_at`

// Repository persists invoices in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List reads the owner's invoices due-date ascending, optionally narrowed
// by status and client.
func (r *Repository) List(ctx context.Context, ownerID string, f ListFilter) ([]Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE owner_id = $1`
	args := []any{ownerID}

	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.ClientID != "" {
		args = append(args, f.ClientID)
		query += fmt.Sprintf(" AND client_id = $%d", len(args))
	}
	query += " ORDER BY due_date ASC, id ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

// Create inserts a new invoice row.
func (r *Repository) Create(ctx context.Context, inv Invoice) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO invoices (`+invoiceColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		inv.ID, inv.OwnerID, inv.ClientID, inv.InvoiceNumber, inv.Description,
		inv.Currency, inv.AmountCents, inv.IssueDate, inv.DueDate, inv.PaidDate,
		string(inv.Status), inv.LastFollowupAt, inv.LastFollowupStage,
		inv.CreatedAt, inv.UpdatedAt,
	)
	return err
}

// Update applies the named fields and returns the fresh row.
func (r *Repository) Update(ctx context.Context, ownerID, id string, p Patch) (*Invoice, error) {
	sets := []string{}
	args := []any{ownerID, id}

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if p.Status != nil {
		add("status", string(*p.Status))
	}
	if p.PaidDate != nil {
		add("paid_date", *p.PaidDate)
	}
	if p.DueDate != nil {
		add("due_date", *p.DueDate)
	}
	if p.LastFollowupAt != nil {
		add("last_followup_at", *p.LastFollowupAt)
	}
	if p.LastFollowupStage != nil {
		add("last_followup_stage", *p.LastFollowupStage)
	}
	sets = append(sets, "updated_at = now()")

	query := `UPDATE invoices SET ` + strings.Join(sets, ", ") +
		` WHERE owner_id = $1 AND id = $2 RETURNING ` + invoiceColumns

	inv, err := scanInvoice(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func scanInvoice(src pgx.Row) (Invoice, error) {
	var inv Invoice
	var clientID, invoiceNumber, description, lastStage pgtype.Text
	var issueDate, dueDate, paidDate pgtype.Date
	var lastFollowupAt pgtype.Timestamptz

	if err := src.Scan(
		&inv.ID, &inv.OwnerID, &clientID, &invoiceNumber, &description,
		&inv.Currency, &inv.AmountCents, &issueDate, &dueDate, &paidDate,
		&inv.Status, &lastFollowupAt, &lastStage,
		&inv.CreatedAt, &inv.UpdatedAt,
	); err != nil {
		return Invoice{}, err
	}

	if clientID.Valid {
		inv.ClientID = &clientID.String
	}
	if invoiceNumber.Valid {
		inv.InvoiceNumber = &invoiceNumber.String
	}
	if description.Valid {
		inv.Description = &description.String
	}
	if lastStage.Valid {
		inv.LastFollowupStage = &lastStage.String
	}
	if issueDate.Valid {
		s := issueDate.Time.Format(dateLayout)
		inv.IssueDate = &s
	}
	if dueDate.Valid {
		inv.DueDate = dueDate.Time.Format(dateLayout)
	}
	if paidDate.Valid {
		s := paidDate.Time.Format(dateLayout)
		inv.PaidDate = &s
	}
	if lastFollowupAt.Valid {
		t := lastFollowupAt.Time
		inv.LastFollowupAt = &t
	}
	return inv, nil
}
