package chase

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the invoice does not exist in the caller's scope.
var ErrNotFound = errors.New("chase: invoice not found")

// Repository provides the PostgreSQL reads behind the builder.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CountOpenInvoices counts the owner's open invoices for the limit gate.
func (r *Repository) CountOpenInvoices(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM invoices WHERE owner_id = $1 AND status = 'open'`,
		ownerID,
	).Scan(&count)
	return count, err
}

// ListOpenInvoices reads the owner's open invoices joined with client and
// settings context in one pass. Clients and settings are LEFT JOINed: an
// invoice without a client still chases.
func (r *Repository) ListOpenInvoices(ctx context.Context, ownerID string) ([]OpenInvoiceRow, error) {
	const query = `
		SELECT
			i.id, i.client_id, i.invoice_number, i.amount_cents, i.currency,
			i.due_date, i.last_followup_at, i.last_followup_stage,
			c.name, c.primary_contact_name, c.primary_contact_email,
			cs.tone, cs.payment_link,
			cs.signature_name, cs.signature_company, cs.signature_phone, cs.signature_email,
			COALESCE(cs.include_late_fee, false), cs.late_fee_text
		FROM invoices i
		LEFT JOIN clients c ON c.id = i.client_id AND c.owner_id = $1
		LEFT JOIN client_settings cs ON cs.client_id = c.id AND cs.owner_id = $1
		WHERE i.status = 'open' AND i.owner_id = $1
		ORDER BY i.due_date, i.id`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OpenInvoiceRow
	for rows.Next() {
		row, err := scanInvoiceContext(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// GetInvoiceContext reads one invoice with its joined context regardless of
// status, for rendering previews.
func (r *Repository) GetInvoiceContext(ctx context.Context, ownerID, invoiceID string) (*OpenInvoiceRow, error) {
	const query = `
		SELECT
			i.id, i.client_id, i.invoice_number, i.amount_cents, i.currency,
			i.due_date, i.last_followup_at, i.last_followup_stage,
			c.name, c.primary_contact_name, c.primary_contact_email,
			cs.tone, cs.payment_link,
			cs.signature_name, cs.signature_company, cs.signature_phone, cs.signature_email,
			COALESCE(cs.include_late_fee, false), cs.late_fee_text
		FROM invoices i
		LEFT JOIN clients c ON c.id = i.client_id AND c.owner_id = $1
		LEFT JOIN client_settings cs ON cs.client_id = c.id AND cs.owner_id = $1
		WHERE i.id = $2 AND i.owner_id = $1`

	row, err := scanInvoiceContext(r.pool.QueryRow(ctx, query, ownerID, invoiceID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func scanInvoiceContext(src pgx.Row) (OpenInvoiceRow, error) {
	var row OpenInvoiceRow
	var clientID, invoiceNumber, lastStage pgtype.Text
	var clientName, contactName, contactEmail pgtype.Text
	var tone, paymentLink, sigName, sigCompany, sigPhone, sigEmail, lateFeeText pgtype.Text
	var lastFollowupAt pgtype.Timestamptz

	if err := src.Scan(
		&row.InvoiceID, &clientID, &invoiceNumber, &row.AmountCents, &row.Currency,
		&row.DueDate, &lastFollowupAt, &lastStage,
		&clientName, &contactName, &contactEmail,
		&tone, &paymentLink,
		&sigName, &sigCompany, &sigPhone, &sigEmail,
		&row.IncludeLateFee, &lateFeeText,
	); err != nil {
		return OpenInvoiceRow{}, err
	}

	row.ClientID = textPtr(clientID)
	row.InvoiceNumber = textPtr(invoiceNumber)
	row.LastFollowupStage = textPtr(lastStage)
	row.ClientName = textPtr(clientName)
	row.ContactName = textPtr(contactName)
	row.ContactEmail = textPtr(contactEmail)
	row.Tone = textPtr(tone)
	row.PaymentLink = textPtr(paymentLink)
	row.SignatureName = textPtr(sigName)
	row.SignatureCompany = textPtr(sigCompany)
	row.SignaturePhone = textPtr(sigPhone)
	row.SignatureEmail = textPtr(sigEmail)
	row.LateFeeText = textPtr(lateFeeText)
	if lastFollowupAt.Valid {
		row.LastFollowupAt = &lastFollowupAt.Time
	}
	return row, nil
}

func textPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	return &t.String
}
