package settings

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const settingsColumns = `client_id, owner_id, tone, include_payment_methods, include_late_fee,
	late_fee_text, payment_link, signature_name, signature_company, signature_phone,
	signature_email, updated_at`

// Repository persists client settings in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Get reads the stored settings for one client.
func (r *Repository) Get(ctx context.Context, ownerID, clientID string) (*Settings, error) {
	s, err := scanSettings(r.pool.QueryRow(ctx,
		`SELECT `+settingsColumns+` FROM client_settings WHERE owner_id = $1 AND client_id = $2`,
		ownerID, clientID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Upsert writes the full merged row, keyed by client.
func (r *Repository) Upsert(ctx context.Context, s Settings) (Settings, error) {
	out, err := scanSettings(r.pool.QueryRow(ctx,
		`INSERT INTO client_settings (`+settingsColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 ON CONFLICT (client_id) DO UPDATE SET
			owner_id = EXCLUDED.owner_id,
			tone = EXCLUDED.tone,
			include_payment_methods = EXCLUDED.include_payment_methods,
			include_late_fee = EXCLUDED.include_late_fee,
			late_fee_text = EXCLUDED.late_fee_text,
			payment_link = EXCLUDED.payment_link,
			signature_name = EXCLUDED.signature_name,
			signature_company = EXCLUDED.signature_company,
			signature_phone = EXCLUDED.signature_phone,
			signature_email = EXCLUDED.signature_email,
			updated_at = EXCLUDED.updated_at
		 RETURNING `+settingsColumns,
		s.ClientID, s.OwnerID, s.Tone, s.IncludePaymentMethods, s.IncludeLateFee,
		s.LateFeeText, s.PaymentLink, s.SignatureName, s.SignatureCompany,
		s.SignaturePhone, s.SignatureEmail, s.UpdatedAt,
	))
	if err != nil {
		return Settings{}, err
	}
	return out, nil
}

// OwnsClient reports whether the client exists within the owner's scope.
func (r *Repository) OwnsClient(ctx context.Context, ownerID, clientID string) (bool, error) {
	var one int
	err := r.pool.QueryRow(ctx,
		`SELECT 1 FROM clients WHERE owner_id = $1 AND id = $2`,
		ownerID, clientID,
	).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func scanSettings(src pgx.Row) (Settings, error) {
	var s Settings
	var lateFeeText, paymentLink, sigName, sigCompany, sigPhone, sigEmail pgtype.Text
	var updatedAt pgtype.Timestamptz

	if err := src.Scan(
		&s.ClientID, &s.OwnerID, &s.Tone, &s.IncludePaymentMethods, &s.IncludeLateFee,
		&lateFeeText, &paymentLink, &sigName, &sigCompany, &sigPhone,
		&sigEmail, &updatedAt,
	); err != nil {
		return Settings{}, err
	}

	if lateFeeText.Valid {
		s.LateFeeText = &lateFeeText.String
	}
	if paymentLink.Valid {
		s.PaymentLink = &paymentLink.String
	}
	if sigName.Valid {
		s.SignatureName = &sigName.String
	}
	if sigCompany.Valid {
		s.SignatureCompany = &sigCompany.String
	}
	if sigPhone.Valid {
		s.SignaturePhone = &sigPhone.String
	}
	if sigEmail.Valid {
		s.SignatureEmail = &sigEmail.String
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		s.UpdatedAt = &t
	}
	return s, nil
}
