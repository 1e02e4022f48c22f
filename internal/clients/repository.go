package clients

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const clientColumns = `id, owner_id, name, primary_contact_name, primary_contact_email,
	company_domain, notes, created_at, updated_at`

// Repository persists clients in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List reads the owner's clients newest first.
func (r *Repository) List(ctx context.Context, ownerID string) ([]Client, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE owner_id = $1 ORDER BY created_at DESC, id DESC`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Create inserts a new client row.
func (r *Repository) Create(ctx context.Context, c Client) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO clients (`+clientColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.OwnerID, c.Name, c.PrimaryContactName, c.PrimaryContactEmail,
		c.CompanyDomain, c.Notes, c.CreatedAt, c.UpdatedAt,
	)
	return err
}

// FindByName matches one client case-insensitively by display name.
func (r *Repository) FindByName(ctx context.Context, ownerID, name string) (*Client, error) {
	c, err := scanClient(r.pool.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM clients
		 WHERE owner_id = $1 AND lower(name) = lower($2)
		 ORDER BY created_at ASC LIMIT 1`,
		ownerID, name,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete removes the client. The invoices FK is ON DELETE SET NULL, so
// receivables survive with a detached client reference.
func (r *Repository) Delete(ctx context.Context, ownerID, id string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM clients WHERE owner_id = $1 AND id = $2`,
		ownerID, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanClient(src pgx.Row) (Client, error) {
	var c Client
	var contactName, contactEmail, domain, notes pgtype.Text

	if err := src.Scan(
		&c.ID, &c.OwnerID, &c.Name, &contactName, &contactEmail,
		&domain, &notes, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return Client{}, err
	}

	if contactName.Valid {
		c.PrimaryContactName = &contactName.String
	}
	if contactEmail.Valid {
		c.PrimaryContactEmail = &contactEmail.String
	}
	if domain.Valid {
		c.CompanyDomain = &domain.String
	}
	if notes.Valid {
		c.Notes = &notes.String
	}
	return c, nil
}
