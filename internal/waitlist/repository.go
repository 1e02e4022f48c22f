package waitlist

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists signups in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a signup. A unique violation on email maps to
// ErrDuplicate.
func (r *Repository) Create(ctx context.Context, s Signup) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO waitlist_signups (id, email, source, created_at)
		 VALUES ($1, $2, $3, $4)`,
		s.ID, s.Email, s.Source, s.CreatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}

// Count returns the signup total.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM waitlist_signups`).Scan(&count)
	return count, err
}
