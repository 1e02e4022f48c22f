package billing

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed subscription persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetSubscription reads the subscription row for an owner.
func (r *Repository) GetSubscription(ctx context.Context, ownerID string) (*Subscription, error) {
	const query = `
		SELECT owner_id, customer_id, subscription_id, plan, plan_status, updated_at
		FROM subscriptions
		WHERE owner_id = $1`

	var sub Subscription
	var customerID, subscriptionID pgtype.Text
	err := r.pool.QueryRow(ctx, query, ownerID).Scan(
		&sub.OwnerID, &customerID, &subscriptionID, &sub.Plan, &sub.Status, &sub.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if customerID.Valid {
		sub.CustomerID = &customerID.String
	}
	if subscriptionID.Valid {
		sub.SubscriptionID = &subscriptionID.String
	}
	return &sub, nil
}

// UpsertSubscription writes the subscription row for an owner.
func (r *Repository) UpsertSubscription(ctx context.Context, sub Subscription) error {
	const query = `
		INSERT INTO subscriptions (owner_id, customer_id, subscription_id, plan, plan_status, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (owner_id) DO UPDATE SET
			customer_id = EXCLUDED.customer_id,
			subscription_id = EXCLUDED.subscription_id,
			plan = EXCLUDED.plan,
			plan_status = EXCLUDED.plan_status,
			updated_at = now()`

	_, err := r.pool.Exec(ctx, query,
		sub.OwnerID,
		textOrNull(sub.CustomerID),
		textOrNull(sub.SubscriptionID),
		sub.Plan,
		sub.Status,
	)
	return err
}

func textOrNull(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}
