package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ar-copilot/ar-copilot/internal/shared"
)

// ErrNotFound indicates no subscription row for the owner.
var ErrNotFound = errors.New("billing: subscription not found")

// Subscription is the stored billing state for an owner.
type Subscription struct {
	OwnerID        string     `json:"owner_id"`
	CustomerID     *string    `json:"customer_id,omitempty"`
	SubscriptionID *string    `json:"subscription_id,omitempty"`
	Plan           Plan       `json:"plan"`
	Status         PlanStatus `json:"plan_status"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// RepositoryPort defines subscription persistence.
type RepositoryPort interface {
	GetSubscription(ctx context.Context, ownerID string) (*Subscription, error)
	UpsertSubscription(ctx context.Context, sub Subscription) error
}

// Service resolves subscriptions and applies provider-side changes.
type Service struct {
	repo   RepositoryPort
	prices PriceIDs
}

// NewService builds a Service.
func NewService(repo RepositoryPort, prices PriceIDs) *Service {
	return &Service{repo: repo, prices: prices}
}

// GetSubscription returns the owner's subscription, defaulting to an active
// free plan when none is stored.
func (s *Service) GetSubscription(ctx context.Context, scope shared.Scope) (Subscription, error) {
	sub, err := s.repo.GetSubscription(ctx, scope.OwnerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Subscription{OwnerID: scope.OwnerID, Plan: PlanFree, Status: StatusActive}, nil
		}
		return Subscription{}, fmt.Errorf("get subscription: %w", err)
	}
	return *sub, nil
}

// ApplySubscriptionInput carries provider-side subscription state.
type ApplySubscriptionInput struct {
	OwnerID        string
	CustomerID     string
	SubscriptionID string
	PriceID        string
	ProviderStatus string
}

// ApplySubscription maps provider state onto a plan and persists it. This is
// the write path a billing webhook feeds.
func (s *Service) ApplySubscription(ctx context.Context, input ApplySubscriptionInput) (Subscription, error) {
	if input.OwnerID == "" {
		return Subscription{}, errors.New("billing: owner required")
	}
	sub := Subscription{
		OwnerID: input.OwnerID,
		Plan:    s.prices.PlanForPriceID(input.PriceID),
		Status:  NormalizePlanStatus(input.ProviderStatus),
	}
	if input.CustomerID != "" {
		sub.CustomerID = &input.CustomerID
	}
	if input.SubscriptionID != "" {
		sub.SubscriptionID = &input.SubscriptionID
	}
	if err := s.repo.UpsertSubscription(ctx, sub); err != nil {
		return Subscription{}, fmt.Errorf("upsert subscription: %w", err)
	}
	return sub, nil
}
