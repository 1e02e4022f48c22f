package invoices

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ar-copilot/ar-copilot/internal/shared"
)

// ErrNotFound indicates the invoice does not exist in the caller's scope.
var ErrNotFound = errors.New("invoices: not found")

// ErrNothingToUpdate indicates a PATCH that named no fields.
var ErrNothingToUpdate = errors.New("invoices: nothing to update")

// Patch names the fields a partial update touches. Nil means keep.
type Patch struct {
	Status            *Status
	PaidDate          *string
	DueDate           *string
	LastFollowupAt    *time.Time
	LastFollowupStage *string
}

// RepositoryPort abstracts invoice persistence.
type RepositoryPort interface {
	List(ctx context.Context, ownerID string, f ListFilter) ([]Invoice, error)
	Create(ctx context.Context, inv Invoice) error
	Update(ctx context.Context, ownerID, id string, p Patch) (*Invoice, error)
}

// Service implements invoice CRUD on top of a repository.
type Service struct {
	repo RepositoryPort
	now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo, now: time.Now}
}

// List returns the owner's invoices ordered by due date ascending.
func (s *Service) List(ctx context.Context, scope shared.Scope, f ListFilter) ([]Invoice, error) {
	if f.Status != "" && !Status(f.Status).Valid() {
		return nil, fmt.Errorf("invoices: unknown status %q", f.Status)
	}
	return s.repo.List(ctx, scope.OwnerID, f)
}

// Create persists a new open invoice. Currency defaults to USD.
func (s *Service) Create(ctx context.Context, scope shared.Scope, in CreateInput) (Invoice, error) {
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = "USD"
	}

	now := s.now().UTC()
	inv := Invoice{
		ID:            uuid.NewString(),
		OwnerID:       scope.OwnerID,
		ClientID:      in.ClientID,
		InvoiceNumber: in.InvoiceNumber,
		Description:   in.Description,
		Currency:      currency,
		AmountCents:   in.AmountCents,
		IssueDate:     in.IssueDate,
		DueDate:       in.DueDate,
		Status:        StatusOpen,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, inv); err != nil {
		return Invoice{}, err
	}
	return inv, nil
}

// Update applies a partial update. A payload that names no fields fails
// with ErrNothingToUpdate before any read.
func (s *Service) Update(ctx context.Context, scope shared.Scope, in UpdateInput) (*Invoice, error) {
	var p Patch

	if in.Status != nil {
		status := Status(*in.Status)
		p.Status = &status
	}
	p.PaidDate = in.PaidDate
	p.DueDate = in.DueDate
	p.LastFollowupStage = in.LastFollowupStage
	if in.LastFollowupAt != nil {
		at, err := time.Parse(time.RFC3339, *in.LastFollowupAt)
		if err != nil {
			return nil, fmt.Errorf("invoices: bad last_followup_at: %w", err)
		}
		utc := at.UTC()
		p.LastFollowupAt = &utc
	}

	if p.Status == nil && p.PaidDate == nil && p.DueDate == nil &&
		p.LastFollowupAt == nil && p.LastFollowupStage == nil {
		return nil, ErrNothingToUpdate
	}

	return s.repo.Update(ctx, scope.OwnerID, in.ID, p)
}
