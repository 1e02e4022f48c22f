package templates

import (
	"context"
	"time"

	"github.com/ar-copilot/ar-copilot/internal/chase"
	"github.com/ar-copilot/ar-copilot/internal/shared"
)

// RepositoryPort abstracts template reads for the service.
type RepositoryPort interface {
	List(ctx context.Context, ownerID string, stage, tone string) ([]Template, error)
	FindByStageTone(ctx context.Context, ownerID string, stage chase.Stage, tone string) (*Template, error)
}

// InvoiceContextPort reads one invoice with its joined client and settings
// context. The chase repository satisfies it.
type InvoiceContextPort interface {
	GetInvoiceContext(ctx context.Context, ownerID, invoiceID string) (*chase.OpenInvoiceRow, error)
}

// Service lists templates and renders previews against real invoices.
type Service struct {
	repo     RepositoryPort
	invoices InvoiceContextPort
}

// NewService constructs a Service.
func NewService(repo RepositoryPort, invoices InvoiceContextPort) *Service {
	return &Service{repo: repo, invoices: invoices}
}

// List returns system templates plus the owner's custom ones, optionally
// filtered by stage and tone.
func (s *Service) List(ctx context.Context, scope shared.Scope, stage, tone string) ([]Template, error) {
	return s.repo.List(ctx, scope.OwnerID, stage, tone)
}

// Preview renders the template for a stage and tone against one of the
// owner's invoices. The invoice's own settings decide tone only when the
// caller passes none.
func (s *Service) Preview(ctx context.Context, scope shared.Scope, invoiceID string, stage chase.Stage, tone string, today time.Time) (RenderedMessage, error) {
	row, err := s.invoices.GetInvoiceContext(ctx, scope.OwnerID, invoiceID)
	if err != nil {
		return RenderedMessage{}, err
	}

	item, _ := chase.NewItem(*row, today)
	if tone == "" {
		tone = item.ClientTone
	}

	tpl, err := s.repo.FindByStageTone(ctx, scope.OwnerID, stage, tone)
	if err != nil {
		return RenderedMessage{}, err
	}

	return RenderMessage(*tpl, Vars(item)), nil
}
