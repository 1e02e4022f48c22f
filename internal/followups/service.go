package followups

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ar-copilot/ar-copilot/internal/chase"
	"github.com/ar-copilot/ar-copilot/internal/shared"
)

// ErrInvoiceNotFound indicates the target invoice does not exist in the
// caller's scope.
var ErrInvoiceNotFound = errors.New("followups: invoice not found")

// RepositoryPort abstracts follow-up persistence. Record must write the
// event and the invoice's follow-up marker atomically.
type RepositoryPort interface {
	Record(ctx context.Context, ev Event) error
	ListByInvoice(ctx context.Context, ownerID, invoiceID string) ([]Event, error)
}

// Service records follow-ups and reads timelines.
type Service struct {
	repo RepositoryPort
	now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Record persists one follow-up event and stamps the invoice with the stage
// and time, in a single transaction. Stage is optional; a stage-less record
// still advances last_followup_at and clears the invoice's last stage.
// Recording against a foreign or missing invoice fails with
// ErrInvoiceNotFound.
func (s *Service) Record(ctx context.Context, scope shared.Scope, in RecordInput) (Event, error) {
	var stage *chase.Stage
	if in.Stage != "" {
		st := chase.Stage(in.Stage)
		if !st.Valid() {
			return Event{}, errors.New("followups: invalid stage")
		}
		stage = &st
	}

	channel := Channel(in.Channel)
	if channel == "" {
		channel = ChannelEmail
	}
	if !channel.Valid() {
		return Event{}, errors.New("followups: invalid channel")
	}

	ev := Event{
		ID:        uuid.NewString(),
		OwnerID:   scope.OwnerID,
		InvoiceID: in.InvoiceID,
		Stage:     stage,
		Channel:   channel,
		Subject:   in.Subject,
		Body:      in.Body,
		Notes:     in.Notes,
		SentAt:    s.now().UTC(),
	}

	if err := s.repo.Record(ctx, ev); err != nil {
		return Event{}, err
	}
	return ev, nil
}

// List returns the invoice's follow-up timeline, newest first.
func (s *Service) List(ctx context.Context, scope shared.Scope, invoiceID string) ([]Event, error) {
	return s.repo.ListByInvoice(ctx, scope.OwnerID, invoiceID)
}
