package settings

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ar-copilot/ar-copilot/internal/shared"
)

// ErrInvalidClient covers both a missing client and someone else's client,
// so responses never reveal which.
var ErrInvalidClient = errors.New("settings: invalid client")

// ErrNotFound indicates no stored settings row for the client.
var ErrNotFound = errors.New("settings: not found")

// RepositoryPort abstracts settings persistence. Get returns ErrNotFound
// for an unconfigured client; OwnsClient checks the clients table.
type RepositoryPort interface {
	Get(ctx context.Context, ownerID, clientID string) (*Settings, error)
	Upsert(ctx context.Context, s Settings) (Settings, error)
	OwnsClient(ctx context.Context, ownerID, clientID string) (bool, error)
}

// Service reads and merge-updates client settings.
type Service struct {
	repo RepositoryPort
	now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Get returns the client's settings, or defaults when none are stored.
func (s *Service) Get(ctx context.Context, scope shared.Scope, clientID string) (Settings, error) {
	if err := s.verifyClient(ctx, scope.OwnerID, clientID); err != nil {
		return Settings{}, err
	}

	stored, err := s.repo.Get(ctx, scope.OwnerID, clientID)
	if errors.Is(err, ErrNotFound) {
		return Defaults(scope.OwnerID, clientID), nil
	}
	if err != nil {
		return Settings{}, err
	}
	return *stored, nil
}

// Update merges the provided fields over the stored settings and upserts
// the result. Whenever late fees end up disabled the stored late fee text
// is nulled, even if text arrived in the same request.
func (s *Service) Update(ctx context.Context, scope shared.Scope, in UpdateInput) (Settings, error) {
	if in.Tone != nil && *in.Tone != "" && !ValidTone(*in.Tone) {
		return Settings{}, errors.New("settings: invalid tone")
	}
	if err := s.verifyClient(ctx, scope.OwnerID, in.ClientID); err != nil {
		return Settings{}, err
	}

	merged := Defaults(scope.OwnerID, in.ClientID)
	if stored, err := s.repo.Get(ctx, scope.OwnerID, in.ClientID); err == nil {
		merged = *stored
	} else if !errors.Is(err, ErrNotFound) {
		return Settings{}, err
	}

	if in.Tone != nil && *in.Tone != "" {
		merged.Tone = *in.Tone
	}
	if in.IncludePaymentMethods != nil {
		merged.IncludePaymentMethods = *in.IncludePaymentMethods
	}
	if in.IncludeLateFee != nil {
		merged.IncludeLateFee = *in.IncludeLateFee
	}
	applyText(&merged.LateFeeText, in.LateFeeText)
	applyText(&merged.PaymentLink, in.PaymentLink)
	applyText(&merged.SignatureName, in.SignatureName)
	applyText(&merged.SignatureCompany, in.SignatureCompany)
	applyText(&merged.SignaturePhone, in.SignaturePhone)
	applyText(&merged.SignatureEmail, in.SignatureEmail)

	if !merged.IncludeLateFee {
		merged.LateFeeText = nil
	}

	now := s.now().UTC()
	merged.UpdatedAt = &now
	return s.repo.Upsert(ctx, merged)
}

func (s *Service) verifyClient(ctx context.Context, ownerID, clientID string) error {
	owns, err := s.repo.OwnsClient(ctx, ownerID, clientID)
	if err != nil {
		return err
	}
	if !owns {
		return ErrInvalidClient
	}
	return nil
}

// applyText overwrites dst when the field was provided; a blank value
// clears it to null.
func applyText(dst **string, in *string) {
	if in == nil {
		return
	}
	trimmed := strings.TrimSpace(*in)
	if trimmed == "" {
		*dst = nil
		return
	}
	*dst = &trimmed
}
