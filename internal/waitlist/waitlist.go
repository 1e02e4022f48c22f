// Package waitlist collects landing-page signups.
package waitlist

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrDuplicate indicates the email is already on the list.
var ErrDuplicate = errors.New("waitlist: already signed up")

// Signup is one waitlist entry.
type Signup struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// SignupInput is the POST payload.
type SignupInput struct {
	Email  string `json:"email" validate:"required,email"`
	Source string `json:"source" validate:"omitempty,max=100"`
}

// RepositoryPort abstracts signup persistence. Create returns ErrDuplicate
// on an email collision.
type RepositoryPort interface {
	Create(ctx context.Context, s Signup) error
	Count(ctx context.Context) (int, error)
}

// Service normalizes and records signups.
type Service struct {
	repo RepositoryPort
	now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Signup stores one signup. Emails are lowercased and trimmed before the
// uniqueness check so casing never creates duplicates.
func (s *Service) Signup(ctx context.Context, in SignupInput) (Signup, error) {
	source := strings.TrimSpace(in.Source)
	if source == "" {
		source = "landing_v1"
	}

	entry := Signup{
		ID:        uuid.NewString(),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Source:    source,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return Signup{}, err
	}
	return entry, nil
}

// Count returns the total number of signups.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
