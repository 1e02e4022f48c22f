package clients

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ar-copilot/ar-copilot/internal/shared"
)

// ErrNotFound indicates the client does not exist in the caller's scope.
var ErrNotFound = errors.New("clients: not found")

// RepositoryPort abstracts client persistence.
type RepositoryPort interface {
	List(ctx context.Context, ownerID string) ([]Client, error)
	Create(ctx context.Context, c Client) error
	FindByName(ctx context.Context, ownerID, name string) (*Client, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// Service implements client CRUD.
type Service struct {
	repo RepositoryPort
	now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo, now: time.Now}
}

// List returns the owner's clients, newest first.
func (s *Service) List(ctx context.Context, scope shared.Scope) ([]Client, error) {
	return s.repo.List(ctx, scope.OwnerID)
}

// Create persists a new client. The name is required and trimmed.
func (s *Service) Create(ctx context.Context, scope shared.Scope, in CreateInput) (Client, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Client{}, errors.New("clients: name required")
	}

	now := s.now().UTC()
	c := Client{
		ID:                  uuid.NewString(),
		OwnerID:             scope.OwnerID,
		Name:                name,
		PrimaryContactName:  in.PrimaryContactName,
		PrimaryContactEmail: in.PrimaryContactEmail,
		CompanyDomain:       in.CompanyDomain,
		Notes:               in.Notes,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return Client{}, err
	}
	return c, nil
}

// Delete removes a client. Invoices referencing it keep existing with a
// nulled client_id; deletion never cascades into receivables.
func (s *Service) Delete(ctx context.Context, scope shared.Scope, id string) error {
	return s.repo.Delete(ctx, scope.OwnerID, id)
}

// EnsureClient finds a client by case-insensitive name or creates one.
// The CSV importer resolves client columns through it.
func (s *Service) EnsureClient(ctx context.Context, ownerID, name string, email *string) (string, error) {
	name = strings.TrimSpace(name)
	existing, err := s.repo.FindByName(ctx, ownerID, name)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return "", err
	}
	if existing != nil {
		return existing.ID, nil
	}

	created, err := s.Create(ctx, shared.Scope{OwnerID: ownerID}, CreateInput{
		Name:                name,
		PrimaryContactEmail: email,
	})
	if err != nil {
		return "", err
	}
	return created.ID, nil
}
