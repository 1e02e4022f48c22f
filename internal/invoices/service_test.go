package invoices

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ar-copilot/ar-copilot/internal/shared"
)

type memoryInvoiceRepo struct {
	invoices map[string]Invoice
}

func newMemoryInvoiceRepo() *memoryInvoiceRepo {
	return &memoryInvoiceRepo{invoices: map[string]Invoice{}}
}

func (m *memoryInvoiceRepo) List(_ context.Context, ownerID string, f ListFilter) ([]Invoice, error) {
	var out []Invoice
	for _, inv := range m.invoices {
		if inv.OwnerID != ownerID {
			continue
		}
		if f.Status != "" && string(inv.Status) != f.Status {
			continue
		}
		if f.ClientID != "" && (inv.ClientID == nil || *inv.ClientID != f.ClientID) {
			continue
		}
		out = append(out, inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate < out[j].DueDate })
	return out, nil
}

func (m *memoryInvoiceRepo) Create(_ context.Context, inv Invoice) error {
	m.invoices[inv.ID] = inv
	return nil
}

func (m *memoryInvoiceRepo) Update(_ context.Context, ownerID, id string, p Patch) (*Invoice, error) {
	inv, ok := m.invoices[id]
	if !ok || inv.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	if p.Status != nil {
		inv.Status = *p.Status
	}
	if p.PaidDate != nil {
		inv.PaidDate = p.PaidDate
	}
	if p.DueDate != nil {
		inv.DueDate = *p.DueDate
	}
	if p.LastFollowupAt != nil {
		inv.LastFollowupAt = p.LastFollowupAt
	}
	if p.LastFollowupStage != nil {
		inv.LastFollowupStage = p.LastFollowupStage
	}
	inv.UpdatedAt = time.Now().UTC()
	m.invoices[id] = inv
	return &inv, nil
}

func TestCreateAppliesDefaults(t *testing.T) {
	repo := newMemoryInvoiceRepo()
	svc := NewService(repo)
	scope := shared.Scope{OwnerID: "u1"}

	inv, err := svc.Create(context.Background(), scope, CreateInput{
		DueDate:     "2026-09-15",
		AmountCents: 150000,
		Currency:    " usd ",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, inv.ID)
	assert.Equal(t, "u1", inv.OwnerID)
	assert.Equal(t, StatusOpen, inv.Status)
	assert.Equal(t, "USD", inv.Currency)
	assert.Equal(t, int64(150000), inv.AmountCents)
	assert.Nil(t, inv.ClientID)

	stored, ok := repo.invoices[inv.ID]
	require.True(t, ok)
	assert.Equal(t, inv, stored)
}

func TestListRejectsUnknownStatus(t *testing.T) {
	svc := NewService(newMemoryInvoiceRepo())

	_, err := svc.List(context.Background(), shared.Scope{OwnerID: "u1"}, ListFilter{Status: "overdue"})
	assert.Error(t, err)
}

func TestListFiltersByStatusAndClient(t *testing.T) {
	repo := newMemoryInvoiceRepo()
	svc := NewService(repo)
	scope := shared.Scope{OwnerID: "u1"}
	clientA := "client-a"

	seed := []CreateInput{
		{DueDate: "2026-09-01", ClientID: &clientA},
		{DueDate: "2026-08-01"},
	}
	for _, in := range seed {
		_, err := svc.Create(context.Background(), scope, in)
		require.NoError(t, err)
	}

	all, err := svc.List(context.Background(), scope, ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "2026-08-01", all[0].DueDate, "due date ascending")

	byClient, err := svc.List(context.Background(), scope, ListFilter{ClientID: clientA})
	require.NoError(t, err)
	require.Len(t, byClient, 1)
	assert.Equal(t, "2026-09-01", byClient[0].DueDate)
}

func TestUpdateAppliesOnlyNamedFields(t *testing.T) {
	repo := newMemoryInvoiceRepo()
	svc := NewService(repo)
	scope := shared.Scope{OwnerID: "u1"}

	created, err := svc.Create(context.Background(), scope, CreateInput{DueDate: "2026-09-15", AmountCents: 5000})
	require.NoError(t, err)

	status := "paid"
	paid := "2026-09-20"
	updated, err := svc.Update(context.Background(), scope, UpdateInput{
		ID:       created.ID,
		Status:   &status,
		PaidDate: &paid,
	})
	require.NoError(t, err)

	assert.Equal(t, StatusPaid, updated.Status)
	require.NotNil(t, updated.PaidDate)
	assert.Equal(t, "2026-09-20", *updated.PaidDate)
	assert.Equal(t, "2026-09-15", updated.DueDate, "untouched field keeps its value")
}

func TestUpdateNothingToUpdate(t *testing.T) {
	svc := NewService(newMemoryInvoiceRepo())

	_, err := svc.Update(context.Background(), shared.Scope{OwnerID: "u1"}, UpdateInput{ID: "inv-1"})
	assert.ErrorIs(t, err, ErrNothingToUpdate)
}

func TestUpdateMissingInvoice(t *testing.T) {
	svc := NewService(newMemoryInvoiceRepo())
	status := "paid"

	_, err := svc.Update(context.Background(), shared.Scope{OwnerID: "u1"}, UpdateInput{ID: "inv-404", Status: &status})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateScopedToOwner(t *testing.T) {
	repo := newMemoryInvoiceRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), shared.Scope{OwnerID: "u1"}, CreateInput{DueDate: "2026-09-15"})
	require.NoError(t, err)

	status := "paid"
	_, err = svc.Update(context.Background(), shared.Scope{OwnerID: "u2"}, UpdateInput{ID: created.ID, Status: &status})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateParsesFollowupTimestamp(t *testing.T) {
	repo := newMemoryInvoiceRepo()
	svc := NewService(repo)
	scope := shared.Scope{OwnerID: "u1"}

	created, err := svc.Create(context.Background(), scope, CreateInput{DueDate: "2026-09-15"})
	require.NoError(t, err)

	at := "2026-08-24T09:30:00Z"
	stage := "day_7"
	updated, err := svc.Update(context.Background(), scope, UpdateInput{
		ID:                created.ID,
		LastFollowupAt:    &at,
		LastFollowupStage: &stage,
	})
	require.NoError(t, err)

	require.NotNil(t, updated.LastFollowupAt)
	assert.Equal(t, time.Date(2026, 8, 24, 9, 30, 0, 0, time.UTC), *updated.LastFollowupAt)

	bad := "yesterday"
	_, err = svc.Update(context.Background(), scope, UpdateInput{ID: created.ID, LastFollowupAt: &bad})
	assert.Error(t, err)
}
