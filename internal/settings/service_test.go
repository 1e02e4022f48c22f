package settings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ar-copilot/ar-copilot/internal/shared"
)

type memorySettingsRepo struct {
	clients map[string]string
	rows    map[string]Settings
}

func newMemorySettingsRepo() *memorySettingsRepo {
	return &memorySettingsRepo{clients: map[string]string{}, rows: map[string]Settings{}}
}

func (m *memorySettingsRepo) addClient(ownerID, clientID string) {
	m.clients[clientID] = ownerID
}

func (m *memorySettingsRepo) Get(_ context.Context, ownerID, clientID string) (*Settings, error) {
	s, ok := m.rows[clientID]
	if !ok || s.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (m *memorySettingsRepo) Upsert(_ context.Context, s Settings) (Settings, error) {
	m.rows[s.ClientID] = s
	return s, nil
}

func (m *memorySettingsRepo) OwnsClient(_ context.Context, ownerID, clientID string) (bool, error) {
	return m.clients[clientID] == ownerID, nil
}

func settingsFixture() (*Service, *memorySettingsRepo) {
	repo := newMemorySettingsRepo()
	repo.addClient("u1", "c1")
	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC) }
	return svc, repo
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func TestGetReturnsDefaultsWhenUnconfigured(t *testing.T) {
	svc, _ := settingsFixture()

	s, err := svc.Get(context.Background(), shared.Scope{OwnerID: "u1"}, "c1")
	require.NoError(t, err)

	assert.Equal(t, ToneFriendly, s.Tone)
	assert.True(t, s.IncludePaymentMethods)
	assert.False(t, s.IncludeLateFee)
	assert.Nil(t, s.LateFeeText)
	assert.Nil(t, s.UpdatedAt)
}

func TestGetRejectsForeignClient(t *testing.T) {
	svc, _ := settingsFixture()

	_, err := svc.Get(context.Background(), shared.Scope{OwnerID: "u2"}, "c1")
	assert.ErrorIs(t, err, ErrInvalidClient)

	_, err = svc.Get(context.Background(), shared.Scope{OwnerID: "u1"}, "c-404")
	assert.ErrorIs(t, err, ErrInvalidClient)
}

func TestUpdateMergesOnlyProvidedFields(t *testing.T) {
	svc, _ := settingsFixture()
	scope := shared.Scope{OwnerID: "u1"}

	_, err := svc.Update(context.Background(), scope, UpdateInput{
		ClientID:    "c1",
		Tone:        strPtr("firm"),
		PaymentLink: strPtr("https://pay.example.com"),
	})
	require.NoError(t, err)

	s, err := svc.Update(context.Background(), scope, UpdateInput{
		ClientID:      "c1",
		SignatureName: strPtr("Jo Rivera"),
	})
	require.NoError(t, err)

	assert.Equal(t, "firm", s.Tone, "earlier update survives")
	require.NotNil(t, s.PaymentLink)
	assert.Equal(t, "https://pay.example.com", *s.PaymentLink)
	require.NotNil(t, s.SignatureName)
	assert.Equal(t, "Jo Rivera", *s.SignatureName)
	assert.True(t, s.IncludePaymentMethods, "untouched bool keeps default")
}

func TestUpdateEmptyStringClearsField(t *testing.T) {
	svc, _ := settingsFixture()
	scope := shared.Scope{OwnerID: "u1"}

	_, err := svc.Update(context.Background(), scope, UpdateInput{
		ClientID:    "c1",
		PaymentLink: strPtr("https://pay.example.com"),
	})
	require.NoError(t, err)

	s, err := svc.Update(context.Background(), scope, UpdateInput{
		ClientID:    "c1",
		PaymentLink: strPtr("   "),
	})
	require.NoError(t, err)
	assert.Nil(t, s.PaymentLink)
}

func TestUpdateDisabledLateFeeWipesText(t *testing.T) {
	svc, _ := settingsFixture()
	scope := shared.Scope{OwnerID: "u1"}

	s, err := svc.Update(context.Background(), scope, UpdateInput{
		ClientID:       "c1",
		IncludeLateFee: boolPtr(false),
		LateFeeText:    strPtr("Net 30 applies, 2% monthly thereafter"),
	})
	require.NoError(t, err)
	assert.Nil(t, s.LateFeeText, "text submitted alongside a disable is dropped")

	s, err = svc.Update(context.Background(), scope, UpdateInput{
		ClientID:       "c1",
		IncludeLateFee: boolPtr(true),
		LateFeeText:    strPtr("2% monthly"),
	})
	require.NoError(t, err)
	require.NotNil(t, s.LateFeeText)
	assert.Equal(t, "2% monthly", *s.LateFeeText)

	s, err = svc.Update(context.Background(), scope, UpdateInput{
		ClientID:       "c1",
		IncludeLateFee: boolPtr(false),
	})
	require.NoError(t, err)
	assert.Nil(t, s.LateFeeText, "disabling later also wipes stored text")
}

func TestUpdateRejectsForeignClientAndBadTone(t *testing.T) {
	svc, repo := settingsFixture()

	_, err := svc.Update(context.Background(), shared.Scope{OwnerID: "u2"}, UpdateInput{ClientID: "c1"})
	assert.ErrorIs(t, err, ErrInvalidClient)
	assert.Empty(t, repo.rows)

	_, err = svc.Update(context.Background(), shared.Scope{OwnerID: "u1"}, UpdateInput{
		ClientID: "c1",
		Tone:     strPtr("aggressive"),
	})
	assert.Error(t, err)
}

func TestUpdateStampsUpdatedAt(t *testing.T) {
	svc, _ := settingsFixture()

	s, err := svc.Update(context.Background(), shared.Scope{OwnerID: "u1"}, UpdateInput{
		ClientID: "c1",
		Tone:     strPtr("neutral"),
	})
	require.NoError(t, err)
	require.NotNil(t, s.UpdatedAt)
	assert.Equal(t, time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC), *s.UpdatedAt)
}
