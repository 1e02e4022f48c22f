package followups

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ar-copilot/ar-copilot/internal/chase"
	"github.com/ar-copilot/ar-copilot/internal/shared"
)

type invoiceMarker struct {
	lastFollowupAt    *time.Time
	lastFollowupStage *string
}

// memoryFollowupRepo mimics the transactional contract: a failed invoice
// stamp leaves no event behind.
type memoryFollowupRepo struct {
	invoices map[string]*invoiceMarker
	events   []Event
}

func (m *memoryFollowupRepo) Record(_ context.Context, ev Event) error {
	marker, ok := m.invoices[ev.OwnerID+"/"+ev.InvoiceID]
	if !ok {
		return ErrInvoiceNotFound
	}
	at := ev.SentAt
	marker.lastFollowupAt = &at
	marker.lastFollowupStage = nil
	if ev.Stage != nil {
		stage := string(*ev.Stage)
		marker.lastFollowupStage = &stage
	}
	m.events = append(m.events, ev)
	return nil
}

func (m *memoryFollowupRepo) ListByInvoice(_ context.Context, ownerID, invoiceID string) ([]Event, error) {
	var out []Event
	for _, ev := range m.events {
		if ev.OwnerID == ownerID && ev.InvoiceID == invoiceID {
			out = append(out, ev)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SentAt.After(out[j].SentAt) })
	return out, nil
}

func fixedService(repo *memoryFollowupRepo, at time.Time) *Service {
	svc := NewService(repo)
	svc.now = func() time.Time { return at }
	return svc
}

func TestRecordStampsInvoiceAndStoresEvent(t *testing.T) {
	repo := &memoryFollowupRepo{invoices: map[string]*invoiceMarker{
		"u1/inv-1": {},
	}}
	now := time.Date(2026, 8, 24, 9, 30, 0, 0, time.UTC)
	svc := fixedService(repo, now)

	ev, err := svc.Record(context.Background(), shared.Scope{OwnerID: "u1"}, RecordInput{
		InvoiceID: "inv-1",
		Stage:     "day_7",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, ev.ID)
	require.NotNil(t, ev.Stage)
	assert.Equal(t, chase.StageDay7, *ev.Stage)
	assert.Equal(t, ChannelEmail, ev.Channel, "channel defaults to email")
	assert.Equal(t, now, ev.SentAt)

	marker := repo.invoices["u1/inv-1"]
	require.NotNil(t, marker.lastFollowupAt)
	assert.Equal(t, now, *marker.lastFollowupAt)
	require.NotNil(t, marker.lastFollowupStage)
	assert.Equal(t, "day_7", *marker.lastFollowupStage)
}

func TestRecordWithoutStageStillStampsInvoice(t *testing.T) {
	repo := &memoryFollowupRepo{invoices: map[string]*invoiceMarker{
		"u1/inv-1": {},
	}}
	now := time.Date(2026, 8, 26, 14, 0, 0, 0, time.UTC)
	svc := fixedService(repo, now)

	// Seed a staged follow-up first so the stage-less one has something
	// to clear.
	_, err := svc.Record(context.Background(), shared.Scope{OwnerID: "u1"}, RecordInput{
		InvoiceID: "inv-1",
		Stage:     "day_1",
	})
	require.NoError(t, err)

	ev, err := svc.Record(context.Background(), shared.Scope{OwnerID: "u1"}, RecordInput{
		InvoiceID: "inv-1",
		Channel:   "phone",
	})
	require.NoError(t, err)
	assert.Nil(t, ev.Stage)
	assert.Equal(t, ChannelPhone, ev.Channel)

	marker := repo.invoices["u1/inv-1"]
	require.NotNil(t, marker.lastFollowupAt)
	assert.Equal(t, now, *marker.lastFollowupAt)
	assert.Nil(t, marker.lastFollowupStage, "ad-hoc follow-up clears the last stage")
}

func TestRecordMissingInvoiceLeavesNoEvent(t *testing.T) {
	repo := &memoryFollowupRepo{invoices: map[string]*invoiceMarker{}}
	svc := fixedService(repo, time.Now().UTC())

	_, err := svc.Record(context.Background(), shared.Scope{OwnerID: "u1"}, RecordInput{
		InvoiceID: "inv-404",
		Stage:     "day_1",
	})
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
	assert.Empty(t, repo.events)
}

func TestRecordForeignInvoiceLeavesNoEvent(t *testing.T) {
	repo := &memoryFollowupRepo{invoices: map[string]*invoiceMarker{
		"u2/inv-1": {},
	}}
	svc := fixedService(repo, time.Now().UTC())

	_, err := svc.Record(context.Background(), shared.Scope{OwnerID: "u1"}, RecordInput{
		InvoiceID: "inv-1",
		Stage:     "day_1",
	})
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
	assert.Empty(t, repo.events)
}

func TestRecordRejectsUnknownStageAndChannel(t *testing.T) {
	repo := &memoryFollowupRepo{invoices: map[string]*invoiceMarker{"u1/inv-1": {}}}
	svc := fixedService(repo, time.Now().UTC())
	scope := shared.Scope{OwnerID: "u1"}

	_, err := svc.Record(context.Background(), scope, RecordInput{InvoiceID: "inv-1", Stage: "day_30"})
	assert.Error(t, err)

	_, err = svc.Record(context.Background(), scope, RecordInput{InvoiceID: "inv-1", Stage: "day_7", Channel: "fax"})
	assert.Error(t, err)
	assert.Empty(t, repo.events)
}

func TestListReturnsTimelineNewestFirst(t *testing.T) {
	repo := &memoryFollowupRepo{invoices: map[string]*invoiceMarker{"u1/inv-1": {}}}
	scope := shared.Scope{OwnerID: "u1"}

	times := []time.Time{
		time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 8, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC),
	}
	stages := []string{"day_1", "day_7", "day_14"}
	for i, at := range times {
		svc := fixedService(repo, at)
		_, err := svc.Record(context.Background(), scope, RecordInput{InvoiceID: "inv-1", Stage: stages[i]})
		require.NoError(t, err)
	}

	svc := fixedService(repo, times[2])
	events, err := svc.List(context.Background(), scope, "inv-1")
	require.NoError(t, err)
	require.Len(t, events, 3)

	for _, ev := range events {
		require.NotNil(t, ev.Stage)
	}
	assert.Equal(t, chase.StageDay14, *events[0].Stage)
	assert.Equal(t, chase.StageDay7, *events[1].Stage)
	assert.Equal(t, chase.StageDay1, *events[2].Stage)
}
