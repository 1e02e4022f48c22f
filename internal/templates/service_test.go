package templates

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ar-copilot/ar-copilot/internal/chase"
	"github.com/ar-copilot/ar-copilot/internal/shared"
)

type memoryTemplateRepo struct {
	templates []Template
	lastTone  string
}

func (m *memoryTemplateRepo) List(_ context.Context, _ string, stage, tone string) ([]Template, error) {
	var out []Template
	for _, tpl := range m.templates {
		if stage != "" && string(tpl.Stage) != stage {
			continue
		}
		if tone != "" && tpl.Tone != tone {
			continue
		}
		out = append(out, tpl)
	}
	return out, nil
}

func (m *memoryTemplateRepo) FindByStageTone(_ context.Context, _ string, stage chase.Stage, tone string) (*Template, error) {
	m.lastTone = tone
	for i := range m.templates {
		if m.templates[i].Stage == stage && m.templates[i].Tone == tone {
			return &m.templates[i], nil
		}
	}
	return nil, ErrNotFound
}

type stubInvoiceContext struct {
	rows map[string]chase.OpenInvoiceRow
}

func (s *stubInvoiceContext) GetInvoiceContext(_ context.Context, _, invoiceID string) (*chase.OpenInvoiceRow, error) {
	row, ok := s.rows[invoiceID]
	if !ok {
		return nil, chase.ErrNotFound
	}
	return &row, nil
}

func previewFixture() (*Service, *memoryTemplateRepo) {
	due := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	repo := &memoryTemplateRepo{templates: []Template{
		{ID: "t1", Stage: chase.StageDay7, Tone: "friendly", IsSystem: true,
			Subject: "Quick nudge on {{invoice.number}}",
			Body:    "Hi {{client.contact_name}}, {{invoice.amount}} was due {{invoice.due_date}}."},
		{ID: "t2", Stage: chase.StageDay7, Tone: "firm", IsSystem: true,
			Subject: "Invoice {{invoice.number}} is overdue",
			Body:    "{{client.contact_name}}, payment of {{invoice.amount}} is {{invoice.days_overdue}} days late."},
	}}
	invoices := &stubInvoiceContext{rows: map[string]chase.OpenInvoiceRow{
		"inv-1": {
			InvoiceID:     "inv-1",
			ClientName:    strPtr("Acme Studio"),
			ContactName:   strPtr("Dana"),
			InvoiceNumber: strPtr("INV-042"),
			AmountCents:   150000,
			Currency:      "USD",
			DueDate:       due,
			Tone:          strPtr("firm"),
		},
	}}
	return NewService(repo, invoices), repo
}

func TestPreviewRendersAgainstInvoice(t *testing.T) {
	svc, _ := previewFixture()
	today := time.Date(2026, 8, 17, 12, 0, 0, 0, time.UTC)

	msg, err := svc.Preview(context.Background(), shared.Scope{OwnerID: "u1"}, "inv-1", chase.StageDay7, "friendly", today)
	require.NoError(t, err)

	assert.Equal(t, "Quick nudge on INV-042", msg.Subject)
	assert.Equal(t, "Hi Dana, $1,500.00 was due 2026-08-10.", msg.Body)
}

func TestPreviewDefaultsToneFromClientSettings(t *testing.T) {
	svc, repo := previewFixture()
	today := time.Date(2026, 8, 17, 12, 0, 0, 0, time.UTC)

	msg, err := svc.Preview(context.Background(), shared.Scope{OwnerID: "u1"}, "inv-1", chase.StageDay7, "", today)
	require.NoError(t, err)

	assert.Equal(t, "firm", repo.lastTone)
	assert.Equal(t, "Dana, payment of $1,500.00 is 7 days late.", msg.Body)
}

func TestPreviewMissingInvoice(t *testing.T) {
	svc, _ := previewFixture()

	_, err := svc.Preview(context.Background(), shared.Scope{OwnerID: "u1"}, "inv-404", chase.StageDay7, "friendly", time.Now())
	assert.ErrorIs(t, err, chase.ErrNotFound)
}

func TestPreviewMissingTemplate(t *testing.T) {
	svc, _ := previewFixture()

	_, err := svc.Preview(context.Background(), shared.Scope{OwnerID: "u1"}, "inv-1", chase.StageFinal, "friendly", time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
}
