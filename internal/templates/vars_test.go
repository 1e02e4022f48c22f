package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ar-copilot/ar-copilot/internal/chase"
)

func strPtr(s string) *string { return &s }

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		cents    int64
		currency string
		want     string
	}{
		{150000, "USD", "$1,500.00"},
		{999, "usd", "$9.99"},
		{0, "", "$0.00"},
		{250000, "EUR", "€2,500.00"},
		{123456789, "GBP", "£1,234,567.89"},
		{5000, "NZD", "NZD 50.00"},
		{500000, "JPY", "¥5,000"},
		{5000, "jpy", "¥50"},
		{123456700, "KRW", "KRW 1,234,567"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatAmount(tc.cents, tc.currency), "%d %s", tc.cents, tc.currency)
	}
}

func TestVarsBuildsDisplayValues(t *testing.T) {
	item := chase.Item{
		InvoiceID:     "inv-1",
		ClientName:    strPtr("Acme Studio"),
		ContactName:   strPtr("Dana"),
		InvoiceNumber: strPtr("INV-042"),
		AmountCents:   150000,
		Currency:      "USD",
		DueDate:       "2026-08-10",
		DaysOverdue:   14,
		PaymentLink:   strPtr("https://pay.example.com/inv-042"),
		SignatureName: strPtr("Jo Rivera"),
	}

	vars := Vars(item)

	assert.Equal(t, "Acme Studio", vars["client.name"])
	assert.Equal(t, "Dana", vars["client.contact_name"])
	assert.Equal(t, "INV-042", vars["invoice.number"])
	assert.Equal(t, "$1,500.00", vars["invoice.amount"])
	assert.Equal(t, "2026-08-10", vars["invoice.due_date"])
	assert.Equal(t, "14", vars["invoice.days_overdue"])
	assert.Equal(t, "2026-08-13", vars["invoice.due_date_plus_3"])
	assert.Equal(t, "https://pay.example.com/inv-042", vars["payment.link"])
	assert.Equal(t, "Jo Rivera", vars["signature.name"])
	assert.Equal(t, "", vars["signature.company"])
}

func TestVarsContactNameFallsBackToClientName(t *testing.T) {
	vars := Vars(chase.Item{ClientName: strPtr("Acme Studio"), Currency: "USD"})
	assert.Equal(t, "Acme Studio", vars["client.contact_name"])

	vars = Vars(chase.Item{ClientName: strPtr("Acme"), ContactName: strPtr("   "), Currency: "USD"})
	assert.Equal(t, "Acme", vars["client.contact_name"])
}

func TestVarsContactNameDefaultsToThere(t *testing.T) {
	vars := Vars(chase.Item{Currency: "USD"})
	assert.Equal(t, "there", vars["client.contact_name"])
	assert.Equal(t, "", vars["client.name"])
}

func TestVarsDueDatePlusThreeCrossesMonthEnd(t *testing.T) {
	vars := Vars(chase.Item{Currency: "USD", DueDate: "2026-01-30"})
	assert.Equal(t, "2026-02-02", vars["invoice.due_date_plus_3"])
}
