// Package invoices owns invoice CRUD and the CSV import path.
package invoices

import "time"

const dateLayout = "2006-01-02"

// Status is an invoice's collection state.
type Status string

const (
	StatusOpen       Status = "open"
	StatusPaid       Status = "paid"
	StatusDisputed   Status = "disputed"
	StatusWrittenOff Status = "written_off"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusPaid, StatusDisputed, StatusWrittenOff:
		return true
	}
	return false
}

// Invoice is one receivable. Date-only fields travel as YYYY-MM-DD strings.
type Invoice struct {
	ID                string     `json:"id"`
	OwnerID           string     `json:"-"`
	ClientID          *string    `json:"client_id"`
	InvoiceNumber     *string    `json:"invoice_number"`
	Description       *string    `json:"description"`
	Currency          string     `json:"currency"`
	AmountCents       int64      `json:"amount_cents"`
	IssueDate         *string    `json:"issue_date"`
	DueDate           string     `json:"due_date"`
	PaidDate          *string    `json:"paid_date"`
	Status            Status     `json:"status"`
	LastFollowupAt    *time.Time `json:"last_followup_at"`
	LastFollowupStage *string    `json:"last_followup_stage"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
