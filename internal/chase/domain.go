package chase

import "time"

// OpenInvoiceRow is one open invoice joined with its client and settings
// context, as read from the store. Optional columns stay pointers so the
// builder can apply defaults in one place.
type OpenInvoiceRow struct {
	InvoiceID         string
	ClientID          *string
	ClientName        *string
	ContactName       *string
	ContactEmail      *string
	InvoiceNumber     *string
	AmountCents       int64
	Currency          string
	DueDate           time.Time
	LastFollowupAt    *time.Time
	LastFollowupStage *string

	Tone             *string
	PaymentLink      *string
	SignatureName    *string
	SignatureCompany *string
	SignaturePhone   *string
	SignatureEmail   *string
	IncludeLateFee   bool
	LateFeeText      *string
}

// Item is one chase-list entry: an invoice, its computed stage, and the
// denormalized context a renderer needs.
type Item struct {
	InvoiceID         string  `json:"invoice_id"`
	ClientID          *string `json:"client_id"`
	ClientName        *string `json:"client_name"`
	ContactName       *string `json:"contact_name"`
	ContactEmail      *string `json:"contact_email"`
	InvoiceNumber     *string `json:"invoice_number"`
	AmountCents       int64   `json:"amount_cents"`
	Currency          string  `json:"currency"`
	DueDate           string  `json:"due_date"`
	DaysOverdue       int     `json:"days_overdue"`
	DaysSinceFollowup *int    `json:"days_since_followup"`
	LastFollowupStage *string `json:"last_followup_stage"`
	RecommendedStage  Stage   `json:"recommended_stage"`

	ClientTone       string  `json:"client_tone"`
	PaymentLink      *string `json:"payment_link"`
	SignatureName    *string `json:"signature_name"`
	SignatureCompany *string `json:"signature_company"`
	SignaturePhone   *string `json:"signature_phone"`
	SignatureEmail   *string `json:"signature_email"`
	IncludeLateFee   bool    `json:"include_late_fee"`
	LateFeeText      *string `json:"late_fee_text"`
}
