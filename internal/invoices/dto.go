package invoices

// CreateInput is the POST payload for a new invoice.
type CreateInput struct {
	ClientID      *string `json:"client_id" validate:"omitempty,uuid"`
	InvoiceNumber *string `json:"invoice_number" validate:"omitempty,max=100"`
	Description   *string `json:"description" validate:"omitempty,max=2000"`
	Currency      string  `json:"currency" validate:"omitempty,len=3,alpha"`
	AmountCents   int64   `json:"amount_cents" validate:"gte=0"`
	IssueDate     *string `json:"issue_date" validate:"omitempty,datetime=2006-01-02"`
	DueDate       string  `json:"due_date" validate:"required,datetime=2006-01-02"`
}

// UpdateInput is the PATCH payload. Nil fields are left untouched.
type UpdateInput struct {
	ID                string  `json:"id" validate:"required,uuid"`
	Status            *string `json:"status" validate:"omitempty,oneof=open paid disputed written_off"`
	PaidDate          *string `json:"paid_date" validate:"omitempty,datetime=2006-01-02"`
	DueDate           *string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	LastFollowupAt    *string `json:"last_followup_at" validate:"omitempty"`
	LastFollowupStage *string `json:"last_followup_stage" validate:"omitempty,oneof=pre_due day_1 day_7 day_14 final"`
}

// ListFilter narrows GET /invoices.
type ListFilter struct {
	Status   string
	ClientID string
}
