package followups

// RecordInput is the POST payload for recording a follow-up.
type RecordInput struct {
	InvoiceID string  `json:"invoice_id" validate:"required,uuid"`
	Stage     string  `json:"stage" validate:"omitempty,oneof=pre_due day_1 day_7 day_14 final"`
	Channel   string  `json:"channel" validate:"omitempty,oneof=email phone sms other"`
	Subject   *string `json:"subject" validate:"omitempty,max=500"`
	Body      *string `json:"body" validate:"omitempty,max=10000"`
	Notes     *string `json:"notes" validate:"omitempty,max=2000"`
}
