// Package settings stores per-client reminder preferences.
package settings

import "time"

// Tones a reminder can carry.
const (
	ToneFriendly = "friendly"
	ToneNeutral  = "neutral"
	ToneFirm     = "firm"
)

// ValidTone reports whether tone is one of the allowed values.
func ValidTone(tone string) bool {
	return tone == ToneFriendly || tone == ToneNeutral || tone == ToneFirm
}

// Settings is the reminder configuration for one client. A client without a
// stored row behaves as Defaults.
type Settings struct {
	ClientID              string     `json:"client_id"`
	OwnerID               string     `json:"-"`
	Tone                  string     `json:"tone"`
	IncludePaymentMethods bool       `json:"include_payment_methods"`
	IncludeLateFee        bool       `json:"include_late_fee"`
	LateFeeText           *string    `json:"late_fee_text"`
	PaymentLink           *string    `json:"payment_link"`
	SignatureName         *string    `json:"signature_name"`
	SignatureCompany      *string    `json:"signature_company"`
	SignaturePhone        *string    `json:"signature_phone"`
	SignatureEmail        *string    `json:"signature_email"`
	UpdatedAt             *time.Time `json:"updated_at"`
}

// Defaults is the configuration an unconfigured client gets.
func Defaults(ownerID, clientID string) Settings {
	return Settings{
		ClientID:              clientID,
		OwnerID:               ownerID,
		Tone:                  ToneFriendly,
		IncludePaymentMethods: true,
		IncludeLateFee:        false,
	}
}

// UpdateInput is the PUT payload. Nil fields keep the stored value; empty
// strings clear a field to null.
type UpdateInput struct {
	ClientID              string  `json:"client_id" validate:"required"`
	Tone                  *string `json:"tone" validate:"omitempty,oneof=friendly neutral firm"`
	IncludePaymentMethods *bool   `json:"include_payment_methods"`
	IncludeLateFee        *bool   `json:"include_late_fee"`
	LateFeeText           *string `json:"late_fee_text"`
	PaymentLink           *string `json:"payment_link"`
	SignatureName         *string `json:"signature_name"`
	SignatureCompany      *string `json:"signature_company"`
	SignaturePhone        *string `json:"signature_phone"`
	SignatureEmail        *string `json:"signature_email"`
}
