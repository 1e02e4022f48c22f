// Package followups records sent reminders and keeps the per-invoice
// follow-up timeline.
package followups

import (
	"time"

	"github.com/ar-copilot/ar-copilot/internal/chase"
)

// Channel is how a reminder reached the client.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelPhone Channel = "phone"
	ChannelSMS   Channel = "sms"
	ChannelOther Channel = "other"
)

// Valid reports whether c is a known channel.
func (c Channel) Valid() bool {
	switch c {
	case ChannelEmail, ChannelPhone, ChannelSMS, ChannelOther:
		return true
	}
	return false
}

// Event is one recorded follow-up on an invoice. Stage is nil for ad-hoc
// reminders sent outside the schedule.
type Event struct {
	ID        string       `json:"id"`
	OwnerID   string       `json:"-"`
	InvoiceID string       `json:"invoice_id"`
	Stage     *chase.Stage `json:"stage"`
	Channel   Channel      `json:"channel"`
	Subject   *string      `json:"subject"`
	Body      *string      `json:"body"`
	Notes     *string      `json:"notes"`
	SentAt    time.Time    `json:"sent_at"`
}
