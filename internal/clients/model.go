// Package clients owns the client directory behind invoices and settings.
package clients

import "time"

// Client is one billed party.
type Client struct {
	ID                  string    `json:"id"`
	OwnerID             string    `json:"-"`
	Name                string    `json:"name"`
	PrimaryContactName  *string   `json:"primary_contact_name"`
	PrimaryContactEmail *string   `json:"primary_contact_email"`
	CompanyDomain       *string   `json:"company_domain"`
	Notes               *string   `json:"notes"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// CreateInput is the POST payload for a new client.
type CreateInput struct {
	Name                string  `json:"name" validate:"required,max=200"`
	PrimaryContactName  *string `json:"primary_contact_name" validate:"omitempty,max=200"`
	PrimaryContactEmail *string `json:"primary_contact_email" validate:"omitempty,email"`
	CompanyDomain       *string `json:"company_domain" validate:"omitempty,max=255"`
	Notes               *string `json:"notes" validate:"omitempty,max=5000"`
}
