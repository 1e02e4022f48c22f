// Package templates stores reminder message templates and renders them for
// a given invoice.
package templates

import (
	"time"

	"github.com/ar-copilot/ar-copilot/internal/chase"
)

// Template is a stage/tone-specific message pattern. Subject and body carry
// {{variable.path}} placeholders. System templates are seeded; user-authored
// rows carry an owner.
type Template struct {
	ID        string      `json:"id"`
	OwnerID   *string     `json:"owner_id,omitempty"`
	Stage     chase.Stage `json:"stage"`
	Tone      string      `json:"tone"`
	Subject   string      `json:"subject"`
	Body      string      `json:"body"`
	IsSystem  bool        `json:"is_system"`
	CreatedAt time.Time   `json:"created_at"`
}
