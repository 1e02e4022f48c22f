// Package billing resolves the caller's plan and the open-invoice allowance
// that gates the chase-list builder.
package billing

import "fmt"

// Plan names a subscription tier.
type Plan string

const (
	PlanFree    Plan = "free"
	PlanStarter Plan = "starter"
	PlanStudio  Plan = "studio"
)

// PlanStatus is the normalized provider subscription state.
type PlanStatus string

const (
	StatusActive   PlanStatus = "active"
	StatusCanceled PlanStatus = "canceled"
	StatusPastDue  PlanStatus = "past_due"
)

var planLimits = map[Plan]int{
	PlanFree:    3,
	PlanStarter: 30,
	PlanStudio:  150,
}

// InvoiceLimitForPlan returns the open-invoice allowance for a plan,
// falling back to the free allowance for unknown plans.
func InvoiceLimitForPlan(plan Plan) int {
	if limit, ok := planLimits[plan]; ok {
		return limit
	}
	return planLimits[PlanFree]
}

// NormalizePlanStatus collapses provider status strings into the three
// states the app distinguishes.
func NormalizePlanStatus(status string) PlanStatus {
	switch status {
	case "past_due", "unpaid":
		return StatusPastDue
	case "canceled", "incomplete_expired":
		return StatusCanceled
	default:
		return StatusActive
	}
}

// PriceIDs maps configured billing-provider price IDs to plans.
type PriceIDs struct {
	Starter string
	Studio  string
}

// PlanForPriceID resolves a provider price ID to a plan, defaulting to free.
func (p PriceIDs) PlanForPriceID(priceID string) Plan {
	switch {
	case priceID != "" && priceID == p.Starter:
		return PlanStarter
	case priceID != "" && priceID == p.Studio:
		return PlanStudio
	default:
		return PlanFree
	}
}

// LimitError signals that the caller's open-invoice count exceeds the plan
// allowance. It carries everything the caller needs to render an upgrade
// prompt.
type LimitError struct {
	Plan         Plan
	Limit        int
	OpenInvoices int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("billing: plan %s allows %d open invoices, have %d", e.Plan, e.Limit, e.OpenInvoices)
}
