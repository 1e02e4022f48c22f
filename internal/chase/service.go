package chase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ar-copilot/ar-copilot/internal/billing"
	"github.com/ar-copilot/ar-copilot/internal/shared"
)

const dateLayout = "2006-01-02"

// RepositoryPort defines the reads the builder performs.
type RepositoryPort interface {
	CountOpenInvoices(ctx context.Context, ownerID string) (int, error)
	ListOpenInvoices(ctx context.Context, ownerID string) ([]OpenInvoiceRow, error)
}

// SubscriptionResolver supplies the caller's plan for the limit gate.
type SubscriptionResolver interface {
	GetSubscription(ctx context.Context, scope shared.Scope) (billing.Subscription, error)
}

// Service builds the chase list. It is a read-only projection; concurrent
// calls are independent.
type Service struct {
	repo    RepositoryPort
	billing SubscriptionResolver
}

// NewService builds a Service.
func NewService(repo RepositoryPort, billing SubscriptionResolver) *Service {
	return &Service{repo: repo, billing: billing}
}

// Build returns the ordered chase list for the owner. The plan limit is
// checked before the join query runs; a violation surfaces as
// *billing.LimitError. Every invoice is evaluated against the same today
// value so a computation spanning midnight cannot skew mid-list.
func (s *Service) Build(ctx context.Context, scope shared.Scope, today time.Time) ([]Item, error) {
	sub, err := s.billing.GetSubscription(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("resolve subscription: %w", err)
	}
	limit := billing.InvoiceLimitForPlan(sub.Plan)

	openCount, err := s.repo.CountOpenInvoices(ctx, scope.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("count open invoices: %w", err)
	}
	if openCount > limit {
		return nil, &billing.LimitError{Plan: sub.Plan, Limit: limit, OpenInvoices: openCount}
	}

	rows, err := s.repo.ListOpenInvoices(ctx, scope.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("list open invoices: %w", err)
	}

	day := dateOnly(today)
	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		item, actionable := NewItem(row, day)
		if !actionable {
			continue
		}
		items = append(items, item)
	}

	// Stable sort keeps insertion order for invoices tied on every key.
	sort.SliceStable(items, func(i, j int) bool {
		if a, b := items[i].RecommendedStage.Severity(), items[j].RecommendedStage.Severity(); a != b {
			return a > b
		}
		if items[i].AmountCents != items[j].AmountCents {
			return items[i].AmountCents > items[j].AmountCents
		}
		return items[i].DueDate < items[j].DueDate
	})

	return items, nil
}

// NewItem computes the day math, classification, and setting defaults for
// one row against today. The second return is false when no reminder is
// due; the Item is still usable for rendering a manually chosen stage.
func NewItem(row OpenInvoiceRow, today time.Time) (Item, bool) {
	day := dateOnly(today)
	daysOverdue := daysBetween(dateOnly(row.DueDate), day)

	daysSince := Never
	var daysSincePtr *int
	if row.LastFollowupAt != nil {
		d := daysBetween(dateOnly(*row.LastFollowupAt), day)
		daysSince = d
		daysSincePtr = &d
	}

	stage, actionable := Classify(daysOverdue, daysSince)

	tone := "friendly"
	if row.Tone != nil && *row.Tone != "" {
		tone = *row.Tone
	}

	return Item{
		InvoiceID:         row.InvoiceID,
		ClientID:          row.ClientID,
		ClientName:        row.ClientName,
		ContactName:       row.ContactName,
		ContactEmail:      row.ContactEmail,
		InvoiceNumber:     row.InvoiceNumber,
		AmountCents:       row.AmountCents,
		Currency:          row.Currency,
		DueDate:           dateOnly(row.DueDate).Format(dateLayout),
		DaysOverdue:       daysOverdue,
		DaysSinceFollowup: daysSincePtr,
		LastFollowupStage: row.LastFollowupStage,
		RecommendedStage:  stage,
		ClientTone:        tone,
		PaymentLink:       row.PaymentLink,
		SignatureName:     row.SignatureName,
		SignatureCompany:  row.SignatureCompany,
		SignaturePhone:    row.SignaturePhone,
		SignatureEmail:    row.SignatureEmail,
		IncludeLateFee:    row.IncludeLateFee,
		LateFeeText:       row.LateFeeText,
	}, actionable
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the whole calendar days from to until; negative when
// until precedes from.
func daysBetween(from, until time.Time) int {
	return int(until.Sub(from).Hours() / 24)
}
