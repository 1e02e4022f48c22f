// Package chase implements the reminder scheduling core: the stage
// classifier and the chase-list builder.
package chase

// Stage is a discrete point in the follow-up cadence.
type Stage string

const (
	StagePreDue Stage = "pre_due"
	StageDay1   Stage = "day_1"
	StageDay7   Stage = "day_7"
	StageDay14  Stage = "day_14"
	StageFinal  Stage = "final"
)

// Never marks an invoice with no follow-up on record. It satisfies any
// minimum-gap test.
const Never = int(^uint32(0) >> 1)

// Severity ranks stages for sorting; higher is more urgent. Severity is a
// sort key only, never an eligibility input.
func (s Stage) Severity() int {
	switch s {
	case StageFinal:
		return 5
	case StageDay14:
		return 4
	case StageDay7:
		return 3
	case StageDay1:
		return 2
	case StagePreDue:
		return 1
	}
	return 0
}

// Valid reports whether s is one of the five cadence stages.
func (s Stage) Valid() bool {
	return s.Severity() > 0
}

// Classify maps days overdue and days since the last follow-up to a
// recommended stage. The second return is false when no reminder is due.
//
// The windows deliberately leave gaps (4-6, 11-13, and 18-20 days overdue,
// and every pre-due day except -3): an invoice sitting in a gap gets no
// reminder until it ages into the next window, which spaces out the cadence.
// Pass Never for invoices that have no follow-up logged.
func Classify(daysOverdue, daysSinceFollowup int) (Stage, bool) {
	switch {
	case daysOverdue == -3 && daysSinceFollowup >= 5:
		return StagePreDue, true
	case daysOverdue >= 21 && daysSinceFollowup >= 3:
		return StageFinal, true
	case daysOverdue >= 14 && daysOverdue <= 17 && daysSinceFollowup >= 3:
		return StageDay14, true
	case daysOverdue >= 7 && daysOverdue <= 10 && daysSinceFollowup >= 3:
		return StageDay7, true
	case daysOverdue >= 1 && daysOverdue <= 3 && daysSinceFollowup >= 3:
		return StageDay1, true
	}
	return "", false
}
