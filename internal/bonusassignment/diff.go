package bonusassignment

import (
	"time"

	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/bonus"
)

// DiffReason tells the caller what a proposed bonus change implies for the
// assignment and for payroll.
type DiffReason string

const (
	ReasonAssignmentInactive DiffReason = "assignment inactive"
	ReasonRecalcAndDates     DiffReason = "recalculate payroll & active assignment"
	ReasonRecalcOnly         DiffReason = "recalculate payroll only"
	ReasonNoChanges          DiffReason = "no changes"
)

// DiffResult carries the decision. Updated is nil when nothing on the
// assignment itself must change (rejection or no-op); for catalog-only
// changes (amount, taxability) the assignment is returned untouched so the
// caller still persists the refreshed bonus reference.
type DiffResult struct {
	Updated *Assignment
	Reason  DiffReason
}

// DiffAssignment compares an existing assignment against a proposed catalog
// bonus and decides what must be recomputed. Pure: it never persists. The
// decision list is ordered, first match wins:
//
//  1. inactive assignments reject any edit;
//  2. a different bonus resets the assignment date to today and recomputes
//     the end date from the new bonus;
//  3. a temporality change recomputes the end date (with the new duration if
//     it changed too, otherwise the existing one);
//  4. a duration change recomputes the end date;
//  5. a taxability change touches payroll only;
//  6. an amount change touches payroll only;
//  7. otherwise nothing changed.
//
// today must be normalized to local midday. existing.Bonus must be loaded.
func DiffAssignment(existing Assignment, proposed bonus.Bonus, today time.Time) (DiffResult, error) {
	if !existing.Active {
		return DiffResult{Reason: ReasonAssignmentInactive}, nil
	}

	current := existing.Bonus

	if proposed.ID != current.ID {
		end, err := bonus.ResolveEndDate(proposed.Temporality, today, proposed.DurationMonths)
		if err != nil {
			return DiffResult{}, err
		}
		updated := existing
		updated.BonusID = proposed.ID
		updated.AssignedAt = today
		updated.EndDate = end
		return DiffResult{Updated: &updated, Reason: ReasonRecalcAndDates}, nil
	}

	if proposed.Temporality != current.Temporality {
		duration := current.DurationMonths
		if !sameDuration(proposed.DurationMonths, current.DurationMonths) {
			duration = proposed.DurationMonths
		}
		end, err := bonus.ResolveEndDate(proposed.Temporality, existing.AssignedAt, duration)
		if err != nil {
			return DiffResult{}, err
		}
		updated := existing
		updated.EndDate = end
		return DiffResult{Updated: &updated, Reason: ReasonRecalcAndDates}, nil
	}

	if !sameDuration(proposed.DurationMonths, current.DurationMonths) {
		end, err := bonus.ResolveEndDate(current.Temporality, existing.AssignedAt, proposed.DurationMonths)
		if err != nil {
			return DiffResult{}, err
		}
		updated := existing
		updated.EndDate = end
		return DiffResult{Updated: &updated, Reason: ReasonRecalcAndDates}, nil
	}

	if proposed.Imponible != current.Imponible {
		updated := existing
		return DiffResult{Updated: &updated, Reason: ReasonRecalcOnly}, nil
	}

	if proposed.Amount != current.Amount {
		updated := existing
		return DiffResult{Updated: &updated, Reason: ReasonRecalcOnly}, nil
	}

	return DiffResult{Reason: ReasonNoChanges}, nil
}

func sameDuration(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
