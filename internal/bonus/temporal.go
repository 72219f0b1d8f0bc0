package bonus

import (
	"time"

	bonuserrors "github.com/HikkizZ/Project-GPS-2025-sub001/internal/bonus/errors"
)

// Temporality classes of a bonus.
const (
	TemporalityPermanent = "permanente"
	TemporalityOneOff    = "puntual"
	TemporalityRecurrent = "recurrente"
)

var Temporalities = []string{
	TemporalityPermanent,
	TemporalityOneOff,
	TemporalityRecurrent,
}

func ValidTemporality(v string) bool {
	for _, t := range Temporalities {
		if t == v {
			return true
		}
	}
	return false
}

// ResolveEndDate computes an assignment's end date from its temporality class
// and optional duration. startDate must already be normalized to local midday
// (clock.AtMidday) so month arithmetic cannot drift across a day boundary.
//
//   - permanente: open-ended, always nil.
//   - puntual: startDate plus the duration, or one month of grace when the
//     duration is absent or non-positive.
//   - recurrente: startDate plus the duration, open-ended without one.
//
// An unrecognized temporality is rejected; callers treat it as a state
// conflict and refuse the assignment.
func ResolveEndDate(temporality string, startDate time.Time, durationMonths *int) (*time.Time, error) {
	months := 0
	if durationMonths != nil {
		months = *durationMonths
	}

	switch temporality {
	case TemporalityPermanent:
		return nil, nil
	case TemporalityOneOff:
		if months <= 0 {
			months = 1
		}
		end := startDate.AddDate(0, months, 0)
		return &end, nil
	case TemporalityRecurrent:
		if months <= 0 {
			return nil, nil
		}
		end := startDate.AddDate(0, months, 0)
		return &end, nil
	default:
		return nil, bonuserrors.ErrUnknownTemporality
	}
}
