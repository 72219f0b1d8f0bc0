// Package clock centralizes date normalization. Dates that participate in
// day-granularity comparisons are pinned to local midday so that timezone
// conversions can never shift them across a day boundary.
package clock

import "time"

// AtMidday returns the same calendar day at 12:00:00 in loc.
func AtMidday(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 12, 0, 0, 0, loc)
}

// Today returns the current calendar day at local midday.
func Today(loc *time.Location) time.Time {
	return AtMidday(time.Now(), loc)
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
