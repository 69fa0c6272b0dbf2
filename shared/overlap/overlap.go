// Package overlap decides whether two reservation windows conflict.
//
// Lockers are reserved for whole-day date ranges and use an inclusive test on
// both ends: a rental ending on the 15th still blocks one starting on the 15th.
// Activities share a single calendar and are booked per day as time-of-day
// ranges with a strict test: back-to-back slots (10:00-11:00 after 9:00-10:00)
// do not conflict.
package overlap

import "time"

// DateRange is an inclusive [Start, End] day range.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Conflicts reports whether two inclusive date ranges intersect:
// s1 <= e2 && e1 >= s2.
func (r DateRange) Conflicts(other DateRange) bool {
	return !r.Start.After(other.End) && !r.End.Before(other.Start)
}

// TimeRange is a time-of-day window on a single day.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Conflicts reports whether two same-day time windows intersect:
// start1 < end2 && end1 > start2. Touching endpoints do not conflict.
func (r TimeRange) Conflicts(other TimeRange) bool {
	return r.Start.Before(other.End) && r.End.After(other.Start)
}

// FirstDateConflict returns the index of the first range conflicting with the
// candidate, or -1 when the candidate fits.
func FirstDateConflict(candidate DateRange, existing []DateRange) int {
	for i, r := range existing {
		if candidate.Conflicts(r) {
			return i
		}
	}

	return -1
}

// FirstTimeConflict returns the index of the first window conflicting with the
// candidate, or -1 when the candidate fits. Callers are expected to pre-filter
// the windows to the candidate's day.
func FirstTimeConflict(candidate TimeRange, existing []TimeRange) int {
	for i, r := range existing {
		if candidate.Conflicts(r) {
			return i
		}
	}

	return -1
}
