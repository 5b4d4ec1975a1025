package cronexpr

import "time"

// maxIterations bounds the next-run search so that schedules with no
// real calendar intersection (e.g. Feb 30) fail instead of looping.
const maxIterations = 10000

// Matches reports whether an instant belongs to every field set. Day of
// month and day of week must BOTH match: restricted pairs are
// intersected, not unioned as classic cron does.
func (s *Schedule) Matches(t time.Time) bool {
	return contains(s.Seconds, t.Second()) &&
		contains(s.Minutes, t.Minute()) &&
		contains(s.Hours, t.Hour()) &&
		contains(s.DaysOfMonth, t.Day()) &&
		contains(s.Months, int(t.Month())) &&
		contains(s.DaysOfWeek, int(t.Weekday()))
}

// NextN computes up to count fire times strictly after now, in now's
// location. Fewer than count results means the iteration cap was hit.
func (s *Schedule) NextN(now time.Time, count int) []time.Time {
	loc := now.Location()

	// Start from the instant after now, rounded to the granularity the
	// expression cares about.
	var current time.Time
	if s.HasSeconds {
		current = time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), now.Minute(), now.Second(), 0, loc).Add(time.Second)
	} else {
		current = time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), now.Minute(), 0, 0, loc).Add(time.Minute)
	}

	runs := make([]time.Time, 0, count)
	for iterations := 0; len(runs) < count && iterations < maxIterations; iterations++ {
		if s.Matches(current) {
			runs = append(runs, current)
			if s.HasSeconds {
				current = current.Add(time.Second)
			} else {
				current = current.Add(time.Minute)
			}
			continue
		}
		current = s.advance(current)
	}

	return runs
}

// advance moves an instant to the next candidate by bumping the
// earliest failing field to its next valid value and resetting every
// smaller-granularity field to its minimum.
func (s *Schedule) advance(t time.Time) time.Time {
	loc := t.Location()

	if !contains(s.Months, int(t.Month())) {
		next, wrapped := nextValue(s.Months, int(t.Month()))
		year := t.Year()
		if wrapped {
			year++
		}
		return time.Date(year, time.Month(next), 1, s.Hours[0], s.Minutes[0], s.Seconds[0], 0, loc)
	}

	if !contains(s.DaysOfMonth, t.Day()) || !contains(s.DaysOfWeek, int(t.Weekday())) {
		d := t.AddDate(0, 0, 1)
		return time.Date(d.Year(), d.Month(), d.Day(), s.Hours[0], s.Minutes[0], s.Seconds[0], 0, loc)
	}

	if !contains(s.Hours, t.Hour()) {
		next, wrapped := nextValue(s.Hours, t.Hour())
		d := t
		if wrapped {
			d = t.AddDate(0, 0, 1)
		}
		return time.Date(d.Year(), d.Month(), d.Day(), next, s.Minutes[0], s.Seconds[0], 0, loc)
	}

	if !contains(s.Minutes, t.Minute()) {
		next, wrapped := nextValue(s.Minutes, t.Minute())
		d := t
		if wrapped {
			d = t.Add(time.Hour)
		}
		return time.Date(d.Year(), d.Month(), d.Day(), d.Hour(), next, s.Seconds[0], 0, loc)
	}

	next, wrapped := nextValue(s.Seconds, t.Second())
	d := t
	if wrapped {
		d = t.Add(time.Minute)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), d.Hour(), d.Minute(), next, 0, loc)
}

// nextValue returns the first set value strictly greater than current,
// wrapping to the first value when none remains.
func nextValue(values []int, current int) (int, bool) {
	for _, v := range values {
		if v > current {
			return v, false
		}
	}
	return values[0], true
}
