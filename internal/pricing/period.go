package pricing

import "time"

const secondsPerDay = 24 * 60 * 60

// Period is the half-open day range [Start, End). Only the civil date of each
// bound matters; time of day and zone offset are ignored.
type Period struct {
	Start time.Time
	End   time.Time
}

// Days returns the number of whole days in the period. It is negative when
// End precedes Start.
func (p Period) Days() int {
	return int(DayNumber(p.End) - DayNumber(p.Start))
}

// DayNumber returns the number of days between 1970-01-01 and t's calendar date.
func DayNumber(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay
}
