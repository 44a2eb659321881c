package tips

import "time"

// =============================================================================
// PERIOD - Inclusive date range for aggregation
// =============================================================================

// Period is an inclusive [Start, End] date range. The "this week" and
// "this month" views are Periods derived from a single date.
type Period struct {
	Start Date
	End   Date
}

// Contains returns true if the date is within the period [Start, End].
func (p Period) Contains(d Date) bool {
	return d.AfterOrEqual(p.Start) && d.BeforeOrEqual(p.End)
}

func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}

// NewPeriod validates that end does not precede start.
func NewPeriod(start, end Date) (Period, error) {
	if end.Before(start) {
		return Period{}, ErrInvalidRange
	}
	return Period{Start: start, End: end}, nil
}

// =============================================================================
// CALENDAR HELPERS
// =============================================================================

// WeekBounds returns the Monday-to-Sunday week containing d.
func WeekBounds(d Date) Period {
	// time.Weekday has Sunday = 0; shift so Monday = 0.
	offset := (int(d.Weekday()) + 6) % 7
	monday := d.AddDays(-offset)
	return Period{Start: monday, End: monday.AddDays(6)}
}

// MonthBounds returns the first-to-last calendar day of d's month.
func MonthBounds(d Date) Period {
	first := NewDate(d.Year(), d.Month(), 1)
	last := Date{Time: time.Date(d.Year(), d.Month()+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)}
	return Period{Start: first, End: last}
}
