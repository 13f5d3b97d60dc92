package service

import "time"

// Report/listing periods.
const (
	PeriodToday = "today"
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodAll   = "all"
)

// periodStart returns the inclusive lower bound for a period relative to
// now, or nil when the period covers everything. Unknown values fall back
// to all so a bad query parameter widens the window instead of hiding data.
func periodStart(period string, now time.Time) *time.Time {
	var since time.Time
	switch period {
	case PeriodToday:
		since = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case PeriodWeek:
		since = now.AddDate(0, 0, -7)
	case PeriodMonth:
		since = now.AddDate(0, -1, 0)
	default:
		return nil
	}
	return &since
}
