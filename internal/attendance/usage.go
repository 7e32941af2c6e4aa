package attendance

import "time"

// Usage is the advisory view of how much of a plan an athlete has consumed.
// Nothing in the check-in path blocks on it.
type Usage struct {
	WeeklyUsed     int  `json:"weekly_used"`
	WeeklyLimit    *int `json:"weekly_limit,omitempty"`
	LimitReached   bool `json:"limit_reached"`
	TotalUsed      int  `json:"total_used"`
	TotalAllowance *int `json:"total_allowance,omitempty"`
}

// WeekBounds returns [Monday 00:00, next Monday 00:00) in loc for the week
// containing ref.
func WeekBounds(ref time.Time, loc *time.Location) (time.Time, time.Time) {
	local := ref.In(loc)
	offset := (int(local.Weekday()) + 6) % 7 // days since Monday
	start := time.Date(local.Year(), local.Month(), local.Day()-offset, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 7)
}

// CalendarDay pins the calendar date of d, as written, to midnight in loc.
// Dates parsed from YYYY-MM-DD come back as UTC midnight and must not be
// shifted into the neighbouring day by a zone conversion.
func CalendarDay(d time.Time, loc *time.Location) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
}

func limitReached(used int, limit *int) bool {
	return limit != nil && used >= *limit
}
