package attendance

import "time"

type Method string

const (
	MethodPIN        Method = "PIN"
	MethodQR         Method = "QR"
	MethodManual     Method = "MANUAL"
	MethodQRVerified Method = "QR_VERIFIED"
)

type Attendance struct {
	ID          int       `db:"id" json:"id"`
	AthleteID   int       `db:"athlete_id" json:"athlete_id"`
	ClassID     int       `db:"class_id" json:"class_id"`
	Date        time.Time `db:"date" json:"date"`
	CheckInTime time.Time `db:"check_in_time" json:"check_in_time"`
	Method      Method    `db:"method" json:"method"`
}

type RosterEntry struct {
	AttendanceID int       `db:"id" json:"attendance_id"`
	AthleteID    int       `db:"athlete_id" json:"athlete_id"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	CheckInTime  time.Time `db:"check_in_time" json:"check_in_time"`
	Method       Method    `db:"method" json:"method"`
	WeeklyLimit  *int      `db:"weekly_limit" json:"weekly_limit,omitempty"`
	WeeklyUsed   int       `db:"-" json:"weekly_used"`
	LimitReached bool      `db:"-" json:"limit_reached"`
}

type Roster struct {
	ClassID int           `json:"class_id"`
	Date    string        `json:"date" example:"2024-03-05"`
	Count   int           `json:"count"`
	Entries []RosterEntry `json:"entries"`
}

type DayStat struct {
	Day   time.Time `db:"day" json:"day"`
	Count int       `db:"count" json:"count"`
}

type ClassStat struct {
	ClassID   int    `db:"class_id" json:"class_id"`
	ClassName string `db:"class_name" json:"class_name"`
	Count     int    `db:"count" json:"count"`
}

type Analytics struct {
	From    string      `json:"from"`
	To      string      `json:"to"`
	Total   int         `json:"total"`
	ByDay   []DayStat   `json:"by_day"`
	ByClass []ClassStat `json:"by_class"`
}
