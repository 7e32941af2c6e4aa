package class

import "time"

type Class struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	DayOfWeek Weekday   `db:"day_of_week" json:"day_of_week"`
	StartTime ClockTime `db:"start_time" json:"start_time" swaggertype:"string" example:"20:00"`
	EndTime   ClockTime `db:"end_time" json:"end_time" swaggertype:"string" example:"21:30"`
	Capacity  int       `db:"capacity" json:"capacity"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type ClassRequest struct {
	Name      string `json:"name" binding:"required"`
	DayOfWeek string `json:"day_of_week" binding:"required,oneof=SUNDAY MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY SATURDAY"`
	StartTime string `json:"start_time" binding:"required" example:"20:00"`
	EndTime   string `json:"end_time" binding:"required" example:"21:30"`
	Capacity  int    `json:"capacity" binding:"required,min=1"`
}
