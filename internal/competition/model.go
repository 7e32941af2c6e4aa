package competition

import "time"

type EntryStatus string

const (
	EntryRegistered EntryStatus = "registered"
	EntryWithdrawn  EntryStatus = "withdrawn"
)

type Competition struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Location  string    `db:"location" json:"location"`
	EventDate time.Time `db:"event_date" json:"event_date"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Entry struct {
	ID            int         `db:"id" json:"id"`
	CompetitionID int         `db:"competition_id" json:"competition_id"`
	AthleteID     int         `db:"athlete_id" json:"athlete_id"`
	Category      string      `db:"category" json:"category"`
	Status        EntryStatus `db:"status" json:"status"`
	CreatedAt     time.Time   `db:"created_at" json:"created_at"`
}

type EntryWithAthlete struct {
	Entry
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
}

type CompetitionRequest struct {
	Name      string `json:"name" binding:"required,max=200" example:"Open de Madrid"`
	Location  string `json:"location" binding:"max=200"`
	EventDate string `json:"event_date" binding:"required,datetime=2006-01-02" example:"2024-06-15"`
}

type EntryRequest struct {
	AthleteID int    `json:"athlete_id" binding:"required,min=1"`
	Category  string `json:"category" binding:"max=100" example:"-70kg"`
}
