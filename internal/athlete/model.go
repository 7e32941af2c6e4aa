package athlete

import (
	"time"

	"github.com/lib/pq"
)

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusInactive  Status = "INACTIVE"
	StatusSuspended Status = "SUSPENDED"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive || s == StatusSuspended
}

type Athlete struct {
	ID        int            `db:"id" json:"id"`
	FirstName string         `db:"first_name" json:"first_name"`
	LastName  string         `db:"last_name" json:"last_name"`
	Email     *string        `db:"email" json:"email,omitempty"`
	Phone     *string        `db:"phone" json:"phone,omitempty"`
	PIN       *string        `db:"pin" json:"-"`
	Status    Status         `db:"status" json:"status"`
	Tags      pq.StringArray `db:"tags" json:"tags" swaggertype:"array,string"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

func (a *Athlete) FullName() string {
	if a.LastName == "" {
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}

func (a *Athlete) HasPIN() bool {
	return a.PIN != nil && *a.PIN != ""
}

type AthleteRequest struct {
	FirstName string   `json:"first_name" binding:"required,max=100"`
	LastName  string   `json:"last_name" binding:"max=100"`
	Email     *string  `json:"email" binding:"omitempty,email"`
	Phone     *string  `json:"phone" binding:"omitempty,max=30"`
	PIN       *string  `json:"pin" binding:"omitempty,len=4,numeric" example:"1234"`
	Tags      []string `json:"tags"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required,oneof=ACTIVE INACTIVE SUSPENDED"`
}

type ListFilter struct {
	Status Status
	Tag    string
	Search string
}
