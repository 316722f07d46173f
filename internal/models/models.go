package models

import "time"

// Status values for a registration. The transition is one-way:
// registered -> checked_in, never back.
const (
	StatusRegistered = "registered"
	StatusCheckedIn  = "checked_in"
)

// Registration is the sole durable entity: one attendee, one ticket.
type Registration struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	TicketID  string `gorm:"uniqueIndex;not null"` // e.g. RWT-3F9A01BC
	FirstName string `gorm:"not null"`
	LastName  string `gorm:"not null"`
	Email     string `gorm:"not null"`
	Phone     string

	EmergencyContact string
	MedicalNotes     string

	// Category flags, reporting segmentation only.
	WorshipTeam bool `gorm:"default:false"`
	Volunteer   bool `gorm:"default:false"`

	Status           string `gorm:"default:registered"`
	RegistrationTime time.Time
	CheckinTime      *time.Time // nil until checked in, set exactly once
	SourceSystem     string     `gorm:"default:manual"` // manual | mobile | import
}
