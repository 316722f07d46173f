package handlers

import (
	"time"

	"github.com/rootedtour/checkpoint/internal/models"
	"github.com/rootedtour/checkpoint/internal/services"
)

// registrationView is the JSON shape of a registration across all read
// endpoints.
type registrationView struct {
	TicketID         string     `json:"ticket_id"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone,omitempty"`
	EmergencyContact string     `json:"emergency_contact,omitempty"`
	MedicalNotes     string     `json:"medical_notes,omitempty"`
	WorshipTeam      bool       `json:"worship_team"`
	Volunteer        bool       `json:"volunteer"`
	Status           string     `json:"status"`
	SourceSystem     string     `json:"source_system"`
	RegistrationTime time.Time  `json:"registration_time"`
	CheckinTime      *time.Time `json:"checkin_time,omitempty"`
	QRURL            string     `json:"qr_url"`
}

func toView(reg *models.Registration) registrationView {
	return registrationView{
		TicketID:         reg.TicketID,
		FirstName:        reg.FirstName,
		LastName:         reg.LastName,
		Email:            reg.Email,
		Phone:            services.FormatPhone(reg.Phone),
		EmergencyContact: reg.EmergencyContact,
		MedicalNotes:     reg.MedicalNotes,
		WorshipTeam:      reg.WorshipTeam,
		Volunteer:        reg.Volunteer,
		Status:           reg.Status,
		SourceSystem:     reg.SourceSystem,
		RegistrationTime: reg.RegistrationTime,
		CheckinTime:      reg.CheckinTime,
		QRURL:            "/qr/" + reg.TicketID + ".png",
	}
}

func toViews(regs []models.Registration) []registrationView {
	out := make([]registrationView, 0, len(regs))
	for i := range regs {
		out = append(out, toView(&regs[i]))
	}
	return out
}
