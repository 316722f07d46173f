package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rootedtour/checkpoint/internal/registry"
)

type registerRequest struct {
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	EmergencyContact string `json:"emergency_contact"`
	MedicalNotes     string `json:"medical_notes"`
	WorshipTeam      bool   `json:"worship_team"`
	Volunteer        bool   `json:"volunteer"`
	SourceSystem     string `json:"source_system"`
}

// POST /register
func Register(reg *registry.Registry, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		rec, err := reg.Register(registry.Input{
			FirstName:        req.FirstName,
			LastName:         req.LastName,
			Email:            req.Email,
			Phone:            req.Phone,
			EmergencyContact: req.EmergencyContact,
			MedicalNotes:     req.MedicalNotes,
			WorshipTeam:      req.WorshipTeam,
			Volunteer:        req.Volunteer,
			SourceSystem:     req.SourceSystem,
		})
		if err != nil {
			var verr *registry.ValidationError
			switch {
			case errors.As(err, &verr):
				writeError(w, http.StatusBadRequest, verr.Error())
			case errors.Is(err, registry.ErrDuplicateTicket):
				writeError(w, http.StatusConflict, "could not allocate a unique ticket id")
			default:
				log.Error().Err(err).Msg("registration failed")
				writeError(w, http.StatusInternalServerError, "registration failed")
			}
			return
		}

		log.Info().
			Str("ticket_id", rec.TicketID).
			Str("source", rec.SourceSystem).
			Msg("registered")
		writeJSON(w, http.StatusCreated, toView(rec))
	}
}
