package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rootedtour/checkpoint/internal/models"
	"github.com/rootedtour/checkpoint/internal/registry"
)

type checkinRequest struct {
	TicketID string `json:"ticket_id"`
}

type checkinResponse struct {
	TicketID  string `json:"ticket_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	CheckedIn bool   `json:"checked_in"`
}

// POST /checkin applies the one-way transition. The identifier may be a
// full ticket id or a fragment from a degraded scan; the registry resolves
// it exact-first.
func Checkin(reg *registry.Registry, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req checkinRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		id := strings.TrimSpace(req.TicketID)
		if id == "" {
			writeError(w, http.StatusBadRequest, "ticket_id required")
			return
		}

		res, err := reg.CheckIn(id)
		if err != nil {
			switch {
			case errors.Is(err, registry.ErrTicketNotFound):
				writeError(w, http.StatusNotFound, "ticket not found")
			case errors.Is(err, registry.ErrAlreadyCheckedIn):
				// Expected at a busy door; a warning, not a defect.
				log.Warn().Str("ticket_id", id).Msg("duplicate check-in attempt")
				writeError(w, http.StatusConflict, "already checked in")
			default:
				log.Error().Err(err).Str("ticket_id", id).Msg("check-in failed")
				writeError(w, http.StatusInternalServerError, "check-in failed")
			}
			return
		}

		log.Info().
			Str("ticket_id", res.TicketID).
			Str("attendee", res.FirstName+" "+res.LastName).
			Msg("checked in")
		writeJSON(w, http.StatusOK, checkinResponse{
			TicketID:  res.TicketID,
			FirstName: res.FirstName,
			LastName:  res.LastName,
			CheckedIn: true,
		})
	}
}

type checkinPreview struct {
	registrationView
	Eligible bool `json:"eligible"`
}

// GET /checkin?ticket=... shows what a scanned QR opens. Reports the ticket's
// current state without transitioning it.
func CheckinLookup(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.URL.Query().Get("ticket"))
		if id == "" {
			writeError(w, http.StatusBadRequest, "ticket required")
			return
		}

		rec, err := reg.FindExact(id)
		if errors.Is(err, registry.ErrTicketNotFound) {
			matches, ferr := reg.FindFuzzy(id)
			if ferr != nil {
				writeError(w, http.StatusInternalServerError, "lookup failed")
				return
			}
			if len(matches) != 1 {
				writeError(w, http.StatusNotFound, "ticket not found")
				return
			}
			rec = &matches[0]
		} else if err != nil {
			writeError(w, http.StatusInternalServerError, "lookup failed")
			return
		}

		writeJSON(w, http.StatusOK, checkinPreview{
			registrationView: toView(rec),
			Eligible:         rec.Status == models.StatusRegistered,
		})
	}
}
