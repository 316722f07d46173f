package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rootedtour/checkpoint/internal/registry"
)

// GET /registrations/{ticketID} is an exact lookup; on a miss, any fuzzy
// matches are listed so a station operator can pick the right ticket.
func Lookup(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "ticketID")
		if id == "" {
			http.NotFound(w, r)
			return
		}

		rec, err := reg.FindExact(id)
		if err == nil {
			writeJSON(w, http.StatusOK, toView(rec))
			return
		}
		if !errors.Is(err, registry.ErrTicketNotFound) {
			writeError(w, http.StatusInternalServerError, "lookup failed")
			return
		}

		matches, err := reg.FindFuzzy(id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "lookup failed")
			return
		}
		if len(matches) == 0 {
			writeError(w, http.StatusNotFound, "ticket not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"matches": toViews(matches)})
	}
}

// GET /search?q= is a name search, capped at 10 results.
func SearchByName(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		if q == "" {
			writeError(w, http.StatusBadRequest, "q required")
			return
		}
		regs, err := reg.SearchByName(q)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "search failed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"results": toViews(regs)})
	}
}
