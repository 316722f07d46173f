package handlers

import (
	"net/http"

	"github.com/rootedtour/checkpoint/internal/registry"
)

const (
	recentRegistrations = 10
	recentCheckins      = 5
)

// GET /stats returns the dashboard snapshot, recomputed on every request.
func Stats(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := reg.Stats()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "stats failed")
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}
}

// GET /activity returns the latest registrations and check-ins for the live
// panels.
func Activity(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		regs, err := reg.Recent(recentRegistrations)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "activity failed")
			return
		}
		checkins, err := reg.RecentCheckins(recentCheckins)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "activity failed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"recent_registrations": toViews(regs),
			"recent_checkins":      toViews(checkins),
		})
	}
}

// GET /healthz
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
