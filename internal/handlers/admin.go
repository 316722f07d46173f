package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rootedtour/checkpoint/internal/registry"
)

// POST /admin/clear wipes the registry. Escape hatch for resetting
// between rehearsal and doors; keep it off any public network.
func ClearAll(reg *registry.Registry, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := reg.ClearAll(); err != nil {
			log.Error().Err(err).Msg("clear failed")
			writeError(w, http.StatusInternalServerError, "clear failed")
			return
		}
		log.Warn().Msg("registry cleared")
		writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
	}
}
