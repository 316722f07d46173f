package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"

	"github.com/rootedtour/checkpoint/internal/ticket"
)

const maxBatchTickets = 100

var prefixRE = regexp.MustCompile(`^[A-Za-z]{1,8}$`)

type generateRequest struct {
	Count  int    `json:"count"`
	Prefix string `json:"prefix"`
}

type generatedTicket struct {
	TicketID string `json:"ticket_id"`
	QRURL    string `json:"qr_url"`
}

// POST /tickets/generate pre-generates a batch of ticket ids with QR
// links for printing at the door. The ids are not inserted; they enter
// the registry only when a registration claims them.
func GenerateTickets(gen ticket.Generator, defaultPrefix string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.Count < 1 || req.Count > maxBatchTickets {
			writeError(w, http.StatusBadRequest, "count must be between 1 and 100")
			return
		}
		prefix := strings.ToUpper(strings.TrimSpace(req.Prefix))
		if prefix == "" {
			prefix = defaultPrefix
		}
		if !prefixRE.MatchString(prefix) {
			writeError(w, http.StatusBadRequest, "prefix must be 1-8 letters")
			return
		}

		out := make([]generatedTicket, 0, req.Count)
		for i := 0; i < req.Count; i++ {
			id := gen.Generate(prefix)
			out = append(out, generatedTicket{
				TicketID: id,
				QRURL:    "/qr/" + id + ".png",
			})
		}
		writeJSON(w, http.StatusCreated, map[string]any{"tickets": out})
	}
}
