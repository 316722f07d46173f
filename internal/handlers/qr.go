package handlers

import (
	"net/http"
	"net/url"
	"regexp"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"
)

// Accepts both registered tickets and pre-printed stock that hasn't been
// claimed yet.
var ticketIDRE = regexp.MustCompile(`^[A-Za-z]+-[0-9A-Z]{8}$`)

// GET /qr/{ticketID}.png renders the scannable artifact. The encoded
// URL opens the check-in lookup directly; add ?download=1 for a file
// download.
func QR(baseURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "ticketID")
		if !ticketIDRE.MatchString(id) {
			http.NotFound(w, r)
			return
		}

		target := baseURL + "/checkin?ticket=" + url.QueryEscape(id)

		png, err := qrcode.Encode(target, qrcode.High, 256)
		if err != nil {
			http.Error(w, "failed to generate qr", http.StatusInternalServerError)
			return
		}

		if r.URL.Query().Get("download") == "1" {
			w.Header().Set("Content-Disposition", `attachment; filename="ticket_`+id+`.png"`)
		}
		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(png)
	}
}
