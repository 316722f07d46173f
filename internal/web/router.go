package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/rootedtour/checkpoint/internal/config"
	"github.com/rootedtour/checkpoint/internal/handlers"
	"github.com/rootedtour/checkpoint/internal/registry"
	"github.com/rootedtour/checkpoint/internal/ticket"
)

// Router wires the HTTP surface. All dependencies are passed in
// explicitly; nothing here reads globals.
func Router(reg *registry.Registry, gen ticket.Generator, cfg *config.Config, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handlers.Health)

	// Registration
	r.Post("/register", handlers.Register(reg, log))
	r.Get("/registrations/{ticketID}", handlers.Lookup(reg))
	r.Get("/search", handlers.SearchByName(reg))

	// Check-in: GET shows what a scanned QR points at, POST applies the
	// transition.
	r.Get("/checkin", handlers.CheckinLookup(reg))
	r.Post("/checkin", handlers.Checkin(reg, log))

	// Dashboard & reporting
	r.Get("/stats", handlers.Stats(reg))
	r.Get("/activity", handlers.Activity(reg))
	r.Get("/export.csv", handlers.ExportCSV(reg, log))

	// Ticket artifacts
	r.Get("/qr/{ticketID}.png", handlers.QR(cfg.BaseURL))
	r.Post("/tickets/generate", handlers.GenerateTickets(gen, cfg.TicketPrefix))

	// Administrative escape hatch
	r.Post("/admin/clear", handlers.ClearAll(reg, log))

	return r
}

// requestLogger emits one structured line per request.
func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("elapsed", time.Since(start)).
				Msg("request")
		})
	}
}
