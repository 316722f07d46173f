package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/rootedtour/checkpoint/internal/config"
	"github.com/rootedtour/checkpoint/internal/db"
	"github.com/rootedtour/checkpoint/internal/registry"
	"github.com/rootedtour/checkpoint/internal/ticket"
	"github.com/rootedtour/checkpoint/internal/web"
)

func main() {
	_ = godotenv.Load() // optional .env; real environment wins

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.Load()

	gdb, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("db open")
	}
	log.Info().Str("path", cfg.DBPath).Msg("database ready (sqlite)")

	gen := ticket.UUIDGenerator{}
	reg := registry.New(gdb, gen, cfg.TicketPrefix)

	r := web.Router(reg, gen, cfg, log)

	log.Info().
		Str("addr", cfg.Addr).
		Str("event", cfg.EventName).
		Msg("checkpoint listening")
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Fatal().Err(err).Msg("server")
	}
}
