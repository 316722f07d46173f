package config

import "os"

// Config is resolved once in main and passed down explicitly; nothing
// reads the environment after startup.
type Config struct {
	Addr         string
	DBPath       string
	BaseURL      string // prefix for the URLs encoded into ticket QR codes
	TicketPrefix string
	EventName    string
}

// Load builds the configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Addr:         getEnv("ADDR", ":8080"),
		DBPath:       getEnv("DB_PATH", "checkpoint.db"),
		BaseURL:      getEnv("BASE_URL", "http://localhost:8080"),
		TicketPrefix: getEnv("TICKET_PREFIX", "RWT"),
		EventName:    getEnv("EVENT_NAME", "Rooted World Tour"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
