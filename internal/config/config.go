package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds every runtime setting the application reads from the
// environment. Values are loaded once in main and passed down by value.
type Config struct {
	HTTPAddr string

	// MySQL connection string (parseTime=true required for time.Time scans)
	MySQLDSN string

	// Redis address for the admin view cache. Empty disables caching.
	RedisAddr string

	// Secret used to sign session tokens.
	JWTSecret string

	// Gemini
	GeminiAPIKey string
	GeminiModel  string

	// Telegram
	TelegramToken string
	// Chat IDs allowed to talk to the store assistant. Everyone else
	// receives a fixed rejection.
	OwnerChatIDs []int64

	// Base URL used when building public links (uploaded images, magic links).
	BaseURL string
}

// Load reads the configuration from environment variables, applying
// development defaults where a missing value is safe.
func Load() Config {
	return Config{
		HTTPAddr:      getenv("HTTP_ADDR", ":8080"),
		MySQLDSN:      os.Getenv("DB_DSN"),
		RedisAddr:     getenv("REDIS_ADDR", ""),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getenv("GEMINI_MODEL", "gemini-1.5-flash"),
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		OwnerChatIDs:  splitChatIDs(os.Getenv("TELEGRAM_OWNER_CHAT_IDS")),
		BaseURL:       getenv("BASE_URL", "http://localhost:8080"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// splitChatIDs parses a comma-separated list of Telegram chat IDs.
// Malformed entries are skipped rather than failing startup.
func splitChatIDs(s string) []int64 {
	parts := strings.Split(s, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t == "" {
			continue
		}
		id, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, id)
	}
	return out
}
