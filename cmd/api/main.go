package main

import (
	"context"
	"log"

	"github.com/adliharahap/OffmodeStore-sub001/internal/ai"
	"github.com/adliharahap/OffmodeStore-sub001/internal/auth"
	"github.com/adliharahap/OffmodeStore-sub001/internal/bot"
	"github.com/adliharahap/OffmodeStore-sub001/internal/cache"
	"github.com/adliharahap/OffmodeStore-sub001/internal/config"
	"github.com/adliharahap/OffmodeStore-sub001/internal/database"
	"github.com/adliharahap/OffmodeStore-sub001/internal/handlers"
	"github.com/adliharahap/OffmodeStore-sub001/internal/middleware"
	"github.com/adliharahap/OffmodeStore-sub001/internal/routes"
	"github.com/joho/godotenv"
)

func main() {
	// --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}
	cfg := config.Load()

	if cfg.JWTSecret == "" {
		log.Fatal("CRITICAL ERROR: JWT_SECRET environment variable is not set.")
	}
	if cfg.GeminiAPIKey == "" {
		log.Fatal("CRITICAL ERROR: GEMINI_API_KEY environment variable is not set.")
	}

	// --- Database Connection ---
	db, err := database.OpenDB(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// --- View Cache (optional) ---
	viewCache := cache.New(cfg.RedisAddr)

	// --- AI Service ---
	aiService, err := ai.NewService(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, db)
	if err != nil {
		log.Fatalf("Failed to initialize AI service: %v", err)
	}

	// --- Telegram Bot (optional) ---
	var tgBot *bot.Bot
	if cfg.TelegramToken != "" {
		tgBot, err = bot.New(cfg.TelegramToken, cfg.OwnerChatIDs, aiService)
		if err != nil {
			log.Fatalf("Failed to initialize Telegram bot: %v", err)
		}
	} else {
		log.Println("WARNING: TELEGRAM_BOT_TOKEN not set, Telegram webhook disabled.")
	}

	// --- Session store & Access Gate ---
	sessions := &auth.Store{DB: db, Secret: []byte(cfg.JWTSecret)}
	gate := middleware.NewGate(sessions, sessions)

	// --- Application Setup ---
	app := &handlers.Handlers{
		DB:        db,
		Cache:     viewCache,
		AIService: aiService,
		Sessions:  sessions,
		Roles:     sessions,
		JWTSecret: []byte(cfg.JWTSecret),
		BaseURL:   cfg.BaseURL,
	}

	// --- Router Setup ---
	router := routes.SetupRouter(app, gate, tgBot)

	// --- Start Server ---
	log.Printf("Starting Offmode Store API server on %s...", cfg.HTTPAddr)
	if err := router.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
