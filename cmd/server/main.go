package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/go-chi/chi/v5"
	"github.com/gratia-app/gratia-backend/internal/config"
	"github.com/gratia-app/gratia-backend/internal/database"
	"github.com/gratia-app/gratia-backend/internal/handlers"
	"github.com/gratia-app/gratia-backend/internal/middleware"
	"github.com/gratia-app/gratia-backend/internal/routes"
	"github.com/gratia-app/gratia-backend/internal/services"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	// Connect to PostgreSQL (user accounts)
	log.Printf("Connecting to PostgreSQL...")
	if err := database.ConnectPostgres(cfg.PostgresURI); err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}
	defer database.DisconnectPostgres()

	// Connect to Redis (sessions, rate limiting, daily quote cache)
	log.Printf("Connecting to Redis...")
	if err := database.ConnectRedis(cfg.RedisURI); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer database.DisconnectRedis()

	// Connect to MongoDB (journal entries)
	log.Printf("Connecting to MongoDB...")
	if err := database.Connect(cfg.MongoURI); err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer database.Disconnect()

	// Ensure the indexes backing owner-scoped sorted entry queries. The list
	// operations degrade to an in-memory sort if these are missing, so a
	// failure here is a warning, not fatal.
	if err := services.EnsureEntryIndexes(context.Background()); err != nil {
		log.Printf("⚠️  WARNING: failed to ensure MongoDB entry indexes: %v", err)
	} else {
		log.Println("✅ MongoDB entry indexes ensured")
	}

	// Provider services: external quote API with bounded wait, and the
	// writing prompts file loaded once here at startup.
	quoteService := services.NewQuoteService(cfg.QuoteAPIURL, cfg.QuoteTimeout)
	promptService := services.NewPromptService(cfg.PromptsFile)
	if promptService.Count() == 0 {
		log.Println("⚠️  WARNING: no writing prompts loaded; the prompt endpoint will serve a fallback message")
	} else {
		log.Printf("✅ Loaded %d writing prompts", promptService.Count())
	}
	handlers.InitProviderServices(quoteService, promptService)

	// Setup router
	r := chi.NewRouter()

	r.Use(middleware.CORS(cfg.AllowedOrigins))

	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity() {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, per-IP rate limiting)")
	}
	r.Use(middleware.RateLimitMiddleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r)

	log.Println("📋 Registered routes:")
	log.Println("  GET  /health")
	log.Println("  POST /api/auth/signup")
	log.Println("  POST /api/auth/signin")
	log.Println("  POST /api/auth/signout")
	log.Println("  GET  /api/auth/me")
	log.Println("  POST /api/entries")
	log.Println("  GET  /api/entries")
	log.Println("  GET  /api/entries/favorites")
	log.Println("  GET  /api/entries/{id}")
	log.Println("  PUT  /api/entries/{id}/favorite")
	log.Println("  GET  /api/today/quote")
	log.Println("  GET  /api/today/prompt")

	log.Printf("🚀 Gratia backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
