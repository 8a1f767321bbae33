package main

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Financ3/price-drop-notifier/config"
	"github.com/Financ3/price-drop-notifier/database"
	"github.com/Financ3/price-drop-notifier/handlers"
	"github.com/Financ3/price-drop-notifier/middleware"
	"github.com/Financ3/price-drop-notifier/notifier"
	"github.com/Financ3/price-drop-notifier/repository"
	"github.com/Financ3/price-drop-notifier/scheduler"
	"github.com/Financ3/price-drop-notifier/scraper"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using environment variables")
	}
	cfg := config.Load()

	// Initialize database
	if err := database.InitDatabase(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer database.CloseDatabase()

	if err := database.CreateTables(); err != nil {
		log.Fatal().Err(err).Msg("Failed to create tables")
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository()
	subRepo := repository.NewSubscriptionRepository()

	// Initialize scraper
	fetcher := scraper.NewFetcher(cfg.ScraperAPIKey, cfg.FetchTimeout, cfg.RenderTimeout)
	productScraper := scraper.NewProductScraper(fetcher)

	// Initialize mailer and notification fan-out
	mailer := notifier.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SenderEmail)
	events := notifier.NewNotifier(subRepo, mailer, 100)
	events.Start()
	defer events.Stop()

	// Initialize handlers
	h := handlers.NewHandlers(productRepo, subRepo, productScraper, mailer, cfg.BaseURL)

	// Initialize and start the scheduled price checker
	priceChecker := scheduler.NewPriceChecker(cfg.CheckSchedule, productRepo, productScraper, events)
	priceChecker.Start()
	defer priceChecker.Stop()

	// Setup router
	r := mux.NewRouter()

	if cfg.LoggingEnabled {
		r.Use(middleware.LoggingMiddleware)
	}
	if cfg.RateLimitEnabled {
		r.Use(middleware.RateLimitMiddleware(cfg.RateLimitRPS))
	}

	r.HandleFunc("/health", healthCheck).Methods("GET")
	r.HandleFunc("/unsubscribe", h.Unsubscribe).Methods("GET")

	apiV1 := r.PathPrefix("/api/v1").Subrouter()
	apiV1.HandleFunc("/subscribe", h.Subscribe).Methods("POST")
	apiV1.HandleFunc("/products", h.GetProduct).Methods("GET")

	// CORS configuration
	c := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.AllowedOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	addr := cfg.Host + ":" + cfg.Port
	log.Info().Str("addr", addr).Msg("Server starting")
	log.Fatal().Err(http.ListenAndServe(addr, c.Handler(r))).Msg("Server stopped")
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"service":"price-drop-notifier","status":"healthy","api_version":"v1"}`))
}
