package main

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/reportgate/backend/internal/auth"
	"github.com/reportgate/backend/internal/config"
	"github.com/reportgate/backend/internal/confidence"
	"github.com/reportgate/backend/internal/database"
	"github.com/reportgate/backend/internal/logger"
	"github.com/reportgate/backend/internal/middleware"
	"github.com/reportgate/backend/internal/reviews"
	"github.com/reportgate/backend/internal/rules"
	"github.com/rs/cors"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log, err := logger.New(cfg.Mode)
	if err != nil {
		panic(fmt.Sprintf("Failed to build logger: %v", err))
	}
	defer log.Sync()

	// Initialize database
	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatal("Failed to connect to database", "error", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations", "error", err)
	}

	// Rules are compiled once; the engine is shared by every request
	ruleSet, err := rules.Load(cfg.RulesPath)
	if err != nil {
		log.Fatal("Failed to load rules", "error", err)
	}
	compiled, err := ruleSet.Compile()
	if err != nil {
		log.Fatal("Failed to compile rules", "error", err)
	}
	engine := confidence.NewEngine(compiled)

	// Initialize handlers
	authHandler := auth.NewHandler(db, []byte(cfg.JWTSecret))
	reviewService := reviews.NewService(reviews.NewStore(db), engine, cfg.PublishThreshold, log)
	reviewHandler := reviews.NewHandler(reviewService, log)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/evaluate", reviewHandler.Evaluate).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth([]byte(cfg.JWTSecret)))
	protected.HandleFunc("/auth/me", authHandler.GetCurrentReviewer).Methods("GET")

	// Intake
	protected.HandleFunc("/submissions", reviewHandler.SaveSubmission).Methods("POST")
	protected.HandleFunc("/catalogue/{id}", reviewHandler.UpsertService).Methods("PUT")

	// Reports and review queue
	protected.HandleFunc("/reports", reviewHandler.SubmitReport).Methods("POST")
	protected.HandleFunc("/reports/{id}/evaluate", reviewHandler.Reevaluate).Methods("POST")
	protected.HandleFunc("/reports/{id}/evaluation", reviewHandler.GetEvaluation).Methods("GET")
	protected.HandleFunc("/reviews", reviewHandler.ReviewQueue).Methods("GET")
	protected.HandleFunc("/reviews/{id}/approve", reviewHandler.Approve).Methods("POST")
	protected.HandleFunc("/reviews/{id}/reject", reviewHandler.Reject).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	log.Info("Server starting", "port", cfg.Port, "mode", cfg.Mode, "publish_threshold", cfg.PublishThreshold)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatal("Server failed", "error", err)
	}
}
