package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/hamzash/kharcha/internal/auth"
	"github.com/hamzash/kharcha/internal/config"
	"github.com/hamzash/kharcha/internal/database"
	"github.com/hamzash/kharcha/internal/event"
	"github.com/hamzash/kharcha/internal/expense"
	"github.com/hamzash/kharcha/internal/gandu"
	"github.com/hamzash/kharcha/internal/user"
	mw "github.com/hamzash/kharcha/pkg/middleware"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("Connected to database successfully")

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Auth feature
	authRepo := auth.NewRepository(db)
	authService := auth.NewService(authRepo, cfg.JWTSecret)
	authHandler := auth.NewHandler(authService)

	if err := authService.EnsureDefaultPINs(context.Background(), cfg.DefaultAdminPIN, cfg.DefaultUserPIN); err != nil {
		log.Fatalf("Failed to seed default PINs: %v", err)
	}

	// User feature
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	// Event lifecycle feature
	eventRepo := event.NewRepository(db)
	eventService := event.NewService(eventRepo)
	eventHandler := event.NewHandler(eventService)

	// Expense entry feature
	expenseRepo := expense.NewRepository(db)
	expenseService := expense.NewService(expenseRepo)
	expenseHandler := expense.NewHandler(expenseService)

	// Gandu stats feature
	ganduRepo := gandu.NewRepository(db)
	ganduService := gandu.NewService(ganduRepo)
	ganduHandler := gandu.NewHandler(ganduService)

	authenticator := mw.Authenticator(cfg.JWTSecret)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes(authenticator))

		// Everything else requires a valid session
		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Mount("/users", userHandler.Routes())
			r.Mount("/events", eventHandler.Routes())
			r.Mount("/expenses", expenseHandler.Routes())
			r.Mount("/gandus", ganduHandler.Routes())
		})
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
