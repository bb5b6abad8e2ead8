//	@title			Pinfold API
//	@version		1.0
//	@description	Backend for Pinfold, an image-sharing app: users own boards, boards hold pins.
//
//	@host		localhost:8080
//	@BasePath	/api/v1
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT Bearer token. Format: **Bearer {token}**

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/pinfold/service/internal/auth"
	"github.com/pinfold/service/internal/board"
	"github.com/pinfold/service/internal/config"
	"github.com/pinfold/service/internal/db"
	"github.com/pinfold/service/internal/media"
	appMiddleware "github.com/pinfold/service/internal/middleware"
	"github.com/pinfold/service/internal/pin"
	"github.com/pinfold/service/internal/storage"
	"github.com/pinfold/service/internal/user"

	_ "github.com/pinfold/service/docs/swagger"
)

func main() {
	cfg := config.Load()

	pool, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	minioStore, err := storage.NewMinioStore(
		cfg.StorageEndpoint,
		cfg.StorageAccessKey,
		cfg.StorageSecretKey,
		cfg.StorageBucket,
		cfg.StorageRegion,
		cfg.StorageUseSSL,
	)
	if err != nil {
		log.Fatalf("object storage init failed: %v", err)
	}
	store := storage.NewSignedURLCache(minioStore)

	processor := media.NewProcessor(cfg.MediaTmpDir)

	// Wire dependencies: repository → service → handler
	userRepo := user.NewPostgresRepository(pool)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	authSvc := auth.NewService(userSvc, cfg)
	authHandler := auth.NewHandler(authSvc)

	boardRepo := board.NewPostgresRepository(pool)
	boardSvc := board.NewService(boardRepo, userSvc)
	boardHandler := board.NewHandler(boardSvc)

	pinRepo := pin.NewPostgresRepository(pool)
	pinSvc := pin.NewService(pinRepo, userSvc, boardSvc, processor, store)
	pinHandler := pin.NewHandler(pinSvc)

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger UI — available at http://localhost:8080/swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth endpoints
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/{id}", userHandler.GetByID)
			r.Get("/{id}/boards", boardHandler.ListByOwner)
		})

		r.Route("/boards", func(r chi.Router) {
			r.Get("/{id}", boardHandler.GetByID)
			r.Get("/{id}/pins", pinHandler.ListByBoard)
			r.With(appMiddleware.RequireAuth(cfg.JWTSecret)).Post("/", boardHandler.Create)
		})

		r.Route("/pins", func(r chi.Router) {
			r.Get("/discover", pinHandler.Discover)
			r.Get("/{id}", pinHandler.GetByID)
			r.With(appMiddleware.RequireAuth(cfg.JWTSecret)).Post("/", pinHandler.Create)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("server listening on :%s (env=%s)", cfg.Port, cfg.AppEnv)
		log.Printf("swagger UI at http://localhost:%s/swagger/", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-quit
	log.Println("shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}

	log.Println("server stopped")
}
