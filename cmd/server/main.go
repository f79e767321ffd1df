package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/dhruv/estate-hub/backend/internal/auth"
	"github.com/dhruv/estate-hub/backend/internal/config"
	"github.com/dhruv/estate-hub/backend/internal/middleware"
	"github.com/dhruv/estate-hub/backend/internal/models"
	"github.com/dhruv/estate-hub/backend/internal/payment"
	"github.com/dhruv/estate-hub/backend/internal/property"
	"github.com/dhruv/estate-hub/backend/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	ctx := context.Background()

	// ── MongoDB ──────────────────────────────────────────────
	// A failed connect is not fatal: the server comes up and every
	// store-backed route answers 503 until the database is reachable.
	mc, err := store.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Printf("mongo unavailable, store-backed routes will return 503: %v", err)
	}
	defer mc.Close(ctx)

	users := store.NewUserStore(mc)
	props := store.NewPropertyStore(mc)
	if mc.Connected() {
		if err := users.EnsureIndexes(ctx); err != nil {
			log.Printf("ensure indexes: %v", err)
		}
	}

	// ── Auth ─────────────────────────────────────────────────
	tokens := auth.NewTokenManager(cfg.JWTSecret)
	authHandler := auth.NewHandler(mc, users, tokens)
	requireAuth := middleware.RequireAuth(mc, users, tokens)
	requireSeller := middleware.RequireRole(models.RoleSeller)

	// ── Handlers ─────────────────────────────────────────────
	propertyHandler := property.NewHandler(props)
	gateway := payment.NewClient(cfg.Razorpay.BaseURL, cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)
	paymentHandler := payment.NewHandler(gateway)

	// ── Router ───────────────────────────────────────────────
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Liveness probe
	r.Get("/api/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"message":%q}`, cfg.PingMessage)
	})

	// Auth routes
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)
		r.With(requireAuth).Get("/profile", authHandler.Profile)
	})

	// Listing browse routes (any authenticated role)
	r.Route("/api/properties", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", propertyHandler.List)
		r.Get("/{id}", propertyHandler.Get)
	})

	// Seller listing management
	r.Route("/api/seller/properties", func(r chi.Router) {
		r.Use(requireAuth, requireSeller)
		r.Get("/", propertyHandler.SellerList)
		r.Post("/", propertyHandler.Create)
		r.Put("/{id}", propertyHandler.Update)
		r.Delete("/{id}", propertyHandler.Delete)
		r.Post("/{id}/images", propertyHandler.AddImages)
	})

	// Order creation is deliberately unauthenticated for now; confirm
	// with the payments team before gating it.
	r.Post("/api/create-order", paymentHandler.CreateOrder)

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("Backend listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	srv.Shutdown(shutCtx)
}
