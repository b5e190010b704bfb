package main

import (
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/nats-io/nats.go"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"Lumen/internal/api/middleware"
	"Lumen/internal/api/routes"
	"Lumen/internal/auth"
	"Lumen/internal/config"
	"Lumen/internal/core/posts"
	"Lumen/internal/core/users"
	postgresRepo "Lumen/internal/db/postgres"
	redisCache "Lumen/internal/db/redis"
	"Lumen/internal/events"
	"Lumen/internal/ws"
)

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	log.Println("Connected to database")

	// Run migrations
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("Failed to set goose dialect:", err)
	}

	if err := goose.Up(db, "internal/db/migrations"); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	log.Println("Migrations completed successfully")

	// Optional infrastructure: the service runs against Postgres alone
	// when Redis and NATS are not configured
	var feedCache posts.FeedCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		feedCache = redisCache.NewFeedCache(rdb, redisCache.DefaultFeedTTL, logger)
		log.Println("Feed cache enabled:", cfg.RedisAddr)
	}

	hub := ws.NewHub(logger)
	go hub.Run()

	publishers := []posts.EventPublisher{ws.NewPublisher(hub)}
	if cfg.NatsURL != "" {
		nc, err := nats.Connect(cfg.NatsURL)
		if err != nil {
			log.Fatal("Failed to connect to NATS:", err)
		}
		defer nc.Close()
		publishers = append(publishers, events.NewNatsPublisher(nc))
		log.Println("Event publishing enabled:", cfg.NatsURL)
	}
	eventPublisher := events.NewFanout(publishers...)

	// Initialize repositories and services
	userRepo := postgresRepo.NewUserRepository(db)
	postRepo := postgresRepo.NewPostRepository(db)

	hasher := auth.NewArgon2Hasher(auth.DefaultArgon2Params)
	tokens := auth.NewTokenIssuer([]byte(cfg.JWTSecret), "lumen", time.Duration(cfg.JWTTTLHours)*time.Hour)

	userService := users.NewUserService(userRepo, hasher)
	postService := posts.NewPostService(postRepo, users.NewDirectory(userRepo), eventPublisher, feedCache, logger)

	authMiddleware := middleware.NewAuthMiddleware(tokens)

	r := chi.NewRouter()

	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRequests, time.Duration(cfg.RateLimitWindow)*time.Second)
	r.Use(rateLimiter.Middleware)

	routes.RegisterAuthRoutes(r, userService, tokens, authMiddleware)
	routes.RegisterUserRoutes(r, userService, authMiddleware)
	routes.RegisterPostRoutes(r, postService, authMiddleware)
	routes.RegisterWebSocketRoutes(r, hub)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	fmt.Printf("Lumen starting on port %s\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}
