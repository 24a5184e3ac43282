package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"delivery-matching-service/internal/adapters/cache"
	"delivery-matching-service/internal/adapters/repositories"
	"delivery-matching-service/internal/api"
	"delivery-matching-service/internal/config"
	"delivery-matching-service/internal/platform/clock"
	"delivery-matching-service/internal/platform/db"
)

// main is the application composition root.
// It wires concrete adapters (postgres, redis) behind ports and starts
// the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")
	redisAddr := config.Get("REDIS_ADDR", "localhost:6379")
	cacheTTL := time.Duration(config.GetInt("MATCH_CACHE_TTL_SECONDS", 60)) * time.Second

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	pool, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer redisClient.Close()

	announcementRepo := repositories.NewPostgresAnnouncementRepository(pool)
	routeRepo := repositories.NewPostgresRouteRepository(pool)
	matchCache := cache.NewRedisMatchCache(redisClient)

	cfg := config.MatchingFromEnv()
	router := api.NewRouter(announcementRepo, routeRepo, matchCache, clock.System{}, cfg, cacheTTL)

	// Scoring and optimization are CPU-bound; the write timeout bounds a
	// worst-case re-sequencing request.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
