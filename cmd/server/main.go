package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/forumhive/gamehub/internal/config"
	"github.com/forumhive/gamehub/internal/repository/postgres"
	redisrepo "github.com/forumhive/gamehub/internal/repository/redis"
	"github.com/forumhive/gamehub/internal/service/cleanup"
	"github.com/forumhive/gamehub/internal/service/friends"
	"github.com/forumhive/gamehub/internal/session"
	"github.com/forumhive/gamehub/internal/transport/httpapi"
	"github.com/forumhive/gamehub/internal/transport/websocket"
)

func main() {
	log.Println("Starting game session engine...")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.LoadConfig()

	db, err := postgres.InitDB(cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetimeMin)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("Running database migrations...")
	if err := postgres.RunMigrations(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	snapshotRepo := postgres.NewSnapshotRepo(db)
	friendRepo := postgres.NewFriendRepo(db)

	var cache friends.CacheRepository
	redisClient, redisEnabled := redisrepo.InitRedis(cfg.RedisURL, cfg.RedisPassword)
	if redisEnabled {
		defer redisClient.Close()
		cache = redisrepo.NewCache(redisClient)
	}

	friendService := friends.NewService(friendRepo, cache, cfg.FriendCacheTTL)
	connManager := websocket.NewConnectionManager()
	registry := session.NewRegistry(friendService, snapshotRepo, connManager)
	presence := session.NewPresenceTracker()

	cleanupWorker := cleanup.NewWorker(registry, snapshotRepo, cfg.WaitingSessionMaxAge, cfg.SnapshotRetentionDays)
	cleanupWorker.Start()

	wsHandler := websocket.NewHandler(connManager, registry, presence, cfg.JWTSecret)
	roomsHandler := httpapi.NewRoomsHandler(registry)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", wsHandler.HandleWebSocket)
	mux.HandleFunc("/health", httpapi.Health)
	mux.HandleFunc("/api/rooms", roomsHandler.GetRooms)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: mux,
	}

	go func() {
		log.Printf("Server is listening on port %s\n", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Server is shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
