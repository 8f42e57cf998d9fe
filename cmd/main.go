package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/gmiller1004/workhaven-server/internal/auth"
	"github.com/gmiller1004/workhaven-server/internal/cloudsync"
	"github.com/gmiller1004/workhaven-server/internal/db"
	"github.com/gmiller1004/workhaven-server/internal/discovery"
	"github.com/gmiller1004/workhaven-server/internal/env"
	"github.com/gmiller1004/workhaven-server/internal/graceful"
	"github.com/gmiller1004/workhaven-server/internal/handlers"
	"github.com/gmiller1004/workhaven-server/internal/middleware"
	"github.com/gmiller1004/workhaven-server/internal/notify"
	"github.com/gmiller1004/workhaven-server/internal/storage"
)

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func main() {
	env.LoadEnv()

	client, err := db.ConnectMongo()
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Errorf("Failed to disconnect from MongoDB: %v", err)
		}
	}()
	log.Info("Connected to MongoDB")

	database := client.Database(env.GetEnv("MONGO_DB", "workhaven"))
	spots := &db.MongoSpotCollection{Collection: database.Collection("spots")}
	photos := &db.MongoPhotoCollection{Collection: database.Collection("photos")}
	ratings := &db.MongoRatingCollection{Collection: database.Collection("ratings")}
	users := &db.MongoUserCollection{Collection: database.Collection("users")}
	syncLogs := &db.MongoSyncLogCollection{Collection: database.Collection("sync_logs")}

	authService, err := auth.NewService()
	if err != nil {
		log.Fatalf("Failed to create auth service: %v", err)
	}

	// Object storage and MQTT are optional; without them the server still
	// serves spots, it just refuses sync and photo uploads.
	var s3 *storage.S3Service
	if svc, err := storage.NewS3Service(); err != nil {
		log.Warnf("Object storage unavailable, cloud sync and photo uploads disabled: %v", err)
	} else {
		if err := svc.EnsureBucket(context.Background(), ""); err != nil {
			log.Fatalf("Failed to ensure bucket: %v", err)
		}
		s3 = svc
	}

	var notifier cloudsync.Notifier
	if mq, err := notify.NewMQTTNotifier("workhaven-server"); err != nil {
		log.Warnf("Change notifications disabled: %v", err)
	} else {
		notifier = mq
		defer mq.Close()
	}

	var engine handlers.Pusher
	var assets handlers.AssetStore
	if s3 != nil {
		engine = cloudsync.NewEngine(spots, syncLogs, s3, notifier)
		assets = s3
	}

	authHandler := handlers.NewAuthHandler(authService, users)
	spotsHandler := handlers.NewSpotsHandler(spots, ratings, photos, assets)
	syncHandler := handlers.NewSyncHandler(engine, spots)
	discoverHandler := handlers.NewDiscoverHandler(discovery.NewClient())

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", authHandler.Login)
	mux.HandleFunc("/api/auth/register", authHandler.Register)
	mux.HandleFunc("/api/auth/profile", authHandler.GetProfile)
	mux.HandleFunc("/api/spots", spotsHandler.HandleSpots)
	mux.HandleFunc("/api/spots/", spotsHandler.HandleSpotByID)
	mux.HandleFunc("/api/sync/push", syncHandler.HandlePush)
	mux.HandleFunc("/api/sync/changes", syncHandler.HandleChanges)
	mux.HandleFunc("/api/discover", discoverHandler.HandleDiscover)
	mux.HandleFunc("/health", healthHandler)

	authMiddleware := middleware.NewAuthMiddleware(authService)
	rateLimiter := middleware.NewRateLimitMiddleware()
	handler := rateLimiter.RateLimit(100, 60)(authMiddleware.Authenticate(mux))

	port := env.GetEnv("PORT", "8080")
	server := &http.Server{
		Addr:    ":" + port,
		Handler: handler,
	}

	ctx, cancel := graceful.Context(context.Background())
	defer cancel()

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Errorf("Server shutdown error: %v", err)
		}
	}()

	log.Infof("HTTP server listening on :%s", port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("HTTP server error: %v", err)
	}
	log.Info("Server stopped")
}
