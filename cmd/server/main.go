package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"shopassist/internal/config"
	"shopassist/internal/database"
	"shopassist/internal/handlers"
	"shopassist/internal/router"
	"shopassist/internal/session"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
		TimestampFormat: time.RFC3339Nano,
	})
	log.SetOutput(os.Stdout)

	log.Info("🚀 Starting shopassist gateway...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}
	log.Info("✓ Environment variables loaded")

	// ──── Step 2: Choose Session Store ────
	sessionTTL := time.Duration(cfg.SessionTTLMins) * time.Minute
	var store session.Store
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("✗ Redis connection failed: %v", err)
		}
		defer redisClient.Close()
		store = session.NewRedisStore(redisClient, sessionTTL)
		log.Info("✓ Redis session store connected")
	} else {
		store = session.NewMemoryStore(sessionTTL)
		log.Info("✓ In-memory session store ready")
	}

	// ──── Step 3: Initialize Handlers ────
	httpClient := &http.Client{Timeout: time.Duration(cfg.ChatTimeoutSecs) * time.Second}
	chatHandler := handlers.NewChatHandler(cfg.ChatbotServiceURL, httpClient, store, cfg.HistoryWindow)

	// ──── Step 4: Start HTTP Server ────
	r := router.New(log, chatHandler, cfg.AllowedOriginsList(), sessionTTL, cfg.RateLimitPerMin)

	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		// The write timeout must outlast the upstream chat timeout.
		WriteTimeout: time.Duration(cfg.ChatTimeoutSecs+15) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Infof("✓ Gateway ready on http://localhost:%s", cfg.Port)
	log.Infof("  Chat: POST http://localhost:%s/api/chat", cfg.Port)
	log.Infof("  Assistant service: %s", cfg.ChatbotServiceURL)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
