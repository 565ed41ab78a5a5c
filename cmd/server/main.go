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

	"devchat/internal/config"
	"devchat/internal/database"
	"devchat/internal/handlers"
	"devchat/internal/middleware"
	"devchat/internal/router"
	"devchat/internal/services"
)

func main() {
	log.Println("🚀 Starting DevChat Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Printf("✓ Environment variables loaded (env=%s)", cfg.Env)

	// ──── Step 2: Initialize LLM Client ────
	provider, err := services.NewProvider(cfg.LLMProvider, cfg.APIKey)
	if err != nil {
		log.Fatalf("✗ LLM client initialization failed: %v", err)
	}
	llmService, err := services.NewLLMService(provider)
	if err != nil {
		log.Fatalf("✗ LLM client initialization failed: %v", err)
	}
	defer llmService.Close()
	log.Printf("✓ LLM client initialized (%s, model %s)", cfg.LLMProvider, provider.Model())

	// ──── Step 3: Initialize Rate Limit Store ────
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second
	var store middleware.WindowStore
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("✗ Redis connection failed: %v", err)
		}
		defer redisClient.Close()
		store = middleware.NewRedisWindowStore(redisClient, window)
		log.Println("✓ Redis connected (shared rate limit counters)")
	} else {
		memStore := middleware.NewMemoryWindowStore(window)
		defer memStore.Close()
		store = memStore
		log.Println("✓ In-memory rate limit counters")
	}
	chatLimiter := middleware.NewRateLimiter(store, cfg.RateLimitRequests)

	// ──── Step 4: Initialize Services & Handlers ────
	chatService := services.NewChatService(llmService)
	chatHandler := handlers.NewChatHandler(chatService)

	// ──── Step 5: Start HTTP Server ────
	r := router.New(chatHandler, chatLimiter, router.Options{
		FrontendURL: cfg.FrontendURL,
		Production:  cfg.IsProduction(),
		TrustProxy:  cfg.TrustProxy,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	if cfg.TrustProxy {
		log.Println("  Client IP: from X-Forwarded-For / X-Real-IP (TRUST_PROXY)")
	}
	if cfg.IsProduction() {
		log.Printf("  CORS: %s only", cfg.FrontendURL)
	} else {
		log.Println("  CORS: any origin (development)")
	}
	log.Printf("✓ DevChat Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  Chat: POST http://localhost:%s/chat (%d req / %s per client)", cfg.Port, cfg.RateLimitRequests, window)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
