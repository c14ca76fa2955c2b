package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"clinic-booking/internal/auth"
	"clinic-booking/internal/handler"
	"clinic-booking/internal/session"
	"clinic-booking/internal/store"
)

func main() {
	_ = godotenv.Load()

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		log.Fatal("SESSION_SECRET is required")
	}
	addr := env("ADDR", ":8080")
	initLogger(env("LOG_LEVEL", "info"))

	st := store.New()

	// bootstrap admin account
	adminHash, err := auth.HashPassword(env("ADMIN_PASSWORD", "admin123"))
	if err != nil {
		log.Fatalf("hash admin password: %v", err)
	}
	created, err := st.EnsureAdmin(adminHash)
	if err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	if created {
		slog.Info("admin user created", "username", "admin")
	}

	// session revocation: redis when configured, in-process otherwise
	var revoker session.Revoker
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		revoker = session.NewRedisRevoker(redisAddr, os.Getenv("REDIS_PASSWORD"))
		slog.Info("using redis session revocation", "addr", redisAddr)
	} else {
		revoker = session.NewMemoryRevoker()
	}

	h := handler.New(st, revoker, secret)

	srv := &http.Server{
		Addr:    addr,
		Handler: h.Router(),
	}
	go func() {
		slog.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	slog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func initLogger(level string) {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn", "warning":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: l})))
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
