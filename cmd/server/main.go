package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/studenthq/enroll/internal/auth"
	"github.com/studenthq/enroll/internal/blobstore"
	"github.com/studenthq/enroll/internal/config"
	"github.com/studenthq/enroll/internal/database"
	postgresrepo "github.com/studenthq/enroll/internal/repository/postgres"
	"github.com/studenthq/enroll/internal/service"
	"github.com/studenthq/enroll/internal/transport/http/handlers"
	"github.com/studenthq/enroll/internal/transport/http/middleware"
)

func main() {
	cfg := config.MustLoad()
	log := setupLogger(cfg.Env)

	// Database
	if err := database.Migrate(cfg); err != nil {
		log.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	pool, err := database.Connect(cfg)
	if err != nil {
		log.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	log.Info("connected to database", "host", cfg.DBHost, "name", cfg.DBName)

	// Blob store
	var blobs blobstore.Store
	var diskStore *blobstore.DiskStore
	switch cfg.UploadDriver {
	case "s3":
		blobs, err = blobstore.NewS3Store(context.Background(), cfg)
	default:
		diskStore, err = blobstore.NewDiskStore(cfg.UploadDir)
		blobs = diskStore
	}
	if err != nil {
		log.Error("blob store init failed", "driver", cfg.UploadDriver, "error", err)
		os.Exit(1)
	}

	// Repositories
	studentRepo := postgresrepo.NewStudentRepo(pool)

	// Core components
	hasher := auth.NewPasswordHasher(auth.DefaultArgon2Params())
	tokens := auth.NewTokenManager(cfg.JWTSecret)

	// Services
	authService := service.NewAuthService(studentRepo, hasher, tokens)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, blobs, log)

	// Auth middleware
	authOnly := middleware.Auth(tokens)

	// Routes
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.HandleFunc("POST /signup", authHandler.Signup)
	mux.HandleFunc("POST /signin", authHandler.Signin)
	mux.Handle("GET /api/me", authOnly(http.HandlerFunc(authHandler.Me)))

	// Disk-stored photos are served straight off the filesystem.
	if diskStore != nil {
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(diskStore.Dir()))))
	}

	// Everything unmatched falls through to here.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "Route not found"}`))
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:      middleware.CORS(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server started", "addr", server.Addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}

func setupLogger(env string) *slog.Logger {
	if env == "prod" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
