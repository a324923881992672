package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"picsync/backend/internal/config"
	"picsync/backend/internal/eventparser"
	"picsync/backend/internal/http/handlers"
	"picsync/backend/internal/http/middleware"
	"picsync/backend/internal/integrations"
	"picsync/backend/internal/logging"
	"picsync/backend/internal/rate"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, cleanup, err := logging.New(cfg.Logging, nil)
	if err != nil {
		log.Fatalf("log error: %v", err)
	}
	defer func() {
		_ = cleanup()
	}()
	logger = logger.With("service", "api")
	slog.SetDefault(logger)

	pipeline := eventparser.DefaultPipeline()

	var ocr handlers.TextRecognizer
	if vision := integrations.NewVisionClient(cfg.Vision); vision != nil {
		ocr = vision
	} else {
		logger.Warn("vision_disabled", "reason", "VISION_API_KEY is empty")
	}

	var archive handlers.ImageStore
	if cfg.S3.Bucket != "" {
		store, err := integrations.NewImageArchive(cfg.S3)
		if err != nil {
			logger.Error("s3 error", "error", err)
			os.Exit(1)
		}
		archive = store
	}

	h := handlers.New(pipeline, ocr, archive, cfg, logger)
	limiter := rate.NewWindowLimiter(cfg.RatePerMinute, time.Minute)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(cfg.Vision.Timeout + cfg.AI.Timeout + 15*time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", h.Health)
	r.Post("/auth/token", h.IssueToken)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		r.Use(middleware.RateLimitMiddleware(limiter))
		r.Post("/process-image", h.ProcessImage)
		r.Post("/process-clipboard", h.ProcessClipboard)
		r.Post("/process-text", h.ProcessText)
	})

	if cfg.StaticDir != "" {
		index := filepath.Join(cfg.StaticDir, "index.html")
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, index)
		})
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("api_listening",
			"addr", cfg.HTTPAddr,
			"env", cfg.Env,
			"vision", ocr != nil,
			"ai", cfg.AI.APIKey != "",
			"auth", cfg.JWTSecret != "",
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutdown", "service", "api")
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
