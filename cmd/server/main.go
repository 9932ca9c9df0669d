package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"gretutor/internal/cache"
	"gretutor/internal/completion"
	"gretutor/internal/completion/gemini"
	"gretutor/internal/completion/openai"
	"gretutor/internal/config"
	"gretutor/internal/handler"
	"gretutor/internal/logger"
	"gretutor/internal/metrics"
	"gretutor/internal/ocr/tesseract"
	"gretutor/internal/router"
	"gretutor/internal/service"
)

// @title GRE Tutor API
// @version 1.0
// @description OCR-backed GRE question tutor.
// @BasePath /
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(logger.OptionsFromConfig(&cfg.Log)); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	metrics.Init()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize completion provider
	completion.RegisterProvider("openai", openai.Factory)
	completion.RegisterProvider("gemini", gemini.Factory)
	llm, err := completion.NewClient(&cfg.Completion)
	if err != nil {
		return fmt.Errorf("failed to initialize completion client: %w", err)
	}
	if cfg.Completion.APIKey == "" {
		log.Warn().Str("provider", cfg.Completion.Provider).Msg("completion API key is empty; tutor requests will fail")
	}

	responses, err := cache.NewLRUCache(cfg.Cache.Capacity)
	if err != nil {
		return fmt.Errorf("failed to initialize response cache: %w", err)
	}
	ocrEngine := tesseract.NewEngine(&cfg.OCR)

	// Initialize services
	tutorSvc := service.NewTutorService(ocrEngine, llm, responses, service.TutorOptions{
		SystemMessage: cfg.Completion.SystemMessage,
		AskMaxTokens:  cfg.Completion.AskMaxTokens,
	})

	// Initialize handlers
	tutorH := handler.NewTutorHandler(tutorSvc, cfg.Server.MaxUploadMB)
	systemH := handler.NewSystemHandler(tutorSvc)
	healthH := handler.NewHealthHandler()

	// Setup router
	r := router.Setup(tutorH, systemH, healthH, router.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		StaticDir:      cfg.Static.Dir,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", cfg.Server.Port).
			Str("provider", cfg.Completion.Provider).
			Str("model", cfg.Completion.Model).
			Int("cache_capacity", cfg.Cache.Capacity).
			Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	log.Info().Msg("shutdown complete")
	return nil
}
