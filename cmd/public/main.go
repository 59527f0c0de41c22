package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/onerom/salestrack/internal/config"
	"github.com/onerom/salestrack/internal/database"
	"github.com/onerom/salestrack/internal/handler"
	"github.com/onerom/salestrack/internal/middleware"
	"github.com/onerom/salestrack/internal/repository"
	"github.com/onerom/salestrack/internal/service"
)

// main is the entrypoint for the public read-only reporting service. It
// shares the sales ledger file with the admin service but never holds write
// intent on it.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting sales reporting service")

	// 3. Open the shared store read-only. Schema creation belongs to the
	// admin service; this role fails closed on any write attempt.
	db, err := database.Open(cfg.DB.Path, database.ModeReadOnly)
	if err != nil {
		log.Error().Err(err).Msg("database open failed")
		fmt.Fprintf(os.Stderr, "database open failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 4. Wire repository, service, handler
	saleRepo := repository.NewSaleRepository(db)
	salesSvc := service.NewSalesService(saleRepo)
	reportHandler := handler.NewReportHandler(salesSvc)

	// 5. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	router.Use(middleware.RequestLogger())

	router.GET("/api/sales/total", reportHandler.GetTotal)
	router.GET("/api/sales/by-type", reportHandler.GetBreakdown)

	// 6. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 7. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 8. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
