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
	"github.com/onerom/salestrack/internal/sku"
)

// main is the entrypoint for the administrative read-write service. It owns
// the sales ledger schema, serves the admin CRUD endpoints, and ingests order
// webhooks from the store platform.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting sales admin service")

	// 3. Open the shared store read-write, creating the file if absent
	db, err := database.Open(cfg.DB.Path, database.ModeReadWriteCreate)
	if err != nil {
		log.Error().Err(err).Msg("database open failed")
		fmt.Fprintf(os.Stderr, "database open failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations (this role only)
	if err := database.Migrate(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 4. Wire repositories, services, handlers
	saleRepo := repository.NewSaleRepository(db)
	resolver := sku.NewResolver(sku.DefaultMappings())

	salesSvc := service.NewSalesService(saleRepo)
	webhookSvc := service.NewWebhookService(saleRepo, resolver)

	salesHandler := handler.NewSalesHandler(salesSvc)
	webhookHandler := handler.NewWebhookHandler(webhookSvc)

	// 5. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	// Webhook endpoints stay unguarded: the store platform cannot send an
	// API key, and the pipeline filters its own input.
	router.POST("/api/webhook", webhookHandler.HandleOrderEvent)
	router.POST("/api/woocommerce/webhook", webhookHandler.HandleOrderEvent)

	sales := router.Group("/api/sales")
	sales.Use(middleware.APIKey(cfg.Admin.APIKey))
	{
		sales.GET("/recent", salesHandler.GetRecent)
		sales.POST("", salesHandler.CreateSale)
		sales.PUT("/:id", salesHandler.UpdateSale)
		sales.DELETE("/:id", salesHandler.DeleteSale)
	}

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
