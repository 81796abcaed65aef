// File: calbridge/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"calbridge/config"
	"calbridge/handlers"
	"calbridge/middleware"
	"calbridge/routes"
	"calbridge/services/calcom"
	"calbridge/services/scheduling"
	"calbridge/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	if config.AppConfig.CalComAPIKey == "" {
		logger.Sugar().Fatal("main: CALCOM_API_KEY is required")
	}
	if config.AppConfig.APIAuthToken == "" {
		logger.Sugar().Fatal("main: API_AUTH_TOKEN is required")
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// Upstream gateway, immutable after construction and shared by all
	// requests.
	calClient := calcom.NewClient(calcom.Config{
		BaseURL:        config.AppConfig.CalComBaseURL,
		APIKey:         config.AppConfig.CalComAPIKey,
		APIVersion:     config.AppConfig.CalComAPIVersion,
		ClinicTimeZone: config.AppConfig.ClinicTimeZone,
	})

	schedulingService := &scheduling.DefaultSchedulingService{
		Gateway: calClient,
	}

	toolHandler := handlers.NewToolHandler(schedulingService, config.AppConfig.EnvelopeMode, logger)

	routes.RegisterRoutes(router, toolHandler, config.AppConfig.APIAuthToken)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
