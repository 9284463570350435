// File: voyago/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voyago/config"
	"voyago/cron"
	"voyago/database"
	destinationRepo "voyago/database/repository/destination"
	waypointRepo "voyago/database/repository/waypoint"
	"voyago/handlers"
	"voyago/routes"
	"voyago/services/generator"
	"voyago/services/planner"
	"voyago/services/profile"
	"voyago/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	destRepo := destinationRepo.NewMongoDestinationRepo()
	wpRepo := waypointRepo.NewMongoWaypointRepo()

	// collaborator clients.
	profileClient := profile.NewHTTPClient(config.AppConfig.ProfileServiceURL)
	generatorClient := generator.NewHTTPClient(config.AppConfig.GeneratorServiceURL)

	// services.
	plannerService := &planner.DefaultPlannerSessionService{
		DestinationRepo:  destRepo,
		WaypointRepo:     wpRepo,
		ProfileClient:    profileClient,
		GeneratorClient:  generatorClient,
		Cache:            utils.GetSessionCacheClient(),
		Expiry:           cron.NewAsynqExpiryScheduler(),
		Debounce:         config.DebounceInterval(),
		SessionTTL:       config.SessionTTL(),
		GeneratorTimeout: config.GeneratorTimeout(),
	}

	cron.InitSessionExpiryWorker(plannerService)

	plannerHandler := handlers.NewPlannerHandler(plannerService, logger)
	routes.RegisterRoutes(router, plannerHandler)

	utils.StartHealthMonitor(utils.HealthTargets{
		Mongo:        database.MongoClient,
		SessionCache: utils.GetSessionCacheClient(),
		ProfileURL:   config.AppConfig.ProfileServiceURL,
		GeneratorURL: config.AppConfig.GeneratorServiceURL,
	})

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
