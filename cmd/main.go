package main

import (
	"context"
	"fmt"
	"os"

	"github.com/raagrecording/raagrecording-backend/internal/data/repos"
	"github.com/raagrecording/raagrecording-backend/internal/db"
	"github.com/raagrecording/raagrecording-backend/internal/http/handlers"
	"github.com/raagrecording/raagrecording-backend/internal/http/middleware"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/envutil"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/logger"
	"github.com/raagrecording/raagrecording-backend/internal/realtime"
	"github.com/raagrecording/raagrecording-backend/internal/realtime/bus"
	"github.com/raagrecording/raagrecording-backend/internal/server"
	"github.com/raagrecording/raagrecording-backend/internal/services"
)

func main() {
	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up repos...")
	userRepo := repos.NewUserRepo(thePG, log)
	raagRepo := repos.NewRaagRepo(thePG, log)
	shabadRepo := repos.NewShabadRepo(thePG, log)
	sessionRepo := repos.NewRecordingSessionRepo(thePG, log)
	trackRepo := repos.NewTrackRepo(thePG, log)
	narratorRecordingRepo := repos.NewNarratorRecordingRepo(thePG, log)
	mixedTrackRepo := repos.NewMixedTrackRepo(thePG, log)
	finalCompositionRepo := repos.NewFinalCompositionRepo(thePG, log)
	approvalRepo := repos.NewApprovalRepo(thePG, log)
	communicationRepo := repos.NewCommunicationRepo(thePG, log)

	// Realtime: hub always; redis bus when configured, so decisions made on
	// one instance reach clients connected to another.
	log.Info("Setting up SSE hub...")
	sseHub := realtime.NewSSEHub(log)

	var emitter services.SSEEmitter = &services.HubEmitter{Hub: sseHub}
	if envutil.String("REDIS_ADDR", "") != "" {
		sseBus, err := bus.NewRedisBus(log)
		if err != nil {
			log.Fatal("Redis bus init failed", "error", err)
		}
		defer sseBus.Close()
		if err := sseBus.StartForwarder(context.Background(), sseHub.Broadcast); err != nil {
			log.Fatal("Redis bus forwarder failed", "error", err)
		}
		emitter = &services.RedisEmitter{Bus: sseBus}
	}

	// Services
	log.Info("Setting up services...")
	routingTable, err := services.LoadRoutingTable()
	if err != nil {
		log.Fatal("Routing table load failed", "error", err)
	}
	approvalNotifier := services.NewApprovalNotifier(emitter)
	commNotifier := services.NewCommunicationNotifier(emitter)

	authService, err := services.NewAuthService(log, userRepo)
	if err != nil {
		log.Fatal("Auth service init failed", "error", err)
	}
	userService := services.NewUserService(log, userRepo)
	shabadService := services.NewShabadService(log, shabadRepo, raagRepo)
	approvalService := services.NewApprovalService(
		thePG,
		log,
		approvalRepo,
		trackRepo,
		narratorRecordingRepo,
		mixedTrackRepo,
		finalCompositionRepo,
		routingTable,
		approvalNotifier,
	)
	recordingService := services.NewRecordingService(thePG, log, sessionRepo, trackRepo, approvalRepo, approvalService, approvalNotifier)
	intakeService := services.NewIntakeService(thePG, log, mixedTrackRepo, narratorRecordingRepo, finalCompositionRepo, approvalRepo, approvalService, approvalNotifier)
	communicationService := services.NewCommunicationService(log, communicationRepo, commNotifier)

	// Audio storage is optional in local development.
	var fileHandler *handlers.FileHandler
	bucketService, err := services.NewBucketService(log)
	if err != nil {
		log.Warn("Bucket service unavailable; audio upload disabled", "error", err)
	} else {
		fileHandler = handlers.NewFileHandler(bucketService)
	}

	// Handlers
	log.Info("Setting up handlers...")
	healthHandler := handlers.NewHealthHandler(thePG)
	authHandler := handlers.NewAuthHandler(authService, userService)
	userHandler := handlers.NewUserHandler(userService)
	shabadHandler := handlers.NewShabadHandler(shabadService)
	recordingHandler := handlers.NewRecordingHandler(recordingService, approvalService)
	approvalHandler := handlers.NewApprovalHandler(approvalService, intakeService)
	communicationHandler := handlers.NewCommunicationHandler(communicationService)
	realtimeHandler := handlers.NewRealtimeHandler(log, sseHub)

	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	router := server.NewRouter(server.RouterConfig{
		Log:                  log,
		AuthMiddleware:       authMiddleware,
		HealthHandler:        healthHandler,
		AuthHandler:          authHandler,
		UserHandler:          userHandler,
		ShabadHandler:        shabadHandler,
		RecordingHandler:     recordingHandler,
		ApprovalHandler:      approvalHandler,
		CommunicationHandler: communicationHandler,
		FileHandler:          fileHandler,
		RealtimeHandler:      realtimeHandler,
	})

	port := envutil.String("PORT", "8080")
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server failed", "error", err)
	}
}
