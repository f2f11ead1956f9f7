package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/raagrecording/raagrecording-backend/internal/domain"
	"github.com/raagrecording/raagrecording-backend/internal/http/handlers"
	"github.com/raagrecording/raagrecording-backend/internal/http/middleware"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/envutil"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log                  *logger.Logger
	AuthMiddleware       *middleware.AuthMiddleware
	HealthHandler        *handlers.HealthHandler
	AuthHandler          *handlers.AuthHandler
	UserHandler          *handlers.UserHandler
	ShabadHandler        *handlers.ShabadHandler
	RecordingHandler     *handlers.RecordingHandler
	ApprovalHandler      *handlers.ApprovalHandler
	CommunicationHandler *handlers.CommunicationHandler
	FileHandler          *handlers.FileHandler
	RealtimeHandler      *handlers.RealtimeHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(cfg.Log))

	origins := envutil.String("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5173")
	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(origins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	auth := router.Group("/api/auth")
	{
		auth.POST("/register", cfg.AuthHandler.Register)
		auth.POST("/login", cfg.AuthHandler.Login)
	}

	// Protected
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	protected.GET("/api/auth/me", cfg.AuthHandler.Me)

	users := protected.Group("/api/users")
	{
		users.GET("", cfg.UserHandler.List)
		users.GET("/role/:role", cfg.UserHandler.ByRole)
		users.GET("/:userId", cfg.UserHandler.Get)
		users.PUT("/:userId", cfg.AuthMiddleware.RequireRole(domain.RoleAdmin), cfg.UserHandler.Update)
		users.DELETE("/:userId", cfg.AuthMiddleware.RequireRole(domain.RoleAdmin), cfg.UserHandler.Deactivate)
	}

	shabads := protected.Group("/api/shabads")
	{
		shabads.POST("", cfg.ShabadHandler.Create)
		shabads.GET("", cfg.ShabadHandler.List)
		shabads.GET("/raags/all", cfg.ShabadHandler.Raags)
		shabads.POST("/raags", cfg.AuthMiddleware.RequireRole(domain.RoleAdmin), cfg.ShabadHandler.CreateRaag)
		shabads.GET("/raag/:raagId", cfg.ShabadHandler.ByRaag)
		shabads.GET("/:shabadId", cfg.ShabadHandler.Get)
		shabads.PUT("/:shabadId", cfg.ShabadHandler.Update)
		shabads.GET("/:shabadId/progress", cfg.ShabadHandler.Progress)
	}

	recordings := protected.Group("/api/recordings")
	{
		recordings.POST("/sessions", cfg.RecordingHandler.CreateSession)
		recordings.GET("/sessions", cfg.RecordingHandler.ListSessions)
		recordings.GET("/sessions/:sessionId", cfg.RecordingHandler.GetSession)
		recordings.PUT("/sessions/:sessionId", cfg.RecordingHandler.UpdateSession)
		recordings.POST("/sessions/:sessionId/tracks", cfg.RecordingHandler.AddTrack)
		recordings.GET("/sessions/:sessionId/tracks", cfg.RecordingHandler.SessionTracks)
		recordings.GET("/tracks", cfg.RecordingHandler.ListTracks)
		recordings.DELETE("/tracks/:trackId", cfg.AuthMiddleware.RequireRole(domain.RoleAdmin), cfg.RecordingHandler.DeleteTrack)
		recordings.GET("/pending-approvals", cfg.RecordingHandler.PendingApprovals)
	}

	approvals := protected.Group("/api/approvals")
	{
		approvals.GET("/pending/:approverId", cfg.ApprovalHandler.Pending)
		approvals.POST("/decision", cfg.AuthMiddleware.RequireRole(domain.RoleApprover), cfg.ApprovalHandler.Decide)
		approvals.PUT("/assign/:approvalId", cfg.AuthMiddleware.RequireRole(domain.RoleApprover), cfg.ApprovalHandler.Assign)
		approvals.GET("/history/:itemType/:itemId", cfg.ApprovalHandler.History)
		approvals.GET("/statistics", cfg.ApprovalHandler.Statistics)
		approvals.POST("/mixed-track", cfg.AuthMiddleware.RequireRole(domain.RoleMixer), cfg.ApprovalHandler.SubmitMixedTrack)
		approvals.POST("/narrator-recording", cfg.AuthMiddleware.RequireRole(domain.RoleNarrator), cfg.ApprovalHandler.SubmitNarratorRecording)
		approvals.POST("/final-composition", cfg.AuthMiddleware.RequireRole(domain.RoleMixer), cfg.ApprovalHandler.SubmitFinalComposition)
		approvals.DELETE("/item/:itemType/:itemId", cfg.AuthMiddleware.RequireRole(domain.RoleAdmin), cfg.ApprovalHandler.DeleteArtifact)
	}

	comms := protected.Group("/api/communications")
	{
		comms.POST("/send", cfg.CommunicationHandler.Send)
		comms.GET("/user/:userId", cfg.CommunicationHandler.Inbox)
		comms.GET("/thread/:itemType/:itemId", cfg.CommunicationHandler.Thread)
		comms.PUT("/read/:communicationId", cfg.CommunicationHandler.MarkRead)
	}

	if cfg.FileHandler != nil {
		protected.POST("/api/files/audio", cfg.FileHandler.UploadAudio)
	}

	protected.GET("/sse/stream", cfg.RealtimeHandler.Stream)
	protected.POST("/sse/subscribe", cfg.RealtimeHandler.Subscribe)
	protected.POST("/sse/unsubscribe", cfg.RealtimeHandler.Unsubscribe)

	return router
}
