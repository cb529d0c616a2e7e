package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "gigboard/internal/app"
	"gigboard/internal/bootstrap"
	"gigboard/internal/platform/rabbitmq"
	"gigboard/internal/repository"
	"gigboard/internal/session"
	"gigboard/internal/transport/http/handler"
	"gigboard/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	sessionTTL := time.Duration(app.Config.Auth.SessionTTLMinute) * time.Minute
	sessionStore := session.NewRedisStore(app.Redis, sessionTTL)

	userRepo := repository.NewUserRepository(app.MySQL)
	postRepo := repository.NewPostRepository(app.MySQL)
	auditRepo := repository.NewAuditLogRepository(app.MySQL)
	auditPublisher := rabbitmq.NewAuditPublisher(app.MQConn, app.Config.RabbitMQ.AuditQueue)

	authService := appsvc.NewAuthService(
		userRepo,
		sessionStore,
		app.Config.Auth.TokenSecret,
		sessionTTL,
	)
	postService := appsvc.NewPostService(postRepo, auditPublisher)
	auditService := appsvc.NewAuditService(auditRepo)

	authHandler := handler.NewAuthHandler(authService)
	postHandler := handler.NewPostHandler(postService)
	activityHandler := handler.NewActivityHandler(auditService)

	requireSession := middleware.SessionAuth(app.Config.Auth.TokenSecret, sessionStore)

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/logout", requireSession, authHandler.Logout)
	authGroup.GET("/me", requireSession, authHandler.Me)
	authGroup.PUT("/profile", requireSession, authHandler.UpdateProfile)
	authGroup.GET("/activity", requireSession, activityHandler.Recent)

	postGroup := api.Group("/posts")
	postGroup.Use(requireSession)
	postGroup.GET("/edit-post/:id", postHandler.Edit)
	postGroup.POST("", postHandler.Create)
	postGroup.PUT("/:id", postHandler.Update)
	postGroup.DELETE("/:id", postHandler.Delete)

	return router
}
