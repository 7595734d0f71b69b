package httptransport

import (
	"log/slog"

	"github.com/eduai-labs/eduai-backend/internal/token"
	"github.com/eduai-labs/eduai-backend/internal/transport/http/handler"
	"github.com/eduai-labs/eduai-backend/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(logger *slog.Logger, authHandler *handler.AuthHandler, userHandler *handler.UserHandler, aiHandler *handler.AIHandler, tokens *token.Issuer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	authMW := middleware.Auth(tokens)

	// Public auth routes
	auth := r.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/verify-email", authHandler.SendVerificationCode)
	auth.PATCH("/verify-email", authHandler.VerifyEmail)
	auth.POST("/reset-password", authHandler.SendResetCode)
	auth.PATCH("/reset-password", authHandler.ResetPassword)

	// Protected user routes
	users := r.Group("/users", authMW)
	users.GET("/profile", userHandler.Profile)
	users.PATCH("/profile", userHandler.UpdateProfile)

	// Protected AI routes
	aiRoutes := r.Group("/ai", authMW)
	aiRoutes.POST("/chat", aiHandler.Chat)
	aiRoutes.POST("/generate-exam", aiHandler.GenerateExam)

	return r
}
