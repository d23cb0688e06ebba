package routes

import (
	"github.com/gin-gonic/gin"

	"tunemates/internal/interfaces/http/handlers"
	"tunemates/internal/interfaces/http/middleware"
)

// UserRouteConfig holds dependencies for user routes.
type UserRouteConfig struct {
	UserHandler     *handlers.UserHandler
	AuthMiddleware  *middleware.AuthMiddleware
	MutationLimiter *middleware.RateLimiter
}

// SetupUserRoutes configures account and profile routes.
func SetupUserRoutes(api *gin.RouterGroup, cfg *UserRouteConfig) {
	users := api.Group("/users")
	{
		users.POST("/register", cfg.MutationLimiter.Limit(), cfg.UserHandler.Register)
		users.POST("/login", cfg.MutationLimiter.Limit(), cfg.UserHandler.Login)

		authed := users.Group("")
		authed.Use(cfg.AuthMiddleware.RequireAuth())
		{
			// Specific named endpoints (must come BEFORE /:id to avoid conflicts)
			authed.GET("/me", cfg.UserHandler.GetMe)
			authed.PATCH("/me", cfg.UserHandler.UpdateMe)
			authed.PUT("/me/password", cfg.UserHandler.ChangePassword)
			authed.DELETE("/me", cfg.UserHandler.DeleteMe)

			authed.GET("", cfg.UserHandler.List)
			authed.GET("/:id", cfg.UserHandler.GetByID)
		}
	}
}
