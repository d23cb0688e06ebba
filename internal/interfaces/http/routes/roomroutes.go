package routes

import (
	"github.com/gin-gonic/gin"

	"tunemates/internal/interfaces/http/handlers"
	"tunemates/internal/interfaces/http/middleware"
)

// RoomRouteConfig holds dependencies for room and song routes.
type RoomRouteConfig struct {
	RoomHandler     *handlers.RoomHandler
	SongHandler     *handlers.SongHandler
	SpotifyHandler  *handlers.SpotifyHandler
	AuthMiddleware  *middleware.AuthMiddleware
	OwnerMiddleware *middleware.RoomOwnerMiddleware
	MutationLimiter *middleware.RateLimiter
}

// SetupRoomRoutes configures room management, share code, and song routes.
// Participant-facing routes (join, redeem, propose) are public and gated by
// the room password or a share code instead of an account.
func SetupRoomRoutes(api *gin.RouterGroup, cfg *RoomRouteConfig) {
	rooms := api.Group("/rooms")
	{
		// Public participant routes
		rooms.POST("/slug/:slug", cfg.MutationLimiter.Limit(), cfg.RoomHandler.Join)
		rooms.POST("/codes/redeem", cfg.MutationLimiter.Limit(), cfg.RoomHandler.RedeemCode)
		rooms.POST("/:id/songs", cfg.MutationLimiter.Limit(), cfg.SongHandler.Propose)

		authed := rooms.Group("")
		authed.Use(cfg.AuthMiddleware.RequireAuth())
		{
			authed.POST("", cfg.RoomHandler.Create)
			authed.GET("", cfg.RoomHandler.ListMine)

			// Owner-scoped routes (must own the room in :id)
			owned := authed.Group("/:id")
			owned.Use(cfg.OwnerMiddleware.RequireRoomOwner())
			{
				owned.GET("", cfg.RoomHandler.GetByID)
				owned.PATCH("", cfg.RoomHandler.Update)
				owned.PUT("/password", cfg.RoomHandler.ChangePassword)
				owned.DELETE("", cfg.RoomHandler.Delete)

				owned.POST("/codes", cfg.RoomHandler.IssueCode)
				owned.GET("/codes", cfg.RoomHandler.ListCodes)
				owned.DELETE("/codes/:code_id", cfg.RoomHandler.DeleteCode)

				owned.GET("/songs", cfg.SongHandler.ListByRoom)
				owned.POST("/songs/:song_id/refuse", cfg.SongHandler.Refuse)
				owned.POST("/songs/:song_id/approve", cfg.SpotifyHandler.Approve)
			}
		}
	}
}
