package routes

import (
	"github.com/gin-gonic/gin"

	"tunemates/internal/interfaces/http/handlers"
	"tunemates/internal/interfaces/http/middleware"
)

// SpotifyRouteConfig holds dependencies for Spotify integration routes.
type SpotifyRouteConfig struct {
	SpotifyHandler *handlers.SpotifyHandler
	AuthMiddleware *middleware.AuthMiddleware
	SearchLimiter  *middleware.RateLimiter
}

// SetupSpotifyRoutes configures OAuth linking, token, search, and playlist
// routes. The callback is public because Spotify redirects the browser there;
// search is public so participants can look up tracks without an account.
func SetupSpotifyRoutes(api *gin.RouterGroup, cfg *SpotifyRouteConfig) {
	spotify := api.Group("/spotify")
	{
		spotify.GET("/callback", cfg.SpotifyHandler.Callback)
		spotify.GET("/search", cfg.SearchLimiter.Limit(), cfg.SpotifyHandler.Search)

		authed := spotify.Group("")
		authed.Use(cfg.AuthMiddleware.RequireAuth())
		{
			authed.GET("/authorize", cfg.SpotifyHandler.AuthorizeLink)
			authed.GET("/token", cfg.SpotifyHandler.Token)
			authed.GET("/playlists", cfg.SpotifyHandler.Playlists)
		}
	}
}
