package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	roomapp "tunemates/internal/application/room"
	songapp "tunemates/internal/application/song"
	spotifyapp "tunemates/internal/application/spotify"
	userapp "tunemates/internal/application/user"
	"tunemates/internal/infrastructure/auth"
	"tunemates/internal/infrastructure/config"
	"tunemates/internal/infrastructure/crypto"
	"tunemates/internal/infrastructure/repository"
	"tunemates/internal/infrastructure/spotify"
	"tunemates/internal/interfaces/http/handlers"
	"tunemates/internal/interfaces/http/middleware"
	"tunemates/internal/interfaces/http/routes"
	"tunemates/internal/shared/logger"
)

// Router wires repositories, services, handlers, and middleware into a gin
// engine.
type Router struct {
	engine          *gin.Engine
	cfg             *config.Config
	log             logger.Interface
	healthHandler   *handlers.HealthHandler
	userHandler     *handlers.UserHandler
	roomHandler     *handlers.RoomHandler
	songHandler     *handlers.SongHandler
	spotifyHandler  *handlers.SpotifyHandler
	authMiddleware  *middleware.AuthMiddleware
	ownerMiddleware *middleware.RoomOwnerMiddleware
	globalLimiter   *middleware.RateLimiter
	searchLimiter   *middleware.RateLimiter
	mutationLimiter *middleware.RateLimiter
}

// NewRouter creates the HTTP router with all dependencies.
func NewRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Router, error) {
	engine := gin.New()

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	codeRepo := repository.NewRoomCodeRepository(db)
	songRepo := repository.NewSongRepository(db)
	stateRepo := repository.NewSpotifyStateRepository(db)
	appTokenRepo := repository.NewAppTokenRepository(db)

	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	jwtService := auth.NewJWTService(&cfg.Auth.JWT)

	encryptor, err := crypto.NewEncryptor(cfg.Auth.EncryptKey)
	if err != nil {
		return nil, err
	}

	spotifyClient := spotify.NewClient(log)
	tokenManager := spotify.NewTokenManager(&cfg.Spotify, encryptor, appTokenRepo, userRepo, log)

	userService := userapp.NewService(userRepo, hasher, jwtService, log)
	roomService := roomapp.NewService(roomRepo, codeRepo, hasher, log)
	songService := songapp.NewService(songRepo, roomRepo, spotifyClient, tokenManager, log)
	spotifyService := spotifyapp.NewService(spotifyClient, tokenManager, stateRepo, userRepo, roomRepo, songRepo, log)

	window := time.Minute
	return &Router{
		engine:          engine,
		cfg:             cfg,
		log:             log,
		healthHandler:   handlers.NewHealthHandler(db),
		userHandler:     handlers.NewUserHandler(userService),
		roomHandler:     handlers.NewRoomHandler(roomService),
		songHandler:     handlers.NewSongHandler(songService),
		spotifyHandler:  handlers.NewSpotifyHandler(spotifyService),
		authMiddleware:  middleware.NewAuthMiddleware(jwtService, log),
		ownerMiddleware: middleware.NewRoomOwnerMiddleware(roomRepo, log),
		globalLimiter:   middleware.NewRateLimiter(redisClient, "global", cfg.RateLimit.GlobalPerMinute, window),
		searchLimiter:   middleware.NewRateLimiter(redisClient, "search", cfg.RateLimit.SearchPerMinute, window),
		mutationLimiter: middleware.NewRateLimiter(redisClient, "mutations", cfg.RateLimit.MutationsPerMinute, window),
	}, nil
}

// SetupRoutes configures all HTTP routes.
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.log))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(r.globalLimiter.Limit())

	r.engine.GET("/healthz", r.healthHandler.Check)

	api := r.engine.Group("/api")

	routes.SetupUserRoutes(api, &routes.UserRouteConfig{
		UserHandler:     r.userHandler,
		AuthMiddleware:  r.authMiddleware,
		MutationLimiter: r.mutationLimiter,
	})

	routes.SetupRoomRoutes(api, &routes.RoomRouteConfig{
		RoomHandler:     r.roomHandler,
		SongHandler:     r.songHandler,
		SpotifyHandler:  r.spotifyHandler,
		AuthMiddleware:  r.authMiddleware,
		OwnerMiddleware: r.ownerMiddleware,
		MutationLimiter: r.mutationLimiter,
	})

	routes.SetupSpotifyRoutes(api, &routes.SpotifyRouteConfig{
		SpotifyHandler: r.spotifyHandler,
		AuthMiddleware: r.authMiddleware,
		SearchLimiter:  r.searchLimiter,
	})
}

// Engine exposes the configured gin engine for the HTTP server.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
