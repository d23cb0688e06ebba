package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"tunemates/internal/application/cleanup"
	"tunemates/internal/infrastructure/config"
	"tunemates/internal/infrastructure/database"
	"tunemates/internal/infrastructure/migration"
	"tunemates/internal/infrastructure/repository"
	"tunemates/internal/infrastructure/scheduler"
	httpRouter "tunemates/internal/interfaces/http"
	"tunemates/internal/shared/biztime"
	"tunemates/internal/shared/logger"
)

var (
	env         string
	autoMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the tunemates HTTP server with the specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Automatically run database migrations on startup (not recommended for production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfg.Server.Mode = mapEnvToGinMode(env)

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log := logger.NewLogger()

	log.Infow("starting server",
		"environment", env,
		"auto_migrate", autoMigrate)

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if autoMigrate {
		if env == "production" {
			log.Warnw("auto-migration is enabled in production environment - this is not recommended")
		}
		manager := migration.NewManager(env)
		if err := manager.Migrate(database.Get(), migration.AutoMigrateModels()...); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Warnw("redis unreachable, rate limiting degrades to allow-all", "error", err)
	}

	router, err := httpRouter.NewRouter(database.Get(), redisClient, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}
	router.SetupRoutes()

	schedulerManager, err := startSweeps(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to start sweep scheduler: %w", err)
	}

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.Engine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting",
			"address", cfg.Server.GetAddr(),
			"mode", cfg.Server.Mode)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	if err := schedulerManager.Stop(); err != nil {
		log.Errorw("failed to stop sweep scheduler", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

// startSweeps registers the background cleanup jobs and starts the scheduler.
func startSweeps(cfg *config.Config, log logger.Interface) (*scheduler.SchedulerManager, error) {
	db := database.Get()
	songRepo := repository.NewSongRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	codeRepo := repository.NewRoomCodeRepository(db)
	stateRepo := repository.NewSpotifyStateRepository(db)
	appTokenRepo := repository.NewAppTokenRepository(db)

	manager, err := scheduler.NewSchedulerManager(log)
	if err != nil {
		return nil, err
	}

	err = manager.RegisterSweepJobs(&cfg.Cleanup,
		cleanup.NewProposalSweepJob(songRepo, log),
		cleanup.NewRoomSweepJob(roomRepo, log),
		cleanup.NewRoomCodeSweepJob(codeRepo, log),
		cleanup.NewSpotifyStateSweepJob(stateRepo, log),
		cleanup.NewAppTokenSweepJob(appTokenRepo, log),
	)
	if err != nil {
		return nil, err
	}

	manager.Start()

	return manager, nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
