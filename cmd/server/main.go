package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"showcase/backend/internal/config"
	"showcase/backend/internal/content"
	"showcase/backend/internal/countdown"
	"showcase/backend/internal/db"
	"showcase/backend/internal/events"
	"showcase/backend/internal/handler"
	"showcase/backend/internal/logger"
	"showcase/backend/internal/repository"
	"showcase/backend/internal/router"
	"showcase/backend/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := logger.Init(cfg.LogDevelopment); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("server stopped", err)
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	if !cfg.LogDevelopment {
		gin.SetMode(gin.ReleaseMode)
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := db.RunMigrations(database, cfg.MigrationsDir); err != nil {
		return err
	}

	catalog, err := content.Load(cfg.PostsFile)
	if err != nil {
		return err
	}
	projects, err := content.LoadProjects(cfg.ProjectsFile)
	if err != nil {
		return err
	}

	var blobRepo repository.BlobRepository
	switch cfg.StorageDriver {
	case config.StorageMemory:
		blobRepo = repository.NewMemoryBlobRepository()
	default:
		blobRepo = repository.NewSQLiteBlobRepository(database)
	}
	userRepo := repository.NewUserRepository(database)

	clock := countdown.RealClock{}
	source := countdown.NewCronSource(logger.L())
	hub := events.NewHub(0)
	scheduler := countdown.NewScheduler(clock, source, hub, cfg.TickInterval)

	blogService := service.NewBlogService(blobRepo, catalog, clock, loc)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, blogService)
	countdownService := service.NewCountdownService(blobRepo, scheduler, hub, clock, loc)
	contactService := service.NewContactService(blobRepo, clock)

	source.Start()
	defer source.Stop()
	defer scheduler.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	restored, err := countdownService.Restore(ctx)
	if err != nil {
		return err
	}
	logger.Info("countdown timers restored",
		zap.Int("accounts", restored),
		zap.Int("ticking", scheduler.Active()))

	engine := router.New(authService, router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Countdown: handler.NewCountdownHandler(countdownService),
		Blog:      handler.NewBlogHandler(blogService),
		Contact:   handler.NewContactHandler(contactService),
		Projects:  handler.NewProjectHandler(service.NewProjectService(projects)),
	}, cfg.CORSOrigins)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	// Event streams only return once their subscription ends.
	server.RegisterOnShutdown(hub.Close)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("backend listening",
			zap.String("addr", server.Addr),
			zap.String("storage", cfg.StorageDriver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
