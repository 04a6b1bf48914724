package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"

	"worklink/services/messaging-api/internal/config"
	"worklink/services/messaging-api/internal/domain/attachment"
	"worklink/services/messaging-api/internal/domain/conversation"
	"worklink/services/messaging-api/internal/domain/inbox"
	"worklink/services/messaging-api/internal/domain/message"
	"worklink/services/messaging-api/internal/infrastructure/database"
	"worklink/services/messaging-api/internal/infrastructure/logger"
	"worklink/services/messaging-api/internal/infrastructure/observability"
	attachmentrepo "worklink/services/messaging-api/internal/infrastructure/repository/attachment"
	conversationrepo "worklink/services/messaging-api/internal/infrastructure/repository/conversation"
	messagerepo "worklink/services/messaging-api/internal/infrastructure/repository/message"
	"worklink/services/messaging-api/internal/infrastructure/storage"
	"worklink/services/messaging-api/internal/infrastructure/userdir"
	"worklink/services/messaging-api/internal/interfaces/httpserver"
)

// @title Messaging API
// @version 1.0
// @description Direct messaging between job posters and workers
// @BasePath /
type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := database.Connect(database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := database.AutoMigrate(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	storageClient, err := newStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize storage")
	}

	conversationRepository := conversationrepo.NewRepository(db)
	messageRepository := messagerepo.NewRepository(db)
	attachmentRepository := attachmentrepo.NewRepository(db)
	directory := userdir.NewClient(cfg, log)

	conversationService := conversation.NewService(conversationRepository, log)
	messageService := message.NewService(conversationRepository, messageRepository, attachmentRepository, log)
	attachmentService := attachment.NewService(cfg, attachmentRepository, storageClient, log)
	inboxService := inbox.NewService(conversationRepository, messageRepository, directory, cfg.PreviewLength, log)

	httpServer := httpserver.New(cfg, log, conversationService, messageService, attachmentService, inboxService, storageClient, db)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func newStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (attachment.Storage, error) {
	if cfg.IsLocalStorage() {
		return storage.NewLocalStorage(cfg, log)
	}
	return storage.NewS3Storage(ctx, cfg, log)
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
