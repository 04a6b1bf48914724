//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"worklink/services/messaging-api/internal/config"
	"worklink/services/messaging-api/internal/domain/attachment"
	"worklink/services/messaging-api/internal/domain/conversation"
	"worklink/services/messaging-api/internal/domain/inbox"
	"worklink/services/messaging-api/internal/domain/message"
	"worklink/services/messaging-api/internal/domain/user"
	"worklink/services/messaging-api/internal/infrastructure/database"
	"worklink/services/messaging-api/internal/infrastructure/logger"
	attachmentrepo "worklink/services/messaging-api/internal/infrastructure/repository/attachment"
	conversationrepo "worklink/services/messaging-api/internal/infrastructure/repository/conversation"
	messagerepo "worklink/services/messaging-api/internal/infrastructure/repository/message"
	"worklink/services/messaging-api/internal/infrastructure/storage"
	"worklink/services/messaging-api/internal/infrastructure/userdir"
	"worklink/services/messaging-api/internal/interfaces/httpserver"
)

var messagingSet = wire.NewSet(
	conversationrepo.NewRepository,
	wire.Bind(new(conversation.Repository), new(*conversationrepo.Repository)),
	messagerepo.NewRepository,
	wire.Bind(new(message.Repository), new(*messagerepo.Repository)),
	attachmentrepo.NewRepository,
	wire.Bind(new(attachment.Repository), new(*attachmentrepo.Repository)),
	userdir.NewClient,
	wire.Bind(new(user.Directory), new(*userdir.Client)),
	provideStorage,
	conversation.NewService,
	wire.Bind(new(conversation.Service), new(*conversation.DefaultService)),
	message.NewService,
	wire.Bind(new(message.Service), new(*message.DefaultService)),
	attachment.NewService,
	providePreviewLength,
	inbox.NewService,
	wire.Bind(new(inbox.Service), new(*inbox.DefaultService)),
)

// BuildApplication assembles the messaging API with Wire.
func BuildApplication(ctx context.Context) (*Application, error) {
	wire.Build(
		config.Load,
		logger.New,
		newDatabaseConfig,
		newGormDB,
		messagingSet,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}

func newDatabaseConfig(cfg *config.Config) database.Config {
	return database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	}
}

func newGormDB(ctx context.Context, cfg database.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(ctx, db, log); err != nil {
		return nil, err
	}
	return db, nil
}

func providePreviewLength(cfg *config.Config) int {
	return cfg.PreviewLength
}

// provideStorage creates the appropriate storage backend based on configuration.
func provideStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (attachment.Storage, error) {
	if cfg.IsLocalStorage() {
		return storage.NewLocalStorage(cfg, log)
	}
	return storage.NewS3Storage(ctx, cfg, log)
}
