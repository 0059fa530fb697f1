package app

import (
	"context"
	"log/slog"

	httpapp "github.com/mkrylova/awards-voting/internal/app/http"
	"github.com/mkrylova/awards-voting/internal/config"
	"github.com/mkrylova/awards-voting/internal/events"
	"github.com/mkrylova/awards-voting/internal/handlers"
	"github.com/mkrylova/awards-voting/internal/middleware"
	"github.com/mkrylova/awards-voting/internal/repo/postgres"
	"github.com/mkrylova/awards-voting/internal/services"
)

type App struct {
	HTTPServer *httpapp.App
	Voting     *services.AwardsVoting

	storage   *postgres.Storage
	publisher events.Publisher
}

func NewApp(log *slog.Logger, cfg *config.Config) *App {
	storage, err := postgres.New(cfg.StoragePath)
	if err != nil {
		panic(err)
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}

	votingService := services.NewAwardsVoting(log, storage, storage, storage, storage, storage, publisher)
	votingHandler := handlers.NewVotingHandler(votingService)
	authMiddleware := middleware.NewAuthMiddleware(cfg.Auth.Secret)

	httpApp := httpapp.NewApp(log, cfg.HTTP.Port, votingHandler, authMiddleware.Middleware())

	return &App{
		HTTPServer: httpApp,
		Voting:     votingService,
		storage:    storage,
		publisher:  publisher,
	}
}

func (a *App) Stop(ctx context.Context) error {
	if err := a.HTTPServer.Stop(ctx); err != nil {
		return err
	}
	if err := a.publisher.Close(); err != nil {
		return err
	}
	return a.storage.Close()
}
