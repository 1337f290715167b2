package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"wp-matchmaking/internal/bot"
	"wp-matchmaking/internal/catalog"
	"wp-matchmaking/internal/config"
	"wp-matchmaking/internal/domain"
	"wp-matchmaking/internal/logger"
	"wp-matchmaking/internal/repository"
	redisrepo "wp-matchmaking/internal/repository/redis"
	"wp-matchmaking/internal/repository/sqlite"
	"wp-matchmaking/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("wp-matchmaking", false)
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New("wp-matchmaking", cfg.Debug)

	games, err := catalog.Default()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load game catalog")
	}

	ctx := context.Background()
	repo, cleanup, err := openStorage(ctx, cfg, games)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StorageBackend).Msg("failed to open storage")
	}
	defer cleanup()
	log.Info().Str("backend", cfg.StorageBackend).Msg("storage ready")

	matchmaking := service.NewMatchmakingService(repo, log)

	b, err := bot.New(cfg.Discord.ClientSecret, cfg.Discord.CommandPrefix, matchmaking, games, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create bot")
	}
	if err := b.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start bot")
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	if err := b.Stop(); err != nil {
		log.Error().Err(err).Msg("error closing Discord session")
	}
}

// openStorage builds the beacon repository named by the configuration and
// returns a cleanup function closing its connection.
func openStorage(ctx context.Context, cfg *config.Config, games *domain.Catalog) (repository.BeaconRepository, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendSQLite:
		db, err := sqlite.NewDB(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		if err := sqlite.Migrate(db.DB); err != nil {
			db.Close()
			return nil, nil, err
		}
		return sqlite.NewBeaconRepository(db, games), func() { db.Close() }, nil
	default:
		client, err := redisrepo.Open(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		return redisrepo.NewBeaconRepository(client, games), func() { client.Close() }, nil
	}
}
