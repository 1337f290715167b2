// Package service implements the matchmaking operations on top of a beacon
// repository.
package service

import (
	"context"

	"github.com/rs/zerolog"

	"wp-matchmaking/internal/domain"
	"wp-matchmaking/internal/repository"
)

// matchmakingService implements domain.Matchmaking
type matchmakingService struct {
	repo   repository.BeaconRepository
	logger zerolog.Logger
}

// NewMatchmakingService creates a new Matchmaking instance
func NewMatchmakingService(repo repository.BeaconRepository, logger zerolog.Logger) domain.Matchmaking {
	return &matchmakingService{
		repo:   repo,
		logger: logger,
	}
}

// Add stores the beacon and returns everyone now waiting for the same game
func (m *matchmakingService) Add(ctx context.Context, beacon domain.Beacon) ([]domain.Beacon, error) {
	if err := m.repo.Add(ctx, []domain.Beacon{beacon}); err != nil {
		m.logger.Error().Err(err).
			Str("user_id", beacon.UserID).
			Str("game", beacon.GameName).
			Msg("failed to add beacon")
		return nil, err
	}

	m.logger.Info().
		Str("user_id", beacon.UserID).
		Str("game", beacon.GameName).
		Str("platform", beacon.Platform).
		Int("minutes", beacon.MinutesAvailable).
		Msg("beacon added")

	return m.repo.ListForGame(ctx, beacon)
}

// List returns all active beacons
func (m *matchmakingService) List(ctx context.Context) ([]domain.Beacon, error) {
	beacons, err := m.repo.List(ctx)
	if err != nil {
		m.logger.Error().Err(err).Msg("failed to list beacons")
		return nil, err
	}
	return beacons, nil
}

// ListForGame returns the active beacons for the sample's game
func (m *matchmakingService) ListForGame(ctx context.Context, sample domain.Beacon) ([]domain.Beacon, error) {
	beacons, err := m.repo.ListForGame(ctx, sample)
	if err != nil {
		m.logger.Error().Err(err).
			Str("game", sample.GameName).
			Msg("failed to list beacons for game")
		return nil, err
	}
	return beacons, nil
}

// Stop ends every beacon of the sample's user
func (m *matchmakingService) Stop(ctx context.Context, sample domain.Beacon) (bool, error) {
	stopped, err := m.repo.StopByUserID(ctx, sample)
	if err != nil {
		m.logger.Error().Err(err).
			Str("user_id", sample.UserID).
			Msg("failed to stop beacons")
		return false, err
	}

	m.logger.Info().
		Str("user_id", sample.UserID).
		Bool("was_waiting", stopped).
		Msg("beacons stopped")

	return stopped, nil
}
