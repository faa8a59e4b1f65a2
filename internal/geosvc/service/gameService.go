package service

import (
	"context"

	"github.com/geoclub/geodaily-services/internal/geosvc/models"
	"github.com/geoclub/geodaily-services/internal/geosvc/store"
)

type GameService struct {
	gameStore *store.GameStore
}

func NewGameService(gameStore *store.GameStore) *GameService {
	return &GameService{gameStore: gameStore}
}

// Register records a freshly created challenge. Safe to call again for the
// same token.
func (s *GameService) Register(ctx context.Context, gameID string) error {
	return s.gameStore.Add(ctx, gameID)
}

// LatestID returns the newest game token, or empty string when none exists.
func (s *GameService) LatestID(ctx context.Context) (string, error) {
	return s.gameStore.LatestID(ctx)
}

func (s *GameService) GetByID(ctx context.Context, gameID string) (*models.Game, error) {
	return s.gameStore.GetByID(ctx, gameID)
}

// MissingIDs lists games that never received any scores, for the fetch
// pipeline to retry.
func (s *GameService) MissingIDs(ctx context.Context) ([]string, error) {
	return s.gameStore.MissingIDs(ctx)
}
