package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/geoclub/geodaily-services/internal/geosvc/models"
	log "github.com/sirupsen/logrus"
)

type GameStore struct {
	db *sql.DB
}

func NewGameStore(db *sql.DB) *GameStore {
	return &GameStore{db: db}
}

// Add registers a challenge token. Re-adding an existing game is a no-op,
// never an error.
func (s *GameStore) Add(ctx context.Context, gameID string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO games (game_id) VALUES (?)", gameID)
	if err != nil {
		return fmt.Errorf("failed to add game: %w", err)
	}

	log.Infof("game %s added to the database", gameID)
	return nil
}

// LatestID returns the most recently created game by insertion order, or
// the empty string when no game exists yet.
func (s *GameStore) LatestID(ctx context.Context) (string, error) {
	var gameID string
	err := s.db.QueryRowContext(ctx,
		"SELECT game_id FROM games ORDER BY id DESC LIMIT 1").Scan(&gameID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get latest game: %w", err)
	}

	return gameID, nil
}

// GetByID retrieves a single game row by its challenge token.
func (s *GameStore) GetByID(ctx context.Context, gameID string) (*models.Game, error) {
	game := &models.Game{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, game_id, created_at
		FROM games
		WHERE game_id = ?
	`, gameID).Scan(
		&game.ID,
		&game.GameID,
		&game.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // game not found
		}
		return nil, fmt.Errorf("failed to get game by ID: %w", err)
	}

	return game, nil
}

// MissingIDs returns every game that has no score rows at all. A game
// leaves this list permanently once a single row is recorded for it.
func (s *GameStore) MissingIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT g.game_id
		FROM games g
		LEFT JOIN scores s ON g.game_id = s.game_id
		WHERE s.game_id IS NULL
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get missing games: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan missing game id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
