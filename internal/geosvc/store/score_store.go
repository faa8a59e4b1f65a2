package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/geoclub/geodaily-services/internal/geosvc/models"
)

type ScoreStore struct {
	db *sql.DB
}

func NewScoreStore(db *sql.DB) *ScoreStore {
	return &ScoreStore{db: db}
}

// AddBatch inserts the given rounds for one game. Rows already present by
// (game, player, round) are silently skipped, so re-ingesting the same
// result sheet is a no-op. Returns the number of rows actually inserted;
// zero means nothing new. The game must have been added first.
func (s *ScoreStore) AddBatch(ctx context.Context, gameID string, rows []models.ScoreRow) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO scores (game_id, player_id, round_number, score)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	var inserted int64
	for _, row := range rows {
		res, err := stmt.ExecContext(ctx, gameID, row.PlayerID, row.Round, row.Score)
		if err != nil {
			return 0, fmt.Errorf("failed to insert score row: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to count inserted rows: %w", err)
		}
		inserted += n
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit scores: %w", err)
	}

	return inserted, nil
}

// CountForGame reports how many score rows a game has.
func (s *ScoreStore) CountForGame(ctx context.Context, gameID string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM scores WHERE game_id = ?", gameID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count scores: %w", err)
	}
	return n, nil
}
