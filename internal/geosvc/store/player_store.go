package store

import (
	"context"
	"database/sql"
	"fmt"
)

type PlayerStore struct {
	db *sql.DB
}

func NewPlayerStore(db *sql.DB) *PlayerStore {
	return &PlayerStore{db: db}
}

// Upsert creates the player on first sight and refreshes the display name on
// every later call (latest name wins). Returns the stable internal id.
func (s *PlayerStore) Upsert(ctx context.Context, accountID, name string) (int64, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO players (account_id, name)
		VALUES (?, ?)
		ON CONFLICT(account_id) DO UPDATE SET name = excluded.name
	`, accountID, name)
	if err != nil {
		return 0, fmt.Errorf("could not upsert player: %w", err)
	}

	// Always query for the id; LastInsertId is unreliable with ON CONFLICT.
	var playerID int64
	err = s.db.QueryRowContext(ctx,
		"SELECT id FROM players WHERE account_id = ?", accountID).Scan(&playerID)
	if err != nil {
		return 0, fmt.Errorf("could not read back player id: %w", err)
	}

	return playerID, nil
}
