package models

import (
	"time"
)

// Game represents the games table in the database. The game id is the
// opaque challenge token issued by the provider; rows are immutable once
// inserted.
type Game struct {
	ID        int64     `json:"id"`
	GameID    string    `json:"game_id"`
	CreatedAt time.Time `json:"created_at"`
}
