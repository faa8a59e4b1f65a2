package models

// PerfectScore is the maximum a single round can award; MissedScore means
// the player never guessed.
const (
	PerfectScore = 5000
	MissedScore  = 0
)

// ScoreRow is one ingested round for one player in one game. The store
// enforces at most one row per (game, player, round).
type ScoreRow struct {
	PlayerID int64 `json:"player_id"`
	Round    int   `json:"round"`
	Score    int   `json:"score"`
}
