package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/geoclub/geodaily-services/internal/geosvc/models"
)

// The leaderboard queries form a closed set of fixed statements, one per
// scope and sort mode. Ordering clauses are never interpolated from caller
// input. The average is SUM/COUNT on integers, which sqlite truncates; this
// must stay integer division because it decides both sort order and the
// displayed value. Ties in the sort key keep whatever order sqlite returns,
// which is unspecified and must not be relied on.
const (
	singleGameQuery = `
		SELECT p.name,
		       SUM(s.score) AS total,
		       SUM(CASE WHEN s.score = 5000 THEN 1 ELSE 0 END) AS perfect,
		       SUM(CASE WHEN s.score = 0 THEN 1 ELSE 0 END) AS missed
		FROM scores s
		JOIN players p ON p.id = s.player_id
		WHERE s.game_id = ?
		GROUP BY s.player_id
		ORDER BY total DESC`

	allTimeByTotalQuery = `
		SELECT p.name,
		       SUM(s.score) AS total,
		       COUNT(DISTINCT s.game_id) AS games_played,
		       SUM(s.score) / COUNT(DISTINCT s.game_id) AS avg_score,
		       SUM(CASE WHEN s.score = 5000 THEN 1 ELSE 0 END) AS perfect,
		       SUM(CASE WHEN s.score = 0 THEN 1 ELSE 0 END) AS missed
		FROM scores s
		JOIN players p ON p.id = s.player_id
		GROUP BY s.player_id
		ORDER BY total DESC`

	allTimeByAverageQuery = `
		SELECT p.name,
		       SUM(s.score) AS total,
		       COUNT(DISTINCT s.game_id) AS games_played,
		       SUM(s.score) / COUNT(DISTINCT s.game_id) AS avg_score,
		       SUM(CASE WHEN s.score = 5000 THEN 1 ELSE 0 END) AS perfect,
		       SUM(CASE WHEN s.score = 0 THEN 1 ELSE 0 END) AS missed
		FROM scores s
		JOIN players p ON p.id = s.player_id
		GROUP BY s.player_id
		ORDER BY avg_score DESC`

	weekByTotalQuery = `
		SELECT p.name,
		       SUM(s.score) AS total,
		       COUNT(DISTINCT s.game_id) AS games_played,
		       SUM(s.score) / COUNT(DISTINCT s.game_id) AS avg_score,
		       SUM(CASE WHEN s.score = 5000 THEN 1 ELSE 0 END) AS perfect,
		       SUM(CASE WHEN s.score = 0 THEN 1 ELSE 0 END) AS missed
		FROM scores s
		JOIN players p ON p.id = s.player_id
		JOIN games g ON g.game_id = s.game_id
		WHERE date(g.created_at) BETWEEN date(?) AND date(?)
		GROUP BY s.player_id
		ORDER BY total DESC`

	weekByAverageQuery = `
		SELECT p.name,
		       SUM(s.score) AS total,
		       COUNT(DISTINCT s.game_id) AS games_played,
		       SUM(s.score) / COUNT(DISTINCT s.game_id) AS avg_score,
		       SUM(CASE WHEN s.score = 5000 THEN 1 ELSE 0 END) AS perfect,
		       SUM(CASE WHEN s.score = 0 THEN 1 ELSE 0 END) AS missed
		FROM scores s
		JOIN players p ON p.id = s.player_id
		JOIN games g ON g.game_id = s.game_id
		WHERE date(g.created_at) BETWEEN date(?) AND date(?)
		GROUP BY s.player_id
		ORDER BY avg_score DESC`
)

type LeaderboardStore struct {
	db *sql.DB
}

func NewLeaderboardStore(db *sql.DB) *LeaderboardStore {
	return &LeaderboardStore{db: db}
}

// ForGame aggregates one game's rounds per player, highest total first.
// Returns no entries when the game has no recorded scores.
func (s *LeaderboardStore) ForGame(ctx context.Context, gameID string) ([]models.LeaderboardEntry, error) {
	rows, err := s.db.QueryContext(ctx, singleGameQuery, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query game leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.PlayerName, &e.Total, &e.Perfect, &e.Missed); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// AllTime aggregates every recorded game per player. sortByAverage selects
// the truncated per-game average as the sort key instead of the total.
func (s *LeaderboardStore) AllTime(ctx context.Context, sortByAverage bool) ([]models.LeaderboardEntry, error) {
	query := allTimeByTotalQuery
	if sortByAverage {
		query = allTimeByAverageQuery
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query all-time leaderboard: %w", err)
	}
	defer rows.Close()

	return scanAggregated(rows)
}

// Week aggregates games created between monday and friday inclusive. The
// caller computes the window; the store only filters on it.
func (s *LeaderboardStore) Week(ctx context.Context, monday, friday time.Time, sortByAverage bool) ([]models.LeaderboardEntry, error) {
	query := weekByTotalQuery
	if sortByAverage {
		query = weekByAverageQuery
	}

	rows, err := s.db.QueryContext(ctx, query,
		monday.Format("2006-01-02"), friday.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to query week leaderboard: %w", err)
	}
	defer rows.Close()

	return scanAggregated(rows)
}

func scanAggregated(rows *sql.Rows) ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		err := rows.Scan(&e.PlayerName, &e.Total, &e.GamesPlayed, &e.AvgScore, &e.Perfect, &e.Missed)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
