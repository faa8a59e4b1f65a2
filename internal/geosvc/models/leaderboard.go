package models

// Scope selects the aggregation window for a leaderboard query.
type Scope int

const (
	// ScopeGame aggregates a single game's rounds.
	ScopeGame Scope = iota
	// ScopeAllTime aggregates every recorded game.
	ScopeAllTime
	// ScopeWeek aggregates games created in the current Monday-Friday window.
	ScopeWeek
)

// LeaderboardEntry is one aggregated player line. GamesPlayed and AvgScore
// are only populated for the all-time and week scopes; AvgScore is total
// points divided by distinct games played, truncated.
type LeaderboardEntry struct {
	PlayerName  string `json:"player_name"`
	Total       int64  `json:"total"`
	GamesPlayed int64  `json:"games_played,omitempty"`
	AvgScore    int64  `json:"avg_score,omitempty"`
	Perfect     int64  `json:"perfect"`
	Missed      int64  `json:"missed"`
}

// Leaderboard is the aggregation result for one scope. Entries preserve the
// order the store returned them in.
type Leaderboard struct {
	Scope   Scope              `json:"scope"`
	Entries []LeaderboardEntry `json:"entries"`
}
