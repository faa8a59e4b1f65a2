package service

import (
	"context"
	"time"

	"github.com/geoclub/geodaily-services/internal/geosvc/models"
	"github.com/geoclub/geodaily-services/internal/geosvc/render"
	"github.com/geoclub/geodaily-services/internal/geosvc/store"
)

// LeaderboardService answers the three leaderboard scopes. now is
// injectable so the work-week window is testable; it defaults to the
// current time in the service timezone.
type LeaderboardService struct {
	lbStore   *store.LeaderboardStore
	gameStore *store.GameStore
	now       func() time.Time
}

func NewLeaderboardService(lbStore *store.LeaderboardStore, gameStore *store.GameStore, loc *time.Location) *LeaderboardService {
	return &LeaderboardService{
		lbStore:   lbStore,
		gameStore: gameStore,
		now:       func() time.Time { return time.Now().In(loc) },
	}
}

// ForGame returns the single-game leaderboard, or nil when the game has no
// recorded scores yet. nil is "no data", never an error.
func (s *LeaderboardService) ForGame(ctx context.Context, gameID string) (*models.Leaderboard, error) {
	entries, err := s.lbStore.ForGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &models.Leaderboard{Scope: models.ScopeGame, Entries: entries}, nil
}

// Today returns the leaderboard for the most recently created game, or nil
// when no game or no scores exist.
func (s *LeaderboardService) Today(ctx context.Context) (*models.Leaderboard, error) {
	gameID, err := s.gameStore.LatestID(ctx)
	if err != nil {
		return nil, err
	}
	if gameID == "" {
		return nil, nil
	}
	return s.ForGame(ctx, gameID)
}

// AllTime returns the leaderboard across every game, or nil when no scores
// exist at all.
func (s *LeaderboardService) AllTime(ctx context.Context, sortByAverage bool) (*models.Leaderboard, error) {
	entries, err := s.lbStore.AllTime(ctx, sortByAverage)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &models.Leaderboard{Scope: models.ScopeAllTime, Entries: entries}, nil
}

// Week returns the leaderboard over games created in the current
// Monday-Friday window, or nil when that window has no scores.
func (s *LeaderboardService) Week(ctx context.Context, sortByAverage bool) (*models.Leaderboard, error) {
	monday, friday := workWeek(s.now())

	entries, err := s.lbStore.Week(ctx, monday, friday, sortByAverage)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &models.Leaderboard{Scope: models.ScopeWeek, Entries: entries}, nil
}

// FormattedToday renders today's table, or empty string when there is no
// data to render.
func (s *LeaderboardService) FormattedToday(ctx context.Context) (string, error) {
	lb, err := s.Today(ctx)
	if err != nil || lb == nil {
		return "", err
	}
	return render.Leaderboard("Scores for today's game", lb), nil
}

// FormattedAllTime renders the overall leaderboard, empty string on no data.
func (s *LeaderboardService) FormattedAllTime(ctx context.Context, sortByAverage bool) (string, error) {
	lb, err := s.AllTime(ctx, sortByAverage)
	if err != nil || lb == nil {
		return "", err
	}
	return render.Leaderboard("Overall leaderboard", lb), nil
}

// FormattedWeek renders the work-week leaderboard, empty string on no data.
func (s *LeaderboardService) FormattedWeek(ctx context.Context, sortByAverage bool) (string, error) {
	lb, err := s.Week(ctx, sortByAverage)
	if err != nil || lb == nil {
		return "", err
	}
	return render.Leaderboard("Leaderboard for this week", lb), nil
}

// workWeek computes Monday and Friday of now's week. Go's Monday is weekday
// 1, so the offset mirrors python's date.weekday().
func workWeek(now time.Time) (time.Time, time.Time) {
	weekday := (int(now.Weekday()) + 6) % 7 // Monday = 0
	monday := now.AddDate(0, 0, -weekday)
	friday := monday.AddDate(0, 0, 4)
	return monday, friday
}
