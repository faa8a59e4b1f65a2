package service

import (
	"context"
	"fmt"

	"github.com/geoclub/geodaily-services/internal/comm"
	"github.com/geoclub/geodaily-services/internal/geosvc/models"
	"github.com/geoclub/geodaily-services/internal/geosvc/store"
	log "github.com/sirupsen/logrus"
)

// ScoreService owns ingestion: it turns fetched result sheets into player
// upserts and score rows.
type ScoreService struct {
	playerStore *store.PlayerStore
	scoreStore  *store.ScoreStore
}

func NewScoreService(playerStore *store.PlayerStore, scoreStore *store.ScoreStore) *ScoreService {
	return &ScoreService{
		playerStore: playerStore,
		scoreStore:  scoreStore,
	}
}

// Ingest upserts every player named in the results and bulk-inserts their
// round scores for the game. Items missing an account id, a name or any
// rounds are logged and skipped; the rest proceed. The whole call is
// idempotent, so re-ingesting a sheet that was already (partially) recorded
// inserts nothing and is not an error. The game must already be registered.
// Returns the number of score rows actually inserted.
func (s *ScoreService) Ingest(ctx context.Context, gameID string, results []comm.PlayerResult) (int64, error) {
	var rows []models.ScoreRow
	for _, item := range results {
		if item.AccountID == "" || item.Name == "" || len(item.RoundScores) == 0 {
			log.Warnf("skipping malformed result item for game %s: %+v", gameID, item)
			continue
		}
		if !roundsInRange(item.RoundScores) {
			log.Warnf("skipping result item with out-of-range scores for game %s: %+v", gameID, item)
			continue
		}

		playerID, err := s.playerStore.Upsert(ctx, item.AccountID, item.Name)
		if err != nil {
			return 0, fmt.Errorf("failed to upsert player %s: %w", item.AccountID, err)
		}

		for i, points := range item.RoundScores {
			rows = append(rows, models.ScoreRow{
				PlayerID: playerID,
				Round:    i + 1,
				Score:    points,
			})
		}
	}

	if len(rows) == 0 {
		return 0, nil
	}

	inserted, err := s.scoreStore.AddBatch(ctx, gameID, rows)
	if err != nil {
		return 0, err
	}

	log.Infof("ingested %d new score rows for game %s", inserted, gameID)
	return inserted, nil
}

func roundsInRange(rounds []int) bool {
	for _, points := range rounds {
		if points < models.MissedScore || points > models.PerfectScore {
			return false
		}
	}
	return true
}
