package fetcher

import (
	"context"
	"time"

	"github.com/geoclub/geodaily-services/internal/comm"
	"github.com/geoclub/geodaily-services/internal/geosvc/service"
	log "github.com/sirupsen/logrus"
)

// ResultSource is what the fetcher needs from the provider client.
type ResultSource interface {
	FetchResults(ctx context.Context, gameID string) ([]comm.PlayerResult, error)
}

// Fetcher walks the games that never received scores and ingests their
// results one by one. It is deliberately sequential: the provider rate
// limits, so a fixed delay separates successive games.
type Fetcher struct {
	source       ResultSource
	gameService  *service.GameService
	scoreService *service.ScoreService
	delay        time.Duration
}

func New(source ResultSource, gameService *service.GameService, scoreService *service.ScoreService, delay time.Duration) *Fetcher {
	return &Fetcher{
		source:       source,
		gameService:  gameService,
		scoreService: scoreService,
		delay:        delay,
	}
}

// FetchMissing fetches and ingests results for every missing game. A failed
// fetch only skips that game; it stays missing and is retried on the next
// pass. No delay is taken before the first game. Cancelling the context
// stops between games, which is safe because ingestion is idempotent.
func (f *Fetcher) FetchMissing(ctx context.Context) error {
	ids, err := f.gameService.MissingIDs(ctx)
	if err != nil {
		return err
	}

	for i, gameID := range ids {
		if i > 0 {
			select {
			case <-time.After(f.delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err := f.fetchOne(ctx, gameID); err != nil {
			log.Errorf("failed to fetch results for game %s: %s", gameID, err)
		}
	}

	return nil
}

func (f *Fetcher) fetchOne(ctx context.Context, gameID string) error {
	results, err := f.source.FetchResults(ctx, gameID)
	if err != nil {
		return err
	}

	inserted, err := f.scoreService.Ingest(ctx, gameID, results)
	if err != nil {
		return err
	}

	if inserted == 0 {
		log.Infof("no new scores for game %s", gameID)
	}
	return nil
}
