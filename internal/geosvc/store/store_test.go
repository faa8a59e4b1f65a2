package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/geoclub/geodaily-services/internal/geosvc/db"
	"github.com/geoclub/geodaily-services/internal/geosvc/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	d, err := db.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })

	return d
}

func TestAddGameIdempotent(t *testing.T) {
	d := newTestDB(t)
	games := NewGameStore(d)
	ctx := context.Background()

	require.NoError(t, games.Add(ctx, "abc123"))
	require.NoError(t, games.Add(ctx, "abc123"))

	var count int
	require.NoError(t, d.QueryRow("SELECT COUNT(*) FROM games").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestLatestIDFollowsInsertionOrder(t *testing.T) {
	d := newTestDB(t)
	games := NewGameStore(d)
	ctx := context.Background()

	latest, err := games.LatestID(ctx)
	require.NoError(t, err)
	assert.Empty(t, latest, "no games yet")

	require.NoError(t, games.Add(ctx, "first"))
	require.NoError(t, games.Add(ctx, "second"))

	latest, err = games.LatestID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", latest)

	// re-adding an old game must not make it latest again
	require.NoError(t, games.Add(ctx, "first"))
	latest, err = games.LatestID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", latest)
}

func TestUpsertPlayer(t *testing.T) {
	d := newTestDB(t)
	players := NewPlayerStore(d)
	ctx := context.Background()

	id1, err := players.Upsert(ctx, "acc-1", "Anna")
	require.NoError(t, err)

	// same account, new display name: id stays, name follows
	id2, err := players.Upsert(ctx, "acc-1", "Anna B")
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	var name string
	require.NoError(t, d.QueryRow("SELECT name FROM players WHERE account_id = ?", "acc-1").Scan(&name))
	assert.Equal(t, "Anna B", name)

	id3, err := players.Upsert(ctx, "acc-2", "Erik")
	require.NoError(t, err)
	assert.NotEqual(t, id1, id3)
}

func TestAddScoresIdempotent(t *testing.T) {
	d := newTestDB(t)
	games := NewGameStore(d)
	players := NewPlayerStore(d)
	scores := NewScoreStore(d)
	ctx := context.Background()

	require.NoError(t, games.Add(ctx, "g1"))
	pid, err := players.Upsert(ctx, "acc-1", "Anna")
	require.NoError(t, err)

	rows := []models.ScoreRow{
		{PlayerID: pid, Round: 1, Score: 3000},
		{PlayerID: pid, Round: 2, Score: 5000},
	}

	inserted, err := scores.AddBatch(ctx, "g1", rows)
	require.NoError(t, err)
	assert.EqualValues(t, 2, inserted)

	// same rows again: nothing new, no error
	inserted, err = scores.AddBatch(ctx, "g1", rows)
	require.NoError(t, err)
	assert.EqualValues(t, 0, inserted)

	count, err := scores.CountForGame(ctx, "g1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestAddScoresFirstWriteWins(t *testing.T) {
	d := newTestDB(t)
	games := NewGameStore(d)
	players := NewPlayerStore(d)
	scores := NewScoreStore(d)
	ctx := context.Background()

	require.NoError(t, games.Add(ctx, "g1"))
	pid, err := players.Upsert(ctx, "acc-1", "Anna")
	require.NoError(t, err)

	_, err = scores.AddBatch(ctx, "g1", []models.ScoreRow{{PlayerID: pid, Round: 1, Score: 4000}})
	require.NoError(t, err)

	// same (game, player, round) with a different value is ignored
	inserted, err := scores.AddBatch(ctx, "g1", []models.ScoreRow{{PlayerID: pid, Round: 1, Score: 100}})
	require.NoError(t, err)
	assert.EqualValues(t, 0, inserted)

	var score int
	require.NoError(t, d.QueryRow(
		"SELECT score FROM scores WHERE game_id = ? AND player_id = ? AND round_number = 1", "g1", pid).Scan(&score))
	assert.Equal(t, 4000, score)
}

func TestMissingIDs(t *testing.T) {
	d := newTestDB(t)
	games := NewGameStore(d)
	players := NewPlayerStore(d)
	scores := NewScoreStore(d)
	ctx := context.Background()

	require.NoError(t, games.Add(ctx, "with-scores"))
	require.NoError(t, games.Add(ctx, "no-scores"))

	pid, err := players.Upsert(ctx, "acc-1", "Anna")
	require.NoError(t, err)
	_, err = scores.AddBatch(ctx, "with-scores", []models.ScoreRow{{PlayerID: pid, Round: 1, Score: 1}})
	require.NoError(t, err)

	missing, err := games.MissingIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"no-scores"}, missing)

	// one partial row is enough to leave the list for good
	_, err = scores.AddBatch(ctx, "no-scores", []models.ScoreRow{{PlayerID: pid, Round: 1, Score: 0}})
	require.NoError(t, err)

	missing, err = games.MissingIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func seedGame(t *testing.T, d *sql.DB, gameID string, scoresByPlayer map[int64][]int) {
	t.Helper()
	ctx := context.Background()

	games := NewGameStore(d)
	scores := NewScoreStore(d)

	require.NoError(t, games.Add(ctx, gameID))

	var rows []models.ScoreRow
	for pid, rounds := range scoresByPlayer {
		for i, points := range rounds {
			rows = append(rows, models.ScoreRow{PlayerID: pid, Round: i + 1, Score: points})
		}
	}
	_, err := scores.AddBatch(ctx, gameID, rows)
	require.NoError(t, err)
}

func TestForGameOrdersByTotal(t *testing.T) {
	d := newTestDB(t)
	players := NewPlayerStore(d)
	lb := NewLeaderboardStore(d)
	ctx := context.Background()

	annaID, err := players.Upsert(ctx, "acc-a", "Anna")
	require.NoError(t, err)
	bjornID, err := players.Upsert(ctx, "acc-b", "Bjorn")
	require.NoError(t, err)

	seedGame(t, d, "g1", map[int64][]int{
		annaID:  {3000, 2000},
		bjornID: {1000, 2000},
	})

	entries, err := lb.ForGame(ctx, "g1")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "Anna", entries[0].PlayerName)
	assert.EqualValues(t, 5000, entries[0].Total)
	assert.Equal(t, "Bjorn", entries[1].PlayerName)
	assert.EqualValues(t, 3000, entries[1].Total)
}

func TestForGameCountsPerfectAndMissed(t *testing.T) {
	d := newTestDB(t)
	players := NewPlayerStore(d)
	lb := NewLeaderboardStore(d)
	ctx := context.Background()

	annaID, err := players.Upsert(ctx, "acc-a", "Anna")
	require.NoError(t, err)

	seedGame(t, d, "g1", map[int64][]int{
		annaID: {5000, 0, 5000, 1234, 0},
	})

	entries, err := lb.ForGame(ctx, "g1")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.EqualValues(t, 11234, entries[0].Total)
	assert.EqualValues(t, 2, entries[0].Perfect)
	assert.EqualValues(t, 2, entries[0].Missed)
}

func TestForGameEmpty(t *testing.T) {
	d := newTestDB(t)
	games := NewGameStore(d)
	lb := NewLeaderboardStore(d)
	ctx := context.Background()

	require.NoError(t, games.Add(ctx, "fresh"))

	entries, err := lb.ForGame(ctx, "fresh")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAllTimeSortModeChangesOrder(t *testing.T) {
	d := newTestDB(t)
	players := NewPlayerStore(d)
	lb := NewLeaderboardStore(d)
	ctx := context.Background()

	annaID, err := players.Upsert(ctx, "acc-a", "Anna")
	require.NoError(t, err)
	bjornID, err := players.Upsert(ctx, "acc-b", "Bjorn")
	require.NoError(t, err)

	// Anna: 9000 points over 3 games, average 3000.
	// Bjorn: 8000 points over 2 games, average 4000.
	seedGame(t, d, "g1", map[int64][]int{annaID: {3000}, bjornID: {5000}})
	seedGame(t, d, "g2", map[int64][]int{annaID: {3000}, bjornID: {3000}})
	seedGame(t, d, "g3", map[int64][]int{annaID: {3000}})

	byTotal, err := lb.AllTime(ctx, false)
	require.NoError(t, err)
	require.Len(t, byTotal, 2)
	assert.Equal(t, "Anna", byTotal[0].PlayerName)
	assert.EqualValues(t, 9000, byTotal[0].Total)
	assert.EqualValues(t, 3, byTotal[0].GamesPlayed)
	assert.EqualValues(t, 3000, byTotal[0].AvgScore)

	byAverage, err := lb.AllTime(ctx, true)
	require.NoError(t, err)
	require.Len(t, byAverage, 2)
	assert.Equal(t, "Bjorn", byAverage[0].PlayerName)
	assert.EqualValues(t, 4000, byAverage[0].AvgScore)
}

func TestAllTimeAverageTruncates(t *testing.T) {
	d := newTestDB(t)
	players := NewPlayerStore(d)
	lb := NewLeaderboardStore(d)
	ctx := context.Background()

	annaID, err := players.Upsert(ctx, "acc-a", "Anna")
	require.NoError(t, err)

	// 10000 / 3 = 3333.33..., must come back as 3333
	seedGame(t, d, "g1", map[int64][]int{annaID: {4000}})
	seedGame(t, d, "g2", map[int64][]int{annaID: {3000}})
	seedGame(t, d, "g3", map[int64][]int{annaID: {3000}})

	entries, err := lb.AllTime(ctx, false)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.EqualValues(t, 3333, entries[0].AvgScore)
}

func TestWeekExcludesGamesOutsideWindow(t *testing.T) {
	d := newTestDB(t)
	players := NewPlayerStore(d)
	lb := NewLeaderboardStore(d)
	ctx := context.Background()

	annaID, err := players.Upsert(ctx, "acc-a", "Anna")
	require.NoError(t, err)

	seedGame(t, d, "this-week", map[int64][]int{annaID: {2000}})
	seedGame(t, d, "last-week", map[int64][]int{annaID: {3000}})

	// window: Monday 2026-08-24 .. Friday 2026-08-28
	monday := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	friday := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	_, err = d.Exec("UPDATE games SET created_at = ? WHERE game_id = ?", "2026-08-26 08:00:00", "this-week")
	require.NoError(t, err)
	_, err = d.Exec("UPDATE games SET created_at = ? WHERE game_id = ?", "2026-08-19 08:00:00", "last-week")
	require.NoError(t, err)

	entries, err := lb.Week(ctx, monday, friday, false)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.EqualValues(t, 2000, entries[0].Total)
	assert.EqualValues(t, 1, entries[0].GamesPlayed)

	// all-time still sees both games
	all, err := lb.AllTime(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.EqualValues(t, 5000, all[0].Total)
	assert.EqualValues(t, 2, all[0].GamesPlayed)
}
