package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextRun(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Stockholm")
	if err != nil {
		t.Fatalf("loading timezone: %v", err)
	}

	now := time.Date(2026, 8, 26, 10, 0, 0, 0, loc)

	// later the same day
	next := nextRun(now, 23, 30)
	assert.Equal(t, time.Date(2026, 8, 26, 23, 30, 0, 0, loc), next)

	// earlier today rolls to tomorrow
	next = nextRun(now, 7, 0)
	assert.Equal(t, time.Date(2026, 8, 27, 7, 0, 0, 0, loc), next)

	// exactly now rolls to tomorrow, never fires twice in the same minute
	atTen := time.Date(2026, 8, 26, 10, 0, 0, 0, loc)
	next = nextRun(atTen, 10, 0)
	assert.Equal(t, time.Date(2026, 8, 27, 10, 0, 0, 0, loc), next)

	// month boundary
	endOfMonth := time.Date(2026, 8, 31, 23, 50, 0, 0, loc)
	next = nextRun(endOfMonth, 7, 0)
	assert.Equal(t, time.Date(2026, 9, 1, 7, 0, 0, 0, loc), next)
}
