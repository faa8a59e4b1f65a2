package scheduler

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

// Task runs once per day at a fixed wall-clock time in the scheduler's
// timezone.
type Task struct {
	Name   string
	Hour   int
	Minute int
	Run    func(ctx context.Context)
}

type Scheduler struct {
	loc   *time.Location
	tasks []Task
}

func New(loc *time.Location) *Scheduler {
	return &Scheduler{loc: loc}
}

func (s *Scheduler) Add(name string, hour, minute int, run func(ctx context.Context)) {
	s.tasks = append(s.tasks, Task{Name: name, Hour: hour, Minute: minute, Run: run})
}

// Start launches one goroutine per task and returns. Tasks stop when the
// context is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	for _, t := range s.tasks {
		go s.loop(ctx, t)
	}
}

func (s *Scheduler) loop(ctx context.Context, t Task) {
	for {
		next := nextRun(time.Now().In(s.loc), t.Hour, t.Minute)
		log.Infof("task %s scheduled for %s", t.Name, next.Format(time.RFC3339))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-timer.C:
			log.Infof("running task %s", t.Name)
			t.Run(ctx)
		case <-ctx.Done():
			timer.Stop()
			log.Infof("task %s stopped", t.Name)
			return
		}
	}
}

// nextRun is the first instant at hour:minute in now's location strictly
// after now.
func nextRun(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
