package helper

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/robfig/cron/v3"
)

type BlacklistPurger interface {
	PurgeExpiredBlacklist(ctx context.Context, now time.Time) (int64, error)
}

func PurgeBlacklist(store BlacklistPurger) {
	n, err := store.PurgeExpiredBlacklist(context.Background(), time.Now())
	if err != nil {
		log.Printf("blacklist purge: %v", err)
		return
	}
	log.Printf("blacklist purge removed %d expired tokens", n)
}

// StartBlacklistScheduler purges expired refresh-token blacklist entries daily at 03:00 UTC.
func StartBlacklistScheduler(store BlacklistPurger) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, err
	}
	_, err = s.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(3, 0, 0))),
		gocron.NewTask(func() { PurgeBlacklist(store) }),
	)
	if err != nil {
		return nil, err
	}
	s.Start()
	log.Println("blacklist purge scheduler started (03:00 UTC)")
	return s, nil
}

type DepartureSource interface {
	DepartedJourneys(ctx context.Context, from, to time.Time) ([]uint, error)
}

// DepartureAnnouncer tells live seat feeds that their journey has left.
// Each run covers the window since the previous one.
type DepartureAnnouncer struct {
	source DepartureSource
	events SeatEvents
	now    func() time.Time

	mu   sync.Mutex
	last time.Time
}

func NewDepartureAnnouncer(source DepartureSource, events SeatEvents) *DepartureAnnouncer {
	return &DepartureAnnouncer{source: source, events: events, now: time.Now, last: time.Now()}
}

func (a *DepartureAnnouncer) Run() {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.now()
	ctx := context.Background()
	ids, err := a.source.DepartedJourneys(ctx, a.last, now)
	if err != nil {
		log.Printf("departure sweep: %v", err)
		return
	}
	a.last = now
	for _, id := range ids {
		a.events.Publish(ctx, SeatEvent{Journey: id, Action: SeatDeparted})
	}
	if len(ids) > 0 {
		log.Printf("departure sweep announced %d journeys", len(ids))
	}
}

// StartDepartureScheduler runs the announcer every 5 minutes. Stop the
// returned cron on shutdown.
func StartDepartureScheduler(a *DepartureAnnouncer) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(time.UTC), cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))
	if _, err := c.AddJob("*/5 * * * *", a); err != nil {
		return nil, err
	}
	c.Start()
	log.Println("departure scheduler started (every 5 minutes)")
	return c, nil
}
