package scheduler

import (
	"context"
	"math/rand"
	"runtime/debug"
	"time"

	"daily-bot/internal/config"
	"daily-bot/internal/models"
	"daily-bot/pkg/logger"
)

type ContentProvider interface {
	Content(ctx context.Context, kind models.ContentKind) models.ContentItem
}

type Poster interface {
	Post(channel string, item models.ContentItem) error
}

// Scheduler owns the daily posting cycle: poll the wall clock, fire once
// per day at the configured time, go back to waiting whatever the outcome.
// The fired-today marker lives in process memory only; a restart across
// the due minute can double-post.
type Scheduler struct {
	cfg      config.ScheduleConfig
	channel  string
	provider ContentProvider
	poster   Poster

	hour   int
	minute int

	rnd *rand.Rand
	now func() time.Time

	firedDay time.Time
}

func New(cfg config.ScheduleConfig, channel string, provider ContentProvider, poster Poster, opts ...Option) (*Scheduler, error) {
	hour, minute, err := config.ParseTimeOfDay(cfg.PostTime)
	if err != nil {
		return nil, err
	}

	s := &Scheduler{
		cfg:      cfg,
		channel:  channel,
		provider: provider,
		poster:   poster,
		hour:     hour,
		minute:   minute,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

type Option func(*Scheduler)

func WithRand(rnd *rand.Rand) Option {
	return func(s *Scheduler) {
		s.rnd = rnd
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		s.now = now
	}
}

// Run polls until the context is cancelled. A single bad tick never
// terminates the loop.
func (s *Scheduler) Run(ctx context.Context) error {
	logger.Info("Scheduler started",
		logger.String("post_time", s.cfg.PostTime),
		logger.String("channel", s.channel),
		logger.Duration("poll_interval", s.cfg.PollInterval),
	)

	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Tick panicked",
				logger.Any("panic", r),
				logger.String("stack", string(debug.Stack())),
			)
		}
	}()

	now := s.now()
	if !s.due(now) {
		return
	}

	// Mark the day before posting: a failed post waits for the next
	// scheduled occurrence, not the next poll.
	s.firedDay = startOfDay(now)

	item := s.provider.Content(ctx, s.pickKind())
	if err := s.poster.Post(s.channel, item); err != nil {
		logger.Warn("Scheduled post failed, will retry at next scheduled time", logger.Err(err))
	}
}

// PostNow runs a single posting cycle immediately, bypassing the due gate
// and the daily marker. An empty kind means a weighted pick.
func (s *Scheduler) PostNow(ctx context.Context, kind models.ContentKind) error {
	if kind == "" {
		kind = s.pickKind()
	}
	item := s.provider.Content(ctx, kind)
	return s.poster.Post(s.channel, item)
}

func (s *Scheduler) due(now time.Time) bool {
	if now.Hour() != s.hour || now.Minute() != s.minute {
		return false
	}
	return !sameDay(s.firedDay, now)
}

func (s *Scheduler) pickKind() models.ContentKind {
	if s.rnd.Float64() < s.cfg.JokeWeight {
		return models.KindJoke
	}
	return models.KindTrivia
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
