// Package maintenance runs periodic housekeeping jobs for the server.
package maintenance

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// SessionStore is the cleanup operation the sweeper needs.
type SessionStore interface {
	DeleteExpiredUserSessions(ctx context.Context, cutoff time.Time) (int64, error)
}

// SessionSweeper deletes expired server-side session records on a cron
// schedule so the user_sessions table doesn't grow without bound.
type SessionSweeper struct {
	store  SessionStore
	cron   *cron.Cron
	logger zerolog.Logger
}

// NewSessionSweeper creates a SessionSweeper.
func NewSessionSweeper(store SessionStore, logger zerolog.Logger) *SessionSweeper {
	return &SessionSweeper{
		store:  store,
		cron:   cron.New(),
		logger: logger.With().Str("component", "session_sweeper").Logger(),
	}
}

// Start schedules the sweep with the given cron spec (e.g. "@hourly")
// and starts the scheduler.
func (s *SessionSweeper) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info().Str("spec", spec).Msg("session sweeper started")
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (s *SessionSweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info().Msg("session sweeper stopped")
}

func (s *SessionSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	deleted, err := s.store.DeleteExpiredUserSessions(ctx, time.Now())
	if err != nil {
		s.logger.Error().Err(err).Msg("session sweep failed")
		return
	}
	if deleted > 0 {
		s.logger.Info().Int64("deleted", deleted).Msg("expired sessions removed")
	}
}
