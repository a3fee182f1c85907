package game

import (
	"context"
	"errors"

	"grid-snake/game/manager"
)

// SessionManager runs sessions back to back: a finished session is recorded
// in the stats and replaced by a fresh one when the player restarts
type SessionManager struct {
	cfg     Config
	opts    []Option
	stats   *manager.StatsManager
	current *Game
	played  uint64
}

func NewSessionManager(cfg Config, stats *manager.StatsManager, opts ...Option) *SessionManager {
	return &SessionManager{
		cfg:   cfg,
		opts:  opts,
		stats: stats,
	}
}

// NewSession discards the current session and starts another. A fixed seed
// is offset per session so successive games differ but stay reproducible.
func (sm *SessionManager) NewSession() (*Game, error) {
	cfg := sm.cfg
	if cfg.Seed != 0 {
		cfg.Seed += sm.played
	}

	g, err := NewGame(cfg, sm.opts...)
	if err != nil {
		return nil, err
	}
	sm.current = g
	sm.played++
	return g, nil
}

func (sm *SessionManager) Current() *Game {
	return sm.current
}

func (sm *SessionManager) Stats() *manager.StatsManager {
	return sm.stats
}

// Play loops sessions until the player quits (nil) or ctx ends
func (sm *SessionManager) Play(ctx context.Context, in InputSource, sink RenderSink, clock Clock) error {
	for {
		g, err := sm.NewSession()
		if err != nil {
			return err
		}

		state, err := g.Run(ctx, in, sink, clock)
		if state.Terminal() {
			sm.stats.AddGame(g.UUID, state, g.Score(), g.StartTime, g.EndTime)
		}
		if err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}

		if err := WaitForRestart(ctx, g.Snapshot(), in, sink, clock); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
	}
}
