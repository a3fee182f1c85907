package game

import (
	"context"
	"errors"
	"time"

	"grid-snake/game/types"
)

// ErrQuit is returned when the input source asks to terminate
var ErrQuit = errors.New("quit requested")

type CommandKind int

const (
	CommandMove CommandKind = iota
	CommandQuit
	CommandRestart
)

// Command is one discrete input event
type Command struct {
	Kind      CommandKind
	Direction types.Direction
}

func Move(d types.Direction) Command {
	return Command{Kind: CommandMove, Direction: d}
}

func Quit() Command {
	return Command{Kind: CommandQuit}
}

func Restart() Command {
	return Command{Kind: CommandRestart}
}

// InputSource is polled once per frame and returns the commands buffered since
// the previous poll
type InputSource interface {
	Poll() []Command
}

// RenderSink receives one snapshot per frame
type RenderSink interface {
	Render(Snapshot)
}

// Clock paces frames
type Clock interface {
	Wait(ctx context.Context) error
}

// TickerClock paces frames with a time.Ticker
type TickerClock struct {
	ticker *time.Ticker
}

func NewTickerClock(ticksPerSecond int) *TickerClock {
	return &TickerClock{
		ticker: time.NewTicker(time.Second / time.Duration(ticksPerSecond)),
	}
}

func (c *TickerClock) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.ticker.C:
		return nil
	}
}

func (c *TickerClock) Stop() {
	c.ticker.Stop()
}

// FrameClock never blocks, for frontends whose draw call already waits for
// the next frame
type FrameClock struct{}

func (FrameClock) Wait(ctx context.Context) error {
	return ctx.Err()
}

// Run drives the session until it reaches a terminal state, the input asks
// to quit, or ctx is done. The terminal snapshot is rendered before returning.
func (g *Game) Run(ctx context.Context, in InputSource, sink RenderSink, clock Clock) (types.State, error) {
	for {
		if err := ctx.Err(); err != nil {
			return g.state, err
		}

		for _, cmd := range in.Poll() {
			switch cmd.Kind {
			case CommandQuit:
				return g.state, ErrQuit
			case CommandMove:
				g.ChangeDirection(cmd.Direction)
			}
		}

		state := g.Tick()
		sink.Render(g.Snapshot())
		if state.Terminal() {
			return state, nil
		}

		if err := clock.Wait(ctx); err != nil {
			return g.state, err
		}
	}
}

// WaitForRestart keeps presenting the final snapshot until the player asks
// for a new session (nil) or quits (ErrQuit)
func WaitForRestart(ctx context.Context, last Snapshot, in InputSource, sink RenderSink, clock Clock) error {
	for {
		for _, cmd := range in.Poll() {
			switch cmd.Kind {
			case CommandQuit:
				return ErrQuit
			case CommandRestart:
				return nil
			}
		}
		sink.Render(last)
		if err := clock.Wait(ctx); err != nil {
			return err
		}
	}
}
