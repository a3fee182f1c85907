package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"grid-snake/game/entity"
	"grid-snake/game/manager"
	"grid-snake/game/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// steppingNow returns a clock that advances one second per reading
func steppingNow() func() time.Time {
	t := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

// newTestGame builds a session where every tick is a move-tick
func newTestGame(t *testing.T, resolution, tile int) *Game {
	t.Helper()
	g, err := NewGame(Config{
		Resolution:     resolution,
		TileSize:       tile,
		TicksPerSecond: 1,
		MovesPerSecond: 1,
	}, WithSource(rand.NewSource(1)), WithNow(steppingNow()))
	require.NoError(t, err)
	return g
}

func placeFood(g *Game, c types.Cell) {
	g.food = &c
}

func TestNewGameRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"non-dividing tile", Config{Resolution: 500, TileSize: 30, TicksPerSecond: 60, MovesPerSecond: 6}},
		{"zero tile", Config{Resolution: 500, TileSize: 0, TicksPerSecond: 60, MovesPerSecond: 6}},
		{"moves faster than ticks", Config{Resolution: 500, TileSize: 50, TicksPerSecond: 5, MovesPerSecond: 6}},
		{"zero moves", Config{Resolution: 500, TileSize: 50, TicksPerSecond: 60, MovesPerSecond: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGame(tt.cfg)
			assert.True(t, errors.Is(err, types.ErrConfiguration))
		})
	}
}

func TestNewGameDefaults(t *testing.T) {
	g, err := NewGame(DefaultConfig(), WithSource(rand.NewSource(5)))
	require.NoError(t, err)

	assert.NotEmpty(t, g.UUID)
	assert.Equal(t, types.Alive, g.State())
	assert.Equal(t, []types.Cell{{X: 250, Y: 250}}, g.Snake().Cells())
	assert.Equal(t, types.Right, g.Snake().Heading())

	food, ok := g.Food()
	require.True(t, ok)
	assert.NotEqual(t, g.Snake().Head(), food)
	assert.True(t, g.Grid.Contains(food))
}

func TestRunIntoWallLoses(t *testing.T) {
	g := newTestGame(t, 5, 1)
	require.Equal(t, types.Cell{X: 2, Y: 2}, g.Snake().Head())

	for i, want := range []types.Cell{{X: 3, Y: 2}, {X: 4, Y: 2}, {X: 5, Y: 2}} {
		assert.Equal(t, types.Alive, g.Tick(), "tick %d", i+1)
		assert.Equal(t, want, g.Snake().Head())
	}

	assert.Equal(t, types.Lost, g.Tick())
	snap := g.Snapshot()
	assert.Equal(t, types.WallCollision, snap.Collision)
	assert.Equal(t, types.Lost, snap.State)
}

func TestEatingGrowsOnNextAdvance(t *testing.T) {
	g := newTestGame(t, 5, 1)
	placeFood(g, types.Cell{X: 3, Y: 2})

	g.Tick()
	assert.Equal(t, types.Cell{X: 3, Y: 2}, g.Snake().Head())
	assert.True(t, g.Snake().PendingGrowth())
	assert.Equal(t, 1, g.Snake().Length())
	assert.Equal(t, 1, g.Score())
	_, ok := g.Food()
	assert.False(t, ok)

	g.Tick()
	assert.Equal(t, []types.Cell{{X: 4, Y: 2}, {X: 3, Y: 2}}, g.Snake().Cells())
	assert.False(t, g.Snake().PendingGrowth())

	food, ok := g.Food()
	require.True(t, ok)
	assert.NotContains(t, g.Snake().Occupied(), food)
}

func TestFillingTheGridWins(t *testing.T) {
	g := newTestGame(t, 2, 1)
	require.Equal(t, types.Cell{X: 1, Y: 1}, g.Snake().Head())

	steps := []struct {
		turn types.Direction
		food *types.Cell
	}{
		{types.Up, &types.Cell{X: 1, Y: 0}},
		{types.Left, nil},
		{types.Down, &types.Cell{X: 0, Y: 1}},
		{types.Right, nil},
		{types.Up, nil},
		{types.Left, nil},
	}
	for i, step := range steps {
		if step.food != nil {
			placeFood(g, *step.food)
		}
		require.True(t, g.ChangeDirection(step.turn), "step %d", i)
		require.Equal(t, types.Alive, g.Tick(), "step %d", i)
	}

	require.Equal(t, 4, g.Snake().Length())
	_, ok := g.Food()
	assert.False(t, ok, "no free cell left for food")

	assert.Equal(t, types.Won, g.Tick())
	assert.Equal(t, types.NoCollision, g.Snapshot().Collision)
	assert.Equal(t, 3, g.Score())
}

func TestWinCheckedBeforeBounds(t *testing.T) {
	g := newTestGame(t, 2, 1)

	// Full length but the head is off the grid: the win still takes priority
	s := entity.NewSnake(types.Cell{X: 5, Y: 5}, types.Right, 1)
	for i := 0; i < 3; i++ {
		s.Grow()
		s.Advance()
	}
	require.Equal(t, 4, s.Length())
	g.snake = s

	assert.Equal(t, types.Won, g.Tick())
}

func TestTerminalSessionIsFrozen(t *testing.T) {
	g := newTestGame(t, 5, 1)
	for g.Tick() == types.Alive {
	}
	require.Equal(t, types.Lost, g.State())

	before := g.Snapshot()
	assert.Equal(t, types.Lost, g.Tick())
	assert.False(t, g.ChangeDirection(types.Up))
	after := g.Snapshot()
	assert.Equal(t, before.Tick, after.Tick)
	assert.Equal(t, before.Cells, after.Cells)
	assert.Equal(t, before.Elapsed, after.Elapsed)
}

func TestCadenceGatesMovement(t *testing.T) {
	g, err := NewGame(DefaultConfig(), WithSource(rand.NewSource(2)))
	require.NoError(t, err)

	start := g.Snake().Head()
	for i := 0; i < 9; i++ {
		g.Tick()
		assert.Equal(t, start, g.Snake().Head(), "tick %d", i+1)
	}
	g.Tick()
	assert.Equal(t, types.Cell{X: 300, Y: 250}, g.Snake().Head())
	assert.Equal(t, uint64(1), g.Snapshot().Moves)

	for i := 0; i < 10; i++ {
		g.Tick()
	}
	assert.Equal(t, types.Cell{X: 350, Y: 250}, g.Snake().Head())
}

func TestDirectionQueuedAcrossIdleTicks(t *testing.T) {
	g, err := NewGame(DefaultConfig(), WithSource(rand.NewSource(2)))
	require.NoError(t, err)

	assert.False(t, g.ChangeDirection(types.Left), "reverse is ignored")
	assert.True(t, g.ChangeDirection(types.Up))
	for i := 0; i < 5; i++ {
		g.Tick()
		assert.False(t, g.ChangeDirection(types.Down), "one change per move-tick")
	}
	for i := 0; i < 5; i++ {
		g.Tick()
	}
	assert.Equal(t, types.Up, g.Snake().Heading())
	assert.Equal(t, types.Cell{X: 250, Y: 200}, g.Snake().Head())
	assert.True(t, g.ChangeDirection(types.Left))
}

func TestCadence(t *testing.T) {
	c, err := NewCadence(60, 6)
	require.NoError(t, err)
	assert.Equal(t, 10, c.Threshold())

	fired := 0
	for i := 1; i <= 60; i++ {
		if c.Step() {
			fired++
			assert.Zero(t, i%10, "fired on tick %d", i)
		}
	}
	assert.Equal(t, 6, fired)

	c, err = NewCadence(60, 7)
	require.NoError(t, err)
	assert.Equal(t, 8, c.Threshold())

	_, err = NewCadence(5, 6)
	assert.True(t, errors.Is(err, types.ErrConfiguration))
}

// scriptedInput replays one batch of commands per poll
type scriptedInput struct {
	batches [][]Command
	polls   int
}

func (s *scriptedInput) Poll() []Command {
	s.polls++
	if len(s.batches) == 0 {
		return nil
	}
	next := s.batches[0]
	s.batches = s.batches[1:]
	return next
}

type recordingSink struct {
	frames []Snapshot
}

func (r *recordingSink) Render(s Snapshot) {
	r.frames = append(r.frames, s)
}

func TestRunUntilLost(t *testing.T) {
	g := newTestGame(t, 5, 1)
	in := &scriptedInput{batches: [][]Command{{Move(types.Left)}, nil, {Move(types.Down), Move(types.Up)}}}
	sink := &recordingSink{}

	state, err := g.Run(context.Background(), in, sink, FrameClock{})
	require.NoError(t, err)
	assert.Equal(t, types.Lost, state)

	require.NotEmpty(t, sink.frames)
	last := sink.frames[len(sink.frames)-1]
	assert.Equal(t, types.Lost, last.State)
	assert.Equal(t, types.WallCollision, last.Collision)

	// Left was a reversal; Down then turned the snake and Up was dropped
	assert.Equal(t, types.Cell{X: 4, Y: 2}, sink.frames[1].Cells[0])
	assert.Equal(t, types.Cell{X: 4, Y: 3}, sink.frames[2].Cells[0])
	assert.Equal(t, types.Down, last.Heading)
	assert.Len(t, sink.frames, in.polls)
}

func TestRunQuit(t *testing.T) {
	g := newTestGame(t, 5, 1)
	in := &scriptedInput{batches: [][]Command{{Quit()}}}
	sink := &recordingSink{}

	state, err := g.Run(context.Background(), in, sink, FrameClock{})
	assert.True(t, errors.Is(err, ErrQuit))
	assert.Equal(t, types.Alive, state)
	assert.Empty(t, sink.frames)
}

func TestRunCancelled(t *testing.T) {
	g := newTestGame(t, 5, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Run(ctx, &scriptedInput{}, &recordingSink{}, FrameClock{})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestTickerClockHonoursContext(t *testing.T) {
	clock := NewTickerClock(1000)
	defer clock.Stop()

	require.NoError(t, clock.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, clock.Wait(ctx))
}

// restartOnce restarts the first finished session and quits after the second
type restartOnce struct {
	sm       *SessionManager
	restarts int
}

func (r *restartOnce) Poll() []Command {
	current := r.sm.Current()
	if current == nil || !current.State().Terminal() {
		return nil
	}
	if r.restarts == 0 {
		r.restarts++
		return []Command{Restart()}
	}
	return []Command{Quit()}
}

func TestSessionManagerPlay(t *testing.T) {
	stats := manager.NewStatsManager(manager.GroupSize)
	sm := NewSessionManager(Config{
		Resolution:     5,
		TileSize:       1,
		TicksPerSecond: 1,
		MovesPerSecond: 1,
		Seed:           11,
	}, stats, WithNow(steppingNow()))
	in := &restartOnce{sm: sm}

	require.NoError(t, sm.Play(context.Background(), in, &recordingSink{}, FrameClock{}))

	assert.Equal(t, 1, in.restarts)
	assert.Equal(t, 2, stats.GetGamesPlayed())
	assert.Zero(t, stats.GetWins())
	records := stats.GetRecords()
	require.Len(t, records, 2)
	assert.NotEqual(t, records[0].SessionID, records[1].SessionID)
	assert.Equal(t, types.Lost, records[1].Outcome)
}
