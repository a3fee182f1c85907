package manager

import (
	"errors"
	"testing"
	"time"

	"grid-snake/game/entity"
	"grid-snake/game/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func mustGrid(t *testing.T, resolution, tile int) types.Grid {
	t.Helper()
	g, err := types.NewGrid(resolution, tile)
	require.NoError(t, err)
	return g
}

func TestRespawnAvoidsOccupied(t *testing.T) {
	grid := mustGrid(t, 5, 1)
	fm := NewFoodManager(rand.NewSource(42))

	occupied := map[types.Cell]struct{}{}
	for x := 0; x < 5; x++ {
		occupied[types.Cell{X: x, Y: 2}] = struct{}{}
	}

	for i := 0; i < 500; i++ {
		c, err := fm.Respawn(occupied, grid.AllCells())
		require.NoError(t, err)
		assert.NotContains(t, occupied, c)
		assert.True(t, grid.Contains(c))
	}
}

func TestRespawnSingleFreeCell(t *testing.T) {
	grid := mustGrid(t, 2, 1)
	fm := NewFoodManager(rand.NewSource(7))

	occupied := map[types.Cell]struct{}{
		{X: 0, Y: 0}: {},
		{X: 1, Y: 0}: {},
		{X: 0, Y: 1}: {},
	}
	c, err := fm.Respawn(occupied, grid.AllCells())
	require.NoError(t, err)
	assert.Equal(t, types.Cell{X: 1, Y: 1}, c)
}

func TestRespawnNoSpace(t *testing.T) {
	grid := mustGrid(t, 2, 1)
	fm := NewFoodManager(rand.NewSource(1))

	occupied := map[types.Cell]struct{}{}
	for _, c := range grid.AllCells() {
		occupied[c] = struct{}{}
	}

	_, err := fm.Respawn(occupied, grid.AllCells())
	assert.True(t, errors.Is(err, types.ErrNoSpaceAvailable))
}

func TestRespawnDeterministicForSeed(t *testing.T) {
	grid := mustGrid(t, 500, 50)
	a := NewFoodManager(rand.NewSource(99))
	b := NewFoodManager(rand.NewSource(99))

	for i := 0; i < 20; i++ {
		ca, errA := a.Respawn(nil, grid.AllCells())
		cb, errB := b.Respawn(nil, grid.AllCells())
		require.NoError(t, errA)
		require.NoError(t, errB)
		assert.Equal(t, ca, cb)
	}
}

func TestRespawnCoversAllFreeCells(t *testing.T) {
	grid := mustGrid(t, 3, 1)
	fm := NewFoodManager(rand.NewSource(3))

	seen := map[types.Cell]int{}
	for i := 0; i < 2000; i++ {
		c, err := fm.Respawn(nil, grid.AllCells())
		require.NoError(t, err)
		seen[c]++
	}
	assert.Len(t, seen, grid.CellCount())
}

func TestCheckConsumed(t *testing.T) {
	fm := NewFoodManager(rand.NewSource(1))
	assert.True(t, fm.CheckConsumed(types.Cell{X: 3, Y: 2}, types.Cell{X: 3, Y: 2}))
	assert.False(t, fm.CheckConsumed(types.Cell{X: 3, Y: 2}, types.Cell{X: 2, Y: 3}))
}

func TestCollisionCheck(t *testing.T) {
	cm := NewCollisionManager(mustGrid(t, 5, 1))

	s := entity.NewSnake(types.Cell{X: 3, Y: 2}, types.Right, 1)
	assert.Equal(t, types.NoCollision, cm.Check(s))

	s.Advance()
	assert.Equal(t, types.NoCollision, cm.Check(s))

	s.Advance()
	assert.Equal(t, types.WallCollision, cm.Check(s))
	assert.True(t, cm.IsWallCollision(types.Cell{X: -1, Y: 0}))
}

func TestCollisionCheckSelf(t *testing.T) {
	cm := NewCollisionManager(mustGrid(t, 10, 1))

	s := entity.NewSnake(types.Cell{X: 2, Y: 2}, types.Right, 1)
	for i := 0; i < 4; i++ {
		s.Grow()
		s.Advance()
	}
	for _, d := range []types.Direction{types.Down, types.Left, types.Up} {
		require.True(t, s.ChangeDirection(d))
		s.Advance()
	}
	assert.Equal(t, types.SelfCollision, cm.Check(s))
}

func TestStatsAggregates(t *testing.T) {
	sm := NewStatsManager(GroupSize)
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	sm.AddGame("a", types.Lost, 2, start, start.Add(10*time.Second))
	sm.AddGame("b", types.Lost, 8, start.Add(time.Minute), start.Add(time.Minute+30*time.Second))
	sm.AddGame("c", types.Won, 5, start.Add(2*time.Minute), start.Add(2*time.Minute+20*time.Second))

	assert.Equal(t, 3, sm.GetGamesPlayed())
	assert.Equal(t, 1, sm.GetWins())
	assert.Equal(t, 8, sm.GetHighScore())
	assert.InDelta(t, 5.0, sm.GetAverageScore(), 1e-9)
	assert.InDelta(t, 5.0, sm.GetMedianScore(), 1e-9)
	assert.InDelta(t, 20.0, sm.GetAverageDuration(), 1e-9)
	assert.Equal(t, []int{2, 8, 5}, sm.GetRecentScores())
}

func TestStatsEmpty(t *testing.T) {
	sm := NewStatsManager(0)
	assert.Zero(t, sm.GetGamesPlayed())
	assert.Zero(t, sm.GetAverageScore())
	assert.Zero(t, sm.GetMedianScore())
	assert.Zero(t, sm.GetHighScore())
	assert.Empty(t, sm.GetRecords())
}

func TestStatsCompression(t *testing.T) {
	sm := NewStatsManager(3)
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	for i := 1; i <= 7; i++ {
		at := start.Add(time.Duration(i) * time.Minute)
		sm.AddGame("s", types.Lost, i, at, at.Add(time.Second))
	}

	records := sm.GetRecords()
	require.Len(t, records, 3)
	levels := map[int]int{}
	for _, r := range records {
		levels[r.CompressionIndex]++
	}
	assert.Equal(t, 1, levels[0])
	assert.Equal(t, 2, levels[1])

	assert.Equal(t, 7, sm.GetGamesPlayed())
	assert.Equal(t, 7, sm.GetHighScore())
	assert.InDelta(t, 4.0, sm.GetAverageScore(), 1e-9)

	for i := 8; i <= 9; i++ {
		at := start.Add(time.Duration(i) * time.Minute)
		sm.AddGame("s", types.Lost, i, at, at.Add(time.Second))
	}
	records = sm.GetRecords()
	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].CompressionIndex)
	assert.Equal(t, 9, records[0].GamesCount)
	assert.Equal(t, 1, records[0].MinScore)
	assert.Equal(t, 9, records[0].MaxScore)
}

func TestStatsRecentScoresBounded(t *testing.T) {
	sm := NewStatsManager(GroupSize)
	now := time.Now()
	for i := 0; i < MaxRecentScores+10; i++ {
		sm.AddGame("s", types.Lost, i, now, now)
	}
	recent := sm.GetRecentScores()
	assert.Len(t, recent, MaxRecentScores)
	assert.Equal(t, 10, recent[0])
}
