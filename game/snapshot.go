package game

import (
	"time"

	"grid-snake/game/types"
)

// Snapshot is the renderable view of a session for one frame
type Snapshot struct {
	SessionID string
	Tick      uint64
	Moves     uint64
	Grid      types.Grid
	Cells     []types.Cell // head first
	Food      types.Cell
	HasFood   bool
	Heading   types.Direction
	Score     int
	Length    int
	State     types.State
	Collision types.CollisionType
	Elapsed   time.Duration
}

func (g *Game) Snapshot() Snapshot {
	food, hasFood := g.Food()

	end := g.EndTime
	if !g.state.Terminal() {
		end = g.now()
	}

	return Snapshot{
		SessionID: g.UUID,
		Tick:      g.ticks,
		Moves:     g.moves,
		Grid:      g.Grid,
		Cells:     g.snake.Cells(),
		Food:      food,
		HasFood:   hasFood,
		Heading:   g.snake.Heading(),
		Score:     g.score,
		Length:    g.snake.Length(),
		State:     g.state,
		Collision: g.collision,
		Elapsed:   end.Sub(g.StartTime),
	}
}
