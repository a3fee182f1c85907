package game

import (
	"time"

	"grid-snake/game/entity"
	"grid-snake/game/manager"
	"grid-snake/game/types"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

// Config fixes the grid geometry and timing of a session
type Config struct {
	Resolution     int
	TileSize       int
	TicksPerSecond int
	MovesPerSecond int
	Seed           uint64 // 0 seeds from the wall clock
}

func DefaultConfig() Config {
	return Config{
		Resolution:     types.DefaultResolution,
		TileSize:       types.DefaultTileSize,
		TicksPerSecond: types.DefaultTicksPerSecond,
		MovesPerSecond: types.DefaultMovesPerSecond,
	}
}

// Option customizes a Game at construction
type Option func(*Game)

func WithLogger(l zerolog.Logger) Option {
	return func(g *Game) {
		g.log = l
	}
}

// WithSource overrides the food placement random source
func WithSource(src rand.Source) Option {
	return func(g *Game) {
		g.src = src
	}
}

// WithNow overrides the wall clock used for session timestamps
func WithNow(now func() time.Time) Option {
	return func(g *Game) {
		g.now = now
	}
}

// Game is one play session. It owns the snake, the food and the terminal
// state; it is driven from a single goroutine.
type Game struct {
	UUID      string
	Grid      types.Grid
	StartTime time.Time
	EndTime   time.Time

	snake     *entity.Snake
	food      *types.Cell
	allCells  []types.Cell
	state     types.State
	collision types.CollisionType
	score     int
	ticks     uint64
	moves     uint64

	cadence      *Cadence
	foodMgr      *manager.FoodManager
	collisionMgr *manager.CollisionManager

	src rand.Source
	now func() time.Time
	log zerolog.Logger
}

func NewGame(cfg Config, opts ...Option) (*Game, error) {
	grid, err := types.NewGrid(cfg.Resolution, cfg.TileSize)
	if err != nil {
		return nil, err
	}
	cadence, err := NewCadence(cfg.TicksPerSecond, cfg.MovesPerSecond)
	if err != nil {
		return nil, err
	}

	g := &Game{
		UUID:     uuid.New().String(),
		Grid:     grid,
		allCells: grid.AllCells(),
		state:    types.Alive,
		cadence:  cadence,
		now:      time.Now,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.src == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = uint64(g.now().UnixNano())
		}
		g.src = rand.NewSource(seed)
	}
	g.log = g.log.With().Str("session", g.UUID).Logger()

	g.foodMgr = manager.NewFoodManager(g.src)
	g.collisionMgr = manager.NewCollisionManager(grid)
	g.snake = entity.NewSnake(grid.Center(), types.Right, grid.TileSize)
	g.StartTime = g.now()
	g.spawnFood()

	g.log.Info().
		Int("side", grid.Side()).
		Int("tile", grid.TileSize).
		Int("move_every", cadence.Threshold()).
		Msg("session started")
	return g, nil
}

// ChangeDirection queues a heading change for the next move-tick
func (g *Game) ChangeDirection(d types.Direction) bool {
	if g.state.Terminal() {
		return false
	}
	if !g.snake.ChangeDirection(d) {
		g.log.Debug().Stringer("heading", g.snake.Heading()).Stringer("requested", d).Msg("direction change ignored")
		return false
	}
	return true
}

// Tick runs one simulation step: win check, loss check, then movement and
// food handling. Terminal sessions do not change.
func (g *Game) Tick() types.State {
	if g.state.Terminal() {
		return g.state
	}
	g.ticks++

	if g.snake.Length() == g.Grid.CellCount() {
		g.finish(types.Won, types.NoCollision)
		return g.state
	}
	if c := g.collisionMgr.Check(g.snake); c != types.NoCollision {
		g.finish(types.Lost, c)
		return g.state
	}

	if g.cadence.Step() {
		g.snake.Advance()
		g.moves++
	}

	if g.food == nil {
		g.spawnFood()
	}
	if g.food != nil && g.foodMgr.CheckConsumed(*g.food, g.snake.Head()) {
		g.snake.Grow()
		g.score++
		g.food = nil
		g.log.Debug().Int("score", g.score).Int("length", g.snake.Length()).Msg("food consumed")
	}
	return g.state
}

func (g *Game) spawnFood() {
	c, err := g.foodMgr.Respawn(g.snake.Occupied(), g.allCells)
	if err != nil {
		// Full grid; the next tick reports the win
		g.log.Warn().Err(err).Int("length", g.snake.Length()).Msg("food respawn skipped")
		g.food = nil
		return
	}
	g.food = &c
	g.log.Debug().Stringer("food", c).Msg("food placed")
}

func (g *Game) finish(state types.State, cause types.CollisionType) {
	g.state = state
	g.collision = cause
	g.EndTime = g.now()
	g.log.Info().
		Stringer("outcome", state).
		Stringer("cause", cause).
		Int("score", g.score).
		Int("length", g.snake.Length()).
		Uint64("moves", g.moves).
		Dur("duration", g.EndTime.Sub(g.StartTime)).
		Msg("session ended")
}

func (g *Game) State() types.State {
	return g.state
}

func (g *Game) Score() int {
	return g.score
}

// Food returns the current food cell; false means a respawn is pending
func (g *Game) Food() (types.Cell, bool) {
	if g.food == nil {
		return types.Cell{}, false
	}
	return *g.food, true
}

func (g *Game) Snake() *entity.Snake {
	return g.snake
}
