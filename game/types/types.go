package types

import "fmt"

// Cell is one grid-aligned tile position in pixel units
type Cell struct {
	X, Y int
}

// Add returns the cell offset by (dx, dy)
func (c Cell) Add(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Grid is the square playing field: Resolution pixels per side split into
// tiles of TileSize pixels
type Grid struct {
	Resolution int
	TileSize   int
}

// NewGrid validates the resolution/tile combination
func NewGrid(resolution, tileSize int) (Grid, error) {
	if resolution <= 0 || tileSize <= 0 {
		return Grid{}, fmt.Errorf("%w: resolution %d and tile size %d must be positive",
			ErrConfiguration, resolution, tileSize)
	}
	if resolution%tileSize != 0 {
		return Grid{}, fmt.Errorf("%w: tile size %d does not divide resolution %d",
			ErrConfiguration, tileSize, resolution)
	}
	return Grid{Resolution: resolution, TileSize: tileSize}, nil
}

// Side returns the number of tiles along one edge
func (g Grid) Side() int {
	return g.Resolution / g.TileSize
}

// CellCount returns the number of occupiable cells
func (g Grid) CellCount() int {
	side := g.Side()
	return side * side
}

// AllCells lists every cell in row-major order
func (g Grid) AllCells() []Cell {
	cells := make([]Cell, 0, g.CellCount())
	for y := 0; y < g.Resolution; y += g.TileSize {
		for x := 0; x < g.Resolution; x += g.TileSize {
			cells = append(cells, Cell{X: x, Y: y})
		}
	}
	return cells
}

// Contains reports whether the cell lies inside the grid bounds
func (g Grid) Contains(c Cell) bool {
	limit := g.Resolution - g.TileSize
	return c.X >= 0 && c.X <= limit && c.Y >= 0 && c.Y <= limit
}

// Center returns the tile-aligned starting cell
func (g Grid) Center() Cell {
	mid := (g.Side() / 2) * g.TileSize
	return Cell{X: mid, Y: mid}
}

// Index converts a cell to its tile coordinates
func (g Grid) Index(c Cell) (col, row int) {
	return c.X / g.TileSize, c.Y / g.TileSize
}

// State is the session's terminal-state flag
type State int

const (
	Alive State = iota
	Won
	Lost
)

func (s State) String() string {
	switch s {
	case Alive:
		return "alive"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions are possible
func (s State) Terminal() bool {
	return s == Won || s == Lost
}

// CollisionType represents the type of collision
type CollisionType int

const (
	NoCollision CollisionType = iota
	WallCollision
	SelfCollision
)

func (c CollisionType) String() string {
	switch c {
	case WallCollision:
		return "wall"
	case SelfCollision:
		return "self"
	default:
		return "none"
	}
}

// Defaults taken from the classic ruleset
const (
	DefaultResolution     = 500
	DefaultTileSize       = 50
	DefaultTicksPerSecond = 60
	DefaultMovesPerSecond = 6
)
