package entity

import (
	"grid-snake/game/types"

	"github.com/gammazero/deque"
)

// Snake is the ordered body of the player's snake, head first.
// It is owned by a single session and only mutated through Advance.
type Snake struct {
	body    deque.Deque[types.Cell]
	heading types.Direction
	step    int

	pending    types.Direction
	hasPending bool
	grow       bool
	collided   bool
}

// NewSnake creates a one-cell snake at start moving along heading.
// step is the tile size in pixels.
func NewSnake(start types.Cell, heading types.Direction, step int) *Snake {
	s := &Snake{
		heading: heading,
		step:    step,
	}
	s.body.PushFront(start)
	return s
}

// ChangeDirection queues d for the next Advance. At most one change is
// accepted per advance and a reversal of the current heading is ignored.
func (s *Snake) ChangeDirection(d types.Direction) bool {
	if !d.Valid() || s.hasPending {
		return false
	}
	if s.heading.IsOpposite(d) {
		return false
	}
	s.pending = d
	s.hasPending = true
	return true
}

// Advance moves the head one tile along the heading. The tail is dropped
// unless growth is pending. Self-collision is recomputed on the new body,
// so stepping into the cell the tail just left is legal.
func (s *Snake) Advance() {
	if s.hasPending {
		s.heading = s.pending
		s.hasPending = false
	}

	dx, dy := s.heading.Vector()
	newHead := s.Head().Add(dx*s.step, dy*s.step)
	s.body.PushFront(newHead)

	if s.grow {
		s.grow = false
	} else {
		s.body.PopBack()
	}

	s.collided = false
	for i := 1; i < s.body.Len(); i++ {
		if s.body.At(i) == newHead {
			s.collided = true
			break
		}
	}
}

// Grow marks the snake to keep its tail on the next Advance
func (s *Snake) Grow() {
	s.grow = true
}

func (s *Snake) Head() types.Cell {
	return s.body.Front()
}

func (s *Snake) Tail() types.Cell {
	return s.body.Back()
}

func (s *Snake) Length() int {
	return s.body.Len()
}

func (s *Snake) Heading() types.Direction {
	return s.heading
}

// PendingDirection returns the queued heading, if any
func (s *Snake) PendingDirection() (types.Direction, bool) {
	return s.pending, s.hasPending
}

func (s *Snake) PendingGrowth() bool {
	return s.grow
}

// Collided reports whether the last Advance ran the head into the body
func (s *Snake) Collided() bool {
	return s.collided
}

// Cells returns a copy of the body, head first
func (s *Snake) Cells() []types.Cell {
	cells := make([]types.Cell, s.body.Len())
	for i := range cells {
		cells[i] = s.body.At(i)
	}
	return cells
}

// Occupied returns the set of cells covered by the body
func (s *Snake) Occupied() map[types.Cell]struct{} {
	set := make(map[types.Cell]struct{}, s.body.Len())
	for i := 0; i < s.body.Len(); i++ {
		set[s.body.At(i)] = struct{}{}
	}
	return set
}
