package types

// Direction is one of the four cardinal headings
type Direction int

const (
	Left Direction = iota + 1
	Right
	Up
	Down
)

// Vector returns the unit step for the direction, y grows downward
func (d Direction) Vector() (dx, dy int) {
	switch d {
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	default:
		return 0, 0
	}
}

// Opposite returns the 180° heading
func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	case Down:
		return Up
	default:
		return d
	}
}

// IsOpposite reports whether other is the reverse of d
func (d Direction) IsOpposite(other Direction) bool {
	return d.Valid() && other == d.Opposite()
}

// TurnLeft returns the heading after a counter-clockwise quarter turn
func (d Direction) TurnLeft() Direction {
	switch d {
	case Up:
		return Left
	case Right:
		return Up
	case Down:
		return Right
	case Left:
		return Down
	default:
		return d
	}
}

// TurnRight returns the heading after a clockwise quarter turn
func (d Direction) TurnRight() Direction {
	switch d {
	case Up:
		return Right
	case Right:
		return Down
	case Down:
		return Left
	case Left:
		return Up
	default:
		return d
	}
}

func (d Direction) Valid() bool {
	return d >= Left && d <= Down
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "none"
	}
}
