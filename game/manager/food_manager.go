package manager

import (
	"grid-snake/game/types"

	"golang.org/x/exp/rand"
)

// FoodManager places food on free cells
type FoodManager struct {
	rng *rand.Rand
}

// NewFoodManager uses src for placement; pass a seeded source for
// reproducible games
func NewFoodManager(src rand.Source) *FoodManager {
	return &FoodManager{
		rng: rand.New(src),
	}
}

// Respawn picks a cell uniformly from allCells minus occupied
func (fm *FoodManager) Respawn(occupied map[types.Cell]struct{}, allCells []types.Cell) (types.Cell, error) {
	free := make([]types.Cell, 0, len(allCells))
	for _, c := range allCells {
		if _, taken := occupied[c]; !taken {
			free = append(free, c)
		}
	}

	if len(free) == 0 {
		return types.Cell{}, types.ErrNoSpaceAvailable
	}
	return free[fm.rng.Intn(len(free))], nil
}

// CheckConsumed reports whether the head sits on the food
func (fm *FoodManager) CheckConsumed(food, head types.Cell) bool {
	return food == head
}
