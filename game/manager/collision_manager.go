package manager

import (
	"grid-snake/game/entity"
	"grid-snake/game/types"
)

type CollisionManager struct {
	grid types.Grid
}

func NewCollisionManager(grid types.Grid) *CollisionManager {
	return &CollisionManager{
		grid: grid,
	}
}

// Check classifies the snake's current head position
func (cm *CollisionManager) Check(snake *entity.Snake) types.CollisionType {
	if cm.IsWallCollision(snake.Head()) {
		return types.WallCollision
	}
	if snake.Collided() {
		return types.SelfCollision
	}
	return types.NoCollision
}

// IsWallCollision checks if a position lies outside the grid
func (cm *CollisionManager) IsWallCollision(pos types.Cell) bool {
	return !cm.grid.Contains(pos)
}
