package ui

import (
	"grid-snake/game"
	"grid-snake/game/types"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type binding struct {
	key int32
	cmd game.Command
}

var bindings = []binding{
	{rl.KeyUp, game.Move(types.Up)},
	{rl.KeyW, game.Move(types.Up)},
	{rl.KeyDown, game.Move(types.Down)},
	{rl.KeyS, game.Move(types.Down)},
	{rl.KeyLeft, game.Move(types.Left)},
	{rl.KeyA, game.Move(types.Left)},
	{rl.KeyRight, game.Move(types.Right)},
	{rl.KeyD, game.Move(types.Right)},
	{rl.KeyR, game.Restart()},
	{rl.KeyEnter, game.Restart()},
	{rl.KeyQ, game.Quit()},
}

// Input reads the raylib keyboard state once per frame
type Input struct{}

func NewInput() *Input {
	return &Input{}
}

// Poll reports keys pressed since the previous frame. Closing the window
// (or Escape, raylib's default exit key) is a quit.
func (in *Input) Poll() []game.Command {
	if rl.WindowShouldClose() {
		return []game.Command{game.Quit()}
	}

	var cmds []game.Command
	for _, b := range bindings {
		if rl.IsKeyPressed(b.key) {
			cmds = append(cmds, b.cmd)
		}
	}
	return cmds
}
