package term

import (
	"grid-snake/game"
	"grid-snake/game/types"

	"github.com/gdamore/tcell/v2"
)

const inputBuffer = 32

// Input turns tcell key events into game commands. Events are read on a
// separate goroutine since PollEvent blocks.
type Input struct {
	screen   tcell.Screen
	commands chan game.Command
	done     chan struct{}
}

// NewInput starts reading events from screen. The reader exits once the
// screen is finalized.
func NewInput(screen tcell.Screen) *Input {
	in := &Input{
		screen:   screen,
		commands: make(chan game.Command, inputBuffer),
		done:     make(chan struct{}),
	}
	go in.listen()
	return in
}

func (in *Input) listen() {
	defer close(in.done)
	for {
		ev := in.screen.PollEvent()
		if ev == nil {
			return
		}
		in.handle(ev)
	}
}

func (in *Input) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if cmd, ok := translate(ev.Key(), ev.Rune()); ok {
			in.push(cmd)
		}
	case *tcell.EventResize:
		in.screen.Sync()
	}
}

// push drops the command when the buffer is full
func (in *Input) push(cmd game.Command) {
	select {
	case in.commands <- cmd:
	default:
	}
}

// Poll drains the commands buffered since the last call
func (in *Input) Poll() []game.Command {
	var cmds []game.Command
	for {
		select {
		case cmd := <-in.commands:
			cmds = append(cmds, cmd)
		default:
			return cmds
		}
	}
}

// Done is closed when the event reader has stopped
func (in *Input) Done() <-chan struct{} {
	return in.done
}

func translate(key tcell.Key, r rune) (game.Command, bool) {
	switch key {
	case tcell.KeyUp:
		return game.Move(types.Up), true
	case tcell.KeyDown:
		return game.Move(types.Down), true
	case tcell.KeyLeft:
		return game.Move(types.Left), true
	case tcell.KeyRight:
		return game.Move(types.Right), true
	case tcell.KeyEnter:
		return game.Restart(), true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return game.Quit(), true
	case tcell.KeyRune:
		switch r {
		case 'w', 'W', 'k':
			return game.Move(types.Up), true
		case 's', 'S', 'j':
			return game.Move(types.Down), true
		case 'a', 'A', 'h':
			return game.Move(types.Left), true
		case 'd', 'D', 'l':
			return game.Move(types.Right), true
		case 'r', 'R':
			return game.Restart(), true
		case 'q', 'Q':
			return game.Quit(), true
		}
	}
	return game.Command{}, false
}
