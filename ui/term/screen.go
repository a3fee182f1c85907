// Package term renders sessions in a terminal with tcell and reads the
// keyboard from the same screen.
package term

import (
	"fmt"

	"grid-snake/game"
	"grid-snake/game/types"

	"github.com/gdamore/tcell/v2"
)

var (
	styleBorder = tcell.StyleDefault.Foreground(tcell.NewRGBColor(88, 91, 112))
	styleSnake  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(166, 227, 161))
	styleHead   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(203, 255, 198)).Bold(true)
	styleApple  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(243, 139, 168))
	styleText   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(205, 214, 244))
	styleBanner = tcell.StyleDefault.Foreground(tcell.NewRGBColor(249, 226, 175)).Bold(true)
)

// cellWidth is the number of terminal columns per tile, keeping tiles
// roughly square
const cellWidth = 2

// Screen is a render sink drawing into a tcell screen. The board is framed
// by a border with one status line beneath it.
type Screen struct {
	screen tcell.Screen
}

func NewScreen(screen tcell.Screen) *Screen {
	return &Screen{screen: screen}
}

func (s *Screen) Render(snap game.Snapshot) {
	s.screen.Clear()

	side := snap.Grid.Side()
	width, height := s.screen.Size()
	boardW := side*cellWidth + 2
	boardH := side + 2
	originX := max((width-boardW)/2, 0)
	originY := max((height-boardH-1)/2, 0)

	s.drawBorder(originX, originY, boardW, boardH)

	plot := func(c types.Cell, r rune, style tcell.Style) {
		col, row := snap.Grid.Index(c)
		x := originX + 1 + col*cellWidth
		y := originY + 1 + row
		for i := 0; i < cellWidth; i++ {
			s.screen.SetContent(x+i, y, r, nil, style)
		}
	}

	if snap.HasFood {
		plot(snap.Food, '●', styleApple)
	}
	for i := len(snap.Cells) - 1; i > 0; i-- {
		plot(snap.Cells[i], '█', styleSnake)
	}
	if len(snap.Cells) > 0 {
		plot(snap.Cells[0], headRune(snap.Heading), styleHead)
	}

	status := fmt.Sprintf("score %d  length %d/%d  %s", snap.Score, snap.Length, snap.Grid.CellCount(), snap.State)
	s.drawText(originX, originY+boardH, status, styleText)

	if snap.State.Terminal() {
		banner := "GAME OVER"
		if snap.State == types.Won {
			banner = "YOU WIN"
		}
		banner += "  r: restart  q: quit"
		s.drawText(originX+max((boardW-len(banner))/2, 0), originY+boardH/2, banner, styleBanner)
	}

	s.screen.Show()
}

func (s *Screen) drawBorder(x, y, w, h int) {
	for i := 1; i < w-1; i++ {
		s.screen.SetContent(x+i, y, '─', nil, styleBorder)
		s.screen.SetContent(x+i, y+h-1, '─', nil, styleBorder)
	}
	for j := 1; j < h-1; j++ {
		s.screen.SetContent(x, y+j, '│', nil, styleBorder)
		s.screen.SetContent(x+w-1, y+j, '│', nil, styleBorder)
	}
	s.screen.SetContent(x, y, '┌', nil, styleBorder)
	s.screen.SetContent(x+w-1, y, '┐', nil, styleBorder)
	s.screen.SetContent(x, y+h-1, '└', nil, styleBorder)
	s.screen.SetContent(x+w-1, y+h-1, '┘', nil, styleBorder)
}

func (s *Screen) drawText(x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		s.screen.SetContent(x+i, y, r, nil, style)
	}
}

func headRune(d types.Direction) rune {
	switch d {
	case types.Left:
		return '◀'
	case types.Up:
		return '▲'
	case types.Down:
		return '▼'
	default:
		return '▶'
	}
}
