package ui

import (
	"fmt"
	"time"

	"grid-snake/game"
	"grid-snake/game/manager"
	"grid-snake/game/types"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	maxScores     = manager.MaxRecentScores // Maximum number of scores to show in graph
	borderPadding = 10
)

var (
	backgroundColor = rl.NewColor(30, 30, 46, 255)
	gridColor       = rl.NewColor(49, 50, 68, 255)
	snakeColor      = rl.NewColor(166, 227, 161, 255)
	headColor       = rl.NewColor(203, 255, 198, 255)
	appleColor      = rl.NewColor(243, 139, 168, 255)
	panelColor      = rl.NewColor(24, 24, 37, 255)
	textColor       = rl.NewColor(205, 214, 244, 255)
	accentColor     = rl.NewColor(249, 226, 175, 255)
)

// Renderer draws snapshots into the raylib window. It must be used from the
// goroutine that owns the window.
type Renderer struct {
	stats *manager.StatsManager

	cellSize     int32
	screenWidth  int32
	screenHeight int32
	graphHeight  int32
	graphWidth   int32
	gameWidth    int32
	statsPanel   int32
	gridSize     int32
	offsetX      int32
	offsetY      int32
}

func NewRenderer(stats *manager.StatsManager) *Renderer {
	r := &Renderer{stats: stats}
	r.UpdateDimensions()
	return r
}

func (r *Renderer) UpdateDimensions() {
	r.screenWidth = int32(rl.GetScreenWidth())
	r.screenHeight = int32(rl.GetScreenHeight())

	r.statsPanel = r.screenWidth / 4
	r.gameWidth = r.screenWidth - r.statsPanel

	r.graphWidth = r.statsPanel - 20
	r.graphHeight = r.screenHeight / 4
}

// fit sizes the board to the space left of the stats panel
func (r *Renderer) fit(side int) {
	available := min(r.gameWidth, r.screenHeight) - borderPadding*2
	r.cellSize = max(available/int32(side), 1)
	r.gridSize = r.cellSize * int32(side)
	r.offsetX = (r.gameWidth - r.gridSize) / 2
	r.offsetY = (r.screenHeight - r.gridSize) / 2
}

func (r *Renderer) cellOrigin(grid types.Grid, c types.Cell) (int32, int32) {
	col, row := grid.Index(c)
	return r.offsetX + int32(col)*r.cellSize, r.offsetY + int32(row)*r.cellSize
}

func (r *Renderer) Render(s game.Snapshot) {
	r.UpdateDimensions()
	r.fit(s.Grid.Side())

	rl.BeginDrawing()
	rl.ClearBackground(backgroundColor)

	fontSize := max(min(r.screenHeight/32, r.statsPanel/12), 10)
	lineHeight := fontSize + fontSize/2

	r.drawGrid(s.Grid)
	if s.HasFood {
		r.drawApple(s.Grid, s.Food)
	}
	r.drawSnake(s)
	r.drawStatsPanel(s, fontSize, lineHeight)
	if s.State.Terminal() {
		r.drawBanner(s, fontSize*2)
	}

	rl.EndDrawing()
}

func (r *Renderer) drawGrid(grid types.Grid) {
	rl.DrawRectangle(r.offsetX-1, r.offsetY-1, r.gridSize+2, r.gridSize+2, gridColor)
	rl.DrawRectangle(r.offsetX, r.offsetY, r.gridSize, r.gridSize, backgroundColor)

	side := int32(grid.Side())
	for i := int32(1); i < side; i++ {
		rl.DrawLine(r.offsetX+i*r.cellSize, r.offsetY, r.offsetX+i*r.cellSize, r.offsetY+r.gridSize, gridColor)
		rl.DrawLine(r.offsetX, r.offsetY+i*r.cellSize, r.offsetX+r.gridSize, r.offsetY+i*r.cellSize, gridColor)
	}
}

func (r *Renderer) drawApple(grid types.Grid, food types.Cell) {
	x, y := r.cellOrigin(grid, food)
	half := r.cellSize / 2
	rl.DrawCircle(x+half, y+half, float32(r.cellSize)*0.4, appleColor)
}

func (r *Renderer) drawSnake(s game.Snapshot) {
	inset := float32(r.cellSize) * 0.08
	for i := len(s.Cells) - 1; i >= 0; i-- {
		x, y := r.cellOrigin(s.Grid, s.Cells[i])
		color := snakeColor
		if i == 0 {
			color = headColor
		}
		rec := rl.NewRectangle(float32(x)+inset, float32(y)+inset, float32(r.cellSize)-2*inset, float32(r.cellSize)-2*inset)
		rl.DrawRectangleRounded(rec, 0.35, 6, color)
	}
	if len(s.Cells) > 0 {
		r.drawHeading(s.Grid, s.Cells[0], s.Heading)
	}
}

// drawHeading marks the head with a triangle pointing where it moves
func (r *Renderer) drawHeading(grid types.Grid, head types.Cell, heading types.Direction) {
	headX, headY := r.cellOrigin(grid, head)
	x, y := float32(headX), float32(headY)
	size := float32(r.cellSize)
	half := size / 2
	quarter := size / 4

	var a, b, c rl.Vector2
	switch heading {
	case types.Right:
		a = rl.Vector2{X: x + size - quarter, Y: y + half}
		b = rl.Vector2{X: x + half, Y: y + quarter}
		c = rl.Vector2{X: x + half, Y: y + size - quarter}
	case types.Left:
		a = rl.Vector2{X: x + quarter, Y: y + half}
		b = rl.Vector2{X: x + half, Y: y + size - quarter}
		c = rl.Vector2{X: x + half, Y: y + quarter}
	case types.Down:
		a = rl.Vector2{X: x + half, Y: y + size - quarter}
		b = rl.Vector2{X: x + size - quarter, Y: y + half}
		c = rl.Vector2{X: x + quarter, Y: y + half}
	default:
		a = rl.Vector2{X: x + half, Y: y + quarter}
		b = rl.Vector2{X: x + quarter, Y: y + half}
		c = rl.Vector2{X: x + size - quarter, Y: y + half}
	}
	// raylib expects counter-clockwise vertices
	rl.DrawTriangle(a, b, c, backgroundColor)
}

func (r *Renderer) drawStatsPanel(s game.Snapshot, fontSize, lineHeight int32) {
	statsX := r.gameWidth + 10
	statsY := int32(10)

	rl.DrawRectangle(r.gameWidth, 0, r.statsPanel, r.screenHeight, panelColor)

	rl.DrawText(fmt.Sprintf("Score: %d", s.Score), statsX, statsY, fontSize, accentColor)
	statsY += lineHeight
	rl.DrawText(fmt.Sprintf("Length: %d / %d", s.Length, s.Grid.CellCount()), statsX, statsY, fontSize, textColor)
	statsY += lineHeight
	rl.DrawText(fmt.Sprintf("Time: %s", formatElapsed(s.Elapsed)), statsX, statsY, fontSize, textColor)
	statsY += lineHeight * 3 / 2

	if r.stats == nil {
		return
	}
	rl.DrawText("Session stats:", statsX, statsY, fontSize, textColor)
	statsY += lineHeight
	rl.DrawText(fmt.Sprintf("High: %d", r.stats.GetHighScore()), statsX+5, statsY, fontSize, textColor)
	statsY += lineHeight
	rl.DrawText(fmt.Sprintf("Avg: %.2f", r.stats.GetAverageScore()), statsX+5, statsY, fontSize, textColor)
	statsY += lineHeight
	rl.DrawText(fmt.Sprintf("Median: %.1f", r.stats.GetMedianScore()), statsX+5, statsY, fontSize, textColor)
	statsY += lineHeight
	rl.DrawText(fmt.Sprintf("Games: %d (%d won)", r.stats.GetGamesPlayed(), r.stats.GetWins()), statsX+5, statsY, fontSize, textColor)

	r.drawPerformanceGraph(statsX, fontSize)
}

func (r *Renderer) drawPerformanceGraph(graphX, fontSize int32) {
	graphHeight := r.graphHeight
	graphY := r.screenHeight - graphHeight - fontSize*2

	rl.DrawRectangleLines(graphX, graphY, r.graphWidth, graphHeight, textColor)
	rl.DrawText("Scores", graphX, graphY-fontSize-5, fontSize, textColor)

	scores := r.stats.GetRecentScores()
	if len(scores) < 2 {
		return
	}

	maxScore := 1
	for _, score := range scores {
		if score > maxScore {
			maxScore = score
		}
	}

	for j := 1; j < len(scores); j++ {
		x1 := graphX + int32(float32(r.graphWidth)*float32(j-1)/float32(maxScores))
		y1 := graphY + graphHeight - int32(float32(graphHeight)*float32(scores[j-1])/float32(maxScore))
		x2 := graphX + int32(float32(r.graphWidth)*float32(j)/float32(maxScores))
		y2 := graphY + graphHeight - int32(float32(graphHeight)*float32(scores[j])/float32(maxScore))
		rl.DrawLine(x1, y1, x2, y2, snakeColor)
	}

	// Dashed average line
	avgY := graphY + graphHeight - int32(float32(graphHeight)*float32(r.stats.GetAverageScore())/float32(maxScore))
	for x := graphX; x < graphX+r.graphWidth; x += 5 {
		rl.DrawLine(x, avgY, x+2, avgY, accentColor)
	}
}

func (r *Renderer) drawBanner(s game.Snapshot, fontSize int32) {
	title := "Game Over"
	color := appleColor
	if s.State == types.Won {
		title = "You Win!"
		color = accentColor
	}

	rl.DrawRectangle(r.offsetX, r.offsetY+r.gridSize/2-fontSize*2, r.gridSize, fontSize*4, rl.Fade(panelColor, 0.85))

	titleWidth := rl.MeasureText(title, fontSize)
	rl.DrawText(title, r.offsetX+(r.gridSize-titleWidth)/2, r.offsetY+r.gridSize/2-fontSize*3/2, fontSize, color)

	hint := "R to restart, Q to quit"
	hintSize := fontSize / 2
	hintWidth := rl.MeasureText(hint, hintSize)
	rl.DrawText(hint, r.offsetX+(r.gridSize-hintWidth)/2, r.offsetY+r.gridSize/2+hintSize/2, hintSize, textColor)
}

func formatElapsed(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
