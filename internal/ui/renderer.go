package ui

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/mazedelve/internal/gamedata"
	"github.com/samdwyer/mazedelve/internal/movement"
	"github.com/samdwyer/mazedelve/internal/world"
)

// Lines reserved under the map.
const hudLines = 2

// View is everything one frame draws.
type View struct {
	Level   *world.Level
	Player  movement.Player
	Theme   gamedata.Theme
	Status  string
	Message string
}

// Renderer draws a top-down view of the level.
type Renderer struct {
	canvas Canvas
}

// NewRenderer creates a new renderer for the given canvas.
func NewRenderer(canvas Canvas) *Renderer {
	return &Renderer{canvas: canvas}
}

// Render draws the level, the player and the HUD.
func (r *Renderer) Render(v View) {
	r.canvas.Clear()
	width, height := r.canvas.Size()
	mapHeight := height - hudLines

	if v.Level != nil && mapHeight > 0 {
		player := v.Level.CellAt(v.Player.Position.X, v.Player.Position.Z)
		ox := Offset(player.X, v.Level.Width(), width)
		oy := Offset(player.Y, v.Level.Height(), mapHeight)

		for sy := 0; sy < mapHeight; sy++ {
			for sx := 0; sx < width; sx++ {
				gx, gy := sx+ox, sy+oy
				if !v.Level.Grid.InBounds(gx, gy) {
					continue
				}
				cell := v.Level.Grid.Get(gx, gy)
				r.canvas.SetContent(sx, sy, cell.Rune(), cellStyle(cell, v.Theme))
			}
		}

		if px, py := player.X-ox, player.Y-oy; px >= 0 && px < width && py >= 0 && py < mapHeight {
			style := tcell.StyleDefault.Foreground(v.Theme.Player).Bold(true)
			r.canvas.SetContent(px, py, FacingGlyph(v.Player.Yaw), style)
		}
	}

	r.drawLine(height-2, v.Status, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	r.drawLine(height-1, v.Message, tcell.StyleDefault.Foreground(tcell.ColorYellow))
	r.canvas.Show()
}

func (r *Renderer) drawLine(y int, msg string, style tcell.Style) {
	if y < 0 {
		return
	}
	width, _ := r.canvas.Size()
	x := 0
	for _, ch := range msg {
		if x >= width {
			return
		}
		r.canvas.SetContent(x, y, ch, style)
		x++
	}
}

// Offset returns the first grid column (or row) to draw so that focus stays
// on screen. Levels that fit are drawn from zero.
func Offset(focus, levelSize, screenSize int) int {
	if levelSize <= screenSize {
		return 0
	}
	o := focus - screenSize/2
	if o < 0 {
		return 0
	}
	if o > levelSize-screenSize {
		return levelSize - screenSize
	}
	return o
}

// FacingGlyph returns an arrow for the nearest cardinal heading. Up on screen
// is -Z.
func FacingGlyph(yaw float64) rune {
	glyphs := [4]rune{'^', '<', 'v', '>'}
	i := int(math.Round(movement.WrapYaw(yaw)/(math.Pi/2))) % 4
	return glyphs[i]
}

func cellStyle(c world.Cell, t gamedata.Theme) tcell.Style {
	switch c {
	case world.CellWall:
		return tcell.StyleDefault.Foreground(t.Wall)
	case world.CellPath:
		return tcell.StyleDefault.Foreground(t.Path)
	case world.CellRoomFloor:
		return tcell.StyleDefault.Foreground(t.Room)
	case world.CellDoorStart:
		return tcell.StyleDefault.Foreground(t.DoorStart).Bold(true)
	case world.CellDoorEnd:
		return tcell.StyleDefault.Foreground(t.DoorEnd).Bold(true)
	default:
		return tcell.StyleDefault
	}
}
