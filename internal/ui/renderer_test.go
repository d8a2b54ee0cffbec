package ui

import (
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/mazedelve/internal/gamedata"
	"github.com/samdwyer/mazedelve/internal/movement"
	"github.com/samdwyer/mazedelve/internal/vmath"
	"github.com/samdwyer/mazedelve/internal/world"
)

type fakeCanvas struct {
	w, h  int
	cells map[[2]int]rune
	shown int
}

func newFakeCanvas(w, h int) *fakeCanvas {
	return &fakeCanvas{w: w, h: h, cells: make(map[[2]int]rune)}
}

func (c *fakeCanvas) Clear()           { c.cells = make(map[[2]int]rune) }
func (c *fakeCanvas) Show()            { c.shown++ }
func (c *fakeCanvas) Size() (int, int) { return c.w, c.h }
func (c *fakeCanvas) at(x, y int) rune { return c.cells[[2]int{x, y}] }

func (c *fakeCanvas) SetContent(x, y int, r rune, _ tcell.Style) {
	c.cells[[2]int{x, y}] = r
}

func testLevel(t *testing.T) *world.Level {
	t.Helper()
	g, err := world.ParseGrid(`
#######
#S.._.#
#.###.#
#....E#
#######`)
	if err != nil {
		t.Fatalf("ParseGrid() error = %v", err)
	}
	return &world.Level{Grid: g, Start: world.Point{X: 1, Y: 1}, End: world.Point{X: 5, Y: 3}, CellSize: 1}
}

func TestRenderDrawsLevelPlayerAndHUD(t *testing.T) {
	level := testLevel(t)
	canvas := newFakeCanvas(20, 8)
	x, z := level.CellCenter(world.Point{X: 2, Y: 1})

	NewRenderer(canvas).Render(View{
		Level:   level,
		Player:  movement.Player{Position: vmath.Vec3{X: x, Z: z}, Yaw: math.Pi / 2},
		Theme:   gamedata.DefaultTheme,
		Status:  "level 1",
		Message: "hi",
	})

	checks := []struct {
		x, y int
		want rune
	}{
		{0, 0, '#'},
		{1, 1, 'S'},
		{2, 1, '<'}, // player facing -X
		{4, 1, '_'},
		{5, 3, 'E'},
		{0, 6, 'l'},
		{0, 7, 'h'},
	}
	for _, c := range checks {
		if got := canvas.at(c.x, c.y); got != c.want {
			t.Errorf("(%d,%d) = %q, want %q", c.x, c.y, got, c.want)
		}
	}
	if canvas.shown != 1 {
		t.Errorf("Show() called %d times, want 1", canvas.shown)
	}
}

func TestRenderWithoutLevel(t *testing.T) {
	canvas := newFakeCanvas(10, 3)
	NewRenderer(canvas).Render(View{Status: "generating"})
	if canvas.at(0, 1) != 'g' {
		t.Error("status line should still be drawn")
	}
}

func TestOffset(t *testing.T) {
	tests := []struct {
		focus, level, screen, want int
	}{
		{5, 31, 80, 0},
		{2, 61, 20, 0},
		{30, 61, 20, 20},
		{60, 61, 20, 41},
	}
	for _, tt := range tests {
		if got := Offset(tt.focus, tt.level, tt.screen); got != tt.want {
			t.Errorf("Offset(%d, %d, %d) = %d, want %d", tt.focus, tt.level, tt.screen, got, tt.want)
		}
	}
}

func TestFacingGlyph(t *testing.T) {
	tests := []struct {
		yaw  float64
		want rune
	}{
		{0, '^'},
		{math.Pi / 2, '<'},
		{math.Pi, 'v'},
		{-math.Pi / 2, '>'},
		{2*math.Pi - 0.1, '^'},
	}
	for _, tt := range tests {
		if got := FacingGlyph(tt.yaw); got != tt.want {
			t.Errorf("FacingGlyph(%v) = %q, want %q", tt.yaw, got, tt.want)
		}
	}
}

func TestSimulationScreen(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	s, err := newScreen(sim)
	if err != nil {
		t.Fatalf("newScreen() error = %v", err)
	}
	defer s.Close()
	sim.SetSize(40, 12)

	NewRenderer(s).Render(View{Level: testLevel(t), Theme: gamedata.DefaultTheme})
}
