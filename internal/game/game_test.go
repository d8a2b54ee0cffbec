package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/samdwyer/mazedelve/internal/gamedata"
	"github.com/samdwyer/mazedelve/internal/movement"
	"github.com/samdwyer/mazedelve/internal/world"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func profiles(t *testing.T) *gamedata.ProfileRegistry {
	t.Helper()
	r, err := gamedata.LoadProfileRegistry()
	if err != nil {
		t.Fatalf("LoadProfileRegistry() error = %v", err)
	}
	return r
}

func testConfig(t *testing.T, vars map[string]string) Config {
	t.Helper()
	cfg, err := LoadConfig(profiles(t), env(vars))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	return cfg
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg := testConfig(t, nil)
	if cfg.World.Width != 31 || cfg.World.Height != 31 || cfg.World.CellSize != 1.5 {
		t.Errorf("world = %+v, want 31x31 at 1.5", cfg.World)
	}
	if cfg.World.MinRooms != 3 || cfg.World.MaxRooms != 5 {
		t.Errorf("rooms = %d..%d, want 3..5", cfg.World.MinRooms, cfg.World.MaxRooms)
	}
	if cfg.Async {
		t.Error("Async should default to false")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	cfg := testConfig(t, map[string]string{
		EnvProfile:  "small",
		EnvWidth:    "21",
		EnvCellSize: "2",
		EnvSeed:     "42",
		EnvSpeed:    "5.5",
		EnvAsync:    "true",
	})
	if cfg.World.Width != 21 || cfg.World.Height != 15 {
		t.Errorf("size = %dx%d, want 21x15", cfg.World.Width, cfg.World.Height)
	}
	if cfg.World.CellSize != 2 || cfg.Movement.EyeHeight != 1 {
		t.Errorf("cell size %v, eye height %v", cfg.World.CellSize, cfg.Movement.EyeHeight)
	}
	if cfg.World.Seed != 42 || cfg.Movement.Speed != 5.5 || !cfg.Async {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
		want error
	}{
		{"even width", map[string]string{EnvWidth: "30"}, world.ErrEvenDimension},
		{"zero cell size", map[string]string{EnvCellSize: "0"}, world.ErrCellSize},
		{"negative radius", map[string]string{EnvRadius: "-1"}, movement.ErrRadius},
		{"unknown profile", map[string]string{EnvProfile: "nope"}, gamedata.ErrUnknownProfile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(profiles(t), env(tt.vars))
			if !errors.Is(err, tt.want) {
				t.Errorf("LoadConfig() error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := LoadConfig(profiles(t), env(map[string]string{EnvSeed: "abc"})); err == nil {
		t.Error("malformed seed should be an error")
	}
}

func newTestSession(t *testing.T, vars map[string]string) *Session {
	t.Helper()
	if vars == nil {
		vars = map[string]string{}
	}
	if _, ok := vars[EnvSeed]; !ok {
		vars[EnvSeed] = "99"
	}
	s, err := NewSession(context.Background(), testConfig(t, vars), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestSessionStartsOnEntrance(t *testing.T) {
	s := newTestSession(t, nil)
	level := s.Level()
	if level == nil {
		t.Fatal("no level after NewSession")
	}
	cell, ok := s.Resolver().Cell()
	if !ok || cell != level.Start {
		t.Errorf("player in %v, want start %v", cell, level.Start)
	}
	if b := s.Resolver().Current(); b.World.LevelID() != level.ID {
		t.Error("collision world does not belong to the current level")
	}
}

func TestSessionRegeneratesAtExit(t *testing.T) {
	for _, async := range []string{"false", "true"} {
		t.Run("async="+async, func(t *testing.T) {
			s := newTestSession(t, map[string]string{EnvAsync: async})
			first := s.Level()
			firstWorld := s.Resolver().Current().World

			x, z := first.CellCenter(first.End)
			s.Resolver().Teleport(x, z)
			s.Tick(context.Background(), movement.Input{Use: true})

			deadline := time.Now().Add(5 * time.Second)
			for s.Resolver().State() == movement.StateGenerating && time.Now().Before(deadline) {
				s.Tick(context.Background(), movement.Input{})
				time.Sleep(time.Millisecond)
			}

			next := s.Level()
			if next.ID == first.ID || next.Seq != first.Seq+1 {
				t.Fatalf("level not replaced: seq %d -> %d", first.Seq, next.Seq)
			}
			if firstWorld.Len() != 0 {
				t.Error("previous collision world should be released")
			}
			if cell, _ := s.Resolver().Cell(); cell != next.Start {
				t.Errorf("player in %v after regeneration, want %v", cell, next.Start)
			}
		})
	}
}

func keyEvent(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestKeyHoldEmulation(t *testing.T) {
	var k keyState
	now := time.Now()

	k.press(actForward, now)
	if !k.held(actForward, now.Add(holdWindow/2)) {
		t.Error("key should be held inside the window")
	}
	if k.held(actForward, now.Add(holdWindow+time.Millisecond)) {
		t.Error("key should be released after the window")
	}
	if k.held(actBack, now) {
		t.Error("unpressed key reported held")
	}

	k.pressUse()
	if !k.takeUse() || k.takeUse() {
		t.Error("use should be reported exactly once")
	}
}

func TestHandleKeyEvent(t *testing.T) {
	g := &Game{running: true}
	now := time.Now()

	g.handleKeyEvent(keyEvent('w'), now)
	g.handleKeyEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), now)
	if !g.keys.held(actForward, now) || !g.keys.held(actTurnLeft, now) {
		t.Error("w and left arrow should be held")
	}

	g.handleKeyEvent(keyEvent('p'), now)
	if !g.paused || g.keys.held(actForward, now) {
		t.Error("pause should stop the clock and drop held keys")
	}
	g.handleKeyEvent(keyEvent('e'), now)
	if g.keys.takeUse() {
		t.Error("use should be ignored while paused")
	}

	g.handleKeyEvent(keyEvent('q'), now)
	if g.running {
		t.Error("q should quit")
	}
}

func TestUpdateTurnsAndMoves(t *testing.T) {
	s := newTestSession(t, nil)
	g := &Game{cfg: s.Config(), session: s, running: true}
	start := s.Player().Position
	now := time.Now()

	g.keys.press(actTurnLeft, now)
	g.update(context.Background(), now, 100*time.Millisecond)
	if g.yaw <= 0 {
		t.Errorf("yaw = %v, turning left should increase it", g.yaw)
	}

	g.paused = true
	g.keys.press(actForward, now)
	g.update(context.Background(), now, 100*time.Millisecond)
	if s.Player().Position != start {
		t.Error("player moved while paused")
	}
	if g.State() != StatePaused {
		t.Errorf("State() = %v, want paused", g.State())
	}
}

func TestOnEventMessages(t *testing.T) {
	g := &Game{depth: 1}
	g.onEvent(movement.Event{Kind: movement.EventEnteredExitRange})
	if g.message == "" {
		t.Error("entering exit range should set a message")
	}
	g.onEvent(movement.Event{Kind: movement.EventRegenerated})
	if g.depth != 2 {
		t.Errorf("depth = %d, want 2", g.depth)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateExplore, "explore"},
		{StateGenerating, "generating"},
		{StatePaused, "paused"},
		{State(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.expected {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.expected)
		}
	}
}
