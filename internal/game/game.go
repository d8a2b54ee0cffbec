package game

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/mazedelve/internal/movement"
	"github.com/samdwyer/mazedelve/internal/telemetry"
	"github.com/samdwyer/mazedelve/internal/ui"
)

const (
	frameInterval = time.Second / 30
	maxFrame      = 250 * time.Millisecond
)

// Game holds the entire game state.
type Game struct {
	cfg      Config
	log      zerolog.Logger
	screen   *ui.Screen
	renderer *ui.Renderer
	session  *Session

	keys    keyState
	yaw     float64
	pitch   float64
	paused  bool
	running bool
	depth   int
	message string
}

// New creates a new game instance.
func New(cfg Config, log zerolog.Logger) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	return &Game{
		cfg:      cfg,
		log:      log,
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		running:  true,
	}, nil
}

// Run executes the main game loop until the player quits or ctx ends.
func (g *Game) Run(ctx context.Context) error {
	defer g.screen.Close()

	tracer := telemetry.Tracer("game")
	initCtx, initSpan := tracer.Start(ctx, "game.init")
	session, err := NewSession(initCtx, g.cfg, g.log)
	if err != nil {
		initSpan.RecordError(err)
		initSpan.SetStatus(codes.Error, "session setup failed")
		initSpan.End()
		return err
	}
	g.session = session
	defer session.Close()

	level := session.Level()
	g.depth = 1
	g.message = "Find the exit (E). WASD move, arrows look, e use, p pause, q quit."
	initSpan.SetAttributes(
		attribute.Int("level.rooms", len(level.Rooms)),
		attribute.Int("level.exit_distance", level.ExitDistance),
		attribute.Bool("game.async", g.cfg.Async),
	)
	initSpan.End()

	events := make(chan tcell.Event, 32)
	done := make(chan struct{})
	defer close(done)
	go g.pollEvents(events, done)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	last := time.Now()

	for g.running {
		select {
		case <-ctx.Done():
			g.running = false
		case ev, ok := <-events:
			if !ok {
				g.running = false
				continue
			}
			g.handleEvent(ev, time.Now())
		case now := <-ticker.C:
			g.update(ctx, now, now.Sub(last))
			last = now
			g.render()
		}
	}
	return nil
}

// pollEvents forwards terminal events until the screen closes.
func (g *Game) pollEvents(out chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := g.screen.PollEvent()
		if ev == nil {
			close(out)
			return
		}
		select {
		case out <- ev:
		case <-done:
			return
		}
	}
}

// handleEvent processes a single input event.
func (g *Game) handleEvent(ev tcell.Event, now time.Time) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ev, now)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ev *tcell.EventKey, now time.Time) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false
		return
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			g.running = false
			return
		case 'e', 'E':
			if !g.paused {
				g.keys.pressUse()
			}
			return
		case 'p', 'P':
			g.paused = !g.paused
			g.keys.release()
			return
		}
	}

	if a, ok := bindKey(ev); ok && !g.paused {
		g.keys.press(a, now)
	}
}

// update turns held keys into one resolver tick.
func (g *Game) update(ctx context.Context, now time.Time, dt time.Duration) {
	if dt > maxFrame {
		dt = maxFrame
	}
	if g.paused {
		dt = 0
	}

	turn := g.cfg.Movement.TurnSpeed * dt.Seconds()
	if g.keys.held(actTurnLeft, now) {
		g.yaw += turn
	}
	if g.keys.held(actTurnRight, now) {
		g.yaw -= turn
	}
	if g.keys.held(actLookUp, now) {
		g.pitch += turn
	}
	if g.keys.held(actLookDown, now) {
		g.pitch -= turn
	}
	g.yaw = movement.WrapYaw(g.yaw)
	g.pitch = movement.ClampPitch(g.pitch)

	in := movement.Input{
		Forward: g.keys.held(actForward, now),
		Back:    g.keys.held(actBack, now),
		Left:    g.keys.held(actLeft, now),
		Right:   g.keys.held(actRight, now),
		Use:     g.keys.takeUse(),
		Yaw:     g.yaw,
		Pitch:   g.pitch,
		Elapsed: dt,
	}
	for _, ev := range g.session.Tick(ctx, in) {
		g.onEvent(ev)
	}
}

// onEvent updates the HUD from resolver events.
func (g *Game) onEvent(ev movement.Event) {
	switch ev.Kind {
	case movement.EventEnteredExitRange:
		g.message = "You found the exit. Press e to descend."
	case movement.EventLeftExitRange:
		g.message = ""
	case movement.EventRegenerating:
		g.message = "The walls shift..."
	case movement.EventRegenerated:
		g.depth++
		g.message = fmt.Sprintf("Depth %d.", g.depth)
	case movement.EventRegenerateFailed:
		g.message = fmt.Sprintf("The way down is blocked: %v", ev.Err)
	}
}

// State returns the current game state.
func (g *Game) State() State {
	return stateOf(g.paused, g.session.Resolver().State())
}

func (g *Game) status() string {
	level := g.session.Level()
	if level == nil {
		return g.State().String()
	}
	where := "corridor"
	if cell, ok := g.session.Resolver().Cell(); ok {
		if i := level.RoomIndexAt(cell); i >= 0 {
			where = fmt.Sprintf("room %d", i+1)
		}
	}
	return fmt.Sprintf("%s | depth %d | seed %d | %d rooms | exit %d steps | %s | %s",
		g.cfg.Profile, g.depth, level.Seed, len(level.Rooms), level.ExitDistance, where, g.State())
}

func (g *Game) render() {
	g.renderer.Render(ui.View{
		Level:   g.session.Level(),
		Player:  g.session.Player(),
		Theme:   g.cfg.Theme,
		Status:  g.status(),
		Message: g.message,
	})
}
