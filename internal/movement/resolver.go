package movement

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/zyedidia/generic/mapset"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/samdwyer/mazedelve/internal/telemetry"
	"github.com/samdwyer/mazedelve/internal/vmath"
	"github.com/samdwyer/mazedelve/internal/world"
)

// State is the resolver's locomotion state.
type State int

const (
	StateExplore    State = iota
	StateGenerating       // Waiting on the level source; movement is frozen
)

func (s State) String() string {
	switch s {
	case StateExplore:
		return "explore"
	case StateGenerating:
		return "generating"
	default:
		return "unknown"
	}
}

type intent struct {
	name string
	held bool
	dir  vmath.Vec3
}

// Resolver turns input snapshots into player positions. It is driven by a
// single goroutine; only the current binding may be read from others.
type Resolver struct {
	cfg    Config
	player Player
	source LevelSource

	current atomic.Pointer[Binding]
	pending <-chan LevelResult
	state   State

	prevUse bool
	atExit  bool

	warned  mapset.Set[string]
	log     zerolog.Logger
	blocked metric.Int64Counter
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the resolver's logger.
func WithLogger(log zerolog.Logger) Option {
	return func(r *Resolver) { r.log = log }
}

// NewResolver validates cfg and creates a resolver with no level bound.
func NewResolver(cfg Config, source LevelSource, opts ...Option) (*Resolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new resolver: %w", err)
	}
	r := &Resolver{
		cfg:     cfg,
		player:  Player{Radius: cfg.ColliderRadius},
		source:  source,
		warned:  mapset.New[string](),
		log:     zerolog.Nop(),
		blocked: telemetry.Counter("movement", "mazedelve.probes.blocked", "Movement probes that hit a solid"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Bind swaps in b as the current level and moves the player onto its
// entrance.
func (r *Resolver) Bind(b Binding) {
	r.current.Store(&b)
	r.atExit = false
	if b.Level == nil {
		return
	}
	r.Teleport(b.Level.CellCenter(b.Level.Start))
}

// Current returns the bound level and world, or nil.
func (r *Resolver) Current() *Binding {
	return r.current.Load()
}

// Player returns a copy of the player state.
func (r *Resolver) Player() Player {
	return r.player
}

// State returns the locomotion state.
func (r *Resolver) State() State {
	return r.state
}

// Config returns the movement configuration.
func (r *Resolver) Config() Config {
	return r.cfg
}

// Teleport places the player at world-space (x, z).
func (r *Resolver) Teleport(x, z float64) {
	r.player.Position = vmath.Vec3{X: x, Y: r.cfg.EyeHeight, Z: z}
}

// Cell returns the grid cell under the player.
func (r *Resolver) Cell() (world.Point, bool) {
	b := r.current.Load()
	if b == nil || b.Level == nil {
		return world.Point{}, false
	}
	return b.Level.CellAt(r.player.Position.X, r.player.Position.Z), true
}

// Tick advances the player by one frame and returns what happened.
func (r *Resolver) Tick(ctx context.Context, in Input) []Event {
	var events []Event

	r.player.Yaw = in.Yaw
	r.player.Pitch = ClampPitch(in.Pitch)
	use := in.Use && !r.prevUse
	r.prevUse = in.Use

	if r.state == StateGenerating {
		return r.poll(events)
	}

	r.move(ctx, in)

	cell, ok := r.Cell()
	atExit := ok && cell == r.current.Load().Level.End
	switch {
	case atExit && !r.atExit:
		events = append(events, Event{Kind: EventEnteredExitRange})
	case !atExit && r.atExit:
		events = append(events, Event{Kind: EventLeftExitRange})
	}
	r.atExit = atExit

	if use && atExit && r.source != nil {
		r.log.Info().Msg("regenerating level")
		r.state = StateGenerating
		r.pending = r.source.Next(ctx)
		events = append(events, Event{Kind: EventRegenerating})
		events = r.poll(events)
	}
	return events
}

// poll collects a finished regeneration without blocking.
func (r *Resolver) poll(events []Event) []Event {
	select {
	case res := <-r.pending:
		r.pending = nil
		r.state = StateExplore
		if res.Err != nil {
			r.log.Error().Err(res.Err).Msg("level regeneration failed")
			return append(events, Event{Kind: EventRegenerateFailed, Err: res.Err})
		}
		r.Bind(res.Binding)
		r.log.Info().
			Str("level_id", res.Binding.Level.ID.String()).
			Uint64("seq", res.Binding.Level.Seq).
			Msg("level regenerated")
		return append(events, Event{Kind: EventRegenerated, Level: res.Binding.Level})
	default:
		return events
	}
}

// move applies each held intent independently, in sub-steps no longer than
// MaxStep. An intent whose probe hits a solid is dropped for that sub-step.
func (r *Resolver) move(ctx context.Context, in Input) {
	dt := in.Elapsed.Seconds()
	if dt <= 0 {
		return
	}

	forward, right := r.player.Basis()
	intents := [4]intent{
		{"forward", in.Forward, forward},
		{"back", in.Back, forward.Neg()},
		{"left", in.Left, right.Neg()},
		{"right", in.Right, right},
	}

	dist := r.cfg.Speed * dt
	steps := int(math.Ceil(dist / r.cfg.MaxStep))
	step := dist / float64(steps)

	for i := 0; i < steps; i++ {
		moved := false
		for _, it := range intents {
			if !it.held {
				continue
			}
			if r.probe(ctx, it, step) {
				continue
			}
			r.player.Position = r.player.Position.Add(it.dir.Scale(step))
			moved = true
		}
		if !moved {
			return
		}
	}
}

// probe reports whether moving step along it.dir would bring a solid within
// the collider radius plus epsilon.
func (r *Resolver) probe(ctx context.Context, it intent, step float64) bool {
	b := r.current.Load()
	if !r.worldUsable(b) {
		return false
	}

	origin := r.player.Position
	origin.Y = b.Level.CellSize / 2
	length := r.cfg.ColliderRadius + step + r.cfg.ProbeEpsilon
	if _, hit := b.World.Raycast(origin, it.dir, length); hit {
		r.blocked.Add(ctx, 1, metric.WithAttributes(attribute.String("intent", it.name)))
		return true
	}
	return false
}

// worldUsable reports whether b can be probed. A missing, empty or stale
// world means no collision; each such world is logged once.
func (r *Resolver) worldUsable(b *Binding) bool {
	switch {
	case b == nil || b.Level == nil:
		r.warnOnce("nil", "probe without a level, movement unchecked")
		return false
	case b.World == nil:
		r.warnOnce("nil-world:"+b.Level.ID.String(), "probe without a collision world, movement unchecked")
		return false
	case b.World.LevelID() != b.Level.ID:
		r.warnOnce("stale:"+b.World.LevelID().String(), "collision world belongs to another level, movement unchecked")
		return false
	case b.World.Len() == 0:
		r.warnOnce("empty:"+b.Level.ID.String(), "collision world is empty, movement unchecked")
		return false
	}
	return true
}

func (r *Resolver) warnOnce(key, msg string) {
	if r.warned.Has(key) {
		return
	}
	r.warned.Put(key)
	r.log.Warn().Str("key", key).Msg(msg)
}
