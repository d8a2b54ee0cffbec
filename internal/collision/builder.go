package collision

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/mazedelve/internal/telemetry"
	"github.com/samdwyer/mazedelve/internal/vmath"
	"github.com/samdwyer/mazedelve/internal/world"
)

// ErrNilLevel is returned when asked to build a world without a level.
var ErrNilLevel = errors.New("collision: nil level")

// Builder turns published levels into registries. It owns the registry of the
// level it built last and releases it before building the next one.
type Builder struct {
	mu      sync.Mutex
	current *Registry
	log     zerolog.Logger
}

// NewBuilder creates a builder.
func NewBuilder(log zerolog.Logger) *Builder {
	return &Builder{log: log}
}

// Build releases the previous registry, then registers one cell-sized solid
// per wall cell of level plus a cap just outside every walkable border cell.
func (b *Builder) Build(ctx context.Context, level *world.Level) (*Registry, error) {
	if level == nil {
		return nil, ErrNilLevel
	}

	_, span := telemetry.Tracer("collision").Start(ctx, "world.build")
	defer span.End()

	b.mu.Lock()
	defer b.mu.Unlock()

	released := 0
	if b.current != nil {
		released = b.current.Release()
		b.current = nil
	}

	g := level.Grid
	reg := NewRegistry(level.ID, g.Width(), g.Height(), level.CellSize)
	half := level.CellSize / 2
	caps := 0

	g.ForEach(func(x, y int, c world.Cell) {
		p := world.Point{X: x, Y: y}
		if !c.IsWalkable() {
			cx, cz := level.CellCenter(p)
			reg.Add(vmath.Vec3{X: cx, Y: half, Z: cz})
			return
		}
		if !g.OnBorder(x, y) {
			return
		}
		for _, out := range outside(g, p) {
			cx, cz := level.CellCenter(out)
			reg.Add(vmath.Vec3{X: cx, Y: half, Z: cz})
			caps++
		}
	})

	b.current = reg

	span.SetAttributes(
		attribute.String("level.id", level.ID.String()),
		attribute.Int("world.solids", reg.Len()),
		attribute.Int("world.caps", caps),
		attribute.Int("world.released", released),
	)
	b.log.Debug().
		Str("level_id", level.ID.String()).
		Int("solids", reg.Len()).
		Int("caps", caps).
		Int("released", released).
		Msg("collision world built")

	return reg, nil
}

// Current returns the registry built last, or nil.
func (b *Builder) Current() *Registry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// Release drops the current registry.
func (b *Builder) Release() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return 0
	}
	n := b.current.Release()
	b.current = nil
	return n
}

// outside returns the off-grid neighbors of a border cell.
func outside(g *world.Grid, p world.Point) []world.Point {
	var out []world.Point
	for _, d := range []world.Point{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0}} {
		n := p.Add(d)
		if !g.InBounds(n.X, n.Y) {
			out = append(out, n)
		}
	}
	return out
}
