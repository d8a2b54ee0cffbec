package world

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"

	"github.com/samdwyer/mazedelve/internal/telemetry"
)

// Entrance is the fixed maze origin and entrance door cell.
var Entrance = Point{1, 1}

// ErrDisconnected reports a published level with unreachable walkable cells.
// Generation stitches components before publishing, so this indicates a bug.
var ErrDisconnected = errors.New("level has unreachable walkable cells")

// Generator produces levels. Each call to Generate draws a fresh seed from
// the generator's own random source, so a seeded generator yields the same
// sequence of levels.
type Generator struct {
	cfg    Config
	rng    *rand.Rand
	seq    uint64
	log    zerolog.Logger
	levels metric.Int64Counter
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the generator's logger.
func WithLogger(log zerolog.Logger) Option {
	return func(g *Generator) { g.log = log }
}

// WithRand replaces the generator's seed source.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) { g.rng = rng }
}

// NewGenerator creates a generator. Configuration is validated by every
// Generate call, not here.
func NewGenerator(cfg Config, opts ...Option) *Generator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := &Generator{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(seed)),
		log:    zerolog.Nop(),
		levels: telemetry.Counter("world", "mazedelve.levels.generated", "Levels published by the generator"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Config returns the generator's configuration.
func (g *Generator) Config() Config {
	return g.cfg
}

// Generate produces the next level.
func (g *Generator) Generate(ctx context.Context) (*Level, error) {
	return g.GenerateSeed(ctx, g.rng.Int63())
}

// GenerateSeed produces the level for seed. The same configuration and seed
// always yield the same grid, rooms and doors.
func (g *Generator) GenerateSeed(ctx context.Context, seed int64) (*Level, error) {
	tracer := telemetry.Tracer("world")
	ctx, span := tracer.Start(ctx, "level.generate")
	defer span.End()

	startTime := time.Now()

	if err := g.cfg.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid configuration")
		return nil, fmt.Errorf("generate level: %w", err)
	}

	level, err := build(g.cfg, seed)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		return nil, fmt.Errorf("generate level (seed %d): %w", seed, err)
	}

	g.seq++
	level.Seq = g.seq
	level.ID = uuid.New()
	g.levels.Add(ctx, 1)

	span.SetAttributes(
		attribute.Int("level.width", level.Width()),
		attribute.Int("level.height", level.Height()),
		attribute.Int64("level.seed", seed),
		attribute.Int("level.room_count", len(level.Rooms)),
		attribute.Int("level.exit_distance", level.ExitDistance),
		attribute.Int("level.stitched", level.Stats.Stitched),
		attribute.Bool("level.exit_fallback", level.Stats.ExitFallback),
		attribute.Int64("level.generation_ms", time.Since(startTime).Milliseconds()),
	)

	g.logDegeneracies(level)
	g.log.Debug().
		Str("level_id", level.ID.String()).
		Uint64("seq", level.Seq).
		Int64("seed", seed).
		Int("rooms", len(level.Rooms)).
		Int("exit_distance", level.ExitDistance).
		Msg("level generated")

	return level, nil
}

func (g *Generator) logDegeneracies(level *Level) {
	s := level.Stats
	if len(level.Rooms) < s.RoomTarget {
		g.log.Warn().
			Int("placed", len(level.Rooms)).
			Int("target", s.RoomTarget).
			Int("attempts", s.RoomAttempts).
			Msg("placed fewer rooms than targeted")
	}
	if s.Stitched > 0 || s.RoomsLinked > 0 {
		g.log.Warn().
			Int("stitched", s.Stitched).
			Int("rooms_linked", s.RoomsLinked).
			Msg("carved extra corridors to keep the level connected")
	}
	// Usual in a perfect maze: dead ends rarely have a clean line out.
	if s.ExitFallback {
		g.log.Debug().
			Interface("exit", level.End).
			Msg("no clean exit tunnel, exit placed on the anchor")
	}
}

// build runs one full generation pass for a validated configuration.
func build(cfg Config, seed int64) (*Level, error) {
	rng := rand.New(rand.NewSource(seed))
	grid := NewGrid(cfg.Width, cfg.Height)

	var stats Stats
	stats.MazeConnections = CarveMaze(grid, Entrance, rng)

	placement := PlaceRooms(grid, cfg, rng)
	stats.RoomTarget = placement.Target
	stats.RoomAttempts = placement.Attempts
	stats.RoomsLinked = placement.Linked

	stats.Stitched = Stitch(grid, Entrance)

	path := FindFarthest(grid, Entrance)
	exit := placeExit(grid, path.Farthest, Entrance)
	stats.TunnelLength = exit.Tunnel
	stats.ExitFallback = exit.Fallback

	grid.Set(Entrance.X, Entrance.Y, CellDoorStart)

	if missing := Unreached(grid, Entrance); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %d cells, first at %v", ErrDisconnected, len(missing), missing[0])
	}
	final := FindFarthest(grid, Entrance)
	grid.Freeze()

	return &Level{
		Seed:         seed,
		Grid:         grid,
		Rooms:        placement.Rooms,
		Start:        Entrance,
		End:          exit.Door,
		CellSize:     cfg.CellSize,
		ExitDistance: final.DistanceTo(exit.Door),
		Stats:        stats,
	}, nil
}
