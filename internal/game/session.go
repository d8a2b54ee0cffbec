package game

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/mazedelve/internal/collision"
	"github.com/samdwyer/mazedelve/internal/movement"
	"github.com/samdwyer/mazedelve/internal/telemetry"
	"github.com/samdwyer/mazedelve/internal/world"
)

// Session owns one run: the generator, the collision builder and the
// movement resolver that ties them together.
type Session struct {
	cfg      Config
	gen      *world.Generator
	builder  *collision.Builder
	resolver *movement.Resolver
	log      zerolog.Logger
}

// NewSession validates cfg, generates the first level and places the player
// on its entrance.
func NewSession(ctx context.Context, cfg Config, log zerolog.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		cfg:     cfg,
		gen:     world.NewGenerator(cfg.World, world.WithLogger(telemetry.Component(log, "world"))),
		builder: collision.NewBuilder(telemetry.Component(log, "collision")),
		log:     log,
	}

	var source movement.LevelSource = movement.NewSyncSource(s.next)
	if cfg.Async {
		source = movement.NewAsyncSource(s.next)
	}
	resolver, err := movement.NewResolver(cfg.Movement, source,
		movement.WithLogger(telemetry.Component(log, "movement")))
	if err != nil {
		return nil, err
	}
	s.resolver = resolver

	first, err := s.next(ctx)
	if err != nil {
		return nil, err
	}
	resolver.Bind(first)
	return s, nil
}

// next generates a level and builds its collision world. The builder
// releases the previous world first.
func (s *Session) next(ctx context.Context) (movement.Binding, error) {
	ctx, span := telemetry.Tracer("game").Start(ctx, "level.regenerate")
	defer span.End()

	level, err := s.gen.Generate(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		return movement.Binding{}, err
	}
	reg, err := s.builder.Build(ctx, level)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "world build failed")
		return movement.Binding{}, fmt.Errorf("build collision world: %w", err)
	}

	span.SetAttributes(
		attribute.String("level.id", level.ID.String()),
		attribute.Int64("level.seq", int64(level.Seq)),
		attribute.Int("world.solids", reg.Len()),
	)
	return movement.Binding{Level: level, World: reg}, nil
}

// Tick advances the resolver by one frame.
func (s *Session) Tick(ctx context.Context, in movement.Input) []movement.Event {
	return s.resolver.Tick(ctx, in)
}

// Level returns the current level.
func (s *Session) Level() *world.Level {
	if b := s.resolver.Current(); b != nil {
		return b.Level
	}
	return nil
}

// Player returns the player state.
func (s *Session) Player() movement.Player {
	return s.resolver.Player()
}

// Resolver exposes the movement resolver.
func (s *Session) Resolver() *movement.Resolver {
	return s.resolver
}

// Config returns the session configuration.
func (s *Session) Config() Config {
	return s.cfg
}

// Close releases the current collision world.
func (s *Session) Close() {
	n := s.builder.Release()
	s.log.Debug().Int("released", n).Msg("session closed")
}
