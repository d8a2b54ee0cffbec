package movement

import (
	"context"

	"github.com/samdwyer/mazedelve/internal/collision"
	"github.com/samdwyer/mazedelve/internal/world"
)

// Binding pairs a published level with the collision world built from it.
type Binding struct {
	Level *world.Level
	World collision.World
}

// LevelResult is the outcome of one regeneration.
type LevelResult struct {
	Binding Binding
	Err     error
}

// LevelSource produces the next level. The returned channel delivers exactly
// one result; only one request is in flight at a time.
type LevelSource interface {
	Next(ctx context.Context) <-chan LevelResult
}

// BuildFunc generates a level and builds its collision world.
type BuildFunc func(ctx context.Context) (Binding, error)

// SyncSource runs fn on the calling goroutine; the result is ready before
// Next returns.
type SyncSource struct {
	fn BuildFunc
}

func NewSyncSource(fn BuildFunc) *SyncSource {
	return &SyncSource{fn: fn}
}

func (s *SyncSource) Next(ctx context.Context) <-chan LevelResult {
	ch := make(chan LevelResult, 1)
	b, err := s.fn(ctx)
	ch <- LevelResult{Binding: b, Err: err}
	return ch
}

// AsyncSource runs fn on its own goroutine.
type AsyncSource struct {
	fn BuildFunc
}

func NewAsyncSource(fn BuildFunc) *AsyncSource {
	return &AsyncSource{fn: fn}
}

func (s *AsyncSource) Next(ctx context.Context) <-chan LevelResult {
	ch := make(chan LevelResult, 1)
	go func() {
		b, err := s.fn(ctx)
		ch <- LevelResult{Binding: b, Err: err}
	}()
	return ch
}
