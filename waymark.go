// Package waymark is the high-level entry point for the Waymark journey
// engine. It wraps the internal resolution core and provides a simplified
// API for consumers: load a definition once, then resolve per-user views
// and record progress through the configured ports.
package waymark

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/waymarkhq/waymark/internal/engine"
	"github.com/waymarkhq/waymark/pkg/adapters/memory"
	"github.com/waymarkhq/waymark/pkg/journey"
	"github.com/waymarkhq/waymark/pkg/ports"
)

// Version is the release version, overridden at build time via ldflags.
var Version = "dev"

// Portal binds the resolution engine to a progress store and a fact source
// for a single journey definition.
type Portal struct {
	engine    *engine.Engine
	progress  ports.ProgressStore
	facts     ports.FactSource
	logger    *slog.Logger
	unlockAll bool
}

// Option defines a functional option for configuring the Portal.
type Option func(*Portal)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Portal) {
		p.logger = logger
	}
}

// WithProgressStore injects the completion record store. Defaults to an
// in-memory store.
func WithProgressStore(store ports.ProgressStore) Option {
	return func(p *Portal) {
		p.progress = store
	}
}

// WithFactSource injects the active-conditions source. Defaults to an
// in-memory source with no facts.
func WithFactSource(src ports.FactSource) Option {
	return func(p *Portal) {
		p.facts = src
	}
}

// WithUnlockAll puts the whole portal in debug unlock-all mode: every view
// resolves every node active. Never enable this in production.
func WithUnlockAll(on bool) Option {
	return func(p *Portal) {
		p.unlockAll = on
	}
}

// New creates a Portal for an already-loaded definition.
func New(def *journey.Definition, opts ...Option) (*Portal, error) {
	if def == nil {
		return nil, fmt.Errorf("definition is required")
	}

	p := &Portal{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.progress == nil {
		p.progress = memory.NewStore()
	}
	if p.facts == nil {
		p.facts = memory.NewFactSource()
	}

	p.logger = p.logger.With("journey", def.ID)
	p.engine = engine.New(def, engine.WithLogger(p.logger))

	return p, nil
}

// Load fetches the definition through a loader and creates the Portal.
func Load(ctx context.Context, loader ports.DefinitionLoader, opts ...Option) (*Portal, error) {
	def, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load definition: %w", err)
	}
	return New(def, opts...)
}

// View resolves the journey for one user: the persisted override map and
// fact set are fetched fresh and fed through a full resolution pass. The
// returned tree is immutable and owned by the caller; diagnostics describe
// recoverable definition defects encountered on the way.
func (p *Portal) View(ctx context.Context, userID string) (*journey.ViewModel, []journey.Diagnostic, error) {
	overrides, err := p.progress.Overrides(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read progress for %s: %w", userID, err)
	}
	facts, err := p.facts.Facts(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read facts for %s: %w", userID, err)
	}

	vm, diags := p.engine.Resolve(engine.Input{
		Overrides: overrides,
		Facts:     facts,
		UnlockAll: p.unlockAll,
	})

	for _, d := range diags {
		p.logger.Warn("definition diagnostic",
			"code", string(d.Code), "node", d.NodeID, "phase", d.PhaseID, "detail", d.Detail)
	}

	return vm, diags, nil
}

// ViewUnlocked is View with unlock-all forced for this single call,
// regardless of how the portal was configured. Debug surfaces only.
func (p *Portal) ViewUnlocked(ctx context.Context, userID string) (*journey.ViewModel, []journey.Diagnostic, error) {
	facts, err := p.facts.Facts(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read facts for %s: %w", userID, err)
	}

	vm, diags := p.engine.Resolve(engine.Input{
		Facts:     facts,
		UnlockAll: true,
	})
	return vm, diags, nil
}

// Record persists one completed interaction for a user. The state must be
// one of the closed six values and the node must exist in the definition;
// the new record is reflected in the next View call.
func (p *Portal) Record(ctx context.Context, userID, nodeID string, state journey.State) error {
	if !journey.ValidState(state) {
		return fmt.Errorf("state %q: %w", state, journey.ErrInvalidState)
	}
	if _, _, ok := p.engine.Definition().FindNode(nodeID); !ok {
		return fmt.Errorf("node %q: %w", nodeID, journey.ErrUnknownNode)
	}

	if err := p.progress.Record(ctx, userID, nodeID, state); err != nil {
		return fmt.Errorf("failed to record progress: %w", err)
	}

	p.logger.Info("progress recorded", "user", userID, "node", nodeID, "state", string(state))
	return nil
}

// Reset wipes all recorded progress for a user.
func (p *Portal) Reset(ctx context.Context, userID string) error {
	return p.progress.Clear(ctx, userID)
}

// Definition returns the immutable definition this portal serves.
func (p *Portal) Definition() *journey.Definition {
	return p.engine.Definition()
}
