package engine

import (
	"io"
	"log/slog"

	"github.com/waymarkhq/waymark/pkg/journey"
)

// Engine resolves a journey definition against per-user runtime inputs.
//
// A resolution pass is a pure function of (definition, overrides, facts,
// unlock-all): it performs no I/O, holds no state between calls and returns
// a fresh view model every time. Concurrent callers may resolve different
// users in parallel; the definition is the only shared resource and is
// never mutated.
type Engine struct {
	def    *journey.Definition
	logger *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a structured logger for per-pass diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an Engine bound to an immutable definition.
func New(def *journey.Definition, opts ...Option) *Engine {
	e := &Engine{
		def:    def,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Input carries the per-user runtime inputs of one resolution pass. The
// engine never mutates it.
type Input struct {
	// Overrides is the authoritative persisted completion record. It wins
	// over any structurally inferred state.
	Overrides journey.Overrides

	// Facts is the set of currently-true facts for the user.
	Facts journey.Facts

	// UnlockAll forces every node active. Debug only; it is an explicit
	// input, never read from ambient state.
	UnlockAll bool
}

// Resolve computes the full view model for one user. It never fails:
// definition defects degrade gracefully and are reported as diagnostics.
func (e *Engine) Resolve(in Input) (*journey.ViewModel, []journey.Diagnostic) {
	idx := buildIndex(e.def)
	diags := idx.diags
	checkUnknownTypes(e.def, &diags)

	states := e.resolveStates(in, idx, &diags)
	terminals := terminalNodes(e.def, idx, &diags)
	reachable := e.reachablePhases(in, &diags)

	vm := buildView(e.def, states, terminals, reachable)

	for _, d := range diags {
		e.logger.Debug("resolution diagnostic",
			"code", string(d.Code), "node", d.NodeID, "phase", d.PhaseID, "detail", d.Detail)
	}

	return vm, diags
}

// Definition returns the immutable definition the engine resolves against.
func (e *Engine) Definition() *journey.Definition {
	return e.def
}
