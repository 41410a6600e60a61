package heuristics

import (
	"math/rand"
	"time"
)

// Engine evaluates the rule tables. All generator methods are pure
// computations over their inputs; the engine keeps no per-request state
// and is safe for concurrent use.
type Engine struct {
	rules Rules

	// rand, when set, pins the random source used by the decomposer so
	// tests can reproduce draws. When nil each call gets its own
	// time-seeded source.
	rand *rand.Rand

	// now is replaceable in tests; defaults to time.Now.
	now func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand pins the decomposer's random source. The supplied source is
// not synchronized, so this is intended for tests only.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rand = r }
}

// WithClock overrides the engine's notion of now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine builds an engine over the given rule tables.
func NewEngine(rules Rules, opts ...Option) *Engine {
	e := &Engine{
		rules: rules,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) rng() *rand.Rand {
	if e.rand != nil {
		return e.rand
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
