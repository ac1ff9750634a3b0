// Package context provides the per-run execution state for StageScript:
// a single global variable namespace plus the current-stage cursor.
// One RunContext lives for exactly one interpretation run; reset is
// "construct a new one", which keeps independent runs isolated in tests.
package context

import (
	"stagescript/pkg/stagetypes"
)

// RunContext holds the mutable state of one interpretation run. Variables
// are untyped-at-declaration: INPUT defines or overwrites them, coercing
// numeric text to Number. All variables share one namespace.
type RunContext struct {
	values       map[string]stagetypes.Value
	currentStage string
}

// New creates a fresh RunContext positioned at the entry stage.
func New() *RunContext {
	return &RunContext{
		values:       make(map[string]stagetypes.Value),
		currentStage: stagetypes.InitialStage,
	}
}

// Define binds name to the coerced value of raw, overwriting any prior
// binding regardless of its type.
func (c *RunContext) Define(name string, raw string) {
	c.values[name] = stagetypes.CoerceValue(raw)
}

// Get returns the value bound to name, or false if it was never defined.
func (c *RunContext) Get(name string) (stagetypes.Value, bool) {
	v, ok := c.values[name]
	return v, ok
}

// CurrentStage returns the stage cursor.
func (c *RunContext) CurrentStage() string {
	return c.currentStage
}

// SetCurrentStage moves the stage cursor.
func (c *RunContext) SetCurrentStage(stage string) {
	c.currentStage = stage
}

// Variables returns a copy of the namespace, for diagnostics and tests.
func (c *RunContext) Variables() map[string]stagetypes.Value {
	out := make(map[string]stagetypes.Value, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}
