// Package cinecam sequences scripted camera shots (cutscenes) with
// interpolated movement, look-at targeting, timed visual effects, and
// runtime controls. The host supplies a camera device, an overlay
// renderer, world queries, and a skip input; it pumps the engine by
// calling Tick once per frame.
package cinecam

import (
	"github.com/milk9111/cinecam/definition"
	"github.com/milk9111/cinecam/effects"
	"github.com/milk9111/cinecam/engine"
)

// Director is the public entry point: one engine wired to a host.
type Director struct {
	engine *engine.Engine
}

// New builds a director. Camera, Renderer, World, and Input come from
// the host; Clock and Registry default when nil, with the builtin
// effects seeded.
func New(cfg engine.Config) *Director {
	return &Director{engine: engine.New(cfg)}
}

// Start begins a cinematic and returns its control handle immediately.
// The definition is validated first; on a validation error no camera is
// allocated.
func (d *Director) Start(def *definition.Cinematic, opts engine.StartOptions) (*engine.Handle, error) {
	return d.engine.Start(def, opts)
}

// Play begins a cinematic and returns a channel that settles with the
// run's result.
func (d *Director) Play(def *definition.Cinematic, opts engine.StartOptions) (<-chan engine.Result, error) {
	return d.engine.Play(def, opts)
}

// Cancel flags the active cinematic cancelled.
func (d *Director) Cancel() { d.engine.Cancel() }

// IsRunning reports whether a cinematic is active.
func (d *Director) IsRunning() bool { return d.engine.IsRunning() }

// Tick advances the engine by one cooperative step. Call it once per
// frame, or from a fixed-interval timer on a non-frame-driven host.
func (d *Director) Tick() { d.engine.Tick() }

// RegisterEffect adds or overwrites an effect behavior.
func (d *Director) RegisterEffect(def effects.Definition) {
	d.engine.Registry().Register(def)
}

// Effects exposes the effect registry.
func (d *Director) Effects() *effects.Registry { return d.engine.Registry() }

// Validate checks a definition against the director's effect registry
// without starting it.
func (d *Director) Validate(def *definition.Cinematic) error {
	return definition.Validate(def, d.engine.Registry())
}
