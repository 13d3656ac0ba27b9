// Package engine drives cinematic runs: a tick-driven state machine that
// sequences shots, samples camera poses, and manages effect lifecycles.
package engine

import (
	"fmt"

	"github.com/milk9111/cinecam/definition"
	"github.com/milk9111/cinecam/effects"
	"github.com/milk9111/cinecam/host"
)

// Default start options.
const (
	// DefaultSkipControl is the frontend-cancel button code.
	DefaultSkipControl = 202
	DefaultCameraName  = "DEFAULT_SCRIPTED_CAMERA"
)

// renderFadeOutMs eases scripted-camera rendering back to gameplay.
const renderFadeOutMs = 300

// StartOptions tune a single run.
type StartOptions struct {
	SkipControlID int
	CameraName    string
}

func (o StartOptions) withDefaults() StartOptions {
	if o.SkipControlID == 0 {
		o.SkipControlID = DefaultSkipControl
	}
	if o.CameraName == "" {
		o.CameraName = DefaultCameraName
	}
	return o
}

// Config wires the engine to its host collaborators.
type Config struct {
	Camera   host.CameraDevice
	Renderer host.Renderer
	World    host.WorldInfo
	Clock    host.Clock
	Input    host.InputSource
	Registry *effects.Registry
}

// Engine owns at most one active run plus any interrupted runs still
// draining toward their cleanup. It is single-threaded cooperative:
// the host calls Tick once per frame (or from a fixed-interval timer),
// and all state mutation happens inside Tick or inside Handle calls
// issued from the same logical thread.
type Engine struct {
	camera   host.CameraDevice
	renderer host.Renderer
	world    host.WorldInfo
	clock    host.Clock
	input    host.InputSource
	registry *effects.Registry

	active   *run
	draining []*run
}

// New builds an engine. A nil Clock falls back to the system clock and a
// nil Registry gets a fresh registry seeded with the builtin effects.
func New(cfg Config) *Engine {
	if cfg.Clock == nil {
		cfg.Clock = host.SystemClock{}
	}
	if cfg.Registry == nil {
		cfg.Registry = effects.NewRegistry()
		effects.RegisterBuiltins(cfg.Registry)
	}
	return &Engine{
		camera:   cfg.Camera,
		renderer: cfg.Renderer,
		world:    cfg.World,
		clock:    cfg.Clock,
		input:    cfg.Input,
		registry: cfg.Registry,
	}
}

// Registry exposes the effect catalog for registration and presets.
func (e *Engine) Registry() *effects.Registry { return e.registry }

// IsRunning reports whether a run is active (draining runs excluded).
func (e *Engine) IsRunning() bool {
	return e.active != nil && !e.active.finished
}

// Cancel flags the active run cancelled. It finalizes on its next tick.
func (e *Engine) Cancel() {
	if e.active != nil {
		e.active.cancel()
	}
}

// Start validates the definition, allocates a camera, and installs a new
// active run. It returns immediately; the run advances on Tick. Starting
// while a run is active does not stop it synchronously: the previous run
// is flagged interrupted and finalizes on its own next tick, so two
// cameras may briefly coexist.
func (e *Engine) Start(def *definition.Cinematic, opts StartOptions) (*Handle, error) {
	if err := definition.Validate(def, e.registry); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	camID, err := e.camera.Create(host.CameraOptions{Name: opts.CameraName})
	if err != nil {
		return nil, fmt.Errorf("engine: create camera: %w", err)
	}
	e.camera.SetActive(camID, true)
	e.camera.Render(true, true, 0)

	if prev := e.active; prev != nil && !prev.finished {
		prev.interrupted = true
		prev.cancelled = true
		e.draining = append(e.draining, prev)
		e.active = nil
	}

	e.applyFlags(def, true)

	r := &run{
		eng:   e,
		def:   def,
		opts:  opts,
		camID: camID,
	}
	r.handle = newHandle(r)
	e.active = r
	return r.handle, nil
}

// Play is Start plus an awaitable result channel.
func (e *Engine) Play(def *definition.Cinematic, opts StartOptions) (<-chan Result, error) {
	handle, err := e.Start(def, opts)
	if err != nil {
		return nil, err
	}
	return handle.Done(), nil
}

// Tick advances every live run by one cooperative step. Interrupted runs
// drain first so their cleanup (and camera release) completes promptly.
func (e *Engine) Tick() {
	if len(e.draining) > 0 {
		remaining := e.draining[:0]
		for _, r := range e.draining {
			r.tick()
			if !r.finished {
				remaining = append(remaining, r)
			}
		}
		e.draining = remaining
	}

	if e.active != nil {
		e.active.tick()
		if e.active.finished {
			e.active = nil
		}
	}
}

func (e *Engine) applyFlags(def *definition.Cinematic, enable bool) {
	if e.world == nil {
		return
	}
	if def.FreezePlayer {
		e.world.SetPlayerFrozen(enable)
	}
	if def.InvinciblePlayer {
		e.world.SetPlayerInvincible(enable)
	}
	if def.HideHUD {
		e.world.SetHUDHidden(enable)
	}
	if def.HideRadar {
		e.world.SetRadarHidden(enable)
	}
}
