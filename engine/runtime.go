package engine

import (
	"log"
	"time"

	"github.com/milk9111/cinecam/definition"
	"github.com/milk9111/cinecam/effects"
	"github.com/milk9111/cinecam/host"
	"github.com/milk9111/cinecam/interp"
)

type runPhase int

const (
	phaseEnterShot runPhase = iota
	phaseWait
	phaseMotion
)

// run is the engine-internal state of one live cinematic. Exactly one
// run is active engine-wide; interrupted runs linger in the engine's
// drain list until their cleanup completes.
type run struct {
	eng    *Engine
	def    *definition.Cinematic
	opts   StartOptions
	camID  host.CameraID
	handle *Handle

	phase   runPhase
	shotIdx int
	shot    *definition.Shot

	shotStart   time.Time
	paused      bool
	pausedAt    time.Time
	totalPaused time.Duration

	// Motion-phase state, resolved once at shot entry.
	nodes     []interp.Node
	look      *lookTarget
	instances []*effects.Instance

	cancelled   bool
	interrupted bool
	runErr      error
	finished    bool
}

func (r *run) pause() {
	if r.paused || r.finished {
		return
	}
	r.paused = true
	r.pausedAt = r.eng.clock.Now()
	r.handle.Emit(EventPaused, nil)
}

func (r *run) resume() {
	if !r.paused || r.finished {
		return
	}
	r.totalPaused += r.eng.clock.Now().Sub(r.pausedAt)
	r.paused = false
	r.handle.Emit(EventResumed, nil)
}

func (r *run) cancel() {
	if !r.finished {
		r.cancelled = true
	}
}

// elapsedMs is time since shot start excluding paused duration.
func (r *run) elapsedMs(now time.Time) float64 {
	if r.paused {
		now = r.pausedAt
	}
	return float64((now.Sub(r.shotStart) - r.totalPaused).Milliseconds())
}

// tick advances the run by one cooperative step. Cancellation and the
// skip control are checked first; a tick already in flight (e.g. inside
// an effect hook) always completes.
func (r *run) tick() {
	if r.finished {
		return
	}

	if r.def.Skippable && !r.cancelled && r.eng.input != nil &&
		r.eng.input.SkipPressed(r.opts.SkipControlID) {
		r.cancelled = true
	}
	if r.cancelled {
		r.finalize(r.terminalStatus())
		return
	}
	if r.paused {
		return
	}

	now := r.eng.clock.Now()
	switch r.phase {
	case phaseEnterShot:
		r.enterShot(now)
	case phaseWait:
		if r.elapsedMs(now) >= r.shot.WaitMs {
			r.endShot()
		}
	case phaseMotion:
		r.tickMotion(now)
	}
}

func (r *run) enterShot(now time.Time) {
	if r.shotIdx >= len(r.def.Shots) {
		r.finalize(StatusCompleted)
		return
	}

	shot := r.def.Shots[r.shotIdx]
	r.shot = shot
	r.shotStart = now
	r.totalPaused = 0
	r.nodes = nil
	r.look = nil
	r.instances = nil

	if shot.IsWait() {
		r.phase = phaseWait
		r.handle.Emit(EventShotStart, r.shotEvent(shot.WaitMs, "wait"))
		return
	}

	nodes, err := resolveNodes(shot.Nodes(), r.def, r.eng.world)
	if err == nil {
		r.look, err = resolveLookAt(shot.LookAt, r.def, r.eng.world)
	}
	if err != nil {
		// Runtime resolution failure is an invariant violation (the
		// validator vets everything reachable at start), so the run
		// terminates instead of guessing a position.
		log.Printf("engine: shot %d: %v", r.shotIdx, err)
		r.runErr = err
		r.finalize(StatusCancelled)
		return
	}
	r.nodes = nodes

	// The effective effect set is assembled from the live definition at
	// every shot entry, so Handle edits to presets or globals land on the
	// next shot. Presets expand in declared order, then globals, then the
	// shot's own references.
	refs := make([]definition.EffectReference, 0, len(r.def.Effects)+len(shot.Effects))
	for _, preset := range r.def.EffectPresets {
		refs = append(refs, r.eng.registry.UsePreset(preset)...)
	}
	refs = append(refs, r.def.Effects...)
	refs = append(refs, shot.Effects...)
	r.instances = r.eng.registry.Resolve(refs, shot.DurationMs)

	r.phase = phaseMotion
	r.handle.Emit(EventShotStart, r.shotEvent(shot.DurationMs, "motion"))
	r.tickMotion(now)
}

func (r *run) tickMotion(now time.Time) {
	shot := r.shot
	elapsed := r.elapsedMs(now)
	t := interp.ApplyEase(r.easeKind(), elapsed/shot.DurationMs)

	pose := interp.SampleNode(r.nodes, t)
	cam := r.eng.camera
	cam.SetPosition(r.camID, pose.Position)
	if pose.Rotation != nil {
		cam.SetRotation(r.camID, *pose.Rotation)
	}
	if pose.FOV != nil {
		cam.SetFOV(r.camID, *pose.FOV)
	}

	switch {
	case r.look == nil:
		cam.StopPointing(r.camID)
	case r.look.entity > 0:
		cam.PointAtEntity(r.camID, r.look.entity, r.look.offset)
	default:
		cam.PointAtCoords(r.camID, interp.SamplePosition(r.look.points, t))
	}

	ctx := r.effectContext()
	for _, in := range r.instances {
		if in.Step(ctx, elapsed) {
			r.handle.Emit(EventEffectApplied, EffectAppliedEvent{
				EffectID:  in.ID,
				ShotIndex: r.shotIdx,
				ShotID:    shot.ID,
			})
		}
	}

	if elapsed >= shot.DurationMs {
		for _, in := range r.instances {
			in.Finalize(ctx, effects.ReasonCompleted)
		}
		r.endShot()
	}
}

func (r *run) endShot() {
	planned := r.shot.WaitMs
	kind := "wait"
	if !r.shot.IsWait() {
		planned = r.shot.DurationMs
		kind = "motion"
	}
	r.handle.Emit(EventShotEnd, r.shotEvent(planned, kind))

	r.shotIdx++
	r.phase = phaseEnterShot
	r.shot = nil
	r.nodes = nil
	r.look = nil
	r.instances = nil
}

func (r *run) easeKind() string {
	if r.shot.Ease == "" {
		return interp.EaseLinear
	}
	return r.shot.Ease
}

func (r *run) shotEvent(planned float64, kind string) ShotEvent {
	return ShotEvent{
		ShotIndex:         r.shotIdx,
		TotalShots:        len(r.def.Shots),
		ShotID:            r.shot.ID,
		Kind:              kind,
		PlannedDurationMs: planned,
	}
}

func (r *run) effectContext() *effects.Context {
	return &effects.Context{
		Camera:         r.eng.camera,
		Renderer:       r.eng.renderer,
		World:          r.eng.world,
		CameraID:       r.camID,
		ShotDurationMs: r.shotDurationMs(),
	}
}

func (r *run) shotDurationMs() float64 {
	if r.shot == nil {
		return 0
	}
	if r.shot.IsWait() {
		return r.shot.WaitMs
	}
	return r.shot.DurationMs
}

func (r *run) terminalStatus() Status {
	if r.interrupted {
		return StatusInterrupted
	}
	return StatusCancelled
}

// finalize tears down still-active effects with the terminal reason and
// performs the unconditional cleanup: every exit path lands here exactly
// once, whether the run completed, was cancelled, or was interrupted.
func (r *run) finalize(status Status) {
	if r.finished {
		return
	}
	r.finished = true

	reason := effects.ReasonCompleted
	switch status {
	case StatusCancelled:
		reason = effects.ReasonCancelled
	case StatusInterrupted:
		reason = effects.ReasonInterrupted
	}
	ctx := r.effectContext()
	for _, in := range r.instances {
		in.Finalize(ctx, reason)
	}

	cam := r.eng.camera
	cam.StopPointing(r.camID)
	cam.StopShaking(r.camID, true)

	// Rendering, lifecycle flags, and the color grade are engine-global.
	// An interrupted run finalizes after its replacement has already
	// claimed them, so releasing them here would clobber the new run.
	if solo := r.eng.active == nil || r.eng.active == r; solo {
		cam.Render(false, true, renderFadeOutMs)
		r.eng.applyFlags(r.def, false)
		if r.eng.renderer != nil {
			r.eng.renderer.ClearColorGrade()
		}
	}
	cam.Destroy(r.camID)

	r.handle.finish(Result{
		Status:       status,
		DefinitionID: r.def.ID,
		Err:          r.runErr,
	})
}
