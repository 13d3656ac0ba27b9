package effects

import "log"

// Instance is one live effect activation inside a shot.
type Instance struct {
	ID     string
	Def    Definition
	Params map[string]any

	// Activation window relative to shot start.
	FromMs float64
	ToMs   float64

	active   bool
	finished bool
}

// Active reports whether the instance is inside its window with setup
// already run and teardown not yet run.
func (in *Instance) Active() bool { return in.active }

// Step drives the instance for one tick at the given shot elapsed time.
// Setup runs exactly once on the first tick at or past FromMs, Update on
// every tick inside the window, and Teardown(completed) exactly once on
// the first tick past ToMs. Returns true when setup ran this tick.
func (in *Instance) Step(ctx *Context, elapsedMs float64) bool {
	if in.finished {
		return false
	}

	entered := false
	if !in.active && elapsedMs >= in.FromMs {
		in.active = true
		entered = true
		in.call(ctx, elapsedMs, in.Def.Setup)
	}
	if !in.active {
		return false
	}

	if elapsedMs > in.ToMs {
		in.active = false
		in.finished = true
		in.teardown(ctx, elapsedMs, ReasonCompleted)
		return entered
	}

	in.call(ctx, elapsedMs, in.Def.Update)
	return entered
}

// Finalize tears the instance down with a terminal reason if it is still
// active. Called on cancellation and interruption so every active effect
// gets exactly one teardown.
func (in *Instance) Finalize(ctx *Context, reason Reason) {
	if !in.active || in.finished {
		return
	}
	in.active = false
	in.finished = true
	in.teardown(ctx, 0, reason)
}

// call runs a hook, containing panics so a faulty effect cannot skip
// the run's cleanup or starve its sibling effects.
func (in *Instance) call(ctx *Context, elapsedMs float64, hook func(*Context)) {
	if hook == nil {
		return
	}
	defer in.recoverHook()
	in.fill(ctx, elapsedMs)
	hook(ctx)
}

func (in *Instance) teardown(ctx *Context, elapsedMs float64, reason Reason) {
	if in.Def.Teardown == nil {
		return
	}
	defer in.recoverHook()
	in.fill(ctx, elapsedMs)
	in.Def.Teardown(ctx, reason)
}

func (in *Instance) recoverHook() {
	if r := recover(); r != nil {
		log.Printf("effects: %s hook panic: %v", in.ID, r)
	}
}

func (in *Instance) fill(ctx *Context, elapsedMs float64) {
	ctx.Params = in.Params
	ctx.ShotElapsedMs = elapsedMs
	ctx.WindowElapsedMs = elapsedMs - in.FromMs
	if ctx.WindowElapsedMs < 0 {
		ctx.WindowElapsedMs = 0
	}
}
