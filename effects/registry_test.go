package effects

import (
	"testing"

	"github.com/milk9111/cinecam/definition"
)

func TestRegisterLastWriteWins(t *testing.T) {
	r := NewRegistry()
	r.Register(Definition{ID: "glow", Params: map[string]any{"v": 1}})
	r.Register(Definition{ID: "glow", Params: map[string]any{"v": 2}})

	def, ok := r.Lookup("glow")
	if !ok {
		t.Fatal("glow should be registered")
	}
	if def.Params["v"] != 2 {
		t.Fatalf("last write should win, got %v", def.Params["v"])
	}
	if r.Has("") {
		t.Fatal("empty id should never register")
	}
}

func TestPresetDeepCopy(t *testing.T) {
	r := NewRegistry()
	from := 100.0
	r.DefinePreset(Preset{
		ID: "bars",
		Effects: []definition.EffectReference{
			{Effect: "letterbox", Params: map[string]any{"top": 0.2}, FromMs: &from},
		},
	})

	got := r.UsePreset("bars")
	if len(got) != 1 {
		t.Fatalf("expected 1 ref, got %d", len(got))
	}

	// Mutating the returned list must never affect the stored preset.
	got[0].Effect = "mutated"
	got[0].Params["top"] = 0.9
	*got[0].FromMs = 999

	again := r.UsePreset("bars")
	if again[0].Effect != "letterbox" {
		t.Fatalf("stored preset effect id was mutated: %+v", again[0])
	}
	if again[0].Params["top"] != 0.2 {
		t.Fatalf("stored preset params were mutated: %+v", again[0].Params)
	}
	if *again[0].FromMs != 100 {
		t.Fatalf("stored preset window was mutated: %v", *again[0].FromMs)
	}

	if r.UsePreset("missing") != nil {
		t.Fatal("unknown preset should yield nil")
	}
}

func TestResolveMergesParamsAndWindows(t *testing.T) {
	r := NewRegistry()
	r.Register(Definition{ID: "shake", Params: map[string]any{"amplitude": 1.0, "type": "HAND_SHAKE"}})

	from, to := 250.0, 750.0
	refs := []definition.EffectReference{
		{Effect: "shake", Params: map[string]any{"amplitude": 3.0}, FromMs: &from, ToMs: &to},
		{Effect: "shake"},
		{Effect: "ghost"}, // unregistered: silently skipped
	}

	instances := r.Resolve(refs, 2000)
	if len(instances) != 2 {
		t.Fatalf("expected 2 instances (unregistered skipped), got %d", len(instances))
	}

	first := instances[0]
	if first.Params["amplitude"] != 3.0 || first.Params["type"] != "HAND_SHAKE" {
		t.Fatalf("reference params should overlay defaults: %+v", first.Params)
	}
	if first.FromMs != 250 || first.ToMs != 750 {
		t.Fatalf("explicit window wrong: [%v,%v]", first.FromMs, first.ToMs)
	}

	second := instances[1]
	if second.FromMs != 0 || second.ToMs != 2000 {
		t.Fatalf("default window should span the shot: [%v,%v]", second.FromMs, second.ToMs)
	}
}

func TestInstanceWindowLifecycle(t *testing.T) {
	var setups, updates, teardowns int
	var reason Reason
	r := NewRegistry()
	r.Register(Definition{
		ID:       "tracer",
		Setup:    func(*Context) { setups++ },
		Update:   func(*Context) { updates++ },
		Teardown: func(_ *Context, why Reason) { teardowns++; reason = why },
	})

	from, to := 1000.0, 2000.0
	instances := r.Resolve([]definition.EffectReference{
		{Effect: "tracer", FromMs: &from, ToMs: &to},
	}, 3000)
	in := instances[0]
	ctx := &Context{}

	// Ticks at 100ms intervals across a 3000ms shot.
	for elapsed := 0.0; elapsed <= 3000; elapsed += 100 {
		in.Step(ctx, elapsed)
	}

	if setups != 1 {
		t.Fatalf("setup should fire exactly once, got %d", setups)
	}
	// Updates on every tick with 1000 <= elapsed <= 2000: 11 ticks.
	if updates != 11 {
		t.Fatalf("expected 11 updates inside the window, got %d", updates)
	}
	if teardowns != 1 || reason != ReasonCompleted {
		t.Fatalf("teardown should fire once with completed, got %d (%s)", teardowns, reason)
	}

	// Further stepping is inert.
	in.Step(ctx, 5000)
	in.Finalize(ctx, ReasonCancelled)
	if setups != 1 || teardowns != 1 {
		t.Fatalf("finished instance should be inert, got setups=%d teardowns=%d", setups, teardowns)
	}
}

func TestInstanceFinalizeWhileActive(t *testing.T) {
	var reason Reason
	var teardowns int
	r := NewRegistry()
	r.Register(Definition{
		ID:       "tracer",
		Teardown: func(_ *Context, why Reason) { teardowns++; reason = why },
	})

	in := r.Resolve([]definition.EffectReference{{Effect: "tracer"}}, 1000)[0]
	ctx := &Context{}
	in.Step(ctx, 0)
	if !in.Active() {
		t.Fatal("instance should be active inside its window")
	}

	in.Finalize(ctx, ReasonCancelled)
	if teardowns != 1 || reason != ReasonCancelled {
		t.Fatalf("expected one cancelled teardown, got %d (%s)", teardowns, reason)
	}

	// Never-entered instances get no teardown.
	teardowns = 0
	from := 500.0
	late := r.Resolve([]definition.EffectReference{{Effect: "tracer", FromMs: &from}}, 1000)[0]
	late.Finalize(ctx, ReasonCancelled)
	if teardowns != 0 {
		t.Fatalf("inactive instance should not tear down, got %d", teardowns)
	}
}

func TestInstanceHookPanicIsContained(t *testing.T) {
	r := NewRegistry()
	r.Register(Definition{
		ID:    "broken",
		Setup: func(*Context) { panic("boom") },
	})
	in := r.Resolve([]definition.EffectReference{{Effect: "broken"}}, 1000)[0]

	// Must not panic out of Step.
	in.Step(&Context{}, 0)
	if !in.Active() {
		t.Fatal("instance should still activate after a contained panic")
	}
}

func TestRegisterBuiltins(t *testing.T) {
	r := NewRegistry()
	RegisterBuiltins(r)

	for _, id := range []string{FadeIn, FadeOut, CamShake, Timecycle, Letterbox, Subtitle} {
		if !r.Has(id) {
			t.Fatalf("builtin %q missing", id)
		}
	}

	// Overwrites survive re-seeding.
	r.Register(Definition{ID: Letterbox, Params: map[string]any{"top": 0.5}})
	RegisterBuiltins(r)
	def, _ := r.Lookup(Letterbox)
	if def.Params["top"] != 0.5 {
		t.Fatal("re-seeding builtins should not clobber overrides")
	}
}

func TestParamHelpers(t *testing.T) {
	params := map[string]any{"f": 2.5, "i": 7, "s": "hi"}
	if FloatParam(params, "f", 0) != 2.5 || FloatParam(params, "i", 0) != 7 {
		t.Fatal("FloatParam should read floats and ints")
	}
	if FloatParam(params, "missing", 1.5) != 1.5 {
		t.Fatal("FloatParam fallback")
	}
	if IntParam(params, "i", 0) != 7 || IntParam(params, "f", 0) != 2 {
		t.Fatal("IntParam should read ints and truncate floats")
	}
	if StringParam(params, "s", "") != "hi" || StringParam(params, "f", "d") != "d" {
		t.Fatal("StringParam")
	}
}
