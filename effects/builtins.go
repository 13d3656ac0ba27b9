package effects

// Builtin effect ids.
const (
	FadeIn    = "fadeIn"
	FadeOut   = "fadeOut"
	CamShake  = "camShake"
	Timecycle = "timecycle"
	Letterbox = "letterbox"
	Subtitle  = "subtitle"
)

// RegisterBuiltins seeds the six stock effects. Already-registered ids
// are left alone so callers can overwrite a builtin and re-seed safely.
func RegisterBuiltins(r *Registry) {
	seed := func(def Definition) {
		if !r.Has(def.ID) {
			r.Register(def)
		}
	}

	seed(Definition{
		ID:     FadeIn,
		Params: map[string]any{"durationMs": 500},
		Setup: func(ctx *Context) {
			ctx.Renderer.FadeScreenIn(IntParam(ctx.Params, "durationMs", 500))
		},
	})

	seed(Definition{
		ID:     FadeOut,
		Params: map[string]any{"durationMs": 500},
		Setup: func(ctx *Context) {
			ctx.Renderer.FadeScreenOut(IntParam(ctx.Params, "durationMs", 500))
		},
	})

	seed(Definition{
		ID:     CamShake,
		Params: map[string]any{"type": "HAND_SHAKE", "amplitude": 1.0},
		Setup: func(ctx *Context) {
			ctx.Camera.Shake(ctx.CameraID,
				StringParam(ctx.Params, "type", "HAND_SHAKE"),
				FloatParam(ctx.Params, "amplitude", 1.0))
		},
		Teardown: func(ctx *Context, _ Reason) {
			ctx.Camera.StopShaking(ctx.CameraID, true)
		},
	})

	seed(Definition{
		ID:     Timecycle,
		Params: map[string]any{"name": "", "strength": 1.0},
		Setup: func(ctx *Context) {
			name := StringParam(ctx.Params, "name", "")
			if name == "" {
				return
			}
			ctx.Renderer.SetColorGrade(name, FloatParam(ctx.Params, "strength", 1.0))
		},
		Teardown: func(ctx *Context, _ Reason) {
			ctx.Renderer.ClearColorGrade()
		},
	})

	seed(Definition{
		ID:     Letterbox,
		Params: map[string]any{"top": 0.1, "bottom": 0.1, "alpha": 1.0},
		Update: func(ctx *Context) {
			ctx.Renderer.DrawLetterbox(
				FloatParam(ctx.Params, "top", 0.1),
				FloatParam(ctx.Params, "bottom", 0.1),
				FloatParam(ctx.Params, "alpha", 1.0))
		},
	})

	seed(Definition{
		ID:     Subtitle,
		Params: map[string]any{"text": ""},
		Update: func(ctx *Context) {
			text := StringParam(ctx.Params, "text", "")
			if text == "" {
				return
			}
			ctx.Renderer.DrawSubtitle(text)
		},
	})
}

// FloatParam reads a numeric parameter, tolerating int and float values.
func FloatParam(params map[string]any, key string, fallback float64) float64 {
	switch v := params[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	default:
		return fallback
	}
}

// IntParam reads an integer parameter, tolerating float values.
func IntParam(params map[string]any, key string, fallback int) int {
	switch v := params[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return fallback
	}
}

// StringParam reads a string parameter.
func StringParam(params map[string]any, key string, fallback string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return fallback
}
