package interp

import "github.com/tanema/gween/ease"

// Easing kinds accepted on a shot.
const (
	EaseLinear     = "linear"
	EaseInSine     = "inSine"
	EaseOutSine    = "outSine"
	EaseInOutSine  = "inOutSine"
	EaseInCubic    = "inCubic"
	EaseOutCubic   = "outCubic"
	EaseInOutCubic = "inOutCubic"
)

var easings = map[string]ease.TweenFunc{
	EaseLinear:     ease.Linear,
	EaseInSine:     ease.InSine,
	EaseOutSine:    ease.OutSine,
	EaseInOutSine:  ease.InOutSine,
	EaseInCubic:    ease.InCubic,
	EaseOutCubic:   ease.OutCubic,
	EaseInOutCubic: ease.InOutCubic,
}

// ApplyEase maps normalized progress t through the named easing curve.
// t is clamped to [0,1] first; an unknown kind is the clamped identity.
func ApplyEase(kind string, t float64) float64 {
	t = Clamp01(t)
	fn, ok := easings[kind]
	if !ok {
		return t
	}
	return float64(fn(float32(t), 0, 1, 1))
}
