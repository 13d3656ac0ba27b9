// Package effects keeps the keyed catalog of camera effect behaviors,
// named presets, and the per-run effect instances the engine drives
// through their activation windows.
package effects

import (
	"github.com/milk9111/cinecam/definition"
	"github.com/milk9111/cinecam/host"
)

// Reason tells a teardown hook why the effect is ending.
type Reason string

const (
	ReasonCompleted   Reason = "completed"
	ReasonCancelled   Reason = "cancelled"
	ReasonInterrupted Reason = "interrupted"
)

// Context is handed to every effect hook invocation.
type Context struct {
	Camera   host.CameraDevice
	Renderer host.Renderer
	World    host.WorldInfo

	CameraID host.CameraID
	Params   map[string]any

	// ShotElapsedMs is time since shot start; WindowElapsedMs since the
	// effect's own window opened. Both exclude paused time.
	ShotElapsedMs   float64
	WindowElapsedMs float64
	ShotDurationMs  float64
}

// Definition is an effect behavior: optional lifecycle hooks plus the
// default parameters references are merged over.
type Definition struct {
	ID       string
	Params   map[string]any
	Setup    func(ctx *Context)
	Update   func(ctx *Context)
	Teardown func(ctx *Context, reason Reason)
}

// Preset is a named, ordered bundle of effect references.
type Preset struct {
	ID      string
	Effects []definition.EffectReference
}

// Registry is the keyed effect catalog.
type Registry struct {
	defs    map[string]Definition
	presets map[string][]definition.EffectReference
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		defs:    map[string]Definition{},
		presets: map[string][]definition.EffectReference{},
	}
}

// Register inserts or overwrites an effect definition by id. Last write
// wins; duplicate ids are not an error.
func (r *Registry) Register(def Definition) {
	if def.ID == "" {
		return
	}
	r.defs[def.ID] = def
}

// DefinePreset stores a named, ordered list of effect references.
func (r *Registry) DefinePreset(p Preset) {
	if p.ID == "" {
		return
	}
	r.presets[p.ID] = copyRefs(p.Effects)
}

// UsePreset returns a deep copy of the preset's references. Mutating the
// returned list never affects the stored preset. Unknown ids yield nil.
func (r *Registry) UsePreset(id string) []definition.EffectReference {
	refs, ok := r.presets[id]
	if !ok {
		return nil
	}
	return copyRefs(refs)
}

// Has reports whether an effect id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.defs[id]
	return ok
}

// HasPreset reports whether a preset id is defined.
func (r *Registry) HasPreset(id string) bool {
	_, ok := r.presets[id]
	return ok
}

// PresetRefs returns a copy of the preset's references for validation.
// Unknown ids yield nil.
func (r *Registry) PresetRefs(id string) []definition.EffectReference {
	return r.UsePreset(id)
}

// Lookup returns the definition for an effect id.
func (r *Registry) Lookup(id string) (Definition, bool) {
	def, ok := r.defs[id]
	return def, ok
}

// Resolve expands effect references into runtime instances, merging each
// reference's params over the registry defaults and defaulting the
// activation window to the whole shot. References to unregistered ids
// are silently skipped.
func (r *Registry) Resolve(refs []definition.EffectReference, shotDurationMs float64) []*Instance {
	instances := make([]*Instance, 0, len(refs))
	for _, ref := range refs {
		def, ok := r.defs[ref.Effect]
		if !ok {
			continue
		}

		params := make(map[string]any, len(def.Params)+len(ref.Params))
		for k, v := range def.Params {
			params[k] = v
		}
		for k, v := range ref.Params {
			params[k] = v
		}

		from := 0.0
		if ref.FromMs != nil {
			from = *ref.FromMs
		}
		to := shotDurationMs
		if ref.ToMs != nil {
			to = *ref.ToMs
		}

		instances = append(instances, &Instance{
			ID:     ref.Effect,
			Def:    def,
			Params: params,
			FromMs: from,
			ToMs:   to,
		})
	}
	return instances
}

func copyRefs(refs []definition.EffectReference) []definition.EffectReference {
	out := make([]definition.EffectReference, len(refs))
	for i, ref := range refs {
		out[i] = ref
		if ref.Params != nil {
			params := make(map[string]any, len(ref.Params))
			for k, v := range ref.Params {
				params[k] = v
			}
			out[i].Params = params
		}
		if ref.FromMs != nil {
			from := *ref.FromMs
			out[i].FromMs = &from
		}
		if ref.ToMs != nil {
			to := *ref.ToMs
			out[i].ToMs = &to
		}
	}
	return out
}
