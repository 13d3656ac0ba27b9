package definition

import (
	"fmt"
	"math"
	"strings"
)

// EffectCatalog is the slice of the effects registry validation needs.
// PresetRefs returns the references a preset expands to, so preset
// contents are vetted against the registry like any direct reference.
type EffectCatalog interface {
	Has(id string) bool
	HasPreset(id string) bool
	PresetRefs(id string) []EffectReference
}

// ValidationError aggregates every structural defect found in a
// definition. Validation never fails fast; the error lists all issues.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "definition: %d validation issue(s):", len(e.Issues))
	for i, issue := range e.Issues {
		fmt.Fprintf(&b, "\n  %d. %s", i+1, issue)
	}
	return b.String()
}

// Validate performs a full structural pass over the definition and
// returns a *ValidationError listing every problem, or nil when clean.
// It allocates no resources, so a rejected definition has no footprint.
func Validate(c *Cinematic, catalog EffectCatalog) error {
	v := &validator{c: c, catalog: catalog}
	v.run()
	if len(v.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: v.issues}
}

type validator struct {
	c       *Cinematic
	catalog EffectCatalog
	issues  []string
}

func (v *validator) addf(format string, args ...any) {
	v.issues = append(v.issues, fmt.Sprintf(format, args...))
}

func (v *validator) run() {
	if v.c == nil {
		v.addf("definition is nil")
		return
	}
	if len(v.c.Shots) == 0 {
		v.addf("definition has no shots")
	}

	for _, a := range v.c.Anchors {
		if a.Name == "" {
			v.addf("anchor with empty name")
		}
		v.checkVec(a.Position, fmt.Sprintf("anchor %q position", a.Name))
	}

	v.checkEffectRefs(v.c.Effects, "global")
	for _, preset := range v.c.EffectPresets {
		if v.catalog == nil {
			continue
		}
		if !v.catalog.HasPreset(preset) {
			v.addf("unknown effect preset %q", preset)
			continue
		}
		v.checkEffectRefs(v.catalog.PresetRefs(preset), fmt.Sprintf("preset %q", preset))
	}

	seen := map[string]int{}
	for i, s := range v.c.Shots {
		where := shotLabel(i, s)
		if s == nil {
			v.addf("%s is nil", where)
			continue
		}
		if s.ID != "" {
			if prev, dup := seen[s.ID]; dup {
				v.addf("%s duplicates id of shot %d", where, prev)
			} else {
				seen[s.ID] = i
			}
		}
		v.checkShot(s, where)
	}
}

func (v *validator) checkShot(s *Shot, where string) {
	wait := s.WaitMs != 0
	motion := s.DurationMs != 0 || s.From != nil || s.To != nil || len(s.Path) > 0

	switch {
	case wait && motion:
		v.addf("%s mixes wait and motion fields", where)
	case !wait && !motion:
		v.addf("%s is neither a wait nor a motion step", where)
	case wait:
		if !positiveFinite(s.WaitMs) {
			v.addf("%s wait_ms must be a positive finite number, got %v", where, s.WaitMs)
		}
	default:
		v.checkMotion(s, where)
	}

	for j, target := range s.LookAt {
		v.checkPosition(target.Kind, &target, fmt.Sprintf("%s look_at[%d]", where, j))
	}
	v.checkEffectRefs(s.Effects, where)
}

func (v *validator) checkMotion(s *Shot, where string) {
	if !positiveFinite(s.DurationMs) {
		v.addf("%s duration_ms must be a positive finite number, got %v", where, s.DurationMs)
	}

	hasPath := len(s.Path) > 0
	hasFromTo := s.From != nil || s.To != nil
	switch {
	case hasPath && hasFromTo:
		v.addf("%s sets both path and from/to", where)
	case hasPath:
		for j, n := range s.Path {
			v.checkNode(&n, fmt.Sprintf("%s path[%d]", where, j))
		}
	case hasFromTo:
		if s.From != nil {
			v.checkNode(s.From, where+" from")
		}
		if s.To != nil {
			v.checkNode(s.To, where+" to")
		}
	default:
		v.addf("%s has no camera nodes", where)
	}
}

func (v *validator) checkNode(n *CameraNode, where string) {
	v.checkPosition(n.Kind, &n.PositionInput, where)
	if n.Rotation != nil {
		v.checkVec(*n.Rotation, where+" rotation")
	}
	if n.FOV != nil && !finite(*n.FOV) {
		v.addf("%s fov is not finite", where)
	}
}

func (v *validator) checkPosition(kind PositionKind, p *PositionInput, where string) {
	switch kind {
	case KindCoords:
		if p.Coords == nil {
			v.addf("%s is a coords input without coords", where)
		} else {
			v.checkVec(*p.Coords, where)
		}
	case KindEntity:
		if p.Entity <= 0 {
			v.addf("%s has invalid entity handle %d", where, p.Entity)
		}
	case KindEntityBone:
		if p.Entity <= 0 {
			v.addf("%s has invalid entity handle %d", where, p.Entity)
		}
		if p.Bone == "" {
			v.addf("%s has empty bone name", where)
		}
	case KindAnchor:
		if _, ok := v.c.AnchorPosition(p.Anchor); !ok {
			v.addf("%s references unknown anchor %q", where, p.Anchor)
		}
	case KindResolver:
		if p.Resolve == nil {
			v.addf("%s is a resolver input without a resolve function", where)
		}
	default:
		v.addf("%s has unknown position kind %q", where, kind)
	}
	if p.Offset != nil {
		v.checkVec(*p.Offset, where+" offset")
	}
}

func (v *validator) checkEffectRefs(refs []EffectReference, where string) {
	for j, ref := range refs {
		label := fmt.Sprintf("%s effect[%d]", where, j)
		if ref.Effect == "" {
			v.addf("%s has empty effect id", label)
		} else if v.catalog != nil && !v.catalog.Has(ref.Effect) {
			v.addf("%s references unregistered effect %q", label, ref.Effect)
		}
		if ref.FromMs != nil && ref.ToMs != nil && *ref.ToMs < *ref.FromMs {
			v.addf("%s window to_ms %v is before from_ms %v", label, *ref.ToMs, *ref.FromMs)
		}
	}
}

func (v *validator) checkVec(vec Vec3, where string) {
	if !finite(vec.X) || !finite(vec.Y) || !finite(vec.Z) {
		v.addf("%s has non-finite coordinates", where)
	}
}

func shotLabel(i int, s *Shot) string {
	if s != nil && s.ID != "" {
		return fmt.Sprintf("shot %d (%q)", i, s.ID)
	}
	return fmt.Sprintf("shot %d", i)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func positiveFinite(f float64) bool {
	return finite(f) && f > 0
}
