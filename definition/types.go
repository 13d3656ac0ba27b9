package definition

// Vec3 is a world-space position or euler rotation in degrees.
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Add returns v offset by o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// PositionKind discriminates the position input variants.
type PositionKind string

const (
	KindCoords     PositionKind = "coords"
	KindEntity     PositionKind = "entity"
	KindEntityBone PositionKind = "entity_bone"
	KindAnchor     PositionKind = "anchor"
	KindResolver   PositionKind = "resolver"
)

// ResolverFunc is a caller-supplied deferred position lookup. It is
// evaluated once per shot, not per frame.
type ResolverFunc func() (Vec3, error)

// PositionInput is a tagged variant describing where a point in the
// world comes from. Exactly the fields belonging to Kind are meaningful.
type PositionInput struct {
	Kind PositionKind `yaml:"kind"`

	Coords *Vec3 `yaml:"coords,omitempty"`

	Entity int    `yaml:"entity,omitempty"`
	Bone   string `yaml:"bone,omitempty"`

	Anchor string `yaml:"anchor,omitempty"`

	Offset *Vec3 `yaml:"offset,omitempty"`

	// Resolve backs KindResolver nodes built in code. YAML definitions
	// populate Script instead and the loader compiles it into Resolve.
	Resolve ResolverFunc `yaml:"-"`
	Script  string       `yaml:"script,omitempty"`
}

// Coords returns a coords position input.
func Coords(x, y, z float64) PositionInput {
	return PositionInput{Kind: KindCoords, Coords: &Vec3{X: x, Y: y, Z: z}}
}

// Entity returns an entity-tracking position input.
func Entity(handle int) PositionInput {
	return PositionInput{Kind: KindEntity, Entity: handle}
}

// EntityBone returns a bone-tracking position input.
func EntityBone(handle int, bone string) PositionInput {
	return PositionInput{Kind: KindEntityBone, Entity: handle, Bone: bone}
}

// Anchor returns a position input naming an anchor on the definition.
func Anchor(name string) PositionInput {
	return PositionInput{Kind: KindAnchor, Anchor: name}
}

// Resolver returns a deferred position input.
func Resolver(fn ResolverFunc) PositionInput {
	return PositionInput{Kind: KindResolver, Resolve: fn}
}

// WithOffset returns a copy of p with the given offset applied on top of
// whatever position p resolves to.
func (p PositionInput) WithOffset(x, y, z float64) PositionInput {
	p.Offset = &Vec3{X: x, Y: y, Z: z}
	return p
}

// CameraNode is a position input plus the optional camera rotation and
// field of view the camera should hold at that point.
type CameraNode struct {
	PositionInput `yaml:",inline"`

	Rotation *Vec3    `yaml:"rotation,omitempty"`
	FOV      *float64 `yaml:"fov,omitempty"`
}

// EffectReference points at a registered effect, optionally narrowing
// its activation window (relative to shot start) and overriding params.
type EffectReference struct {
	Effect string         `yaml:"effect"`
	Params map[string]any `yaml:"params,omitempty"`
	FromMs *float64       `yaml:"from_ms,omitempty"`
	ToMs   *float64       `yaml:"to_ms,omitempty"`
}

// NamedAnchor is a reusable world position declared on the definition.
type NamedAnchor struct {
	Name     string `yaml:"name"`
	Position Vec3   `yaml:"position"`
}

// Shot is one timeline entry: either a pure wait (WaitMs set) or a timed
// camera motion (DurationMs plus From/To or Path). The two families are
// mutually exclusive.
type Shot struct {
	ID string `yaml:"id,omitempty"`

	WaitMs float64 `yaml:"wait_ms,omitempty"`

	DurationMs float64      `yaml:"duration_ms,omitempty"`
	From       *CameraNode  `yaml:"from,omitempty"`
	To         *CameraNode  `yaml:"to,omitempty"`
	Path       []CameraNode `yaml:"path,omitempty"`

	LookAt []PositionInput `yaml:"look_at,omitempty"`
	Ease   string          `yaml:"ease,omitempty"`

	Effects []EffectReference `yaml:"effects,omitempty"`
}

// IsWait reports whether the shot is a wait step.
func (s *Shot) IsWait() bool { return s.WaitMs != 0 }

// Nodes returns the shot's camera nodes in timeline order.
func (s *Shot) Nodes() []CameraNode {
	if len(s.Path) > 0 {
		return s.Path
	}
	nodes := make([]CameraNode, 0, 2)
	if s.From != nil {
		nodes = append(nodes, *s.From)
	}
	if s.To != nil {
		nodes = append(nodes, *s.To)
	}
	return nodes
}

// Cinematic is a complete scripted camera timeline. The caller owns it
// until passed to Start; after that the engine holds a live reference
// and Handle.Edit may patch it in place between ticks.
type Cinematic struct {
	ID string `yaml:"id,omitempty"`

	Skippable        bool `yaml:"skippable,omitempty"`
	FreezePlayer     bool `yaml:"freeze_player,omitempty"`
	InvinciblePlayer bool `yaml:"invincible_player,omitempty"`
	HideHUD          bool `yaml:"hide_hud,omitempty"`
	HideRadar        bool `yaml:"hide_radar,omitempty"`

	Anchors []NamedAnchor `yaml:"anchors,omitempty"`

	Effects       []EffectReference `yaml:"effects,omitempty"`
	EffectPresets []string          `yaml:"effect_presets,omitempty"`

	Shots []*Shot `yaml:"shots"`
}

// AnchorPosition resolves a named anchor against the definition.
func (c *Cinematic) AnchorPosition(name string) (Vec3, bool) {
	for _, a := range c.Anchors {
		if a.Name == name {
			return a.Position, true
		}
	}
	return Vec3{}, false
}

// ShotByID returns the index of the shot with the given id, or -1.
func (c *Cinematic) ShotByID(id string) int {
	for i, s := range c.Shots {
		if s != nil && s.ID == id {
			return i
		}
	}
	return -1
}
