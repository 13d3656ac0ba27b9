package definition

import (
	"testing"
)

const sampleYAML = `
id: intro
skippable: true
freeze_player: true
hide_hud: true
anchors:
  - name: tower
    position: {x: 100, y: 200, z: 30}
effects:
  - effect: letterbox
effect_presets: [cinematicBars]
shots:
  - id: hold
    wait_ms: 500
  - id: fly
    duration_ms: 3000
    ease: inOutCubic
    from:
      coords: {x: 0, y: 0, z: 50}
      rotation: {x: -10, y: 0, z: 0}
      fov: 60
    to:
      anchor: tower
      offset: {x: 0, y: 0, z: 20}
    look_at:
      entity: 42
    effects:
      - effect: subtitle
        params:
          text: hello
        from_ms: 1000
        to_ms: 2000
  - id: orbit
    duration_ms: 2000
    path:
      - coords: {x: 0, y: 0, z: 10}
      - coords: {x: 10, y: 0, z: 10}
      - coords: {x: 10, y: 10, z: 10}
    look_at:
      - coords: {x: 5, y: 5, z: 0}
      - entity: 42
        offset: {x: 0, y: 0, z: 1}
`

func TestLoadSampleDefinition(t *testing.T) {
	c, err := Load([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if c.ID != "intro" || !c.Skippable || !c.FreezePlayer || !c.HideHUD {
		t.Fatalf("header fields wrong: %+v", c)
	}
	if len(c.Anchors) != 1 || c.Anchors[0].Name != "tower" || c.Anchors[0].Position.Y != 200 {
		t.Fatalf("anchors wrong: %+v", c.Anchors)
	}
	if len(c.EffectPresets) != 1 || c.EffectPresets[0] != "cinematicBars" {
		t.Fatalf("presets wrong: %+v", c.EffectPresets)
	}
	if len(c.Shots) != 3 {
		t.Fatalf("expected 3 shots, got %d", len(c.Shots))
	}

	hold := c.Shots[0]
	if !hold.IsWait() || hold.WaitMs != 500 {
		t.Fatalf("wait shot wrong: %+v", hold)
	}

	fly := c.Shots[1]
	if fly.DurationMs != 3000 || fly.Ease != "inOutCubic" {
		t.Fatalf("fly shot wrong: %+v", fly)
	}
	if fly.From == nil || fly.From.Kind != KindCoords || fly.From.Coords.Z != 50 {
		t.Fatalf("from node should infer coords kind: %+v", fly.From)
	}
	if fly.From.Rotation == nil || fly.From.Rotation.X != -10 {
		t.Fatalf("from rotation wrong: %+v", fly.From.Rotation)
	}
	if fly.From.FOV == nil || *fly.From.FOV != 60 {
		t.Fatalf("from fov wrong: %+v", fly.From.FOV)
	}
	if fly.To == nil || fly.To.Kind != KindAnchor || fly.To.Anchor != "tower" {
		t.Fatalf("to node should infer anchor kind: %+v", fly.To)
	}
	if fly.To.Offset == nil || fly.To.Offset.Z != 20 {
		t.Fatalf("to offset wrong: %+v", fly.To.Offset)
	}
	if len(fly.LookAt) != 1 || fly.LookAt[0].Kind != KindEntity || fly.LookAt[0].Entity != 42 {
		t.Fatalf("scalar look_at should become a one-element list: %+v", fly.LookAt)
	}
	if len(fly.Effects) != 1 {
		t.Fatalf("fly effects wrong: %+v", fly.Effects)
	}
	eff := fly.Effects[0]
	if eff.Effect != "subtitle" || eff.Params["text"] != "hello" {
		t.Fatalf("effect ref wrong: %+v", eff)
	}
	if eff.FromMs == nil || *eff.FromMs != 1000 || eff.ToMs == nil || *eff.ToMs != 2000 {
		t.Fatalf("effect window wrong: %+v", eff)
	}

	orbit := c.Shots[2]
	if len(orbit.Path) != 3 {
		t.Fatalf("orbit path wrong: %+v", orbit.Path)
	}
	if len(orbit.LookAt) != 2 || orbit.LookAt[1].Kind != KindEntity || orbit.LookAt[1].Offset == nil {
		t.Fatalf("list look_at wrong: %+v", orbit.LookAt)
	}
}

func TestLoadResolverScriptNode(t *testing.T) {
	src := `
shots:
  - duration_ms: 1000
    from:
      script: scripts/chase.tengo
    to:
      coords: {x: 0, y: 0, z: 0}
`
	c, err := Load([]byte(src))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	from := c.Shots[0].From
	if from.Kind != KindResolver || from.Script != "scripts/chase.tengo" {
		t.Fatalf("script node should infer resolver kind: %+v", from)
	}
}

func TestLoadRejectsKindlessPosition(t *testing.T) {
	src := `
shots:
  - duration_ms: 1000
    from: {}
    to:
      coords: {x: 0, y: 0, z: 0}
`
	if _, err := Load([]byte(src)); err == nil {
		t.Fatal("expected error for position input with no recognizable kind")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	c, err := Load([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	data, err := Marshal(c)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	back, err := Load(data)
	if err != nil {
		t.Fatalf("Load(Marshal): %v", err)
	}
	if len(back.Shots) != len(c.Shots) || back.ID != c.ID {
		t.Fatalf("round trip lost shots or id: %+v", back)
	}
}
