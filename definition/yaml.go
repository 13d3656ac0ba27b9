package definition

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load unmarshals a cinematic definition from YAML.
func Load(data []byte) (*Cinematic, error) {
	var c Cinematic
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("definition: unmarshal: %w", err)
	}
	return &c, nil
}

// LoadFile reads and unmarshals a cinematic definition file.
func LoadFile(filename string) (*Cinematic, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("definition: load %s: %w", filename, err)
	}
	c, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("definition: %s: %w", filename, err)
	}
	return c, nil
}

// Marshal serializes a cinematic definition to YAML.
func Marshal(c *Cinematic) ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("definition: marshal: %w", err)
	}
	return data, nil
}

type rawPositionInput struct {
	Kind   PositionKind `yaml:"kind"`
	Coords *Vec3        `yaml:"coords"`
	Entity int          `yaml:"entity"`
	Bone   string       `yaml:"bone"`
	Anchor string       `yaml:"anchor"`
	Offset *Vec3        `yaml:"offset"`
	Script string       `yaml:"script"`
}

// UnmarshalYAML decodes a position input, inferring the kind from the
// populated field when the file omits an explicit kind tag.
func (p *PositionInput) UnmarshalYAML(node *yaml.Node) error {
	var raw rawPositionInput
	if err := node.Decode(&raw); err != nil {
		return err
	}

	kind := raw.Kind
	if kind == "" {
		switch {
		case raw.Coords != nil:
			kind = KindCoords
		case raw.Script != "":
			kind = KindResolver
		case raw.Anchor != "":
			kind = KindAnchor
		case raw.Bone != "":
			kind = KindEntityBone
		case raw.Entity != 0:
			kind = KindEntity
		default:
			return fmt.Errorf("line %d: position input has no recognizable kind", node.Line)
		}
	}

	*p = PositionInput{
		Kind:   kind,
		Coords: raw.Coords,
		Entity: raw.Entity,
		Bone:   raw.Bone,
		Anchor: raw.Anchor,
		Offset: raw.Offset,
		Script: raw.Script,
	}
	return nil
}

type rawCameraNode struct {
	PositionInput `yaml:",inline"`
	Rotation      *Vec3    `yaml:"rotation"`
	FOV           *float64 `yaml:"fov"`
}

// UnmarshalYAML decodes a camera node, reusing the position-input kind
// inference for its embedded position.
func (n *CameraNode) UnmarshalYAML(node *yaml.Node) error {
	var raw rawCameraNode
	if err := node.Decode(&raw); err != nil {
		return err
	}
	n.PositionInput = raw.PositionInput
	n.Rotation = raw.Rotation
	n.FOV = raw.FOV
	return nil
}

type rawShot struct {
	ID         string            `yaml:"id"`
	WaitMs     float64           `yaml:"wait_ms"`
	DurationMs float64           `yaml:"duration_ms"`
	From       *CameraNode       `yaml:"from"`
	To         *CameraNode       `yaml:"to"`
	Path       []CameraNode      `yaml:"path"`
	LookAt     yaml.Node         `yaml:"look_at"`
	Ease       string            `yaml:"ease"`
	Effects    []EffectReference `yaml:"effects"`
}

// UnmarshalYAML decodes a shot. look_at accepts either a single position
// input or a list of them.
func (s *Shot) UnmarshalYAML(node *yaml.Node) error {
	var raw rawShot
	if err := node.Decode(&raw); err != nil {
		return err
	}

	*s = Shot{
		ID:         raw.ID,
		WaitMs:     raw.WaitMs,
		DurationMs: raw.DurationMs,
		From:       raw.From,
		To:         raw.To,
		Path:       raw.Path,
		Ease:       raw.Ease,
		Effects:    raw.Effects,
	}

	switch raw.LookAt.Kind {
	case 0: // absent
	case yaml.SequenceNode:
		var targets []PositionInput
		if err := raw.LookAt.Decode(&targets); err != nil {
			return err
		}
		s.LookAt = targets
	default:
		var target PositionInput
		if err := raw.LookAt.Decode(&target); err != nil {
			return err
		}
		s.LookAt = []PositionInput{target}
	}
	return nil
}
