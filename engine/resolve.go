package engine

import (
	"fmt"

	"github.com/milk9111/cinecam/definition"
	"github.com/milk9111/cinecam/host"
	"github.com/milk9111/cinecam/interp"
)

// resolvePosition evaluates a position input against the world and the
// definition's anchor table. Called once per shot per input; resolver
// functions are likewise invoked exactly once here.
func resolvePosition(p definition.PositionInput, def *definition.Cinematic, world host.WorldInfo) (definition.Vec3, error) {
	var pos definition.Vec3
	switch p.Kind {
	case definition.KindCoords:
		if p.Coords == nil {
			return pos, fmt.Errorf("coords input without coords")
		}
		pos = *p.Coords
	case definition.KindEntity:
		found, ok := world.EntityPosition(p.Entity)
		if !ok {
			return pos, fmt.Errorf("entity %d not found", p.Entity)
		}
		pos = found
	case definition.KindEntityBone:
		found, ok := world.EntityBonePosition(p.Entity, p.Bone)
		if !ok {
			return pos, fmt.Errorf("entity %d bone %q not found", p.Entity, p.Bone)
		}
		pos = found
	case definition.KindAnchor:
		found, ok := def.AnchorPosition(p.Anchor)
		if !ok {
			// Validation rejects unknown anchors, so reaching this means
			// a live edit broke the anchor table.
			return pos, fmt.Errorf("unknown anchor %q", p.Anchor)
		}
		pos = found
	case definition.KindResolver:
		if p.Resolve == nil {
			return pos, fmt.Errorf("resolver input without a resolve function")
		}
		found, err := p.Resolve()
		if err != nil {
			return pos, fmt.Errorf("resolver: %w", err)
		}
		pos = found
	default:
		return pos, fmt.Errorf("unknown position kind %q", p.Kind)
	}

	if p.Offset != nil {
		pos = pos.Add(*p.Offset)
	}
	return pos, nil
}

// resolveNodes evaluates a shot's camera nodes into sampleable poses.
func resolveNodes(nodes []definition.CameraNode, def *definition.Cinematic, world host.WorldInfo) ([]interp.Node, error) {
	out := make([]interp.Node, 0, len(nodes))
	for i, n := range nodes {
		pos, err := resolvePosition(n.PositionInput, def, world)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		node := interp.Node{Position: pos}
		if n.Rotation != nil {
			rot := *n.Rotation
			node.Rotation = &rot
		}
		if n.FOV != nil {
			fov := *n.FOV
			node.FOV = &fov
		}
		out = append(out, node)
	}
	return out, nil
}

// lookTarget is a shot's resolved look-at: either a tracked entity the
// device points at directly, or one or more fixed positions sampled per
// tick like path nodes.
type lookTarget struct {
	entity int
	offset definition.Vec3

	points []definition.Vec3
}

func resolveLookAt(targets []definition.PositionInput, def *definition.Cinematic, world host.WorldInfo) (*lookTarget, error) {
	if len(targets) == 0 {
		return nil, nil
	}

	// A single entity target stays device-tracked so the camera follows
	// it through the shot instead of aiming at a stale position.
	if len(targets) == 1 && targets[0].Kind == definition.KindEntity {
		lt := &lookTarget{entity: targets[0].Entity}
		if targets[0].Offset != nil {
			lt.offset = *targets[0].Offset
		}
		return lt, nil
	}

	points := make([]definition.Vec3, 0, len(targets))
	for i, target := range targets {
		pos, err := resolvePosition(target, def, world)
		if err != nil {
			return nil, fmt.Errorf("look_at %d: %w", i, err)
		}
		points = append(points, pos)
	}
	return &lookTarget{entity: -1, points: points}, nil
}
