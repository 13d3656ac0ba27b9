// Package interp samples camera poses along multi-node shot paths and
// applies easing curves to normalized shot progress.
package interp

import (
	"math"

	"github.com/milk9111/cinecam/definition"
)

// Node is a fully resolved camera pose at one timeline point.
type Node struct {
	Position definition.Vec3
	Rotation *definition.Vec3
	FOV      *float64
}

// SampleNode interpolates a pose at t in [0,1] across the node list.
// t is mapped onto len(nodes)-1 equal segments and each of position,
// rotation, and fov is interpolated linearly and independently within
// the selected segment. Rotation axes are not wrapped across the 0/360
// boundary. Rotation and fov are present on the result when either
// segment endpoint carries them.
func SampleNode(nodes []Node, t float64) Node {
	if len(nodes) == 0 {
		return Node{}
	}
	if len(nodes) == 1 {
		return nodes[0]
	}

	a, b, frac := segment(len(nodes), t)
	from, to := nodes[a], nodes[b]

	out := Node{Position: lerpVec(from.Position, to.Position, frac)}
	if from.Rotation != nil || to.Rotation != nil {
		rot := lerpVec(orZero(from.Rotation), orZero(to.Rotation), frac)
		if from.Rotation == nil {
			rot = *to.Rotation
		} else if to.Rotation == nil {
			rot = *from.Rotation
		}
		out.Rotation = &rot
	}
	if from.FOV != nil || to.FOV != nil {
		fov := 0.0
		switch {
		case from.FOV == nil:
			fov = *to.FOV
		case to.FOV == nil:
			fov = *from.FOV
		default:
			fov = lerp(*from.FOV, *to.FOV, frac)
		}
		out.FOV = &fov
	}
	return out
}

// SamplePosition is SampleNode restricted to bare positions, used for
// multi-target look-at paths.
func SamplePosition(points []definition.Vec3, t float64) definition.Vec3 {
	if len(points) == 0 {
		return definition.Vec3{}
	}
	if len(points) == 1 {
		return points[0]
	}
	a, b, frac := segment(len(points), t)
	return lerpVec(points[a], points[b], frac)
}

// segment maps t in [0,1] onto n-1 segments, returning the endpoint
// indices and the local fraction within the segment.
func segment(n int, t float64) (int, int, float64) {
	t = Clamp01(t)
	scaled := t * float64(n-1)
	idx := int(math.Floor(scaled))
	if idx >= n-1 {
		idx = n - 2
	}
	return idx, idx + 1, scaled - float64(idx)
}

// Clamp01 clamps t to [0,1].
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func lerpVec(a, b definition.Vec3, t float64) definition.Vec3 {
	return definition.Vec3{
		X: lerp(a.X, b.X, t),
		Y: lerp(a.Y, b.Y, t),
		Z: lerp(a.Z, b.Z, t),
	}
}

func orZero(v *definition.Vec3) definition.Vec3 {
	if v == nil {
		return definition.Vec3{}
	}
	return *v
}
