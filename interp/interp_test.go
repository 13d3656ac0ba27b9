package interp

import (
	"math"
	"testing"

	"github.com/milk9111/cinecam/definition"
)

const epsilon = 1e-5

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestSampleNodePositions(t *testing.T) {
	nodes := []Node{
		{Position: definition.Vec3{X: 0, Y: 0, Z: 0}},
		{Position: definition.Vec3{X: 10, Y: 0, Z: 0}},
	}

	cases := []struct {
		name string
		t    float64
		want definition.Vec3
	}{
		{"start", 0, definition.Vec3{X: 0}},
		{"end", 1, definition.Vec3{X: 10}},
		{"middle", 0.5, definition.Vec3{X: 5}},
		{"clamped_below", -0.5, definition.Vec3{X: 0}},
		{"clamped_above", 1.5, definition.Vec3{X: 10}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := SampleNode(nodes, c.t)
			if !almostEqual(got.Position.X, c.want.X) {
				t.Fatalf("SampleNode(%v).Position.X = %v, want %v", c.t, got.Position.X, c.want.X)
			}
		})
	}
}

func TestSampleNodeMultiSegment(t *testing.T) {
	nodes := []Node{
		{Position: definition.Vec3{X: 0}},
		{Position: definition.Vec3{X: 10}},
		{Position: definition.Vec3{X: 30}},
	}

	// t=0.5 lands exactly on the middle node.
	got := SampleNode(nodes, 0.5)
	if !almostEqual(got.Position.X, 10) {
		t.Fatalf("t=0.5 should hit the middle node, got X=%v", got.Position.X)
	}

	// t=0.75 is halfway through the second segment.
	got = SampleNode(nodes, 0.75)
	if !almostEqual(got.Position.X, 20) {
		t.Fatalf("t=0.75 should be halfway through segment 2, got X=%v", got.Position.X)
	}
}

func TestSampleNodeSingleNode(t *testing.T) {
	fov := 45.0
	nodes := []Node{{Position: definition.Vec3{X: 3, Y: 4, Z: 5}, FOV: &fov}}
	got := SampleNode(nodes, 0.7)
	if got.Position != nodes[0].Position {
		t.Fatalf("single node should be returned as-is, got %+v", got.Position)
	}
	if got.FOV == nil || *got.FOV != 45 {
		t.Fatalf("single node fov should be preserved")
	}
}

func TestSampleNodeRotationAndFOV(t *testing.T) {
	fovA, fovB := 40.0, 60.0
	nodes := []Node{
		{Position: definition.Vec3{}, Rotation: &definition.Vec3{Z: 0}, FOV: &fovA},
		{Position: definition.Vec3{X: 10}, Rotation: &definition.Vec3{Z: 90}, FOV: &fovB},
	}

	got := SampleNode(nodes, 0.5)
	if got.Rotation == nil || !almostEqual(got.Rotation.Z, 45) {
		t.Fatalf("rotation Z should interpolate to 45, got %+v", got.Rotation)
	}
	if got.FOV == nil || !almostEqual(*got.FOV, 50) {
		t.Fatalf("fov should interpolate to 50, got %+v", got.FOV)
	}

	// No wraparound: 350 -> 10 interpolates through 180, not through 0.
	wrap := []Node{
		{Rotation: &definition.Vec3{Z: 350}},
		{Rotation: &definition.Vec3{Z: 10}},
	}
	got = SampleNode(wrap, 0.5)
	if !almostEqual(got.Rotation.Z, 180) {
		t.Fatalf("rotation should lerp without wraparound, got Z=%v", got.Rotation.Z)
	}
}

func TestSampleNodeMissingEndpointCarries(t *testing.T) {
	fov := 50.0
	nodes := []Node{
		{Position: definition.Vec3{}},
		{Position: definition.Vec3{X: 10}, Rotation: &definition.Vec3{Z: 30}, FOV: &fov},
	}
	got := SampleNode(nodes, 0.25)
	if got.Rotation == nil || got.Rotation.Z != 30 {
		t.Fatalf("missing rotation endpoint should carry the present side, got %+v", got.Rotation)
	}
	if got.FOV == nil || *got.FOV != 50 {
		t.Fatalf("missing fov endpoint should carry the present side, got %+v", got.FOV)
	}
}

func TestSamplePosition(t *testing.T) {
	points := []definition.Vec3{{X: 0, Y: 0}, {X: 4, Y: 8}}
	got := SamplePosition(points, 0.5)
	if !almostEqual(got.X, 2) || !almostEqual(got.Y, 4) {
		t.Fatalf("SamplePosition midpoint = %+v", got)
	}

	if got := SamplePosition(nil, 0.5); got != (definition.Vec3{}) {
		t.Fatalf("empty point list should sample to origin, got %+v", got)
	}
	single := []definition.Vec3{{X: 7}}
	if got := SamplePosition(single, 0.9); got.X != 7 {
		t.Fatalf("single point should be returned as-is, got %+v", got)
	}
}

func TestApplyEase(t *testing.T) {
	cases := []struct {
		kind string
		t    float64
		want float64
	}{
		{EaseLinear, 0.3, 0.3},
		{EaseLinear, -1, 0},
		{EaseLinear, 2, 1},
		{EaseInCubic, 0.5, 0.125},
		{EaseOutCubic, 0.5, 0.875},
		{EaseInOutCubic, 0.25, 4 * 0.25 * 0.25 * 0.25},
		{EaseInSine, 0.5, 1 - math.Cos(0.5*math.Pi/2)},
		{EaseOutSine, 0.5, math.Sin(0.5*math.Pi/2)},
		{EaseInOutSine, 0.5, 0.5},
		{"bogus", 0.42, 0.42},
		{"", 0.42, 0.42},
	}

	for _, c := range cases {
		t.Run(c.kind, func(t *testing.T) {
			got := ApplyEase(c.kind, c.t)
			if !almostEqual(got, c.want) {
				t.Fatalf("ApplyEase(%q, %v) = %v, want %v", c.kind, c.t, got, c.want)
			}
		})
	}
}
