package main

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/cinecam/definition"
)

// Entity handles the preview world exposes to definitions.
const (
	EntityDrone  = 1
	EntityRunner = 2
)

// previewWorld simulates a couple of moving bodies in a chipmunk space
// so entity and bone position inputs have something real to track. The
// XY plane is the ground; Z is synthesized height.
type previewWorld struct {
	space  *cp.Space
	drone  *cp.Body
	runner *cp.Body

	elapsed float64

	frozen     bool
	invincible bool
	hudHidden  bool
	radarOff   bool
}

func newPreviewWorld() *previewWorld {
	space := cp.NewSpace()
	space.Iterations = 10

	drone := cp.NewKinematicBody()
	drone.SetPosition(cp.Vector{X: 300, Y: 200})
	space.AddBody(drone)

	runner := cp.NewKinematicBody()
	runner.SetPosition(cp.Vector{X: 100, Y: 420})
	runner.SetVelocity(40, 0)
	space.AddBody(runner)

	return &previewWorld{space: space, drone: drone, runner: runner}
}

func (w *previewWorld) Step(dt float64) {
	w.elapsed += dt

	// Drone circles its spawn point; runner patrols horizontally. The
	// runner stands in for the player, so freezing stops it.
	w.drone.SetVelocity(
		-80*math.Sin(w.elapsed*0.8),
		80*math.Cos(w.elapsed*0.8),
	)
	switch {
	case w.frozen:
		w.runner.SetVelocity(0, 0)
	case w.runner.Position().X > 800:
		w.runner.SetVelocity(-40, 0)
	case w.runner.Position().X < 100:
		w.runner.SetVelocity(40, 0)
	case math.Abs(w.runner.Velocity().X) < 1:
		// Resume the patrol after a freeze.
		w.runner.SetVelocity(40, 0)
	}

	w.space.Step(dt)
}

func (w *previewWorld) body(handle int) *cp.Body {
	switch handle {
	case EntityDrone:
		return w.drone
	case EntityRunner:
		return w.runner
	default:
		return nil
	}
}

func (w *previewWorld) EntityPosition(handle int) (definition.Vec3, bool) {
	body := w.body(handle)
	if body == nil {
		return definition.Vec3{}, false
	}
	pos := body.Position()
	z := 0.0
	if handle == EntityDrone {
		z = 40
	}
	return definition.Vec3{X: pos.X, Y: pos.Y, Z: z}, true
}

func (w *previewWorld) EntityBonePosition(handle int, bone string) (definition.Vec3, bool) {
	pos, ok := w.EntityPosition(handle)
	if !ok {
		return definition.Vec3{}, false
	}
	// The preview has no skeletons; well-known bone names map to fixed
	// offsets so bone inputs remain exercisable.
	switch bone {
	case "head":
		pos.Z += 10
	case "root":
	default:
		return definition.Vec3{}, false
	}
	return pos, true
}

func (w *previewWorld) SetPlayerFrozen(v bool)     { w.frozen = v }
func (w *previewWorld) SetPlayerInvincible(v bool) { w.invincible = v }
func (w *previewWorld) SetHUDHidden(v bool)        { w.hudHidden = v }
func (w *previewWorld) SetRadarHidden(v bool)      { w.radarOff = v }
