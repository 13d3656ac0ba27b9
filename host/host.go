// Package host declares the interfaces the cinematic engine consumes
// from its embedding application: the scripted camera device, the
// overlay renderer, world/entity queries, a clock, and the skip input.
package host

import (
	"time"

	"github.com/milk9111/cinecam/definition"
)

// CameraID identifies a scripted camera owned by the camera device.
type CameraID int

// CameraOptions configure camera creation.
type CameraOptions struct {
	Name string
}

// CameraDevice creates and drives scripted cameras.
type CameraDevice interface {
	Create(opts CameraOptions) (CameraID, error)
	SetActive(id CameraID, active bool)
	Render(enable bool, ease bool, durationMs int)
	Destroy(id CameraID)
	DestroyAll()

	SetPosition(id CameraID, pos definition.Vec3)
	SetRotation(id CameraID, rot definition.Vec3)
	SetFOV(id CameraID, fov float64)
	SetTransform(id CameraID, pos definition.Vec3, rot definition.Vec3, fov float64)

	PointAtCoords(id CameraID, pos definition.Vec3)
	PointAtEntity(id CameraID, entity int, offset definition.Vec3)
	StopPointing(id CameraID)

	Interpolate(from, to CameraID, durationMs int)
	Shake(id CameraID, kind string, amplitude float64)
	StopShaking(id CameraID, immediate bool)
	Reset()
}

// Renderer draws the per-frame overlay surfaces effects rely on and
// hosts the screen-level transitions (fade, color grade).
type Renderer interface {
	DrawSubtitle(text string)
	DrawLetterbox(top, bottom, alpha float64)

	FadeScreenIn(durationMs int)
	FadeScreenOut(durationMs int)

	SetColorGrade(name string, strength float64)
	ClearColorGrade()
}

// WorldInfo resolves entity positions and owns the player lifecycle
// flags the engine toggles for the duration of a run.
type WorldInfo interface {
	EntityPosition(handle int) (definition.Vec3, bool)
	EntityBonePosition(handle int, bone string) (definition.Vec3, bool)

	SetPlayerFrozen(frozen bool)
	SetPlayerInvincible(invincible bool)
	SetHUDHidden(hidden bool)
	SetRadarHidden(hidden bool)
}

// Clock provides monotonic time for shot progress accounting.
type Clock interface {
	Now() time.Time
}

// SystemClock is the default wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// InputSource reports whether the skip control was pressed this tick.
type InputSource interface {
	SkipPressed(controlID int) bool
}
