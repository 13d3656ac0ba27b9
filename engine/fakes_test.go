package engine

import (
	"time"

	"github.com/milk9111/cinecam/definition"
	"github.com/milk9111/cinecam/host"
)

// testClock is a manually advanced clock.
type testClock struct {
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time          { return c.now }
func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// fakeCamera records every device call.
type fakeCamera struct {
	nextID    host.CameraID
	created   []host.CameraID
	destroyed []host.CameraID
	active    map[host.CameraID]bool

	positions []definition.Vec3
	rotations []definition.Vec3
	fovs      []float64

	pointAtCoords  []definition.Vec3
	pointAtEntity  []int
	stopPointing   int
	shakes         []string
	stopShaking    int
	renderEnables  []bool
	interpolations int
}

func newFakeCamera() *fakeCamera {
	return &fakeCamera{active: map[host.CameraID]bool{}}
}

func (f *fakeCamera) Create(host.CameraOptions) (host.CameraID, error) {
	f.nextID++
	f.created = append(f.created, f.nextID)
	return f.nextID, nil
}

func (f *fakeCamera) SetActive(id host.CameraID, active bool) { f.active[id] = active }
func (f *fakeCamera) Render(enable bool, _ bool, _ int)       { f.renderEnables = append(f.renderEnables, enable) }
func (f *fakeCamera) Destroy(id host.CameraID)                { f.destroyed = append(f.destroyed, id) }
func (f *fakeCamera) DestroyAll()                             {}

func (f *fakeCamera) SetPosition(_ host.CameraID, pos definition.Vec3) {
	f.positions = append(f.positions, pos)
}
func (f *fakeCamera) SetRotation(_ host.CameraID, rot definition.Vec3) {
	f.rotations = append(f.rotations, rot)
}
func (f *fakeCamera) SetFOV(_ host.CameraID, fov float64) { f.fovs = append(f.fovs, fov) }
func (f *fakeCamera) SetTransform(id host.CameraID, pos, rot definition.Vec3, fov float64) {
	f.SetPosition(id, pos)
	f.SetRotation(id, rot)
	f.SetFOV(id, fov)
}

func (f *fakeCamera) PointAtCoords(_ host.CameraID, pos definition.Vec3) {
	f.pointAtCoords = append(f.pointAtCoords, pos)
}
func (f *fakeCamera) PointAtEntity(_ host.CameraID, entity int, _ definition.Vec3) {
	f.pointAtEntity = append(f.pointAtEntity, entity)
}
func (f *fakeCamera) StopPointing(host.CameraID) { f.stopPointing++ }

func (f *fakeCamera) Interpolate(_, _ host.CameraID, _ int) { f.interpolations++ }
func (f *fakeCamera) Shake(_ host.CameraID, kind string, _ float64) {
	f.shakes = append(f.shakes, kind)
}
func (f *fakeCamera) StopShaking(host.CameraID, bool) { f.stopShaking++ }
func (f *fakeCamera) Reset()                          {}

// fakeRenderer records overlay and screen-level calls.
type fakeRenderer struct {
	subtitles   []string
	letterboxes int
	fadeIns     []int
	fadeOuts    []int
	colorGrade  string
	gradeClears int
}

func (f *fakeRenderer) DrawSubtitle(text string)         { f.subtitles = append(f.subtitles, text) }
func (f *fakeRenderer) DrawLetterbox(_, _, _ float64)    { f.letterboxes++ }
func (f *fakeRenderer) FadeScreenIn(ms int)              { f.fadeIns = append(f.fadeIns, ms) }
func (f *fakeRenderer) FadeScreenOut(ms int)             { f.fadeOuts = append(f.fadeOuts, ms) }
func (f *fakeRenderer) SetColorGrade(name string, _ float64) { f.colorGrade = name }
func (f *fakeRenderer) ClearColorGrade()                 { f.colorGrade = ""; f.gradeClears++ }

// fakeWorld resolves entity positions and records lifecycle flags.
type fakeWorld struct {
	entities map[int]definition.Vec3
	bones    map[string]definition.Vec3

	frozen     bool
	invincible bool
	hudHidden  bool
	radarOff   bool
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{
		entities: map[int]definition.Vec3{},
		bones:    map[string]definition.Vec3{},
	}
}

func (f *fakeWorld) EntityPosition(handle int) (definition.Vec3, bool) {
	pos, ok := f.entities[handle]
	return pos, ok
}

func (f *fakeWorld) EntityBonePosition(handle int, bone string) (definition.Vec3, bool) {
	pos, ok := f.bones[bone]
	return pos, ok
}

func (f *fakeWorld) SetPlayerFrozen(v bool)     { f.frozen = v }
func (f *fakeWorld) SetPlayerInvincible(v bool) { f.invincible = v }
func (f *fakeWorld) SetHUDHidden(v bool)        { f.hudHidden = v }
func (f *fakeWorld) SetRadarHidden(v bool)      { f.radarOff = v }

// fakeInput reports a one-shot skip press.
type fakeInput struct {
	pressed bool
	control int
}

func (f *fakeInput) SkipPressed(controlID int) bool {
	f.control = controlID
	if f.pressed {
		f.pressed = false
		return true
	}
	return false
}
