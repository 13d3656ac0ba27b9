package main

import (
	"math"
	"math/rand"
	"sync"

	"github.com/milk9111/cinecam/definition"
	"github.com/milk9111/cinecam/host"
)

type camState struct {
	name   string
	active bool

	pos definition.Vec3
	rot definition.Vec3
	fov float64

	pointAt       *definition.Vec3
	pointAtEntity int

	shakeAmp   float64
	shakeDecay float64
	shakePhase float64
}

// previewCamera implements host.CameraDevice for the on-screen preview.
// It keeps every created camera's state so an interrupted run's camera
// still exists while its replacement fades in.
type previewCamera struct {
	mu     sync.Mutex
	nextID host.CameraID
	cams   map[host.CameraID]*camState

	// rendering is the scripted-vs-gameplay toggle; blend eases the
	// handoff over blendMs.
	rendering bool
	blend     float64
	blendMs   float64
}

func newPreviewCamera() *previewCamera {
	return &previewCamera{nextID: 1, cams: map[host.CameraID]*camState{}}
}

func (c *previewCamera) Create(opts host.CameraOptions) (host.CameraID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.cams[id] = &camState{name: opts.Name, fov: 70, pointAtEntity: -1}
	return id, nil
}

func (c *previewCamera) state(id host.CameraID) *camState {
	return c.cams[id]
}

func (c *previewCamera) SetActive(id host.CameraID, active bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s := c.state(id); s != nil {
		s.active = active
	}
}

func (c *previewCamera) Render(enable, ease bool, durationMs int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rendering = enable
	if !ease || durationMs <= 0 {
		c.blendMs = 0
		if enable {
			c.blend = 1
		} else {
			c.blend = 0
		}
		return
	}
	c.blendMs = float64(durationMs)
}

func (c *previewCamera) Destroy(id host.CameraID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.cams, id)
}

func (c *previewCamera) DestroyAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cams = map[host.CameraID]*camState{}
	c.rendering = false
	c.blend = 0
}

func (c *previewCamera) SetPosition(id host.CameraID, pos definition.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s := c.state(id); s != nil {
		s.pos = pos
	}
}

func (c *previewCamera) SetRotation(id host.CameraID, rot definition.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s := c.state(id); s != nil {
		s.rot = rot
	}
}

func (c *previewCamera) SetFOV(id host.CameraID, fov float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s := c.state(id); s != nil {
		s.fov = fov
	}
}

func (c *previewCamera) SetTransform(id host.CameraID, pos, rot definition.Vec3, fov float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s := c.state(id); s != nil {
		s.pos = pos
		s.rot = rot
		s.fov = fov
	}
}

func (c *previewCamera) PointAtCoords(id host.CameraID, at definition.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s := c.state(id); s != nil {
		at := at
		s.pointAt = &at
		s.pointAtEntity = -1
	}
}

func (c *previewCamera) PointAtEntity(id host.CameraID, entity int, offset definition.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s := c.state(id); s != nil {
		s.pointAt = nil
		s.pointAtEntity = entity
	}
}

func (c *previewCamera) StopPointing(id host.CameraID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s := c.state(id); s != nil {
		s.pointAt = nil
		s.pointAtEntity = -1
	}
}

func (c *previewCamera) Interpolate(from, to host.CameraID, durationMs int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	src := c.state(from)
	dst := c.state(to)
	if src == nil || dst == nil {
		return
	}
	// The preview has no engine-side blend; snap the destination onto
	// the source so the handoff at least starts from the right place.
	dst.pos = src.pos
	dst.rot = src.rot
	dst.fov = src.fov
}

func (c *previewCamera) Shake(id host.CameraID, kind string, amplitude float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s := c.state(id); s != nil {
		s.shakeAmp = amplitude
		s.shakeDecay = 0
		s.shakePhase = rand.Float64() * math.Pi * 2
	}
}

func (c *previewCamera) StopShaking(id host.CameraID, immediate bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s := c.state(id); s != nil {
		if immediate {
			s.shakeAmp = 0
			return
		}
		s.shakeDecay = 8
	}
}

func (c *previewCamera) Reset() {
	c.DestroyAll()
}

// cameraView is a snapshot of the rendered camera for drawing.
type cameraView struct {
	pos    definition.Vec3
	fov    float64
	target *definition.Vec3
	blend  float64
}

// view advances the render blend and shake decay by dt seconds and
// returns the active camera's state, or false when no scripted camera
// is rendering and the blend has fully eased out.
func (c *previewCamera) view(elapsed, dt float64, world *previewWorld) (cameraView, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.blendMs > 0 {
		step := dt * 1000 / c.blendMs
		if c.rendering {
			c.blend = math.Min(1, c.blend+step)
		} else {
			c.blend = math.Max(0, c.blend-step)
		}
	}
	if c.blend <= 0 && !c.rendering {
		return cameraView{}, false
	}

	for _, s := range c.cams {
		if !s.active {
			continue
		}
		pos := s.pos
		if s.shakeAmp > 0 {
			pos.X += s.shakeAmp * math.Sin(elapsed*37+s.shakePhase)
			pos.Y += s.shakeAmp * math.Cos(elapsed*29+s.shakePhase)
			if s.shakeDecay > 0 {
				s.shakeAmp -= s.shakeDecay * s.shakeAmp * dt
				if s.shakeAmp < 0.1 {
					s.shakeAmp = 0
				}
			}
		}
		target := s.pointAt
		if s.pointAtEntity > 0 && world != nil {
			if at, ok := world.EntityPosition(s.pointAtEntity); ok {
				target = &at
			}
		}
		return cameraView{pos: pos, fov: s.fov, target: target, blend: c.blend}, true
	}
	return cameraView{}, false
}
