package main

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/cinecam"
	"github.com/milk9111/cinecam/definition"
	"github.com/milk9111/cinecam/engine"
	"github.com/milk9111/cinecam/script"
)

const (
	baseWidth  = 960
	baseHeight = 540

	tickDT = 1.0 / 60.0
)

// Game hosts the director inside an ebiten loop: it simulates a small
// world, plays the scenario through the scripted camera, and restarts
// the run whenever the scenario file changes on disk.
type Game struct {
	director *cinecam.Director
	camera   *previewCamera
	renderer *previewRenderer
	world    *previewWorld
	export   *exporter

	scenarioPath string
	scenarioDir  string
	watcher      *scenarioWatcher

	def    *definition.Cinematic
	handle *engine.Handle
	unsubs []func()

	currentShot struct {
		index int
		total int
		id    string
	}

	paused  bool
	elapsed float64
	status  string

	ui *ebitenui.UI
}

func NewGame(scenarioPath string, watch bool) (*Game, error) {
	face := ebtext.NewGoXFace(basicfont.Face7x13)

	g := &Game{
		camera:       newPreviewCamera(),
		renderer:     newPreviewRenderer(face),
		world:        newPreviewWorld(),
		export:       newExporter(),
		scenarioPath: scenarioPath,
		scenarioDir:  filepath.Dir(scenarioPath),
	}
	g.director = cinecam.New(engine.Config{
		Camera:   g.camera,
		Renderer: g.renderer,
		World:    g.world,
		Input:    previewInput{},
	})
	g.ui = newToolbar(g, face)

	if err := g.reload(); err != nil {
		return nil, err
	}

	if watch {
		w, err := watchScenarioDir(g.scenarioDir)
		if err != nil {
			return nil, fmt.Errorf("preview: watch %s: %w", g.scenarioDir, err)
		}
		g.watcher = w
	}
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

// reload parses the scenario, binds its resolver scripts, and restarts
// the run. A parse or validation failure leaves the previous run alone.
func (g *Game) reload() error {
	def, err := definition.LoadFile(g.scenarioPath)
	if err != nil {
		return err
	}
	if err := script.Bind(def, g.scenarioDir); err != nil {
		return err
	}
	if err := g.director.Validate(def); err != nil {
		return err
	}
	g.def = def
	return g.restart()
}

func (g *Game) restart() error {
	g.detach()
	handle, err := g.director.Start(g.def, engine.StartOptions{})
	if err != nil {
		return err
	}
	g.attach(handle)
	g.paused = false
	g.status = "playing " + g.def.ID
	return nil
}

func (g *Game) attach(h *engine.Handle) {
	g.handle = h
	g.unsubs = append(g.unsubs,
		h.On(engine.EventShotStart, func(payload any) {
			if ev, ok := payload.(engine.ShotEvent); ok {
				g.currentShot.index = ev.ShotIndex
				g.currentShot.total = ev.TotalShots
				g.currentShot.id = ev.ShotID
			}
		}),
		h.On(engine.EventCompleted, func(any) { g.status = "completed" }),
		h.On(engine.EventCancelled, func(any) { g.status = "cancelled" }),
	)
}

func (g *Game) detach() {
	for _, unsub := range g.unsubs {
		unsub()
	}
	g.unsubs = nil
	g.handle = nil
	g.currentShot.index = 0
	g.currentShot.total = 0
	g.currentShot.id = ""
}

func (g *Game) togglePause() {
	if g.handle == nil {
		return
	}
	if g.paused {
		g.handle.Resume()
		g.status = "playing " + g.def.ID
	} else {
		g.handle.Pause()
		g.status = "paused"
	}
	g.paused = !g.paused
}

func (g *Game) cancel() {
	if g.handle != nil {
		g.handle.Cancel()
	}
}

func (g *Game) copyShot() {
	if g.def == nil {
		return
	}
	var shot *definition.Shot
	if i := g.def.ShotByID(g.currentShot.id); i >= 0 {
		shot = g.def.Shots[i]
	}
	if err := g.export.CopyShot(shot); err != nil {
		g.status = err.Error()
		return
	}
	g.status = "copied shot " + g.currentShot.id
}

func (g *Game) Update() error {
	g.elapsed += tickDT

	if g.watcher != nil {
		if err := g.watcher.Err(); err != nil {
			log.Printf("preview: watcher: %v", err)
		}
		if changed := g.watcher.Changed(); len(changed) > 0 {
			log.Printf("preview: %s changed, restarting", strings.Join(changed, ", "))
			if err := g.reload(); err != nil {
				log.Printf("preview: reload: %v", err)
				g.status = "reload failed, keeping previous run"
			}
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.togglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.cancel()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.copyShot()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		if err := g.restart(); err != nil {
			log.Printf("preview: restart: %v", err)
		}
	}

	g.world.Step(tickDT)
	g.renderer.beginFrame(tickDT)
	g.director.Tick()
	g.ui.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 18, G: 22, B: 30, A: 255})

	view, scripted := g.camera.view(g.elapsed, tickDT, g.world)

	// World-to-screen: center the view on the camera when a scripted
	// camera renders, otherwise show the fixed gameplay framing.
	offX, offY := 0.0, 0.0
	if scripted {
		offX = (view.pos.X - baseWidth/2) * view.blend
		offY = (view.pos.Y - baseHeight/2) * view.blend
	}
	toScreen := func(p definition.Vec3) (float32, float32) {
		return float32(p.X - offX), float32(p.Y - offY)
	}

	// Ground reference grid.
	grid := color.RGBA{R: 34, G: 40, B: 52, A: 255}
	for x := 0; x < baseWidth; x += 80 {
		vector.StrokeLine(screen, float32(x), 0, float32(x), baseHeight, 1, grid, false)
	}
	for y := 0; y < baseHeight; y += 80 {
		vector.StrokeLine(screen, 0, float32(y), baseWidth, float32(y), 1, grid, false)
	}

	// Entities.
	if pos, ok := g.world.EntityPosition(EntityDrone); ok {
		x, y := toScreen(pos)
		vector.FillRect(screen, x-8, y-8, 16, 16, color.RGBA{R: 90, G: 190, B: 255, A: 255}, false)
	}
	if pos, ok := g.world.EntityPosition(EntityRunner); ok {
		x, y := toScreen(pos)
		vector.FillRect(screen, x-8, y-8, 16, 16, color.RGBA{R: 255, G: 170, B: 60, A: 255}, false)
	}

	// Named anchors.
	if g.def != nil {
		for _, anchor := range g.def.Anchors {
			x, y := toScreen(anchor.Position)
			vector.StrokeRect(screen, x-5, y-5, 10, 10, 1, color.RGBA{R: 120, G: 220, B: 120, A: 255}, false)
		}
	}

	// Scripted camera marker and its look target.
	if scripted {
		cx, cy := toScreen(view.pos)
		vector.StrokeRect(screen, cx-10, cy-10, 20, 20, 2, color.RGBA{R: 240, G: 240, B: 240, A: 255}, false)
		if view.target != nil {
			tx, ty := toScreen(*view.target)
			vector.StrokeLine(screen, cx, cy, tx, ty, 1, color.RGBA{R: 240, G: 240, B: 120, A: 200}, false)
		}
	}

	g.renderer.draw(screen)
	g.ui.Draw(screen)

	shot := ""
	if g.currentShot.total > 0 {
		shot = fmt.Sprintf("  shot %d/%d %s", g.currentShot.index+1, g.currentShot.total, g.currentShot.id)
	}
	fov := ""
	if scripted {
		fov = fmt.Sprintf("  fov %.0f", view.fov)
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"%s%s%s\nspace pause  esc cancel  enter skip  c copy shot  r restart", g.status, shot, fov))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
