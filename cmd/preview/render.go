package main

import (
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// previewRenderer implements host.Renderer. Subtitles and letterbox
// bars are immediate mode: effects submit them every tick and the
// frame draw consumes what was submitted since the last beginFrame.
// Fades and color grades persist until changed.
type previewRenderer struct {
	mu sync.Mutex

	subtitles []string
	letterbox struct {
		top, bottom, alpha float64
		set                bool
	}

	fadeAlpha  float64
	fadeTarget float64
	fadeMs     float64

	gradeName     string
	gradeStrength float64

	face ebtext.Face
}

func newPreviewRenderer(face ebtext.Face) *previewRenderer {
	return &previewRenderer{face: face}
}

func (r *previewRenderer) DrawSubtitle(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subtitles = append(r.subtitles, s)
}

func (r *previewRenderer) DrawLetterbox(top, bottom, alpha float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.letterbox.top = top
	r.letterbox.bottom = bottom
	r.letterbox.alpha = alpha
	r.letterbox.set = true
}

func (r *previewRenderer) FadeScreenIn(durationMs int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fadeTarget = 0
	r.fadeMs = math.Max(1, float64(durationMs))
}

func (r *previewRenderer) FadeScreenOut(durationMs int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fadeTarget = 1
	r.fadeMs = math.Max(1, float64(durationMs))
}

func (r *previewRenderer) SetColorGrade(name string, strength float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gradeName = name
	r.gradeStrength = strength
}

func (r *previewRenderer) ClearColorGrade() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gradeName = ""
	r.gradeStrength = 0
}

// beginFrame clears the immediate-mode submissions and advances the
// fade by dt seconds.
func (r *previewRenderer) beginFrame(dt float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subtitles = r.subtitles[:0]
	r.letterbox.set = false

	if r.fadeAlpha != r.fadeTarget {
		step := dt * 1000 / r.fadeMs
		if r.fadeAlpha < r.fadeTarget {
			r.fadeAlpha = math.Min(r.fadeTarget, r.fadeAlpha+step)
		} else {
			r.fadeAlpha = math.Max(r.fadeTarget, r.fadeAlpha-step)
		}
	}
}

func gradeColor(name string) color.RGBA {
	switch name {
	case "noir":
		return color.RGBA{R: 40, G: 40, B: 60, A: 255}
	case "sepia":
		return color.RGBA{R: 112, G: 66, B: 20, A: 255}
	case "cold":
		return color.RGBA{R: 30, G: 60, B: 110, A: 255}
	default:
		return color.RGBA{R: 20, G: 20, B: 20, A: 255}
	}
}

// draw paints the overlay stack: grade tint, letterbox, subtitles,
// then the screen fade on top.
func (r *previewRenderer) draw(screen *ebiten.Image) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w := float32(screen.Bounds().Dx())
	h := float32(screen.Bounds().Dy())

	if r.gradeStrength > 0 {
		c := gradeColor(r.gradeName)
		c.A = uint8(math.Min(1, r.gradeStrength) * 120)
		vector.FillRect(screen, 0, 0, w, h, c, false)
	}

	if r.letterbox.set && r.letterbox.alpha > 0 {
		a := uint8(math.Min(1, r.letterbox.alpha) * 255)
		bar := color.RGBA{A: a}
		// Bar sizes at or below 1 are fractions of the screen height.
		top := float32(r.letterbox.top)
		if top <= 1 {
			top *= h
		}
		bottom := float32(r.letterbox.bottom)
		if bottom <= 1 {
			bottom *= h
		}
		vector.FillRect(screen, 0, 0, w, top, bar, false)
		vector.FillRect(screen, 0, h-bottom, w, bottom, bar, false)
	}

	if len(r.subtitles) > 0 && r.face != nil {
		y := float64(h) - 60
		for i := len(r.subtitles) - 1; i >= 0; i-- {
			opts := &ebtext.DrawOptions{}
			opts.GeoM.Translate(float64(w)/2, y)
			opts.PrimaryAlign = ebtext.AlignCenter
			opts.ColorScale.ScaleWithColor(color.White)
			ebtext.Draw(screen, r.subtitles[i], r.face, opts)
			y -= 20
		}
	}

	if r.fadeAlpha > 0 {
		a := uint8(r.fadeAlpha * 255)
		vector.FillRect(screen, 0, 0, w, h, color.RGBA{A: a}, false)
	}
}
