package terminal

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	xdraw "golang.org/x/image/draw"

	"github.com/lixenwraith/blinds/capture"
	"github.com/lixenwraith/blinds/constants"
	"github.com/lixenwraith/blinds/engine"
	"github.com/lixenwraith/blinds/reveal"
	"github.com/lixenwraith/blinds/slicer"
	"github.com/lixenwraith/blinds/status"
	"github.com/lixenwraith/blinds/strip"
)

// Scene is what the compositor needs from the reveal controller
type Scene interface {
	Store() *strip.Store
	Crossfade() (stripAlpha, contentAlpha float64)
}

// Fallback fills strips that have no captured image yet
var Fallback = color.NRGBA{R: 40, G: 44, B: 60, A: 255}

// Compositor layers the host screen, the content and the shifted strips into one
// pixel frame and draws it as half-block cells
type Compositor struct {
	home   image.Image
	fitted image.Image
	frame  *image.NRGBA
	reg    *status.Registry
}

// NewCompositor creates a compositor drawing home beneath the overlay
func NewCompositor(home image.Image, reg *status.Registry) *Compositor {
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Compositor{home: home, reg: reg}
}

// Compose renders scene into a w x h pixel frame
// The returned image is reused by the next call
func (c *Compositor) Compose(scene Scene, w, h int) *image.NRGBA {
	if c.frame == nil || c.frame.Bounds().Dx() != w || c.frame.Bounds().Dy() != h {
		c.frame = image.NewNRGBA(image.Rect(0, 0, w, h))
		c.fitted = nil
	}
	frame := c.frame

	if c.home != nil {
		if c.fitted == nil {
			c.fitted = capture.Fit(c.home, w, h)
		}
		xdraw.Copy(frame, image.Point{}, c.fitted, c.fitted.Bounds(), xdraw.Src, nil)
	} else {
		xdraw.Draw(frame, frame.Bounds(), image.White, image.Point{}, xdraw.Src)
	}

	store := scene.Store()
	stripAlpha, contentAlpha := scene.Crossfade()

	if contentAlpha > 0 {
		c.drawStrips(frame, store, func(int) float64 { return 0 })
	}
	if stripAlpha > 0 {
		c.drawStrips(frame, store, store.Get)
	}
	return frame
}

// drawStrips draws every strip shifted right by offset(i)
func (c *Compositor) drawStrips(frame *image.NRGBA, store *strip.Store, offset func(int) float64) {
	h := frame.Bounds().Dy()
	bands := slicer.Bands(h, store.Len())

	y := 0
	for i := 0; i < store.Len(); i++ {
		dx := int(math.Round(offset(i)))
		img := store.Image(i)

		if img != nil {
			b := img.Bounds()
			xdraw.Copy(frame, image.Pt(dx, y), img, b, xdraw.Src, nil)
			y += b.Dy()
			continue
		}

		// No capture: draw the band geometry as a plain fill
		if bands == nil {
			continue
		}
		r := image.Rect(dx, bands[i].Min.Y, frame.Bounds().Dx()+dx, bands[i].Max.Y).Intersect(frame.Bounds())
		xdraw.Draw(frame, r, &image.Uniform{C: shade(i)}, image.Point{}, xdraw.Src)
		y = bands[i].Max.Y
	}
}

// shade alternates the fallback colour so imageless strips stay distinguishable
func shade(i int) color.NRGBA {
	if i%2 == 0 {
		return Fallback
	}
	return color.NRGBA{R: Fallback.R + 12, G: Fallback.G + 12, B: Fallback.B + 12, A: 255}
}

// StatusLine renders the status bar text from published metrics
func (c *Compositor) StatusLine() string {
	phase := c.reg.Strings.Get(reveal.MetricPhase).Load()
	line := fmt.Sprintf(" %s | strip %d | %3.0f fps ",
		phase,
		c.reg.Ints.Get(reveal.MetricActive).Load(),
		c.reg.Floats.Get(engine.MetricFPS).Get(),
	)
	switch {
	case c.reg.Bools.Get(engine.MetricPaused).Load():
		line += constants.StatusHintPaused
	case phase == reveal.PhaseClosed.String():
		line += constants.StatusHintClosed
	default:
		line += constants.StatusHintOpen
	}
	return line
}

// Draw composes scene and paints it onto screen
func (c *Compositor) Draw(screen tcell.Screen, scene Scene) {
	cols, rows := screen.Size()
	w, h := PixelSize(cols, rows)
	pixelRows := h / constants.PixelsPerRow

	if w > 0 && pixelRows > 0 {
		frame := c.Compose(scene, w, h)
		cells := Convert(frame, cols, pixelRows)
		for y := 0; y < pixelRows; y++ {
			for x := 0; x < cols; x++ {
				cell := cells[y*cols+x]
				screen.SetContent(x, y, cell.Rune, nil, cell.Style())
			}
		}
	}

	statusStyle := tcell.StyleDefault.Reverse(true)
	line := []rune(c.StatusLine())
	for x := 0; x < cols; x++ {
		r := ' '
		if x < len(line) {
			r = line[x]
		}
		screen.SetContent(x, rows-1, r, nil, statusStyle)
	}
	screen.Show()
}
