package capture

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	fontOnce    sync.Once
	regularFont *truetype.Font
	boldFont    *truetype.Font
	fontErr     error
)

func loadFonts() error {
	fontOnce.Do(func() {
		regularFont, fontErr = truetype.Parse(goregular.TTF)
		if fontErr != nil {
			return
		}
		boldFont, fontErr = truetype.Parse(gobold.TTF)
	})
	return fontErr
}

func face(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// CardCapturer renders the detail view: a hero panel of diagonal stripes under a title
type CardCapturer struct {
	Width, Height int
	Title         string
	Subtitle      string
	Background    color.Color
	Accent        color.Color
}

// DefaultCard returns the detail card shown by the demo
func DefaultCard(w, h int) *CardCapturer {
	return &CardCapturer{
		Width:      w,
		Height:     h,
		Title:      "Headphones",
		Subtitle:   "Swipe right to close",
		Background: color.NRGBA{R: 24, G: 26, B: 38, A: 255},
		Accent:     color.NRGBA{R: 0, G: 64, B: 221, A: 255},
	}
}

func (c *CardCapturer) Capture(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.Width <= 0 || c.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrCardSize, c.Width, c.Height)
	}
	if err := loadFonts(); err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	w, h := float64(c.Width), float64(c.Height)
	dc := gg.NewContext(c.Width, c.Height)
	dc.SetColor(c.Background)
	dc.Clear()

	// Hero panel
	heroH := h * 0.6
	dc.SetColor(c.Accent)
	dc.DrawRectangle(0, 0, w, heroH)
	dc.Fill()

	dc.SetRGBA(1, 1, 1, 0.15)
	dc.SetLineWidth(w / 40)
	step := w / 10
	for x := -heroH; x < w; x += step {
		dc.DrawLine(x, heroH, x+heroH, 0)
		dc.Stroke()
	}

	// Text block
	dc.SetColor(color.White)
	dc.SetFontFace(face(boldFont, h/16))
	dc.DrawStringAnchored(c.Title, w/2, heroH+h*0.12, 0.5, 0.5)

	dc.SetRGB(0.7, 0.72, 0.8)
	dc.SetFontFace(face(regularFont, h/32))
	dc.DrawStringAnchored(c.Subtitle, w/2, heroH+h*0.22, 0.5, 0.5)

	return dc.Image(), nil
}

// HomeScreen renders the host screen shown beneath the strips
func HomeScreen(w, h int) (image.Image, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrCardSize, w, h)
	}
	if err := loadFonts(); err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	fw, fh := float64(w), float64(h)
	dc := gg.NewContext(w, h)
	dc.SetColor(color.White)
	dc.Clear()

	margin := fw * 0.05
	top := fh * 0.25
	dc.SetColor(color.NRGBA{R: 235, G: 235, B: 240, A: 255})
	dc.DrawRoundedRectangle(margin, top, fw-2*margin, fh*0.5, fw*0.08)
	dc.Fill()

	dc.SetColor(color.NRGBA{R: 0, G: 64, B: 221, A: 255})
	dc.SetFontFace(face(regularFont, fh/28))
	dc.DrawStringAnchored("Open headphone details", fw/2, top+fh*0.4, 0.5, 0.5)

	return dc.Image(), nil
}
