package terminal

import (
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// UpperHalf draws the top pixel in the foreground and the bottom pixel in the background
const UpperHalf = '▀'

// RGB is a 24-bit colour
type RGB struct {
	R, G, B uint8
}

// Color converts to a tcell truecolor value, tcell downsamples on limited terminals
func (c RGB) Color() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Cell is one converted terminal cell
type Cell struct {
	Rune rune
	Fg   RGB
	Bg   RGB
}

// Style returns the tcell style of the cell
func (c Cell) Style() tcell.Style {
	return tcell.StyleDefault.Foreground(c.Fg.Color()).Background(c.Bg.Color())
}

// Convert samples img onto a cols x rows grid of half-block cells
// Each cell covers two vertically stacked pixels of the sampling grid
func Convert(img image.Image, cols, rows int) []Cell {
	if img == nil || cols <= 0 || rows <= 0 {
		return nil
	}
	bounds := img.Bounds()
	srcW := bounds.Dx()
	srcH := bounds.Dy()
	if srcW == 0 || srcH == 0 {
		return nil
	}

	gridH := rows * 2
	cells := make([]Cell, cols*rows)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			// Sample the centre of each grid pixel
			sx := bounds.Min.X + (x*srcW+srcW/2)/cols
			top := bounds.Min.Y + ((2*y)*srcH+srcH/2)/gridH
			bottom := bounds.Min.Y + ((2*y+1)*srcH+srcH/2)/gridH

			sx = min(sx, bounds.Max.X-1)
			top = min(top, bounds.Max.Y-1)
			bottom = min(bottom, bounds.Max.Y-1)

			cells[y*cols+x] = Cell{
				Rune: UpperHalf,
				Fg:   colorToRGB(img.At(sx, top)),
				Bg:   colorToRGB(img.At(sx, bottom)),
			}
		}
	}
	return cells
}

// colorToRGB converts any color.Color to RGB, undoing alpha premultiplication
func colorToRGB(c color.Color) RGB {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return RGB{}
	}
	return RGB{
		R: uint8((r * 0xff) / a),
		G: uint8((g * 0xff) / a),
		B: uint8((b * 0xff) / a),
	}
}
