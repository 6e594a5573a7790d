package terminal

import (
	"image"
	"image/color"
	"testing"
)

func TestConvertHalfBlocks(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 4))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(0, 1, color.NRGBA{G: 255, A: 255})
	img.SetNRGBA(0, 2, color.NRGBA{B: 255, A: 255})
	img.SetNRGBA(0, 3, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	cells := Convert(img, 1, 2)
	if len(cells) != 2 {
		t.Fatalf("Expected 2 cells, got %d", len(cells))
	}

	expected := []Cell{
		{Rune: UpperHalf, Fg: RGB{R: 255}, Bg: RGB{G: 255}},
		{Rune: UpperHalf, Fg: RGB{B: 255}, Bg: RGB{R: 255, G: 255, B: 255}},
	}
	for i := range expected {
		if cells[i] != expected[i] {
			t.Errorf("Cell %d: expected %+v, got %+v", i, expected[i], cells[i])
		}
	}
}

func TestConvertDownsamples(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}

	cells := Convert(img, 4, 2)
	if len(cells) != 8 {
		t.Fatalf("Expected 8 cells, got %d", len(cells))
	}
	// Columns sample left to right, rows top to bottom
	if cells[0].Fg.R >= cells[3].Fg.R {
		t.Error("Expected column samples to increase")
	}
	if cells[0].Fg.G >= cells[0].Bg.G || cells[0].Bg.G >= cells[4].Fg.G {
		t.Error("Expected row samples to increase")
	}
}

func TestConvertEdgeCases(t *testing.T) {
	if Convert(nil, 3, 3) != nil {
		t.Error("Expected nil for nil image")
	}
	if Convert(image.NewNRGBA(image.Rect(0, 0, 2, 2)), 0, 3) != nil {
		t.Error("Expected nil for zero columns")
	}
	if got := colorToRGB(color.NRGBA{R: 200, A: 0}); got != (RGB{}) {
		t.Errorf("Expected transparent to map to black, got %+v", got)
	}
}
