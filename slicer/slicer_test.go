package slicer

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

// striped returns a w x h image where every row is coloured by its y coordinate
func striped(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(y), G: uint8(x), B: 7, A: 255})
		}
	}
	return img
}

func TestBandHeights(t *testing.T) {
	tests := []struct {
		h, n     int
		expected []int
	}{
		{100, 4, []int{25, 25, 25, 25}},
		{103, 4, []int{25, 25, 25, 28}},
		{5, 5, []int{1, 1, 1, 1, 1}},
		{7, 1, []int{7}},
	}

	for _, tt := range tests {
		out, err := Slice(striped(3, tt.h), tt.n)
		if err != nil {
			t.Fatalf("Slice(h=%d, n=%d) failed: %v", tt.h, tt.n, err)
		}
		if len(out) != tt.n {
			t.Fatalf("Expected %d bands, got %d", tt.n, len(out))
		}
		total := 0
		for i, band := range out {
			b := band.Bounds()
			if b.Dy() != tt.expected[i] {
				t.Errorf("h=%d n=%d band %d: expected height %d, got %d", tt.h, tt.n, i, tt.expected[i], b.Dy())
			}
			if b.Dx() != 3 {
				t.Errorf("Band %d: expected full width 3, got %d", i, b.Dx())
			}
			total += b.Dy()
		}
		if total != tt.h {
			t.Errorf("Expected bands to cover %d rows, got %d", tt.h, total)
		}
	}
}

func TestBandsOrderedTopToBottom(t *testing.T) {
	out, err := Slice(striped(2, 10), 5)
	if err != nil {
		t.Fatalf("Slice failed: %v", err)
	}
	for i, band := range out {
		nrgba, ok := band.(*image.NRGBA)
		if !ok {
			t.Fatalf("Band %d: expected *image.NRGBA, got %T", i, band)
		}
		// First row of band i is source row 2*i
		if got := nrgba.NRGBAAt(0, 0).R; got != uint8(2*i) {
			t.Errorf("Band %d: expected first row %d, got %d", i, 2*i, got)
		}
	}
}

func TestSliceIsIndependentCopy(t *testing.T) {
	src := striped(2, 4)
	out, err := Slice(src, 2)
	if err != nil {
		t.Fatalf("Slice failed: %v", err)
	}
	out[0].(*image.NRGBA).SetNRGBA(0, 0, color.NRGBA{R: 200, A: 255})
	if src.NRGBAAt(0, 0).R != 0 {
		t.Error("Mutating a band changed the source image")
	}
}

func TestSliceNonZeroOrigin(t *testing.T) {
	src := striped(4, 8).SubImage(image.Rect(1, 4, 3, 8))
	out, err := Slice(src, 2)
	if err != nil {
		t.Fatalf("Slice failed: %v", err)
	}
	if got := out[1].(*image.NRGBA).NRGBAAt(0, 0); got.R != 6 || got.G != 1 {
		t.Errorf("Expected band 1 to start at source (1,6), got %+v", got)
	}
}

func TestSliceErrors(t *testing.T) {
	if _, err := Slice(striped(2, 2), 0); !errors.Is(err, ErrStripCount) {
		t.Errorf("Expected ErrStripCount, got %v", err)
	}
	if _, err := Slice(nil, 2); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("Expected ErrEmptyImage for nil, got %v", err)
	}
	if _, err := Slice(image.NewNRGBA(image.Rect(0, 0, 0, 5)), 2); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("Expected ErrEmptyImage for zero width, got %v", err)
	}
	if _, err := Slice(striped(2, 3), 4); !errors.Is(err, ErrTooFewRows) {
		t.Errorf("Expected ErrTooFewRows, got %v", err)
	}
}

func TestBandsGeometry(t *testing.T) {
	if Bands(3, 4) != nil || Bands(10, 0) != nil {
		t.Error("Expected nil for invalid geometry")
	}
	b := Bands(10, 3)
	if b[0].Min.Y != 0 || b[1].Min.Y != 3 || b[2].Min.Y != 6 || b[2].Max.Y != 10 {
		t.Errorf("Unexpected band geometry: %v", b)
	}
}
