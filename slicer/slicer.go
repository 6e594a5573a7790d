// Package slicer cuts a captured snapshot into equal-height horizontal bands
package slicer

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

var (
	ErrStripCount = errors.New("strip count must be at least 1")
	ErrEmptyImage = errors.New("image is empty")
	ErrTooFewRows = errors.New("image has fewer rows than strips")
)

// Bands returns the band rectangles of an image of height h split into n strips,
// relative to a zero origin and with width 0; the last band absorbs h mod n rows
func Bands(h, n int) []image.Rectangle {
	if n < 1 || h < n {
		return nil
	}
	band := h / n
	out := make([]image.Rectangle, n)
	for i := range out {
		y0 := i * band
		y1 := y0 + band
		if i == n-1 {
			y1 = h
		}
		out[i] = image.Rect(0, y0, 0, y1)
	}
	return out
}

// Slice splits img into n full-width bands ordered top to bottom
// Each band is an independent NRGBA copy at least one row tall
// An image shorter than n rows is refused with ErrTooFewRows rather than cut into empty bands
func Slice(img image.Image, n int) ([]image.Image, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrStripCount, n)
	}
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}

	b := img.Bounds()
	if b.Dy() < n {
		return nil, fmt.Errorf("%w: %d rows for %d strips", ErrTooFewRows, b.Dy(), n)
	}

	bands := Bands(b.Dy(), n)
	out := make([]image.Image, n)
	for i, r := range bands {
		rect := image.Rect(b.Min.X, b.Min.Y+r.Min.Y, b.Max.X, b.Min.Y+r.Max.Y)
		out[i] = imaging.Crop(img, rect)
	}
	return out, nil
}
