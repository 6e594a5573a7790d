// Package capture produces the snapshot of the detail view that the strips are cut from
package capture

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"
)

var (
	ErrNoImage  = errors.New("capturer has no image")
	ErrCardSize = errors.New("card size must be positive")
)

// Capturer renders or loads the content view as one image
type Capturer interface {
	Capture(ctx context.Context) (image.Image, error)
}

// FileCapturer decodes a snapshot from disk, honouring EXIF orientation
type FileCapturer struct {
	Path string
}

func (f FileCapturer) Capture(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := imaging.Open(f.Path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open snapshot %s: %w", f.Path, err)
	}
	return img, nil
}

// StaticCapturer returns a fixed image or error
type StaticCapturer struct {
	Image image.Image
	Err   error
}

func (s StaticCapturer) Capture(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Image == nil {
		return nil, ErrNoImage
	}
	return s.Image, nil
}

// Fit scales img to exactly w x h so strip bands line up with screen rows
// Images already at that size are returned unchanged
func Fit(img image.Image, w, h int) image.Image {
	if img == nil || w <= 0 || h <= 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
