package rimage

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// AddWhiteBorder centers img on a white canvas of the given size.
func AddWhiteBorder(img image.Image, width, height int) (*image.NRGBA, error) {
	b := img.Bounds()
	if b.Dx() > width || b.Dy() > height {
		return nil, errors.Errorf("image of %dx%d does not fit inside a %dx%d border", b.Dx(), b.Dy(), width, height)
	}
	canvas := imaging.New(width, height, color.White)
	return imaging.PasteCenter(canvas, img), nil
}

// ScaleTo resizes img to exactly width x height with nearest neighbour sampling, so every
// output pixel keeps a color of the input.
func ScaleTo(img image.Image, width, height int) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("cannot scale to %dx%d", width, height)
	}
	if img.Bounds().Empty() {
		return image.NewNRGBA(image.Rect(0, 0, width, height)), nil
	}
	return imaging.Clone(resize.Resize(uint(width), uint(height), img, resize.NearestNeighbor)), nil
}
