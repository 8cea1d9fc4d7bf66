// Package rimage composes and post-processes motion image rasters.
package rimage

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/samber/lo"
)

// Stack places the images below each other at x = 0, in order. The result is as wide as the
// widest input and as tall as all inputs together; area no input covers stays transparent.
func Stack(imgs ...image.Image) *image.NRGBA {
	width := lo.Max(lo.Map(imgs, func(img image.Image, _ int) int { return img.Bounds().Dx() }))
	height := lo.SumBy(imgs, func(img image.Image) int { return img.Bounds().Dy() })
	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	y := 0
	for _, img := range imgs {
		out = imaging.Paste(out, img, image.Pt(0, y))
		y += img.Bounds().Dy()
	}
	return out
}
