package geometry

import "errors"

// ErrInvalidGeometry is returned when an aspect fit is requested for an
// image or box with a non-positive dimension.
var ErrInvalidGeometry = errors.New("invalid geometry")

// Fit computes the largest rectangle with the image's aspect ratio that fits
// inside box. The result is centered on the axis that has slack; the other
// axis touches both box edges.
func Fit(imageWidth, imageHeight float64, box Box) (Box, error) {
	if imageWidth <= 0 || imageHeight <= 0 || box.Width <= 0 || box.Height <= 0 {
		return Box{}, ErrInvalidGeometry
	}

	imageAspect := imageWidth / imageHeight
	boxAspect := box.Width / box.Height

	var out Box
	if imageAspect > boxAspect {
		// image is relatively wider: fit to width, center vertically
		out.Width = box.Width
		out.Height = box.Width / imageAspect
		out.X = box.X
		out.Y = box.Y + (box.Height-out.Height)/2
	} else {
		// image is relatively taller (or equal): fit to height, center horizontally
		out.Height = box.Height
		out.Width = box.Height * imageAspect
		out.X = box.X + (box.Width-out.Width)/2
		out.Y = box.Y
	}
	return out, nil
}
