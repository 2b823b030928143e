package geometry

// Conversion between the editor's display space and the document's native
// space. The editor renders pages at 96 DPI with the origin in the top-left
// corner and a user-controlled zoom factor; PDF pages use 72 DPI points with
// the origin in the bottom-left corner.

const (
	// DocumentDPI is the resolution of PDF point space.
	DocumentDPI = 72.0
	// EditorDPI is the assumed CSS pixel resolution of the editor.
	EditorDPI = 96.0
)

// Box is an axis-aligned rectangle. Whether (X, Y) anchors the top-left or
// bottom-left corner depends on the coordinate space the box lives in.
type Box struct {
	X, Y          float64
	Width, Height float64
}

// PixelsToPoints converts a length in editor pixels at the given zoom scale
// to document points.
func PixelsToPoints(pixels, scale float64) float64 {
	return (pixels / scale) * (DocumentDPI / EditorDPI)
}

// PointsToPixels converts a length in document points to editor pixels at
// the given zoom scale.
func PointsToPixels(points, scale float64) float64 {
	return points * (EditorDPI / DocumentDPI) * scale
}

// TopToBottom converts a top-anchored Y coordinate (in points) to the
// bottom-anchored Y of the same box. Subtracting the box height keeps the
// box covering the same visual region after the axis flip.
func TopToBottom(y, height, pageHeight float64) float64 {
	return pageHeight - y - height
}

// ToDocumentSpace converts a top-left-anchored box in editor pixels to a
// bottom-left-anchored box in document points on a page of the given height
// (in points).
func ToDocumentSpace(b Box, scale, pageHeight float64) Box {
	out := Box{
		X:      PixelsToPoints(b.X, scale),
		Width:  PixelsToPoints(b.Width, scale),
		Height: PixelsToPoints(b.Height, scale),
	}
	out.Y = TopToBottom(PixelsToPoints(b.Y, scale), out.Height, pageHeight)
	return out
}

// FromDocumentSpace is the inverse of ToDocumentSpace; it converts a
// bottom-left-anchored point-space box back to a top-left-anchored box in
// editor pixels.
func FromDocumentSpace(b Box, scale, pageHeight float64) Box {
	topY := pageHeight - b.Y - b.Height
	return Box{
		X:      PointsToPixels(b.X, scale),
		Y:      PointsToPixels(topY, scale),
		Width:  PointsToPixels(b.Width, scale),
		Height: PointsToPixels(b.Height, scale),
	}
}
