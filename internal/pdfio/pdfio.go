// Package pdfio is the boundary to the PDF encoder/decoder. The compositing
// engine only ever talks to the Document and Page interfaces defined here;
// the concrete implementation wraps seehuhn.de/go/pdf.
package pdfio

import "errors"

// ErrMalformedDocument is returned by Open when the source bytes are not a
// parseable PDF.
var ErrMalformedDocument = errors.New("malformed document")

// Document is one open, mutable document model. A Document is owned by a
// single compositing pass and must not be shared between goroutines.
type Document interface {
	// NumPages returns the number of pages in the document.
	NumPages() int
	// Page returns the page with the given zero-based index.
	Page(index int) (Page, error)
	// Save serializes the document, including all drawing performed on its
	// pages, and returns the output bytes.
	Save() ([]byte, error)
}

// Page exposes the primitive drawing operations the compositor needs. All
// coordinates are document points with a bottom-left origin. Drawing is
// append-only: new content paints over existing page content.
type Page interface {
	// Size returns the page's width and height in points.
	Size() (width, height float64)
	// DrawText draws s at the text baseline position (x, y) in the given
	// font size, black fill.
	DrawText(s string, x, y, size float64) error
	// DrawImage embeds the raster image (PNG or JPEG bytes, see
	// field.ImageData formats) and paints it into the given rectangle.
	DrawImage(data []byte, format string, x, y, width, height float64) error
	// DrawCircle draws a black filled circle with center (cx, cy) and the
	// given radius.
	DrawCircle(cx, cy, radius float64) error
}
