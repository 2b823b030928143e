// Package compositor turns annotation fields into drawing operations
// against a document page.
package compositor

import (
	"fmt"

	"github.com/bolosign/bolosign/backend/go-services/internal/field"
	"github.com/bolosign/bolosign/backend/go-services/internal/geometry"
	"github.com/bolosign/bolosign/backend/go-services/internal/pdfio"
)

const (
	// textSize is the fixed size used for text and date fields.
	textSize = 12.0
	// textBaselineOffset approximates the distance from the top of the
	// field box to the text baseline for textSize.
	textBaselineOffset = 10.0
)

// Compositor renders fields onto pages. The zero value is usable; set
// MaxImageBytes to put a ceiling on decoded signature/image payloads.
type Compositor struct {
	MaxImageBytes int
}

func New(maxImageBytes int) *Compositor {
	return &Compositor{MaxImageBytes: maxImageBytes}
}

// Composite draws one field onto p and reports whether anything was drawn.
// Fields with an empty value are skipped without error. A non-nil error
// means this field could not be rendered; the page is left unchanged and
// the caller decides whether to continue with the remaining fields.
//
// The field's box is top-left-anchored in document points; the vertical
// flip to the page's bottom-left origin happens here.
func (c *Compositor) Composite(p pdfio.Page, f field.Field) (bool, error) {
	if err := f.Validate(); err != nil {
		return false, err
	}

	_, pageHeight := p.Size()
	y := geometry.TopToBottom(f.Y, f.Height, pageHeight)

	switch f.Type {
	case field.TypeText, field.TypeDate:
		if f.Value.IsEmpty() {
			return false, nil
		}
		err := p.DrawText(string(f.Value), f.X, y+f.Height-textBaselineOffset, textSize)
		if err != nil {
			return false, fmt.Errorf("draw text: %w", err)
		}
		return true, nil

	case field.TypeSignature, field.TypeImage:
		if f.Value.IsEmpty() {
			return false, nil
		}
		img, err := field.DecodeImage(f.Value, c.MaxImageBytes)
		if err != nil {
			return false, err
		}
		box := geometry.Box{X: f.X, Y: y, Width: f.Width, Height: f.Height}
		fitted, err := geometry.Fit(float64(img.Width), float64(img.Height), box)
		if err != nil {
			return false, err
		}
		err = p.DrawImage(img.Data, img.Format, fitted.X, fitted.Y, fitted.Width, fitted.Height)
		if err != nil {
			return false, fmt.Errorf("embed image: %w", err)
		}
		return true, nil

	case field.TypeRadio:
		if !f.Value.IsTrue() {
			return false, nil
		}
		radius := f.Width / 3
		if f.Height < f.Width {
			radius = f.Height / 3
		}
		err := p.DrawCircle(f.X+f.Width/2, y+f.Height/2, radius)
		if err != nil {
			return false, fmt.Errorf("draw circle: %w", err)
		}
		return true, nil
	}

	// unreachable: Validate rejects unknown types
	return false, fmt.Errorf("unknown field type %q", f.Type)
}
