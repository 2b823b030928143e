package pdfio

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"
)

// kappa is the control-point distance for approximating a quarter circle
// with a cubic Bézier curve.
const kappa = 0.5523

// resource names injected into page resource dictionaries; prefixed to
// avoid colliding with names already used by the source document.
const fontResPrefix = "BSF"
const imageResPrefix = "BSIm"

// Open parses raw into a mutable in-memory document model.
func Open(raw []byte) (Document, error) {
	data, err := pdf.Read(bytes.NewReader(raw), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	n, err := pagetree.NumPages(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return &seehuhnDoc{
		data:     data,
		numPages: n,
		pages:    make(map[int]*seehuhnPage),
	}, nil
}

type seehuhnDoc struct {
	data     *pdf.Data
	numPages int
	pages    map[int]*seehuhnPage

	fontRef pdf.Reference // standard Helvetica, allocated on first use
	nextRes int
}

func (d *seehuhnDoc) NumPages() int { return d.numPages }

func (d *seehuhnDoc) Page(index int) (Page, error) {
	if p, ok := d.pages[index]; ok {
		return p, nil
	}
	if index < 0 || index >= d.numPages {
		return nil, fmt.Errorf("page %d out of range (document has %d pages)", index+1, d.numPages)
	}
	dict, err := pagetree.GetPage(d.data, index)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	// US Letter unless the page says otherwise
	width, height := 612.0, 792.0
	if box, err := pdf.GetRectangle(d.data, dict["MediaBox"]); err == nil && box != nil && !box.IsZero() {
		width = box.URx - box.LLx
		height = box.URy - box.LLy
	}

	p := &seehuhnPage{
		doc:      d,
		dict:     dict,
		width:    width,
		height:   height,
		xObjects: make(map[string]pdf.Reference),
	}
	d.pages[index] = p
	return p, nil
}

// helveticaRef returns the reference of the shared font dictionary used for
// all text fields, creating it on first use.
func (d *seehuhnDoc) helveticaRef() (pdf.Reference, error) {
	if d.fontRef != 0 {
		return d.fontRef, nil
	}
	ref := d.data.Alloc()
	err := d.data.Put(ref, pdf.Dict{
		"Type":     pdf.Name("Font"),
		"Subtype":  pdf.Name("Type1"),
		"BaseFont": pdf.Name("Helvetica"),
		"Encoding": pdf.Name("WinAnsiEncoding"),
	})
	if err != nil {
		return 0, err
	}
	d.fontRef = ref
	return ref, nil
}

// Save flushes every page's pending drawing operations into new content
// streams and serializes the document.
func (d *seehuhnDoc) Save() ([]byte, error) {
	for _, p := range d.pages {
		if err := p.flush(); err != nil {
			return nil, err
		}
	}
	var buf bytes.Buffer
	if err := d.data.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type seehuhnPage struct {
	doc           *seehuhnDoc
	dict          pdf.Dict
	width, height float64

	content  bytes.Buffer
	fontName string
	xObjects map[string]pdf.Reference
}

func (p *seehuhnPage) Size() (float64, float64) { return p.width, p.height }

func (p *seehuhnPage) DrawText(s string, x, y, size float64) error {
	if p.fontName == "" {
		if _, err := p.doc.helveticaRef(); err != nil {
			return err
		}
		p.fontName = fontResPrefix + "0"
	}
	fmt.Fprintf(&p.content, "q\n0 g\nBT\n/%s %s Tf\n%s %s Td\n(%s) Tj\nET\nQ\n",
		p.fontName, num(size), num(x), num(y), escapeString(encodeWinAnsi(s)))
	return nil
}

// encodeWinAnsi converts a UTF-8 string to the single-byte CP1252 encoding
// the shared font declares. Runes outside the code page become '?'.
func encodeWinAnsi(s string) string {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		b, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			b = '?'
		}
		out = append(out, b)
	}
	return string(out)
}

func (p *seehuhnPage) DrawImage(data []byte, format string, x, y, width, height float64) error {
	var ref pdf.Reference
	var err error
	switch format {
	case "png":
		ref, err = p.doc.embedPNG(data)
	case "jpeg":
		ref, err = p.doc.embedJPEG(data)
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
	if err != nil {
		return err
	}

	name := fmt.Sprintf("%s%d", imageResPrefix, p.doc.nextRes)
	p.doc.nextRes++
	p.xObjects[name] = ref

	fmt.Fprintf(&p.content, "q\n%s 0 0 %s %s %s cm\n/%s Do\nQ\n",
		num(width), num(height), num(x), num(y), name)
	return nil
}

func (p *seehuhnPage) DrawCircle(cx, cy, r float64) error {
	k := kappa * r
	b := &p.content
	fmt.Fprintf(b, "q\n0 g\n%s %s m\n", num(cx+r), num(cy))
	fmt.Fprintf(b, "%s %s %s %s %s %s c\n", num(cx+r), num(cy+k), num(cx+k), num(cy+r), num(cx), num(cy+r))
	fmt.Fprintf(b, "%s %s %s %s %s %s c\n", num(cx-k), num(cy+r), num(cx-r), num(cy+k), num(cx-r), num(cy))
	fmt.Fprintf(b, "%s %s %s %s %s %s c\n", num(cx-r), num(cy-k), num(cx-k), num(cy-r), num(cx), num(cy-r))
	fmt.Fprintf(b, "%s %s %s %s %s %s c\n", num(cx+k), num(cy-r), num(cx+r), num(cy-k), num(cx+r), num(cy))
	fmt.Fprint(b, "f\nQ\n")
	return nil
}

// flush appends the accumulated drawing operations as a new content stream
// and merges the resources this page needs into its resource dictionary.
func (p *seehuhnPage) flush() error {
	if p.content.Len() == 0 {
		return nil
	}

	ref := p.doc.data.Alloc()
	stm, err := p.doc.data.OpenStream(ref, nil, pdf.FilterCompress{})
	if err != nil {
		return err
	}
	if _, err := stm.Write(p.content.Bytes()); err != nil {
		return err
	}
	if err := stm.Close(); err != nil {
		return err
	}
	p.content.Reset()

	if err := p.appendContents(ref); err != nil {
		return err
	}
	return p.mergeResources()
}

// appendContents adds ref at the end of the page's /Contents so the new
// stream paints over the original page content.
func (p *seehuhnPage) appendContents(ref pdf.Reference) error {
	switch cur := p.dict["Contents"].(type) {
	case nil:
		p.dict["Contents"] = ref
	case pdf.Array:
		p.dict["Contents"] = append(append(pdf.Array{}, cur...), ref)
	case pdf.Reference:
		obj, err := pdf.Resolve(p.doc.data, cur)
		if err != nil {
			return err
		}
		if arr, ok := obj.(pdf.Array); ok {
			p.dict["Contents"] = append(append(pdf.Array{}, arr...), ref)
		} else {
			p.dict["Contents"] = pdf.Array{cur, ref}
		}
	case *pdf.Stream:
		// content streams must be indirect; relocate the inline one
		sRef := p.doc.data.Alloc()
		if err := p.doc.data.Put(sRef, cur); err != nil {
			return err
		}
		p.dict["Contents"] = pdf.Array{sRef, ref}
	default:
		p.dict["Contents"] = ref
	}
	return nil
}

// mergeResources rebinds the page to a private copy of its resource
// dictionary extended with the font and image XObjects used while drawing.
// The copy matters: the original dictionary may be inherited and shared
// with other pages.
func (p *seehuhnPage) mergeResources() error {
	if p.fontName == "" && len(p.xObjects) == 0 {
		return nil
	}

	data := p.doc.data
	res, err := pdf.GetDict(data, p.dict["Resources"])
	if err != nil {
		return err
	}
	newRes := pdf.Dict{}
	for k, v := range res {
		newRes[k] = v
	}

	if p.fontName != "" {
		fonts, err := pdf.GetDict(data, newRes["Font"])
		if err != nil {
			return err
		}
		newFonts := pdf.Dict{}
		for k, v := range fonts {
			newFonts[k] = v
		}
		newFonts[pdf.Name(p.fontName)] = p.doc.fontRef
		newRes["Font"] = newFonts
	}

	if len(p.xObjects) > 0 {
		xo, err := pdf.GetDict(data, newRes["XObject"])
		if err != nil {
			return err
		}
		newXO := pdf.Dict{}
		for k, v := range xo {
			newXO[k] = v
		}
		for name, ref := range p.xObjects {
			newXO[pdf.Name(name)] = ref
		}
		newRes["XObject"] = newXO
	}

	p.dict["Resources"] = newRes
	return nil
}

// embedJPEG stores the JPEG bytes verbatim as a DCTDecode image XObject.
func (d *seehuhnDoc) embedJPEG(raw []byte) (pdf.Reference, error) {
	cfg, err := decodeConfig(raw)
	if err != nil {
		return 0, err
	}
	ref := d.data.Alloc()
	stm, err := d.data.OpenStream(ref, pdf.Dict{
		"Type":             pdf.Name("XObject"),
		"Subtype":          pdf.Name("Image"),
		"Width":            pdf.Integer(cfg.Width),
		"Height":           pdf.Integer(cfg.Height),
		"ColorSpace":       pdf.Name("DeviceRGB"),
		"BitsPerComponent": pdf.Integer(8),
		"Filter":           pdf.Name("DCTDecode"),
	})
	if err != nil {
		return 0, err
	}
	if _, err := stm.Write(raw); err != nil {
		return 0, err
	}
	if err := stm.Close(); err != nil {
		return 0, err
	}
	return ref, nil
}

// embedPNG decodes the PNG and stores it as a flate-compressed RGB image
// XObject, with a soft mask carrying the alpha channel when one is present.
func (d *seehuhnDoc) embedPNG(raw []byte) (pdf.Reference, error) {
	src, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return 0, err
	}
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	hasAlpha := false
	if op, ok := src.(interface{ Opaque() bool }); ok {
		hasAlpha = !op.Opaque()
	}

	dict := pdf.Dict{
		"Type":             pdf.Name("XObject"),
		"Subtype":          pdf.Name("Image"),
		"Width":            pdf.Integer(width),
		"Height":           pdf.Integer(height),
		"ColorSpace":       pdf.Name("DeviceRGB"),
		"BitsPerComponent": pdf.Integer(8),
	}
	var maskRef pdf.Reference
	if hasAlpha {
		maskRef = d.data.Alloc()
		dict["SMask"] = maskRef
	}

	ref := d.data.Alloc()
	stm, err := d.data.OpenStream(ref, dict, pdf.FilterFlate{})
	if err != nil {
		return 0, err
	}
	rgb, alpha := imageSamples(src)
	if _, err := stm.Write(rgb); err != nil {
		return 0, err
	}
	if err := stm.Close(); err != nil {
		return 0, err
	}

	if hasAlpha {
		mstm, err := d.data.OpenStream(maskRef, pdf.Dict{
			"Type":             pdf.Name("XObject"),
			"Subtype":          pdf.Name("Image"),
			"Width":            pdf.Integer(width),
			"Height":           pdf.Integer(height),
			"ColorSpace":       pdf.Name("DeviceGray"),
			"BitsPerComponent": pdf.Integer(8),
		}, pdf.FilterFlate{})
		if err != nil {
			return 0, err
		}
		if _, err := mstm.Write(alpha); err != nil {
			return 0, err
		}
		if err := mstm.Close(); err != nil {
			return 0, err
		}
	}

	return ref, nil
}

// imageSamples extracts 8-bit RGB and alpha planes from src. An SMask pairs
// with unassociated color samples, so the RGB values are taken
// non-premultiplied; converting through NRGBA divides the alpha back out
// for sources that store premultiplied pixels.
func imageSamples(src image.Image) (rgb, alpha []byte) {
	bounds := src.Bounds()
	rgb = make([]byte, 0, 3*bounds.Dx()*bounds.Dy())
	alpha = make([]byte, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			px := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			rgb = append(rgb, px.R, px.G, px.B)
			alpha = append(alpha, px.A)
		}
	}
	return rgb, alpha
}

func decodeConfig(raw []byte) (image.Config, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	return cfg, err
}

// num formats a coordinate for a content stream: plain decimal notation,
// at most four fractional digits.
func num(v float64) string {
	v = math.Round(v*1e4) / 1e4
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// escapeString escapes the characters with special meaning inside a PDF
// literal string.
func escapeString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`, "\r", `\r`, "\n", `\n`)
	return r.Replace(s)
}
