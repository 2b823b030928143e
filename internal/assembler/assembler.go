// Package assembler runs one compositing pass: fetch the source document,
// bake every field into it, and produce the output bytes together with the
// before/after content digests.
package assembler

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/bolosign/bolosign/backend/go-services/internal/field"
	"github.com/bolosign/bolosign/backend/go-services/internal/pdfio"
	"github.com/bolosign/bolosign/backend/go-services/pkg/logger"
	"github.com/bolosign/bolosign/backend/go-services/pkg/metrics"
)

// ErrTooManyFields is returned when a request exceeds the per-pass field
// ceiling.
var ErrTooManyFields = errors.New("too many fields")

// Fetcher retrieves the source bytes behind a document reference.
type Fetcher interface {
	Get(ctx context.Context, ref string) ([]byte, error)
}

// Compositor draws a single field onto a page.
type Compositor interface {
	Composite(p pdfio.Page, f field.Field) (bool, error)
}

// Opener parses source bytes into a mutable document model.
type Opener func(raw []byte) (pdfio.Document, error)

// Result is the outcome of one pass.
type Result struct {
	Output         []byte
	OriginalDigest string
	SignedDigest   string
	Drawn          int
	Skipped        int
}

// Assembler orchestrates compositing passes. It is safe for concurrent use;
// each pass owns its document model exclusively.
type Assembler struct {
	fetcher   Fetcher
	open      Opener
	comp      Compositor
	maxFields int
}

func New(fetcher Fetcher, open Opener, comp Compositor, maxFields int) *Assembler {
	return &Assembler{fetcher: fetcher, open: open, comp: comp, maxFields: maxFields}
}

// Run executes one pass over the document behind ref. Fields are applied
// strictly in list order; later fields paint over earlier ones. Per-field
// failures are logged and skipped, they never abort the pass. Document-level
// failures (retrieval, parse) abort with an error.
func (a *Assembler) Run(ctx context.Context, ref string, fields []field.Field) (*Result, error) {
	if a.maxFields > 0 && len(fields) > a.maxFields {
		return nil, fmt.Errorf("%w: %d fields, limit is %d", ErrTooManyFields, len(fields), a.maxFields)
	}

	src, err := a.fetcher.Get(ctx, ref)
	if err != nil {
		metrics.PassesFailed.WithLabelValues("fetch").Inc()
		return nil, fmt.Errorf("retrieve %q: %w", ref, err)
	}
	originalDigest := digest(src)

	doc, err := a.open(src)
	if err != nil {
		metrics.PassesFailed.WithLabelValues("open").Inc()
		return nil, fmt.Errorf("open %q: %w", ref, err)
	}

	res := &Result{OriginalDigest: originalDigest}
	for _, f := range fields {
		if f.Page < 1 || f.Page > doc.NumPages() {
			logger.Warnf("field %s: page %d not in document (%d pages), skipping", f.ID, f.Page, doc.NumPages())
			metrics.FieldsSkipped.WithLabelValues("missing_page").Inc()
			res.Skipped++
			continue
		}
		page, err := doc.Page(f.Page - 1)
		if err != nil {
			logger.Warnf("field %s: cannot load page %d: %v, skipping", f.ID, f.Page, err)
			metrics.FieldsSkipped.WithLabelValues("missing_page").Inc()
			res.Skipped++
			continue
		}
		drawn, err := a.comp.Composite(page, f)
		if err != nil {
			// deliberate best-effort policy: one bad field never voids an
			// otherwise-valid document
			logger.Warnf("field %s (%s): render failed: %v, skipping", f.ID, f.Type, err)
			metrics.FieldsSkipped.WithLabelValues("render_failure").Inc()
			res.Skipped++
			continue
		}
		if drawn {
			metrics.FieldsComposited.WithLabelValues(string(f.Type)).Inc()
			res.Drawn++
		} else {
			metrics.FieldsSkipped.WithLabelValues("empty_value").Inc()
			res.Skipped++
		}
	}

	if res.Drawn == 0 {
		// nothing changed; emit the source verbatim so the digests agree
		res.Output = src
		res.SignedDigest = originalDigest
		metrics.PassesCompleted.Inc()
		return res, nil
	}

	out, err := doc.Save()
	if err != nil {
		metrics.PassesFailed.WithLabelValues("save").Inc()
		return nil, fmt.Errorf("serialize %q: %w", ref, err)
	}
	res.Output = out
	res.SignedDigest = digest(out)
	metrics.PassesCompleted.Inc()
	return res, nil
}

// digest returns the hex-encoded SHA-256 of data.
func digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
