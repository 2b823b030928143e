package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bolosign/bolosign/backend/go-services/internal/assembler"
	"github.com/bolosign/bolosign/backend/go-services/internal/audit"
	auditsvc "github.com/bolosign/bolosign/backend/go-services/internal/audit/service"
	"github.com/bolosign/bolosign/backend/go-services/internal/field"
	"github.com/bolosign/bolosign/backend/go-services/internal/fetch"
	"github.com/bolosign/bolosign/backend/go-services/internal/pdfio"
	"github.com/bolosign/bolosign/backend/go-services/internal/storage"
	"github.com/bolosign/bolosign/backend/go-services/pkg/logger"
	"github.com/bolosign/bolosign/backend/go-services/pkg/metrics"
)

// Signer runs one compositing pass over a document reference.
type Signer interface {
	Run(ctx context.Context, ref string, fields []field.Field) (*assembler.Result, error)
}

// SignHandler exposes the signing pipeline over HTTP: one endpoint that
// bakes fields into a document and one that looks up the audit trail of a
// finished pass.
type SignHandler struct {
	signer Signer
	store  storage.Store
	audits auditsvc.Service
}

func NewSignHandler(signer Signer, store storage.Store, audits auditsvc.Service) *SignHandler {
	return &SignHandler{signer: signer, store: store, audits: audits}
}

// RegisterRoutes mounts the signing endpoints on r. The extra middleware
// (auth, rate limiting) applies to the signing routes only.
func (h *SignHandler) RegisterRoutes(r *gin.Engine, mw ...gin.HandlerFunc) {
	grp := r.Group("/api", mw...)
	grp.POST("/sign-pdf", h.SignPDF)
	grp.GET("/audit-trail/:id", h.AuditTrail)

	// unauthenticated: the original API exposed its health probe here
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "pdf-signer"})
	})
}

type signRequest struct {
	// DocumentRef names the source document: an http(s) URL or a path
	// under the configured document root. PDFURL is the legacy alias.
	DocumentRef string        `json:"documentRef"`
	PDFURL      string        `json:"pdfUrl"`
	Fields      []field.Field `json:"fields"`
}

// SignPDF handles POST /api/sign-pdf. It fetches the referenced document,
// composites every field onto its page, persists the baked artifact and an
// audit record, and returns the output location with both content digests.
func (h *SignHandler) SignPDF(c *gin.Context) {
	var req signRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	ref := req.DocumentRef
	if ref == "" {
		ref = req.PDFURL
	}
	if ref == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "documentRef is required"})
		return
	}

	res, err := h.signer.Run(c.Request.Context(), ref, req.Fields)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, assembler.ErrTooManyFields):
			status = http.StatusBadRequest
		case errors.Is(err, fetch.ErrSourceUnavailable):
			status = http.StatusBadGateway
		case errors.Is(err, pdfio.ErrMalformedDocument):
			status = http.StatusUnprocessableEntity
		}
		logger.Errorf("signing pass for %q failed: %v", ref, err)
		c.JSON(status, gin.H{"success": false, "error": err.Error()})
		return
	}

	key := fmt.Sprintf("signed_%d.pdf", time.Now().UnixNano())
	location, err := h.store.Put(c.Request.Context(), key, res.Output, "application/pdf")
	if err != nil {
		logger.Errorf("storing artifact %s failed: %v", key, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to store signed document"})
		return
	}
	metrics.ArtifactBytes.Add(float64(len(res.Output)))

	recordID := ""
	if h.audits != nil {
		rec := &audit.Record{
			DocumentRef:    ref,
			OriginalDigest: res.OriginalDigest,
			SignedDigest:   res.SignedDigest,
			OutputLocation: location,
			Fields:         req.Fields,
		}
		recordID, err = h.audits.Record(c.Request.Context(), rec)
		if err != nil {
			// the artifact exists; losing the trail entry is logged, not fatal
			logger.Errorf("audit record for %s failed: %v", key, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"outputLocation": location,
		"originalDigest": res.OriginalDigest,
		"signedDigest":   res.SignedDigest,
		"fieldsDrawn":    res.Drawn,
		"fieldsSkipped":  res.Skipped,
		"auditRecordId":  recordID,
	})
}

// AuditTrail handles GET /api/audit-trail/:id.
func (h *SignHandler) AuditTrail(c *gin.Context) {
	if h.audits == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "audit trail disabled"})
		return
	}
	rec, err := h.audits.Lookup(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, auditsvc.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}
