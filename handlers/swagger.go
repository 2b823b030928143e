package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the
// signing service.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.JSON(http.StatusOK, swaggerJSON)
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>bolosign-signer — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document describing the signing endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "bolosign-signer", "version": "v0.1.0" },
  "paths": {
    "/api/sign-pdf": {
      "post": {
        "summary": "Bake fields into a PDF document",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["fields"],"properties":{"documentRef":{"type":"string"},"pdfUrl":{"type":"string","description":"legacy alias for documentRef"},"fields":{"type":"array","items":{"type":"object","properties":{"id":{"type":"string"},"type":{"type":"string","enum":["text","signature","image","date","radio"]},"x":{"type":"number"},"y":{"type":"number"},"width":{"type":"number"},"height":{"type":"number"},"page":{"type":"integer"},"value":{}}}}}}}}},
        "responses": {
          "200": { "description": "signed artifact location and content digests" },
          "400": { "description": "invalid request or too many fields" },
          "422": { "description": "source is not a well-formed PDF" },
          "502": { "description": "source document unreachable" }
        }
      }
    },
    "/api/audit-trail/{id}": {
      "get": {
        "summary": "Fetch the audit record of a finished signing pass",
        "parameters": [ { "name": "id", "in": "path", "required": true, "schema": {"type":"string"} } ],
        "responses": { "200": { "description": "audit record" }, "404": { "description": "unknown record" } }
      }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
