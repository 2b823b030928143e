// Command signer runs a single compositing pass from the command line:
// read a PDF, bake the given fields into it, write the result. Useful for
// trying out field layouts without a running service.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/bolosign/bolosign/backend/go-services/internal/assembler"
	"github.com/bolosign/bolosign/backend/go-services/internal/compositor"
	"github.com/bolosign/bolosign/backend/go-services/internal/fetch"
	"github.com/bolosign/bolosign/backend/go-services/internal/field"
	"github.com/bolosign/bolosign/backend/go-services/internal/pdfio"
	"github.com/bolosign/bolosign/backend/go-services/pkg/logger"
)

func main() {
	var (
		pdfRef     = flag.String("pdf", "", "source document: http(s) URL or local path")
		fieldsPath = flag.String("fields", "", "JSON file with the field list")
		outPath    = flag.String("o", "signed.pdf", "output file")
	)
	flag.Parse()
	logger.Init(os.Getenv("LOG_LEVEL"))

	if *pdfRef == "" || *fieldsPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	raw, err := os.ReadFile(*fieldsPath)
	if err != nil {
		logger.Fatalf("read fields: %v", err)
	}
	var fields []field.Field
	if err := json.Unmarshal(raw, &fields); err != nil {
		logger.Fatalf("parse fields: %v", err)
	}

	a := assembler.New(
		fetch.NewClient(".", 30*time.Second, 0),
		pdfio.Open,
		compositor.New(0),
		0,
	)
	res, err := a.Run(context.Background(), *pdfRef, fields)
	if err != nil {
		logger.Fatalf("signing pass failed: %v", err)
	}

	if err := os.WriteFile(*outPath, res.Output, 0o644); err != nil {
		logger.Fatalf("write output: %v", err)
	}
	fmt.Printf("wrote %s (%d bytes)\n", *outPath, len(res.Output))
	fmt.Printf("original sha256: %s\n", res.OriginalDigest)
	fmt.Printf("signed   sha256: %s\n", res.SignedDigest)
	fmt.Printf("fields drawn: %d, skipped: %d\n", res.Drawn, res.Skipped)
}
