package out

import (
	"context"
	"fmt"

	"rsc.io/pdf"

	catalogout "tsundoku/internal/modules/catalog/port/out"
)

type PDFPageCounter struct{}

func NewPDFPageCounter() catalogout.PageCounter {
	return &PDFPageCounter{}
}

func (c *PDFPageCounter) CountPages(_ context.Context, path string) (int, error) {
	doc, err := pdf.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open pdf: %w", err)
	}
	return doc.NumPage(), nil
}
