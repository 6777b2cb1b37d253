// Package pdf renders uploaded PDF documents to page images for transcription.
package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/soyeahso/reviewdesk/internal/domain"
)

const (
	// DefaultMaxPages is the page ceiling applied to an upload.
	DefaultMaxPages = 30

	// DefaultDPI renders at 1.5x of the 72 DPI PDF user space.
	DefaultDPI = 108.0
)

var (
	ErrEmptyDocument = errors.New("document is empty")
	ErrNotPDF        = errors.New("document is not a PDF")
	ErrNoPages       = errors.New("PDF has no pages")
)

// pdfMagic starts every PDF file.
var pdfMagic = []byte("%PDF-")

// Rasterizer renders a document to at most maxPages images, in page order from page 1.
type Rasterizer interface {
	Rasterize(ctx context.Context, document []byte, maxPages int) ([]domain.PageImage, error)
}

// ParseError wraps a failure to open or render a document.
type ParseError struct {
	Page int // 1-based; zero when the document itself could not be opened
	Err  error
}

func (e *ParseError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("error parsing PDF page %d: %v", e.Page, e.Err)
	}
	return fmt.Sprintf("error parsing PDF: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Sniff checks that data looks like a PDF before it reaches the renderer.
func Sniff(data []byte) error {
	if len(data) == 0 {
		return &ParseError{Err: ErrEmptyDocument}
	}
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	if !bytes.Contains(head, pdfMagic) {
		return &ParseError{Err: ErrNotPDF}
	}
	return nil
}
