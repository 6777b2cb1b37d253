package pdf

import (
	"bytes"
	"context"
	"image/png"

	"github.com/gen2brain/go-fitz"
	"github.com/soyeahso/reviewdesk/internal/domain"
	"github.com/soyeahso/reviewdesk/internal/logging"
)

// FitzRasterizer renders pages with MuPDF through go-fitz and encodes them as PNG.
type FitzRasterizer struct {
	dpi float64
	log *logging.Logger
}

var _ Rasterizer = (*FitzRasterizer)(nil)

// NewFitzRasterizer creates a rasterizer. A non-positive dpi means DefaultDPI.
func NewFitzRasterizer(dpi float64, log *logging.Logger) *FitzRasterizer {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return &FitzRasterizer{dpi: dpi, log: log.Sub("pdf")}
}

// Rasterize renders up to maxPages pages. A non-positive maxPages means DefaultMaxPages.
func (r *FitzRasterizer) Rasterize(ctx context.Context, document []byte, maxPages int) ([]domain.PageImage, error) {
	if err := Sniff(document); err != nil {
		return nil, err
	}
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	doc, err := fitz.NewFromMemory(document)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	defer doc.Close()

	total := doc.NumPage()
	if total == 0 {
		return nil, &ParseError{Err: ErrNoPages}
	}
	count := min(total, maxPages)

	pages := make([]domain.PageImage, 0, count)
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		img, err := doc.ImageDPI(i, r.dpi)
		if err != nil {
			return nil, &ParseError{Page: i + 1, Err: err}
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, &ParseError{Page: i + 1, Err: err}
		}

		b := img.Bounds()
		pages = append(pages, domain.PageImage{
			Number:   i + 1,
			MIMEType: "image/png",
			Width:    b.Dx(),
			Height:   b.Dy(),
			Data:     buf.Bytes(),
		})
	}

	r.log.Info().
		Int("pages", total).
		Int("rendered", count).
		Float64("dpi", r.dpi).
		Msg("document rasterized")
	return pages, nil
}
