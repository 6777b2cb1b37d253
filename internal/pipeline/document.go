package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/soyeahso/reviewdesk/internal/domain"
	"github.com/soyeahso/reviewdesk/internal/hooks"
	"github.com/soyeahso/reviewdesk/internal/pagerange"
)

// LoadDocument rasterizes an uploaded PDF and replaces the session's pages.
// The page range resets to the first five pages (or fewer). On failure the
// previous pages are kept.
func (e *Executor) LoadDocument(ctx context.Context, document []byte) (int, error) {
	const op = "document.load"
	if err := e.begin(ctx, op); err != nil {
		return 0, err
	}
	defer e.end(ctx, op)

	start := time.Now()
	pages, err := e.rasterizer.Rasterize(ctx, document, e.cfg.MaxPages)
	if err != nil {
		e.log.Warn().Err(err).Int("bytes", len(document)).Msg("document rejected")
		return 0, err
	}

	pageRange := pagerange.Default(len(pages))
	e.mu.Lock()
	e.pages = pages
	e.pageRange = pageRange
	e.mu.Unlock()

	e.log.Info().
		Int("pages", len(pages)).
		Str("range", pageRange).
		Dur("elapsed", time.Since(start)).
		Msg("document loaded")
	e.emit(ctx, hooks.EventDocumentLoaded, map[string]any{"pages": len(pages), "pageRange": pageRange})
	return len(pages), nil
}

// Page returns the image of 1-based page n.
func (e *Executor) Page(n int) (domain.PageImage, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if len(e.pages) == 0 {
		return domain.PageImage{}, ErrNoPages
	}
	if n < 1 || n > len(e.pages) {
		return domain.PageImage{}, fmt.Errorf("%w: %d of %d", ErrPageOutOfRange, n, len(e.pages))
	}
	return e.pages[n-1], nil
}

// StartOCR transcribes the pages picked by the session's page range in one
// gateway call, stores the text as the document text and moves the view to
// review. A failed call leaves the previous document text untouched.
func (e *Executor) StartOCR(ctx context.Context) (string, error) {
	const op = "ocr.start"
	if err := e.begin(ctx, op); err != nil {
		return "", err
	}
	defer e.end(ctx, op)

	e.mu.RLock()
	pages := e.pages
	expr := e.pageRange
	model := e.ocrModel
	e.mu.RUnlock()

	if len(pages) == 0 {
		return "", e.reject(op, ErrNoPages)
	}
	credential, err := e.requireCredential(op)
	if err != nil {
		return "", err
	}
	indices := pagerange.Parse(expr, len(pages))
	if len(indices) == 0 {
		return "", e.reject(op, ErrInvalidRange)
	}

	selected := make([]domain.PageImage, len(indices))
	numbers := make([]int, len(indices))
	for i, idx := range indices {
		selected[i] = pages[idx]
		numbers[i] = idx + 1
	}

	start := time.Now()
	text, err := e.gateway.TranscribeImages(ctx, credential, model, selected)
	if err != nil {
		e.log.Warn().Err(err).Str("model", model).Ints("pages", numbers).Msg("OCR failed")
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	e.mu.Lock()
	e.documentText = text
	e.view = ViewReview
	e.mu.Unlock()

	e.log.Info().
		Str("model", model).
		Ints("pages", numbers).
		Int("chars", len([]rune(text))).
		Float64("latency", domain.Seconds(time.Since(start))).
		Msg("OCR completed")
	e.emit(ctx, hooks.EventOCRCompleted, map[string]any{"pages": numbers, "model": model})
	return text, nil
}
