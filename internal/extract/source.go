package extract

import (
	"context"
	"log/slog"
	"strings"

	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/constants"
	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/internal/entity"
)

// Recognizer is the expensive collaborator: it rasterizes and recognizes a
// set of 0-based pages of a PDF.
type Recognizer interface {
	RecognizePages(ctx context.Context, pdfPath string, pages []int) (map[int]string, error)
}

// PageSource yields the best available text per page: the embedded text layer
// when it looks trustworthy, recognized text otherwise. Decisions are local
// to a page; the source holds no cross-page state, so lookups are idempotent
// as long as the recognizer is.
type PageSource struct {
	path   string
	layer  []string
	rec    Recognizer
	cfg    Config
	logger *slog.Logger
}

func NewPageSource(path string, layerTexts []string, rec Recognizer, cfg Config, logger *slog.Logger) *PageSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &PageSource{
		path:   path,
		layer:  layerTexts,
		rec:    rec,
		cfg:    cfg.withDefaults(),
		logger: logger,
	}
}

// Count returns the number of pages.
func (s *PageSource) Count() int { return len(s.layer) }

// Layer returns page i's text-layer candidate with layer provenance.
func (s *PageSource) Layer(i int) entity.PageText {
	return entity.PageText{Index: i, Text: strings.TrimSpace(s.layer[i]), Method: constants.MethodLayer}
}

// NeedsOCR applies the per-page fallback rule:
//  1. stripped layer text shorter than the minimum threshold;
//  2. a stimulation-section header with no date-like token; embedded
//     extraction frequently drops numeric table cells even when the header
//     survives.
func (s *PageSource) NeedsOCR(i int) bool {
	text := strings.TrimSpace(s.layer[i])
	if len(text) < s.cfg.MinTextChars {
		return true
	}
	if reStimHeader.MatchString(text) && !reDateToken.MatchString(text) {
		return true
	}
	return false
}

// Choose resolves page i against recognized text: the recognized candidate
// wins only when it is longer than the layer candidate (a cheap confidence
// proxy for garbled rasterizations).
func (s *PageSource) Choose(i int, ocrText string) entity.PageText {
	layer := s.Layer(i)
	ocrText = strings.TrimSpace(ocrText)
	if len(ocrText) > len(layer.Text) {
		return entity.PageText{Index: i, Text: ocrText, Method: constants.MethodOCR}
	}
	return layer
}

// Page yields page i's best text, invoking the recognizer for just that page
// when the fallback rule demands it.
func (s *PageSource) Page(ctx context.Context, i int) entity.PageText {
	if !s.NeedsOCR(i) || s.rec == nil {
		return s.Layer(i)
	}
	texts, err := s.rec.RecognizePages(ctx, s.path, []int{i})
	if err != nil {
		s.logger.Warn("page recognition failed, keeping text layer", "path", s.path, "page", i+1, "error", err)
		return s.Layer(i)
	}
	return s.Choose(i, texts[i])
}
