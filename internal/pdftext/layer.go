// Package pdftext reads the text layer embedded in a PDF by its producing
// application. Scanned pages usually yield little or nothing here; deciding
// whether that output is trustworthy is the caller's job.
package pdftext

import (
	"fmt"
	"log/slog"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// PageCount returns the page count without rasterizing anything.
func PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("page count: %w", err)
	}
	return n, nil
}

// PageTexts extracts the embedded text layer of every page. A page whose
// content cannot be decoded contributes an empty string; individual page
// failures never abort the document.
func PageTexts(path string, logger *slog.Logger) ([]string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logger.Warn("closing pdf", "path", path, "error", cerr)
		}
	}()

	n := reader.NumPage()
	texts := make([]string, n)
	for pageNum := 1; pageNum <= n; pageNum++ {
		texts[pageNum-1] = extractPage(reader, pageNum, path, logger)
	}

	// The text-layer reader undercounts on documents with a damaged page
	// tree. Cross-check against pdfcpu and pad with empty pages so
	// recognition can still reach what the reader could not serve.
	count, err := PageCount(path)
	if err != nil {
		logger.Warn("page count check failed", "path", path, "error", err)
		return texts, nil
	}
	if count != n {
		logger.Warn("page count mismatch", "path", path, "text_layer", n, "document", count)
	}
	return reconcilePages(texts, count), nil
}

// reconcilePages makes the page slice agree with the authoritative count.
// Missing pages become empty strings; surplus entries past the count are
// dropped.
func reconcilePages(texts []string, count int) []string {
	if count <= 0 || count == len(texts) {
		return texts
	}
	if count < len(texts) {
		return texts[:count]
	}
	out := make([]string, count)
	copy(out, texts)
	return out
}

// extractPage isolates the per-page call so a decoder panic on one malformed
// page degrades to empty text instead of taking down the document.
func extractPage(reader *pdf.Reader, pageNum int, path string, logger *slog.Logger) (text string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("text layer extraction panicked", "path", path, "page", pageNum, "panic", r)
			text = ""
		}
	}()

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return ""
	}
	content, err := page.GetPlainText(nil)
	if err != nil {
		logger.Warn("text layer extraction failed", "path", path, "page", pageNum, "error", err)
		return ""
	}
	return content
}
