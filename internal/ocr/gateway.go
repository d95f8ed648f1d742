package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
)

// Config holds the external binaries and recognition parameters.
type Config struct {
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	TesseractLang string // default "eng"
	TessdataDir   string
	DPI           int // rasterization DPI, default 300
	PSM           int // 6 works well for form/table blocks
	OEM           int // 1 = LSTM; 0 uses the engine default
}

// Gateway rasterizes requested PDF pages and runs recognition on them.
// Requested page indices are coalesced into maximal consecutive runs so the
// rasterizer is invoked once per run; its per-call overhead dominates cost.
type Gateway struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewGateway(cfg Config, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	if cfg.PSM <= 0 {
		cfg.PSM = 6
	}
	return &Gateway{cfg: cfg, runner: newExecRunner(logger), logger: logger}
}

// WithRunner swaps the command runner; tests use this to stub the binaries.
func (g *Gateway) WithRunner(r Runner) *Gateway {
	g.runner = r
	return g
}

// pageRun is an inclusive range of 0-based page indices.
type pageRun struct {
	start, end int
}

// coalesceRuns sorts and dedupes the indices, then merges consecutive ones.
func coalesceRuns(pages []int) []pageRun {
	if len(pages) == 0 {
		return nil
	}
	sorted := append([]int(nil), pages...)
	sort.Ints(sorted)

	var runs []pageRun
	cur := pageRun{start: sorted[0], end: sorted[0]}
	for _, p := range sorted[1:] {
		if p == cur.end {
			continue // duplicate
		}
		if p == cur.end+1 {
			cur.end = p
			continue
		}
		runs = append(runs, cur)
		cur = pageRun{start: p, end: p}
	}
	return append(runs, cur)
}

// RecognizePages returns recognized text keyed by 0-based page index.
// A failure on one run is logged and skipped; the remaining runs still
// proceed, so the result may cover only a subset of the request.
func (g *Gateway) RecognizePages(ctx context.Context, pdfPath string, pages []int) (map[int]string, error) {
	runs := coalesceRuns(pages)
	if len(runs) == 0 {
		return map[int]string{}, nil
	}
	g.logger.Debug("ocr batch", "pdf", pdfPath, "pages", len(pages), "runs", len(runs))

	out := make(map[int]string, len(pages))
	for _, run := range runs {
		texts, err := g.recognizeRun(ctx, pdfPath, run)
		if err != nil {
			g.logger.Warn("ocr run failed",
				"pdf", pdfPath, "first_page", run.start+1, "last_page", run.end+1, "error", err)
			continue
		}
		for idx, txt := range texts {
			out[idx] = txt
		}
	}
	return out, nil
}

// recognizeRun rasterizes one consecutive run and recognizes each image.
func (g *Gateway) recognizeRun(ctx context.Context, pdfPath string, run pageRun) (map[int]string, error) {
	tmpDir, err := os.MkdirTemp("", "wells-ocr-*")
	if err != nil {
		return nil, err
	}
	defer func() {
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
			g.logger.Warn("failed to remove temp dir", "dir", tmpDir, "error", rmErr)
		}
	}()

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r <dpi> -png -f <first> -l <last> <in.pdf> <tmp/page>
	// pdftoppm takes 1-based inclusive page numbers.
	_, _, err = g.runner.Run(ctx, g.cfg.Pdftoppm,
		"-r", strconv.Itoa(g.cfg.DPI),
		"-png",
		"-f", strconv.Itoa(run.start+1),
		"-l", strconv.Itoa(run.end+1),
		pdfPath, prefix)
	if err != nil {
		return nil, fmt.Errorf("pdftoppm: %w", err)
	}

	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if len(matches) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no images for pages %d-%d", run.start+1, run.end+1)
	}

	texts := make(map[int]string, len(matches))
	for i, img := range matches {
		idx := run.start + i
		if idx > run.end {
			break
		}
		txt, err := g.recognizeImage(ctx, img)
		if err != nil {
			g.logger.Warn("ocr page failed", "pdf", pdfPath, "page", idx+1, "error", err)
			continue
		}
		texts[idx] = txt
	}
	return texts, nil
}

var reBoxNoise = regexp.MustCompile(`(?m)^\s*[_\-]{3,}\s*$`)

func (g *Gateway) recognizeImage(ctx context.Context, imgPath string) (string, error) {
	args := []string{imgPath, "stdout", "-l", g.cfg.TesseractLang, "--psm", strconv.Itoa(g.cfg.PSM)}
	if g.cfg.OEM > 0 {
		args = append(args, "--oem", strconv.Itoa(g.cfg.OEM))
	}
	if g.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", g.cfg.TessdataDir)
	}

	out, _, err := g.runner.Run(ctx, g.cfg.Tesseract, args...)
	if err != nil {
		return "", fmt.Errorf("tesseract: %w", err)
	}
	// strip ruled-line noise tesseract emits on form borders
	return reBoxNoise.ReplaceAllString(string(out), ""), nil
}
