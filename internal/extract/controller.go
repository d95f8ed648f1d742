package extract

import (
	"context"
	"log/slog"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/internal/common"
	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/internal/entity"
)

// reCoordKeyword flags pages that likely restate the surface hole location.
var reCoordKeyword = regexp.MustCompile(`(?i)latitude|longitude|surface\s+hole\s+location`)

// Controller drives extraction for one document. It reads every page's text
// layer first and stops there when the result is already complete; otherwise
// it buys recognition for a bounded candidate set of pages and merges the
// outcome. It never re-buys beyond that single batch: an incomplete result
// is surfaced as-is rather than failing.
type Controller struct {
	cfg    Config
	rec    Recognizer
	parser *StimulationParser
	logger *slog.Logger
}

func NewController(cfg Config, rec Recognizer, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		cfg:    cfg.withDefaults(),
		rec:    rec,
		parser: NewStimulationParser(logger),
		logger: logger,
	}
}

// WithParser substitutes the stimulation parser (alternative matchers).
func (c *Controller) WithParser(p *StimulationParser) *Controller {
	c.parser = p
	return c
}

// ExtractDocument produces the document's well fields, stimulation records
// and per-page provenance from the given per-page text-layer candidates.
func (c *Controller) ExtractDocument(ctx context.Context, pdfPath string, layerTexts []string) *entity.DocumentExtract {
	log := c.logger.With("pdf", pdfPath, "job_id", common.JobIDFromContext(ctx))
	src := NewPageSource(pdfPath, layerTexts, c.rec, c.cfg, c.logger)

	well := entity.WellRecord{}
	var records []entity.StimulationRecord
	pages := make([]entity.PageText, src.Count())

	// text-layer pass over every page
	for i := 0; i < src.Count(); i++ {
		pt := src.Layer(i)
		pages[i] = pt
		c.mergeFields(&well, pt.Text)
		records = append(records, c.parser.Parse(pt.Text)...)
	}
	c.applyDocumentWide(&well, joinPages(pages))

	if entity.Complete(&well, records) {
		log.Info("complete from text layer, skipping recognition",
			"pages", src.Count(), "records", len(records))
		return c.finish(pdfPath, well, records, pages, true)
	}

	// bounded recognition batch over keyword pages plus a stratified sample
	// of low-text pages
	candidates := c.selectCandidates(src)
	log.Info("text layer incomplete, recognizing candidate pages",
		"pages", src.Count(), "candidates", len(candidates))

	recognized := map[int]string{}
	if c.rec != nil && len(candidates) > 0 {
		var err error
		recognized, err = c.rec.RecognizePages(ctx, pdfPath, candidates)
		if err != nil {
			log.Warn("recognition batch failed, keeping text-layer result", "error", err)
			recognized = map[int]string{}
		}
	}

	hadRecords := len(records) > 0
	for _, idx := range candidates {
		txt, ok := recognized[idx]
		if !ok {
			continue
		}
		pt := src.Choose(idx, txt)
		if pt.Method != pages[idx].Method {
			pages[idx] = pt
			c.mergeFields(&well, pt.Text)
			// records are only re-attempted when the layer pass found none,
			// so the same table is never detected twice
			if !hadRecords {
				records = append(records, c.parser.Parse(pt.Text)...)
			}
		}
	}
	c.applyDocumentWide(&well, joinPages(pages))

	complete := entity.Complete(&well, records)
	if !complete {
		log.Warn("document still incomplete after recognition", "records", len(records))
	}
	return c.finish(pdfPath, well, records, pages, complete)
}

// mergeFields folds one page's labeled fields into the accumulator.
// First writer wins for the whole document.
func (c *Controller) mergeFields(well *entity.WellRecord, text string) {
	for field, value := range ExtractFields(text, c.cfg.FieldWindow) {
		well.SetField(field, value)
	}
}

// applyDocumentWide resolves the signals that are matched across the whole
// document rather than per label: coordinates (last match authoritative),
// inline API numbers, and spelled-out state names.
func (c *Controller) applyDocumentWide(well *entity.WellRecord, fullText string) {
	if api := FindAPINumber(fullText); api != "" {
		well.SetField(entity.FieldAPINumber, api)
	}
	if st := FindStateMention(fullText); st != "" {
		well.SetField(entity.FieldState, st)
	}
	lat, lon := ExtractLatLon(fullText)
	if lat != nil {
		well.Latitude = lat
	}
	if lon != nil {
		well.Longitude = lon
	}
}

// selectCandidates builds the bounded recognition set: keyword-flagged pages
// in full (they are few), plus a head/tail/stride sample of low-text pages.
func (c *Controller) selectCandidates(src *PageSource) []int {
	seen := make(map[int]struct{})
	var lowText []int
	for i := 0; i < src.Count(); i++ {
		text := src.Layer(i).Text
		if reStimHeader.MatchString(text) || reCoordKeyword.MatchString(text) {
			seen[i] = struct{}{}
			continue
		}
		if src.NeedsOCR(i) {
			lowText = append(lowText, i)
		}
	}
	for _, i := range stratifiedSample(lowText, c.cfg.SampleFirst, c.cfg.SampleLast, c.cfg.SampleStep) {
		seen[i] = struct{}{}
	}

	out := make([]int, 0, len(seen))
	for i := range seen {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// stratifiedSample keeps the first and last chunks of an ordered candidate
// list in full and every step-th element of the middle, bounding recognition
// cost on long scanned documents while still covering head, tail, and a
// spread of the pages where table content clusters.
func stratifiedSample(pages []int, first, last, step int) []int {
	if len(pages) <= first+last {
		return pages
	}
	out := append([]int(nil), pages[:first]...)
	mid := pages[first : len(pages)-last]
	for j := 0; j < len(mid); j += step {
		out = append(out, mid[j])
	}
	return append(out, pages[len(pages)-last:]...)
}

func joinPages(pages []entity.PageText) string {
	var b strings.Builder
	for _, p := range pages {
		if p.Text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(p.Text)
	}
	return b.String()
}

func (c *Controller) finish(pdfPath string, well entity.WellRecord, records []entity.StimulationRecord, pages []entity.PageText, complete bool) *entity.DocumentExtract {
	snaps := make([]entity.PageSnapshot, len(pages))
	for i, p := range pages {
		snaps[i] = entity.PageSnapshot{
			PageNumber: p.Index + 1,
			Method:     p.Method.String(),
			CharCount:  len(p.Text),
			Text:       p.Text,
		}
	}
	return &entity.DocumentExtract{
		SourceDocument: filepath.Base(pdfPath),
		Well:           well,
		Stimulations:   records,
		Pages:          snaps,
		Complete:       complete,
	}
}
