// Package enrich looks up public production figures for extracted wells on
// DrillingEdge and folds them back into the store.
package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/internal/repository"
	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/internal/textutil"
)

const userAgent = "oil-wells-project/1.0"

var (
	reDigits = regexp.MustCompile(`\D`)

	// "396 Barrels of Oil Produced in Dec 2025", "2.2 k MCF of Gas Produced in May 2023"
	reOilProduced = regexp.MustCompile(`(?i)([\d.]+)\s*(k)?\s*Barrels of Oil Produced in\s+([A-Za-z]{3}\s+\d{4})`)
	reGasProduced = regexp.MustCompile(`(?i)([\d.]+)\s*(k)?\s*MCF of Gas Produced in\s+([A-Za-z]{3}\s+\d{4})`)
)

// NormalizeAPI converts a bare 10-digit API number to the dashed form the
// site indexes by. Already-dashed input passes through the same path. Returns
// "" when the input is not a 10-digit API.
func NormalizeAPI(raw string) string {
	digits := reDigits.ReplaceAllString(raw, "")
	if len(digits) != 10 {
		return ""
	}
	return digits[0:2] + "-" + digits[2:5] + "-" + digits[5:10]
}

// Result is one well's scraped enrichment payload.
type Result struct {
	URL             string
	WellStatus      string
	WellType        string
	ClosestCity     string
	LatestOilBBL    *float64
	LatestGasMCF    *float64
	LatestProdLabel string
}

// Update converts the scrape result into a repository write.
func (r *Result) Update() repository.EnrichmentUpdate {
	return repository.EnrichmentUpdate{
		DrillingEdgeURL: r.URL,
		WellStatus:      r.WellStatus,
		WellType:        r.WellType,
		ClosestCity:     r.ClosestCity,
		LatestOilBBL:    r.LatestOilBBL,
		LatestGasMCF:    r.LatestGasMCF,
		LatestProdLabel: r.LatestProdLabel,
	}
}

// Client scrapes DrillingEdge well pages over plain HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	delay   time.Duration
	logger  *slog.Logger
}

func NewClient(baseURL string, delay time.Duration, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		delay:   delay,
		logger:  logger,
	}
}

// Lookup searches for a well by dashed API number, falling back to the well
// name, follows the best result link, and parses the detail page. A nil
// result with nil error means the site had no match.
func (c *Client) Lookup(ctx context.Context, apiDashed, wellName string) (*Result, error) {
	query := apiDashed
	if query == "" {
		query = wellName
	}
	if query == "" {
		return nil, nil
	}

	searchDoc, err := c.fetch(ctx, c.baseURL+"/search?q="+url.QueryEscape(query))
	if err != nil {
		return nil, err
	}

	wellURL := bestResultLink(searchDoc, c.baseURL, apiDashed)
	if wellURL == "" {
		c.logger.Debug("no search result", "query", query)
		return nil, nil
	}

	c.pause(ctx)
	detailDoc, err := c.fetch(ctx, wellURL)
	if err != nil {
		return nil, err
	}

	res := parseDetailPage(detailDoc)
	res.URL = wellURL
	return res, nil
}

func (c *Client) fetch(ctx context.Context, rawURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", rawURL, resp.StatusCode)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}

// pause sleeps the polite per-request delay unless the context is done first.
func (c *Client) pause(ctx context.Context) {
	if c.delay <= 0 {
		return
	}
	t := time.NewTimer(c.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// bestResultLink picks the well-page link whose href contains the dashed API
// number, else the first link to a well page at all.
func bestResultLink(doc *goquery.Document, baseURL, apiDashed string) string {
	var exact, first string
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		if !strings.Contains(href, "/wells/") {
			return true
		}
		abs := absoluteURL(baseURL, href)
		if first == "" {
			first = abs
		}
		if apiDashed != "" && strings.Contains(href, apiDashed) {
			exact = abs
			return false
		}
		return true
	})
	if exact != "" {
		return exact
	}
	return first
}

func absoluteURL(baseURL, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return baseURL + "/" + strings.TrimLeft(href, "/")
}

// reHSpace collapses horizontal whitespace only; line breaks terminate
// detail values the way they do on the rendered page.
var reHSpace = regexp.MustCompile(`[ \t\x{00a0}]+`)

func parseDetailPage(doc *goquery.Document) *Result {
	text := reHSpace.ReplaceAllString(doc.Find("body").Text(), " ")

	res := &Result{
		WellStatus:  detailValue(text, "Well Status"),
		WellType:    detailValue(text, "Well Type"),
		ClosestCity: detailValue(text, "Closest City"),
	}

	if m := reOilProduced.FindStringSubmatch(text); m != nil {
		res.LatestOilBBL = scaledValue(m[1], m[2])
		res.LatestProdLabel = m[3]
	}
	if m := reGasProduced.FindStringSubmatch(text); m != nil {
		res.LatestGasMCF = scaledValue(m[1], m[2])
		if res.LatestProdLabel == "" {
			res.LatestProdLabel = m[3]
		}
	}
	return res
}

// detailValue grabs the run of value characters after a detail label, the
// way the figures read on the page ("Well Status Active"). The separator is
// optional because extracted markup concatenates adjacent table cells.
func detailValue(text, key string) string {
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(key) + `\s*([A-Za-z0-9 &/.-]+)`)
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// scaledValue parses a production figure, applying the site's "k" multiplier.
func scaledValue(num, suffix string) *float64 {
	v := textutil.ToFloat(num)
	if v == nil {
		return nil
	}
	if suffix != "" {
		*v *= 1000.0
	}
	return v
}
