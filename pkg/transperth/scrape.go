package transperth

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/jaydubbbbb/train-departures-backend/pkg/board"
)

// fieldSelectors is the extraction contract for the live times markup: one
// selector per field role instead of ad-hoc lookups sprinkled through the
// parsing code. The markup uses varying class names across line pages, so
// each role matches a family of class substrings.
type fieldSelectors struct {
	row         string
	platform    string
	destination string
	time        string
	pattern     string
	stops       string
}

var liveTimesSelectors = fieldSelectors{
	row:         "tr[class*='departure'], tr[class*='train'], tr[class*='service'], div[class*='departure']",
	platform:    "[class*='platform'], [class*='plat']",
	destination: "[class*='destination'], [class*='dest']",
	time:        "[class*='time'], [class*='depart'], [class*='due']",
	pattern:     "[class*='pattern'], [class*='type']",
	stops:       "[class*='stops'], [class*='via']",
}

// ParseLiveTimes extracts raw departure rows from a live train times page.
// Rows with no recognisable destination and no time are skipped outright;
// rows missing only one of them are still emitted so the board can count the
// drop with a reason.
func ParseLiveTimes(r io.Reader, lineName string) ([]board.RawDeparture, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var raws []board.RawDeparture

	doc.Find(liveTimesSelectors.row).Each(func(i int, row *goquery.Selection) {
		raw := board.RawDeparture{
			Platform:    fieldText(row, liveTimesSelectors.platform),
			Destination: fieldText(row, liveTimesSelectors.destination),
			TimeDisplay: fieldText(row, liveTimesSelectors.time),
			Pattern:     fieldText(row, liveTimesSelectors.pattern),
			Stops:       fieldText(row, liveTimesSelectors.stops),
			Line:        lineName,
		}

		if raw.Destination == "" && raw.TimeDisplay == "" {
			return
		}

		raws = append(raws, raw)
	})

	return raws, nil
}

func fieldText(row *goquery.Selection, selector string) string {
	return strings.TrimSpace(row.Find(selector).First().Text())
}

// ScrapeSource fetches departures by scraping the live train times pages for
// each configured line. When a proxy key is set, lines that fail to fetch
// directly are retried through the scraping proxy.
type ScrapeSource struct {
	client    *Client
	lines     []Line
	proxyBase string
	proxyKey  string
}

// DefaultProxyBase is the fetch endpoint of the scraping proxy service.
const DefaultProxyBase = "https://api.scraperapi.com/"

// NewScrapeSource creates a scraping source for the given line pages.
// An empty proxyKey disables the proxy fallback.
func NewScrapeSource(client *Client, lines []Line, proxyKey string) *ScrapeSource {
	return &ScrapeSource{
		client:    client,
		lines:     lines,
		proxyBase: DefaultProxyBase,
		proxyKey:  proxyKey,
	}
}

// FetchDepartures scrapes every configured line page and combines the rows.
// Individual line failures are tolerated as long as at least one line could
// be fetched; only a total failure is an error.
func (s *ScrapeSource) FetchDepartures() ([]board.RawDeparture, error) {
	var all []board.RawDeparture
	var lastErr error
	fetched := 0

	for _, line := range s.lines {
		raws, err := s.fetchLine(line)
		if err != nil {
			log.Warn().Err(err).Str("line", line.Name).Msg("Failed to fetch line page")
			lastErr = err
			continue
		}

		fetched++
		all = append(all, raws...)
	}

	if fetched == 0 && lastErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, lastErr)
	}

	return all, nil
}

func (s *ScrapeSource) fetchLine(line Line) ([]board.RawDeparture, error) {
	resp, err := s.client.Get(line.URL)
	if err != nil {
		if s.proxyKey == "" {
			return nil, err
		}

		log.Info().Str("line", line.Name).Msg("Direct fetch failed, retrying through scraping proxy")
		resp, err = s.client.Get(proxyURL(s.proxyBase, s.proxyKey, line.URL))
		if err != nil {
			return nil, fmt.Errorf("proxy fetch failed: %w", err)
		}
	}
	defer resp.Body.Close()

	return ParseLiveTimes(resp.Body, line.Name)
}

// proxyURL wraps a target page in the scraping proxy's fetch endpoint.
func proxyURL(proxyBase, apiKey, target string) string {
	return fmt.Sprintf("%s?api_key=%s&url=%s", proxyBase, url.QueryEscape(apiKey), url.QueryEscape(target))
}
