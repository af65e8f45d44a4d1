package transperth

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/jaydubbbbb/train-departures-backend/pkg/board"
	"github.com/jaydubbbbb/train-departures-backend/pkg/config"
)

// ErrSourceUnavailable marks a total upstream failure: no departure data
// could be acquired by any strategy.
var ErrSourceUnavailable = errors.New("departure source unavailable")

// Source yields raw departure records for the station, however it acquires
// them.
type Source interface {
	FetchDepartures() ([]board.RawDeparture, error)
}

// fallbackSource tries each wrapped source in order and returns the first
// successful result.
type fallbackSource struct {
	sources []Source
}

func (f *fallbackSource) FetchDepartures() ([]board.RawDeparture, error) {
	var lastErr error

	for _, source := range f.sources {
		raws, err := source.FetchDepartures()
		if err == nil {
			return raws, nil
		}

		log.Warn().Err(err).Msg("Departure source failed, falling back")
		lastErr = err
	}

	return nil, lastErr
}

// NewSource builds the departure source matching the configured mode:
// "api" for the JSON endpoint, "scrape" for page scraping (with proxy
// fallback when a key is set), and "auto" to try the API first and fall back
// to scraping.
func NewSource(client *Client, cfg *config.AppConfig) Source {
	lines := make([]Line, 0, len(cfg.Lines))
	for _, line := range cfg.Lines {
		lines = append(lines, Line{Name: line.Name, URL: line.URL})
	}

	scrape := NewScrapeSource(client, lines, cfg.ProxyAPIKey)

	switch cfg.SourceMode {
	case config.SourceModeAPI:
		return NewAPISource(client, cfg.APIEndpoint)
	case config.SourceModeAuto:
		return &fallbackSource{sources: []Source{
			NewAPISource(client, cfg.APIEndpoint),
			scrape,
		}}
	default:
		return scrape
	}
}
