package transperth

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jaydubbbbb/train-departures-backend/pkg/board"
)

// APISource fetches departures from the internal live train times JSON
// endpoint instead of scraping the rendered page.
type APISource struct {
	client   *Client
	endpoint string
}

// NewAPISource creates a source backed by the JSON endpoint.
func NewAPISource(client *Client, endpoint string) *APISource {
	return &APISource{client: client, endpoint: endpoint}
}

// FetchDepartures calls the JSON endpoint and maps its entries to raw
// departure records.
func (s *APISource) FetchDepartures() ([]board.RawDeparture, error) {
	resp, err := s.client.Get(s.endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read live times response body: %w", err)
	}

	var liveTimes liveTimesResponse
	if err := json.Unmarshal(body, &liveTimes); err != nil {
		return nil, fmt.Errorf("failed to decode live times JSON: %w", err)
	}

	raws := make([]board.RawDeparture, 0, len(liveTimes.Entries))
	for _, entry := range liveTimes.Entries {
		raws = append(raws, board.RawDeparture{
			Platform:    entry.Platform,
			Destination: entry.Destination,
			TimeDisplay: entry.DisplayTime,
			Pattern:     entry.Pattern,
			Stops:       entry.StopPattern,
			Line:        entry.Line,
		})
	}

	return raws, nil
}
